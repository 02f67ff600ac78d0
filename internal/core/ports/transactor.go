package ports

import "context"

// Transactor runs fn as one unit of work. Repositories called with the ctx
// passed to fn take part in the same transaction when the storage engine
// supports one; otherwise the writes inside fn are independent and a failure
// part way leaves the earlier writes in place.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
