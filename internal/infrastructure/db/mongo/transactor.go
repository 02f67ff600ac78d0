package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/outfitshare/outfit-api/internal/core/ports"
)

// Transactor implements ports.Transactor. With transactions enabled the
// callback runs inside a multi-document transaction, which needs a replica
// set or sharded cluster. Disabled, the callback runs directly and each write
// commits on its own.
type Transactor struct {
	client  *mongo.Client
	enabled bool
}

var _ ports.Transactor = (*Transactor)(nil)

func NewTransactor(client *mongo.Client, enabled bool) *Transactor {
	return &Transactor{client: client, enabled: enabled}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || t.client == nil {
		return fn(ctx)
	}

	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	// WithTransaction retries fn on transient errors, so fn must tolerate
	// being run more than once.
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
