package ports

import (
	"context"

	"github.com/outfitshare/outfit-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user. A unique-index violation is reported as
	// domain.ErrEmailTaken or domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
