package ports

import (
	"context"

	"github.com/outfitshare/outfit-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UserService defines account use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Rename(ctx context.Context, userID, username string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Delete removes the user together with every outfit they own.
	Delete(ctx context.Context, userID string) error
}
