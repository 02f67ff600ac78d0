package ports

import (
	"context"

	"github.com/outfitshare/outfit-api/internal/core/domain"
)

// CommentOrder selects the creation-time ordering of a comment listing.
type CommentOrder int

const (
	NewestFirst CommentOrder = iota
	OldestFirst
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByOutfit(ctx context.Context, outfitID string, order CommentOrder) ([]*domain.Comment, error)
	// ListAll returns every comment, oldest first. Used by reconciliation.
	ListAll(ctx context.Context) ([]*domain.Comment, error)
	Update(ctx context.Context, id string, patch domain.CommentPatch) (*domain.Comment, error)
	// Delete removes the comment and returns it as it was stored.
	Delete(ctx context.Context, id string) (*domain.Comment, error)
	DeleteByOutfits(ctx context.Context, outfitIDs []string) (int64, error)
}
