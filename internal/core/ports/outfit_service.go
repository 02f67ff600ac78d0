package ports

import (
	"context"

	"github.com/outfitshare/outfit-api/internal/core/domain"
)

// CreateOutfitInput carries the fields of a new outfit.
type CreateOutfitInput struct {
	Name        string
	Description string
	Image       string
	UserID      string
}

// UpdateOutfitInput replaces all three mutable fields of an outfit.
type UpdateOutfitInput struct {
	Name        string
	Description string
	Image       string
}

// UserSummary is the public subset of a user embedded in other records.
type UserSummary struct {
	ID       string
	Username string
}

// OutfitDetail is an outfit with its owner and likers resolved. Owner is nil
// when the owning account no longer exists.
type OutfitDetail struct {
	Outfit *domain.Outfit
	Owner  *UserSummary
	Likers []UserSummary
}

// LikeResult reports the like state of one user on one outfit.
type LikeResult struct {
	Liked     bool
	LikeCount int
}

// OutfitService defines outfit and like use cases.
type OutfitService interface {
	Create(ctx context.Context, input CreateOutfitInput) (*domain.Outfit, error)
	ListAll(ctx context.Context) ([]OutfitDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Outfit, error)
	Update(ctx context.Context, outfitID string, input UpdateOutfitInput) (*domain.Outfit, error)
	DeleteMany(ctx context.Context, outfitIDs []string) (int64, error)
	ToggleLike(ctx context.Context, outfitID, userID string) (*LikeResult, error)
	// GetLikes reports the like count and, when userID is non-empty, whether
	// that user is in the like-set.
	GetLikes(ctx context.Context, outfitID, userID string) (*LikeResult, error)
}
