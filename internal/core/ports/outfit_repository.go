package ports

import (
	"context"

	"github.com/outfitshare/outfit-api/internal/core/domain"
)

// OutfitFilter narrows List. An empty OwnerID lists every outfit.
type OutfitFilter struct {
	OwnerID string
}

// OutfitRepository defines persistence operations for outfits. The like-set
// and comment-reference list are only ever mutated through the atomic
// operations below, never by read-modify-write.
type OutfitRepository interface {
	Create(ctx context.Context, outfit *domain.Outfit) (*domain.Outfit, error)
	FindByID(ctx context.Context, id string) (*domain.Outfit, error)
	// List returns matching outfits ordered by creation time, newest first.
	List(ctx context.Context, filter OutfitFilter) ([]*domain.Outfit, error)
	Update(ctx context.Context, id string, patch domain.OutfitPatch) (*domain.Outfit, error)
	// DeleteMany removes the given outfits and returns how many existed.
	DeleteMany(ctx context.Context, ids []string) (int64, error)

	// ToggleLike adds userID to the like-set when absent and removes it when
	// present, as one atomic document update. It returns the outfit after
	// the change.
	ToggleLike(ctx context.Context, outfitID, userID string) (*domain.Outfit, error)
	// PullLikes removes every listed user from every like-set and reports how
	// many outfits changed.
	PullLikes(ctx context.Context, userIDs []string) (int64, error)

	PushComment(ctx context.Context, outfitID, commentID string) error
	PullComment(ctx context.Context, outfitID, commentID string) error
	// SetComments replaces the whole comment-reference list.
	SetComments(ctx context.Context, outfitID string, commentIDs []string) error
}
