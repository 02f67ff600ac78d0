package ports

import (
	"context"

	"github.com/outfitshare/outfit-api/internal/core/domain"
)

// CreateCommentInput carries a new comment.
type CreateCommentInput struct {
	OutfitID string
	UserID   string
	Text     string
}

// CommentDetail is a comment with its author resolved. Author is nil when the
// account that wrote it has since been deleted.
type CommentDetail struct {
	Comment *domain.Comment
	Author  *UserSummary
}

// CommentService defines comment use cases.
type CommentService interface {
	Create(ctx context.Context, input CreateCommentInput) (*CommentDetail, error)
	ListByOutfit(ctx context.Context, outfitID string) ([]CommentDetail, error)
	Update(ctx context.Context, commentID, text string) (*CommentDetail, error)
	Delete(ctx context.Context, commentID string) error
}
