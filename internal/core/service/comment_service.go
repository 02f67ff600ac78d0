package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

// undefinedID is what browser clients send when an outfit id was never set.
const undefinedID = "undefined"

var _ ports.CommentService = (*CommentService)(nil)

type CommentService struct {
	comments ports.CommentRepository
	outfits  ports.OutfitRepository
	users    ports.UserRepository
	tx       ports.Transactor
	log      zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	outfits ports.OutfitRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{comments: comments, outfits: outfits, users: users, tx: tx, log: log}
}

// Create stores the comment and appends its id to the outfit's comment list
// in the same unit of work.
func (s *CommentService) Create(ctx context.Context, in ports.CreateCommentInput) (*ports.CommentDetail, error) {
	if in.OutfitID == "" || in.UserID == "" || in.Text == "" {
		return nil, domain.ErrMissingFields
	}

	var created *domain.Comment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.outfits.FindByID(ctx, in.OutfitID); err != nil {
			return err
		}

		now := time.Now().UTC()
		c, err := s.comments.Create(ctx, &domain.Comment{
			OutfitID:  in.OutfitID,
			UserID:    in.UserID,
			Text:      in.Text,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		if err := s.outfits.PushComment(ctx, in.OutfitID, c.ID); err != nil {
			s.log.Warn().Err(err).
				Str("comment_id", c.ID).
				Str("outfit_id", in.OutfitID).
				Msg("comment stored but not linked to outfit")
			return fmt.Errorf("link comment: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().Str("comment_id", created.ID).Str("outfit_id", in.OutfitID).Msg("comment created")
	return s.detail(ctx, created)
}

// ListByOutfit returns the outfit's comments, newest first.
func (s *CommentService) ListByOutfit(ctx context.Context, outfitID string) ([]ports.CommentDetail, error) {
	if outfitID == "" || outfitID == undefinedID {
		return nil, domain.ErrInvalidID
	}

	comments, err := s.comments.ListByOutfit(ctx, outfitID, ports.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	authors := make([]string, 0, len(comments))
	for _, c := range comments {
		authors = append(authors, c.UserID)
	}
	resolved, err := resolveUsers(ctx, s.users, authors)
	if err != nil {
		return nil, fmt.Errorf("list comments: resolve authors: %w", err)
	}

	out := make([]ports.CommentDetail, 0, len(comments))
	for _, c := range comments {
		out = append(out, ports.CommentDetail{Comment: c, Author: summaryOf(resolved, c.UserID)})
	}
	return out, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, text string) (*ports.CommentDetail, error) {
	if commentID == "" {
		return nil, domain.ErrInvalidID
	}
	if text == "" {
		return nil, domain.ErrMissingFields
	}

	updated, err := s.comments.Update(ctx, commentID, domain.CommentPatch{Text: &text})
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return s.detail(ctx, updated)
}

// Delete removes the comment and prunes its id from the owning outfit. An
// outfit that is already gone is not an error.
func (s *CommentService) Delete(ctx context.Context, commentID string) error {
	if commentID == "" {
		return domain.ErrInvalidID
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		removed, err := s.comments.Delete(ctx, commentID)
		if err != nil {
			return err
		}
		if err := s.outfits.PullComment(ctx, removed.OutfitID, removed.ID); err != nil && !errors.Is(err, domain.ErrOutfitNotFound) {
			return fmt.Errorf("unlink comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info().Str("comment_id", commentID).Msg("comment deleted")
	return nil
}

func (s *CommentService) detail(ctx context.Context, c *domain.Comment) (*ports.CommentDetail, error) {
	resolved, err := resolveUsers(ctx, s.users, []string{c.UserID})
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	return &ports.CommentDetail{Comment: c, Author: summaryOf(resolved, c.UserID)}, nil
}
