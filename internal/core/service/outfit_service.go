package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

var _ ports.OutfitService = (*OutfitService)(nil)

type OutfitService struct {
	outfits  ports.OutfitRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	tx       ports.Transactor
	log      zerolog.Logger
}

func NewOutfitService(
	outfits ports.OutfitRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	log zerolog.Logger,
) *OutfitService {
	return &OutfitService{outfits: outfits, comments: comments, users: users, tx: tx, log: log}
}

func (s *OutfitService) Create(ctx context.Context, in ports.CreateOutfitInput) (*domain.Outfit, error) {
	if in.Name == "" || in.Description == "" || in.Image == "" || in.UserID == "" {
		return nil, domain.ErrMissingFields
	}

	now := time.Now().UTC()
	created, err := s.outfits.Create(ctx, &domain.Outfit{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Likes:       []string{},
		Comments:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create outfit")
		return nil, fmt.Errorf("create outfit: %w", err)
	}

	s.log.Info().Str("outfit_id", created.ID).Str("user_id", in.UserID).Msg("outfit created")
	return created, nil
}

// ListAll returns every outfit, newest first, with the owner and the likers
// resolved. Likers whose account is gone are left out.
func (s *OutfitService) ListAll(ctx context.Context) ([]ports.OutfitDetail, error) {
	outfits, err := s.outfits.List(ctx, ports.OutfitFilter{})
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}

	var refs []string
	for _, o := range outfits {
		refs = append(refs, o.UserID)
		refs = append(refs, o.Likes...)
	}
	resolved, err := resolveUsers(ctx, s.users, refs)
	if err != nil {
		return nil, fmt.Errorf("list outfits: resolve users: %w", err)
	}

	details := make([]ports.OutfitDetail, 0, len(outfits))
	for _, o := range outfits {
		likers := make([]ports.UserSummary, 0, len(o.Likes))
		for _, id := range o.Likes {
			if u, ok := resolved[id]; ok {
				likers = append(likers, u)
			}
		}
		details = append(details, ports.OutfitDetail{
			Outfit: o,
			Owner:  summaryOf(resolved, o.UserID),
			Likers: likers,
		})
	}
	return details, nil
}

func (s *OutfitService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Outfit, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingFields
	}
	outfits, err := s.outfits.List(ctx, ports.OutfitFilter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("list outfits by owner: %w", err)
	}
	return outfits, nil
}

// Update replaces name, description and image; all three are required.
func (s *OutfitService) Update(ctx context.Context, outfitID string, in ports.UpdateOutfitInput) (*domain.Outfit, error) {
	if outfitID == "" || in.Name == "" || in.Description == "" || in.Image == "" {
		return nil, domain.ErrMissingFields
	}

	updated, err := s.outfits.Update(ctx, outfitID, domain.OutfitPatch{
		Name:        &in.Name,
		Description: &in.Description,
		Image:       &in.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("update outfit: %w", err)
	}
	return updated, nil
}

// DeleteMany removes the outfits and the comments posted on them. Ids that
// match nothing are ignored; it is an error only when none matched.
func (s *OutfitService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrMissingFields
	}
	for _, id := range ids {
		if id == "" {
			return 0, domain.ErrInvalidID
		}
	}

	var deleted, commentsDeleted int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.outfits.DeleteMany(ctx, ids)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domain.ErrNothingDeleted
		}
		commentsDeleted, err = s.comments.DeleteByOutfits(ctx, ids)
		if err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete outfits: %w", err)
	}

	s.log.Info().
		Int64("outfits_deleted", deleted).
		Int64("comments_deleted", commentsDeleted).
		Msg("outfits deleted")
	return deleted, nil
}

// ToggleLike flips userID's membership in the like-set. Repeated calls
// alternate between liked and unliked.
func (s *OutfitService) ToggleLike(ctx context.Context, outfitID, userID string) (*ports.LikeResult, error) {
	if outfitID == "" || userID == "" {
		return nil, domain.ErrMissingFields
	}

	outfit, err := s.outfits.ToggleLike(ctx, outfitID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	res := &ports.LikeResult{Liked: outfit.LikedBy(userID), LikeCount: outfit.LikeCount()}
	s.log.Debug().
		Str("outfit_id", outfitID).
		Str("user_id", userID).
		Bool("liked", res.Liked).
		Int("like_count", res.LikeCount).
		Msg("like toggled")
	return res, nil
}

func (s *OutfitService) GetLikes(ctx context.Context, outfitID, userID string) (*ports.LikeResult, error) {
	if outfitID == "" {
		return nil, domain.ErrMissingFields
	}

	outfit, err := s.outfits.FindByID(ctx, outfitID)
	if err != nil {
		return nil, fmt.Errorf("get likes: %w", err)
	}
	return &ports.LikeResult{Liked: outfit.LikedBy(userID), LikeCount: outfit.LikeCount()}, nil
}
