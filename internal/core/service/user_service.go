package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

// DefaultBcryptCost is used when the configured cost is outside bcrypt's range.
const DefaultBcryptCost = 10

var _ ports.UserService = (*UserService)(nil)

// UserService implements registration, login and account management.
type UserService struct {
	users    ports.UserRepository
	outfits  ports.OutfitRepository
	comments ports.CommentRepository
	tx       ports.Transactor
	cost     int
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	outfits ports.OutfitRepository,
	comments ports.CommentRepository,
	tx ports.Transactor,
	bcryptCost int,
	log zerolog.Logger,
) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &UserService{
		users:    users,
		outfits:  outfits,
		comments: comments,
		tx:       tx,
		cost:     bcryptCost,
		log:      log,
	}
}

func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Authenticate checks the password against the stored hash. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Rename changes the username. Renaming a user to the name they already hold
// succeeds without conflict.
func (s *UserService) Rename(ctx context.Context, userID, username string) (*domain.User, error) {
	if userID == "" || username == "" {
		return nil, domain.ErrMissingFields
	}

	holder, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil && !domain.SameID(holder.ID, userID):
		return nil, domain.ErrUsernameTaken
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("rename user: %w", err)
	}

	updated, err := s.users.Update(ctx, userID, domain.UserPatch{Username: &username})
	if err != nil {
		return nil, fmt.Errorf("rename user: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("username", username).Msg("username updated")
	return updated, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrMissingFields
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Delete removes the user's outfits and their comments, pulls the user out of
// every like-set and finally removes the account. Comments the user left on
// other people's outfits are kept.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrMissingFields
	}

	var removed int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			return err
		}

		owned, err := s.outfits.List(ctx, ports.OutfitFilter{OwnerID: userID})
		if err != nil {
			return fmt.Errorf("list owned outfits: %w", err)
		}
		if len(owned) > 0 {
			ids := outfitIDs(owned)
			if removed, err = s.outfits.DeleteMany(ctx, ids); err != nil {
				return fmt.Errorf("delete owned outfits: %w", err)
			}
			if _, err := s.comments.DeleteByOutfits(ctx, ids); err != nil {
				return fmt.Errorf("delete comments of owned outfits: %w", err)
			}
		}

		if _, err := s.outfits.PullLikes(ctx, []string{userID}); err != nil {
			return fmt.Errorf("pull likes: %w", err)
		}
		return s.users.Delete(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("user_id", userID).Int64("outfits_deleted", removed).Msg("user deleted")
	return nil
}

func outfitIDs(outfits []*domain.Outfit) []string {
	ids := make([]string, 0, len(outfits))
	for _, o := range outfits {
		ids = append(ids, o.ID)
	}
	return ids
}
