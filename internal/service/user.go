package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
	"github.com/maoivy/fritter/pkg/logger"
)

// UserService owns account lifecycle. Registration creates the user's feed
// row in the same flow — the fan-out machinery treats a missing feed as a
// broken precondition, so the row must exist from the first moment anyone
// can follow or be followed.
type UserService struct {
	userRepo       repository.UserRepository
	followRepo     repository.FollowRepository
	fanRepo        repository.FanRepository
	feedRepo       repository.FeedRepository
	collectionRepo repository.CollectionRepository
	freets         *FreetService
	timeline       *TimelineService
	tokens         *TokenIssuer
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	fanRepo repository.FanRepository,
	feedRepo repository.FeedRepository,
	collectionRepo repository.CollectionRepository,
	freets *FreetService,
	timeline *TimelineService,
	tokens *TokenIssuer,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		followRepo:     followRepo,
		fanRepo:        fanRepo,
		feedRepo:       feedRepo,
		collectionRepo: collectionRepo,
		freets:         freets,
		timeline:       timeline,
		tokens:         tokens,
	}
}

// Register creates the account and its empty feed row.
func (s *UserService) Register(ctx context.Context, username, password, bio string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Password: string(hash),
		Bio:      bio,
		Likes:    []string{},
		Refreets: []string{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := s.feedRepo.Create(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("create feed: %w", err)
	}
	return user, nil
}

// Authenticate verifies the password and issues a session token.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// ParseToken resolves a session token to its user ID.
func (s *UserService) ParseToken(token string) (string, error) {
	return s.tokens.Parse(token)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ProfileUpdate carries the optional profile fields; nil means untouched.
type ProfileUpdate struct {
	Username *string
	Password *string
	Bio      *string
}

// UpdateProfile merges only the provided fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.User, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.Username != nil {
		if *update.Username == "" {
			return nil, ErrInvalidCredentials
		}
		if other, err := s.userRepo.FindByUsername(ctx, *update.Username); err == nil && other.ID != userID {
			return nil, ErrUsernameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		fields["username"] = *update.Username
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = string(hash)
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, userID)
}

// DeleteAccount cascades in a fixed order: every authored freet first
// (each deletion retracting its fan-out copies from follower feeds), then
// the relationship edges both directions, then the user's collections,
// then the feed row itself, and finally the user row. Freets before feed,
// so no retraction ever targets a feed that is already gone.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}

	authored, err := s.freets.ListByAuthor(ctx, userID)
	if err != nil {
		return fmt.Errorf("list authored freets: %w", err)
	}
	for _, f := range authored {
		if err := s.freets.Delete(ctx, userID, f.ID); err != nil && !errors.Is(err, ErrFreetNotFound) {
			logger.Warn("cascade freet delete failed",
				zap.String("user", userID),
				zap.String("freet", f.ID),
				zap.Error(err))
		}
	}

	if err := s.followRepo.DeleteAllFor(ctx, userID); err != nil {
		return fmt.Errorf("delete follow edges: %w", err)
	}
	if err := s.fanRepo.DeleteAllFor(ctx, userID); err != nil {
		return fmt.Errorf("delete fan edges: %w", err)
	}
	if err := s.collectionRepo.DeleteAllFor(ctx, userID); err != nil {
		return fmt.Errorf("delete collections: %w", err)
	}
	if err := s.timeline.OnAccountDeleted(ctx, userID); err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	return s.userRepo.Delete(ctx, userID)
}
