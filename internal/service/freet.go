package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
	"github.com/maoivy/fritter/pkg/logger"
)

// FreetService owns freet lifecycle and engagement. Every mutation entry
// point validates first, writes the freet row, and only then invokes the
// timeline hooks — the hook runs before the call returns, so the mutation
// is not complete from the caller's view until the feeds were touched.
type FreetService struct {
	freetRepo repository.FreetRepository
	userRepo  repository.UserRepository
	timeline  *TimelineService
	relevance *RelevanceService
}

func NewFreetService(freetRepo repository.FreetRepository, userRepo repository.UserRepository, timeline *TimelineService, relevance *RelevanceService) *FreetService {
	return &FreetService{freetRepo: freetRepo, userRepo: userRepo, timeline: timeline, relevance: relevance}
}

// ValidateCategories checks the category set: each 1-24 chars, no
// surrounding whitespace. Shared with the API layer's binding rules.
func ValidateCategories(categories []string) error {
	for _, c := range categories {
		if c == "" || len(c) > model.MaxCategoryLen || strings.TrimSpace(c) != c {
			return ErrBadCategory
		}
	}
	return nil
}

// validateContent applies the freet content rules. Content may be empty
// only for refreets.
func validateContent(content, readmore string, isRefreet bool) error {
	if content == "" && !isRefreet {
		return ErrEmptyContent
	}
	if len(content) > model.MaxContentLen {
		return ErrContentTooLong
	}
	if len(readmore) > model.MaxReadmoreLen {
		return ErrReadmoreTooLong
	}
	return nil
}

// Create publishes a new freet and fans it out. Validation happens before
// anything is written; the timeline is only reached with a stored row.
func (s *FreetService) Create(ctx context.Context, authorID, content, readmore string, categories []string) (*model.Freet, error) {
	if err := validateContent(content, readmore, false); err != nil {
		return nil, err
	}
	if err := ValidateCategories(categories); err != nil {
		return nil, err
	}
	return s.publish(ctx, &model.Freet{
		ID:         uuid.New().String(),
		AuthorID:   authorID,
		Content:    content,
		Readmore:   readmore,
		Categories: categories,
	})
}

// Refreet publishes a freet referencing another; content may be empty. The
// referenced freet must exist at publish time, and a user refreets a given
// freet at most once.
func (s *FreetService) Refreet(ctx context.Context, userID, freetID, content string) (*model.Freet, error) {
	if err := validateContent(content, "", true); err != nil {
		return nil, err
	}
	if _, err := s.findFreet(ctx, freetID); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Refreeted(freetID) {
		return nil, ErrAlreadyRefreeted
	}

	created, err := s.publish(ctx, &model.Freet{
		ID:        uuid.New().String(),
		AuthorID:  userID,
		Content:   content,
		RefreetOf: freetID,
	})
	if err != nil {
		return nil, err
	}
	user.Refreets = append(user.Refreets, freetID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("record refreet: %w", err)
	}
	return created, nil
}

// Reply publishes a freet answering another. Replies carry real content.
func (s *FreetService) Reply(ctx context.Context, userID, freetID, content, readmore string) (*model.Freet, error) {
	if err := validateContent(content, readmore, false); err != nil {
		return nil, err
	}
	if _, err := s.findFreet(ctx, freetID); err != nil {
		return nil, err
	}
	return s.publish(ctx, &model.Freet{
		ID:       uuid.New().String(),
		AuthorID: userID,
		Content:  content,
		Readmore: readmore,
		ReplyTo:  freetID,
	})
}

func (s *FreetService) publish(ctx context.Context, freet *model.Freet) (*model.Freet, error) {
	if freet.Categories == nil {
		freet.Categories = []string{}
	}
	if err := s.freetRepo.Create(ctx, freet); err != nil {
		return nil, fmt.Errorf("create freet: %w", err)
	}
	if err := s.timeline.FanoutCreate(ctx, freet); err != nil {
		return nil, err
	}
	for _, c := range freet.Categories {
		if err := s.relevance.Register(ctx, c, freet.ID); err != nil {
			logger.Warn("register relevance failed", zap.String("category", c), zap.Error(err))
		}
	}
	return freet, nil
}

// withoutID filters one freet ID out of a set, keeping order.
func withoutID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}

// Delete removes the freet, retracts its fan-out copies and clears it
// from every liker's and refreeter's user set. A missing freet returns
// ErrFreetNotFound and performs no feed mutation.
func (s *FreetService) Delete(ctx context.Context, userID, freetID string) error {
	freet, err := s.findFreet(ctx, freetID)
	if err != nil {
		return err
	}
	if freet.AuthorID != userID {
		return ErrNotAuthor
	}

	found, err := s.freetRepo.Delete(ctx, freetID)
	if err != nil {
		return fmt.Errorf("delete freet: %w", err)
	}
	if !found {
		return ErrFreetNotFound
	}

	if err := s.timeline.RetractDelete(ctx, freet); err != nil {
		return err
	}
	for _, c := range freet.Categories {
		if err := s.relevance.Remove(ctx, c, freet.ID); err != nil {
			logger.Warn("remove relevance failed", zap.String("category", c), zap.Error(err))
		}
	}

	// prune dangling references from like/refreet sets, best-effort like
	// the fan-out retraction above
	engaged, err := s.userRepo.FindEngaged(ctx, freetID)
	if err != nil {
		logger.Warn("list engaged users failed", zap.String("freet", freetID), zap.Error(err))
		return nil
	}
	for _, u := range engaged {
		u.Likes = withoutID(u.Likes, freetID)
		u.Refreets = withoutID(u.Refreets, freetID)
		if err := s.userRepo.Save(ctx, u); err != nil {
			logger.Warn("prune engagement failed",
				zap.String("user", u.ID),
				zap.String("freet", freetID),
				zap.Error(err))
		}
	}
	return nil
}

// Like bumps the counter and records the freet in the user's like set; the
// two writes share one call path so the set and the counter move together.
func (s *FreetService) Like(ctx context.Context, userID, freetID string) error {
	freet, err := s.findFreet(ctx, freetID)
	if err != nil {
		return err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Liked(freetID) {
		return ErrAlreadyLiked
	}

	user.Likes = append(user.Likes, freetID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("record like: %w", err)
	}
	return s.freetRepo.UpdateFields(ctx, freetID, map[string]any{"likes": freet.Likes + 1})
}

func (s *FreetService) Unlike(ctx context.Context, userID, freetID string) error {
	freet, err := s.findFreet(ctx, freetID)
	if err != nil {
		return err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Liked(freetID) {
		return ErrNotLiked
	}

	user.Likes = withoutID(user.Likes, freetID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("record unlike: %w", err)
	}
	likes := freet.Likes - 1
	if likes < 0 {
		likes = 0
	}
	return s.freetRepo.UpdateFields(ctx, freetID, map[string]any{"likes": likes})
}

// UpdateCategories replaces the freet's category set and keeps the
// relevance store's membership in step.
func (s *FreetService) UpdateCategories(ctx context.Context, userID, freetID string, categories []string) error {
	if err := ValidateCategories(categories); err != nil {
		return err
	}
	freet, err := s.findFreet(ctx, freetID)
	if err != nil {
		return err
	}
	if freet.AuthorID != userID {
		return ErrNotAuthor
	}
	if categories == nil {
		categories = []string{}
	}

	prev := freet.Categories
	freet.Categories = categories
	if err := s.freetRepo.Save(ctx, freet); err != nil {
		return fmt.Errorf("update categories: %w", err)
	}

	next := make(map[string]bool, len(categories))
	for _, c := range categories {
		next[c] = true
	}
	was := make(map[string]bool, len(prev))
	for _, c := range prev {
		was[c] = true
		if !next[c] {
			if err := s.relevance.Remove(ctx, c, freetID); err != nil {
				logger.Warn("remove relevance failed", zap.String("category", c), zap.Error(err))
			}
		}
	}
	for _, c := range categories {
		if !was[c] {
			if err := s.relevance.Register(ctx, c, freetID); err != nil {
				logger.Warn("register relevance failed", zap.String("category", c), zap.Error(err))
			}
		}
	}
	return nil
}

func (s *FreetService) GetByID(ctx context.Context, freetID string) (*model.Freet, error) {
	return s.findFreet(ctx, freetID)
}

func (s *FreetService) ListAll(ctx context.Context, offset, limit int) ([]*model.Freet, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.freetRepo.FindAll(ctx, offset, limit)
}

func (s *FreetService) ListByAuthor(ctx context.Context, authorID string) ([]*model.Freet, error) {
	return s.freetRepo.FindAllByAuthor(ctx, authorID)
}

func (s *FreetService) ListByCategory(ctx context.Context, category string, offset, limit int) ([]*model.Freet, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.freetRepo.FindByCategory(ctx, category, offset, limit)
}

func (s *FreetService) findFreet(ctx context.Context, id string) (*model.Freet, error) {
	f, err := s.freetRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFreetNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *FreetService) findUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
