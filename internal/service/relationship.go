package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/repository"
	"github.com/maoivy/fritter/pkg/logger"
)

// RelationshipService is the single entry point for follow-graph mutation.
// Each call writes both directions of the edge — the Follow row and its
// redundant Fan back-reference — and then lets the timeline react, so the
// two sides can never be updated through independent setters.
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error)
	ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]string, error)
}

type relationshipService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	fanRepo    repository.FanRepository
	timeline   *TimelineService
}

func NewRelationshipService(userRepo repository.UserRepository, followRepo repository.FollowRepository, fanRepo repository.FanRepository, timeline *TimelineService) RelationshipService {
	return &relationshipService{userRepo: userRepo, followRepo: followRepo, fanRepo: fanRepo, timeline: timeline}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrFollowSelf
	}
	if _, err := s.userRepo.FindByID(ctx, followedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	exists, err := s.followRepo.Exists(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowing
	}

	if err := s.followRepo.Create(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("create follow edge: %w", err)
	}
	if err := s.fanRepo.Create(ctx, followedID, followerID); err != nil {
		return fmt.Errorf("create fan edge: %w", err)
	}
	if err := s.timeline.OnFollow(ctx, followerID, followedID); err != nil {
		// Edges are committed; the feed catch-up is best-effort like every
		// other feed write. Report, do not unwind.
		logger.Warn("feed backfill after follow failed",
			zap.String("follower", followerID),
			zap.String("followed", followedID),
			zap.Error(err))
	}
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followedID string) error {
	exists, err := s.followRepo.Exists(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFollowing
	}

	if err := s.followRepo.Delete(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("delete follow edge: %w", err)
	}
	if err := s.fanRepo.Delete(ctx, followedID, followerID); err != nil {
		return fmt.Errorf("delete fan edge: %w", err)
	}
	if err := s.timeline.OnUnfollow(ctx, followerID, followedID); err != nil {
		logger.Warn("feed prune after unfollow failed",
			zap.String("follower", followerID),
			zap.String("followed", followedID),
			zap.Error(err))
	}
	return nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	offset, limit := pageBounds(page, pageSize)
	items, err := s.followRepo.ListFollowings(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(items))
	for i, it := range items {
		res[i] = it.FolloweeID
	}
	return res, nil
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
	offset, limit := pageBounds(page, pageSize)
	items, err := s.fanRepo.ListFans(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(items))
	for i, it := range items {
		res[i] = it.FanID
	}
	return res, nil
}

func pageBounds(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return (page - 1) * pageSize, pageSize
}
