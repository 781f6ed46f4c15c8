package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
	"github.com/maoivy/fritter/pkg/logger"
)

// TimelineService keeps every affected user's materialized feed in sync
// with freet creation, freet deletion, follow, unfollow and account
// deletion, and also exposes the fan-in query path that reads freets
// straight from their table.
//
// Feed writes are whole-row fetch-modify-save with no lock held in
// between: concurrent writers to the same feed race last-write-wins.
// Fan-out across followers is best-effort, not atomic — a failure midway
// leaves the already-updated feeds updated, with no compensating rollback.
type TimelineService struct {
	feedRepo  repository.FeedRepository
	fanRepo   repository.FanRepository
	freetRepo repository.FreetRepository
	// fanPageSize bounds each page of the follower scan during fan-out.
	fanPageSize int
}

func NewTimelineService(feedRepo repository.FeedRepository, fanRepo repository.FanRepository, freetRepo repository.FreetRepository) *TimelineService {
	return &TimelineService{
		feedRepo:    feedRepo,
		fanRepo:     fanRepo,
		freetRepo:   freetRepo,
		fanPageSize: 500,
	}
}

// FanoutCreate appends the new freet's snapshot to the author's feed and to
// the feed of every current follower. The author's feed must already exist
// (created at registration); a missing row there is a broken lifecycle
// precondition and fails the whole operation with ErrFeedNotFound. Follower
// feeds are best-effort: an error on one follower is logged and the loop
// continues.
func (s *TimelineService) FanoutCreate(ctx context.Context, freet *model.Freet) error {
	entry := model.Snapshot(freet)

	if err := s.appendToFeed(ctx, freet.AuthorID, entry); err != nil {
		if errors.Is(err, ErrFeedNotFound) {
			return fmt.Errorf("author %s: %w", freet.AuthorID, ErrFeedNotFound)
		}
		return fmt.Errorf("fan out to author: %w", err)
	}

	s.forEachFan(ctx, freet.AuthorID, func(fanID string) {
		if err := s.appendToFeed(ctx, fanID, entry); err != nil {
			logger.Warn("fanout append failed",
				zap.String("freet", freet.ID),
				zap.String("follower", fanID),
				zap.Error(err))
		}
	})
	return nil
}

// RetractDelete removes every feed entry matching the deleted freet's ID
// from the author's feed and all followers' feeds. Removal is by identifier
// equality; the relative order of surviving entries is untouched.
func (s *TimelineService) RetractDelete(ctx context.Context, freet *model.Freet) error {
	match := func(e model.FeedEntry) bool { return e.FreetID == freet.ID }

	if err := s.removeFromFeed(ctx, freet.AuthorID, match); err != nil {
		return fmt.Errorf("retract from author: %w", err)
	}

	s.forEachFan(ctx, freet.AuthorID, func(fanID string) {
		if err := s.removeFromFeed(ctx, fanID, match); err != nil {
			logger.Warn("retract failed",
				zap.String("freet", freet.ID),
				zap.String("follower", fanID),
				zap.Error(err))
		}
	})
	return nil
}

// OnFollow appends every existing freet of the newly followed author to the
// follower's feed, preserving the follower's prior entries. No dedup check
// is made against entries already present: a follow→unfollow→re-follow
// cycle duplicates the author's historical freets. That is the recorded
// behavior of this system, kept on purpose until product says otherwise.
func (s *TimelineService) OnFollow(ctx context.Context, followerID, followedID string) error {
	freets, err := s.freetRepo.FindAllByAuthor(ctx, followedID)
	if err != nil {
		return fmt.Errorf("list followed author freets: %w", err)
	}
	if len(freets) == 0 {
		return nil
	}
	entries := make([]model.FeedEntry, len(freets))
	for i, f := range freets {
		entries[i] = model.Snapshot(f)
	}
	return s.appendToFeed(ctx, followerID, entries...)
}

// OnUnfollow drops every entry authored by the unfollowed user from the
// follower's feed, leaving all other entries in their relative order.
func (s *TimelineService) OnUnfollow(ctx context.Context, followerID, followedID string) error {
	return s.removeFromFeed(ctx, followerID, func(e model.FeedEntry) bool {
		return e.AuthorID == followedID
	})
}

// OnAccountDeleted drops the user's own feed row. It runs after all of the
// account's freets were deleted (each deletion retracting its fan-out
// copies), so no dangling targets remain.
func (s *TimelineService) OnAccountDeleted(ctx context.Context, userID string) error {
	return s.feedRepo.Delete(ctx, userID)
}

// Materialized is the O(1) read path and the authoritative source for the
// personalized timeline endpoint. Entries come back in append order.
func (s *TimelineService) Materialized(ctx context.Context, userID string) ([]model.FeedEntry, error) {
	feed, err := s.feedRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedNotFound
		}
		return nil, err
	}
	return feed.Entries, nil
}

// QueryTimeline is the fan-in read path: always consistent, one indexed
// query over the freets of the user and everyone they follow, newest
// first. It is not required to agree with Materialized at every instant.
func (s *TimelineService) QueryTimeline(ctx context.Context, userID string, offset, limit int) ([]*model.Freet, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.freetRepo.FindTimeline(ctx, userID, offset, limit)
}

// forEachFan pages through the author's follower set, invoking fn per
// follower. Page errors end the scan early; what was visited stays done.
func (s *TimelineService) forEachFan(ctx context.Context, authorID string, fn func(fanID string)) {
	offset := 0
	for {
		fans, err := s.fanRepo.ListFans(ctx, authorID, offset, s.fanPageSize)
		if err != nil {
			logger.Warn("list fans failed", zap.String("author", authorID), zap.Error(err))
			return
		}
		for _, f := range fans {
			fn(f.FanID)
		}
		if len(fans) < s.fanPageSize {
			return
		}
		offset += s.fanPageSize
	}
}

func (s *TimelineService) appendToFeed(ctx context.Context, userID string, entries ...model.FeedEntry) error {
	feed, err := s.feedRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedNotFound
		}
		return err
	}
	feed.Entries = append(feed.Entries, entries...)
	return s.feedRepo.Save(ctx, feed)
}

func (s *TimelineService) removeFromFeed(ctx context.Context, userID string, match func(model.FeedEntry) bool) error {
	feed, err := s.feedRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedNotFound
		}
		return err
	}
	kept := feed.Entries[:0]
	for _, e := range feed.Entries {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	feed.Entries = kept
	return s.feedRepo.Save(ctx, feed)
}
