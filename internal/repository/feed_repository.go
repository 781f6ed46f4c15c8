package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
)

// FeedRepository stores one row per user holding the whole serialized
// snapshot array. There is intentionally no partial-entry update and no
// (user, freet) uniqueness: writers fetch the row, edit the slice in
// memory and Save the whole thing back, so concurrent writers race
// last-write-wins and duplicate entries are representable.
type FeedRepository interface {
	Create(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*model.Feed, error)
	Save(ctx context.Context, feed *model.Feed) error
	Delete(ctx context.Context, userID string) error
}

type feedRepository struct{ db *gorm.DB }

func NewFeedRepository(db *gorm.DB) FeedRepository { return &feedRepository{db: db} }

func (r *feedRepository) Create(ctx context.Context, userID string) error {
	f := &model.Feed{UserID: userID, Entries: []model.FeedEntry{}}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feedRepository) Get(ctx context.Context, userID string) (*model.Feed, error) {
	var f model.Feed
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&f).Error; err != nil {
		return nil, err
	}
	if f.Entries == nil {
		f.Entries = []model.FeedEntry{}
	}
	return &f, nil
}

func (r *feedRepository) Save(ctx context.Context, feed *model.Feed) error {
	return r.db.WithContext(ctx).Save(feed).Error
}

func (r *feedRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Feed{}).Error
}
