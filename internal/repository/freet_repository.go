package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
)

type FreetRepository interface {
	Create(ctx context.Context, freet *model.Freet) error
	FindByID(ctx context.Context, id string) (*model.Freet, error)
	FindAllByAuthor(ctx context.Context, authorID string) ([]*model.Freet, error)
	// FindAll is the public "browse everything" query, newest first.
	FindAll(ctx context.Context, offset, limit int) ([]*model.Freet, error)
	FindByCategory(ctx context.Context, category string, offset, limit int) ([]*model.Freet, error)
	// FindTimeline is the fan-in read path: the user's own freets plus
	// those of every author the user currently follows, newest first.
	FindTimeline(ctx context.Context, userID string, offset, limit int) ([]*model.Freet, error)
	// Save writes the whole row back.
	Save(ctx context.Context, freet *model.Freet) error
	// UpdateFields merges only the provided columns, leaving others alone.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type freetRepository struct{ db *gorm.DB }

func NewFreetRepository(db *gorm.DB) FreetRepository { return &freetRepository{db: db} }

func (r *freetRepository) Create(ctx context.Context, freet *model.Freet) error {
	return r.db.WithContext(ctx).Create(freet).Error
}

func (r *freetRepository) FindByID(ctx context.Context, id string) (*model.Freet, error) {
	var f model.Freet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *freetRepository) FindAllByAuthor(ctx context.Context, authorID string) ([]*model.Freet, error) {
	var res []*model.Freet
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at").
		Find(&res).Error
	return res, err
}

func (r *freetRepository) FindAll(ctx context.Context, offset, limit int) ([]*model.Freet, error) {
	var res []*model.Freet
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

// FindByCategory matches against the serialized categories column. A LIKE
// on the JSON text is enough at this scale; the relevance store owns the
// ranked per-category view.
func (r *freetRepository) FindByCategory(ctx context.Context, category string, offset, limit int) ([]*model.Freet, error) {
	var res []*model.Freet
	pattern := fmt.Sprintf(`%%"%s"%%`, category)
	err := r.db.WithContext(ctx).
		Where("categories LIKE ?", pattern).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *freetRepository) FindTimeline(ctx context.Context, userID string, offset, limit int) ([]*model.Freet, error) {
	var res []*model.Freet
	followed := r.db.Model(&model.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("author_id = ? OR author_id IN (?)", userID, followed).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *freetRepository) Save(ctx context.Context, freet *model.Freet) error {
	return r.db.WithContext(ctx).Save(freet).Error
}

func (r *freetRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Freet{}).Where("id = ?", id).Updates(fields).Error
}

func (r *freetRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Freet{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
