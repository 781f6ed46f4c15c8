package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *model.Collection) error
	FindByID(ctx context.Context, id string) (*model.Collection, error)
	FindByUserAndName(ctx context.Context, userID, name string) (*model.Collection, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Collection, error)
	Save(ctx context.Context, collection *model.Collection) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAllFor(ctx context.Context, userID string) error
}

type collectionRepository struct{ db *gorm.DB }

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *collectionRepository) FindByID(ctx context.Context, id string) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepository) FindByUserAndName(ctx context.Context, userID, name string) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepository) ListByUser(ctx context.Context, userID string) ([]*model.Collection, error) {
	var res []*model.Collection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&res).Error
	return res, err
}

func (r *collectionRepository) Save(ctx context.Context, collection *model.Collection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

func (r *collectionRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Collection{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *collectionRepository) DeleteAllFor(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Collection{}).Error
}
