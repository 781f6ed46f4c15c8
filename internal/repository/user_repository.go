package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindEngaged returns every user whose like or refreet set references
	// the freet, for pruning when it is deleted.
	FindEngaged(ctx context.Context, freetID string) ([]*model.User, error)
	// Save replaces the whole row, fetch-modify-save style. Partial profile
	// edits go through UpdateFields instead.
	Save(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindEngaged matches against the serialized like/refreet columns, the
// same LIKE-on-JSON-text idiom as the category lookup on freets.
func (r *userRepository) FindEngaged(ctx context.Context, freetID string) ([]*model.User, error) {
	var res []*model.User
	pattern := fmt.Sprintf(`%%"%s"%%`, freetID)
	err := r.db.WithContext(ctx).
		Where("likes LIKE ? OR refreets LIKE ?", pattern, pattern).
		Find(&res).Error
	return res, err
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}
