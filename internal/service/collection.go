package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
)

// CollectionService owns named saved-freet lists. Collections hold plain
// freet-id references in save order; they carry no invariant against the
// feed and tolerate references to since-deleted freets.
type CollectionService struct {
	collectionRepo repository.CollectionRepository
	freetRepo      repository.FreetRepository
}

func NewCollectionService(collectionRepo repository.CollectionRepository, freetRepo repository.FreetRepository) *CollectionService {
	return &CollectionService{collectionRepo: collectionRepo, freetRepo: freetRepo}
}

func (s *CollectionService) Create(ctx context.Context, userID, name string) (*model.Collection, error) {
	if name == "" || len(name) > 64 {
		return nil, ErrBadName
	}
	if _, err := s.collectionRepo.FindByUserAndName(ctx, userID, name); err == nil {
		return nil, ErrCollectionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Collection{
		ID:       uuid.New().String(),
		UserID:   userID,
		Name:     name,
		FreetIDs: []string{},
	}
	if err := s.collectionRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CollectionService) Delete(ctx context.Context, userID, collectionID string) error {
	c, err := s.find(ctx, collectionID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return ErrNotAuthor
	}
	found, err := s.collectionRepo.Delete(ctx, collectionID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCollectionNotFound
	}
	return nil
}

// Save appends the freet reference; saving an already-saved freet is a
// no-op rather than a duplicate.
func (s *CollectionService) Save(ctx context.Context, userID, collectionID, freetID string) error {
	c, err := s.find(ctx, collectionID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return ErrNotAuthor
	}
	if _, err := s.freetRepo.FindByID(ctx, freetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFreetNotFound
		}
		return err
	}
	if c.Contains(freetID) {
		return nil
	}
	c.FreetIDs = append(c.FreetIDs, freetID)
	return s.collectionRepo.Save(ctx, c)
}

func (s *CollectionService) Unsave(ctx context.Context, userID, collectionID, freetID string) error {
	c, err := s.find(ctx, collectionID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return ErrNotAuthor
	}
	kept := c.FreetIDs[:0]
	for _, id := range c.FreetIDs {
		if id != freetID {
			kept = append(kept, id)
		}
	}
	c.FreetIDs = kept
	return s.collectionRepo.Save(ctx, c)
}

func (s *CollectionService) Get(ctx context.Context, collectionID string) (*model.Collection, error) {
	return s.find(ctx, collectionID)
}

func (s *CollectionService) ListByUser(ctx context.Context, userID string) ([]*model.Collection, error) {
	return s.collectionRepo.ListByUser(ctx, userID)
}

func (s *CollectionService) find(ctx context.Context, id string) (*model.Collection, error) {
	c, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return c, nil
}
