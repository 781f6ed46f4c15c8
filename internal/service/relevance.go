package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
)

// RelevanceService keeps one sorted set per category scoring the freets
// filed under it. Scores start at zero on registration and grow with
// upvotes; the ranked view is read straight from redis and hydrated from
// the freet store.
type RelevanceService struct {
	rdb       *redis.Client
	freetRepo repository.FreetRepository
}

func NewRelevanceService(rdb *redis.Client, freetRepo repository.FreetRepository) *RelevanceService {
	return &RelevanceService{rdb: rdb, freetRepo: freetRepo}
}

func relevanceKey(category string) string {
	return fmt.Sprintf("relevance:%s", category)
}

// Register files the freet under the category at score 0, keeping any
// score it already earned.
func (s *RelevanceService) Register(ctx context.Context, category, freetID string) error {
	return s.rdb.ZAddNX(ctx, relevanceKey(category), redis.Z{Score: 0, Member: freetID}).Err()
}

// Upvote bumps the freet's relevance within the category by one.
func (s *RelevanceService) Upvote(ctx context.Context, category, freetID string) (float64, error) {
	freet, err := s.freetRepo.FindByID(ctx, freetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrFreetNotFound
		}
		return 0, err
	}
	if !freet.HasCategory(category) {
		return 0, ErrBadCategory
	}
	return s.rdb.ZIncrBy(ctx, relevanceKey(category), 1, freetID).Result()
}

// Score returns the freet's current relevance within the category, zero if
// it was never filed there.
func (s *RelevanceService) Score(ctx context.Context, category, freetID string) (float64, error) {
	score, err := s.rdb.ZScore(ctx, relevanceKey(category), freetID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return score, err
}

// ScoredFreet pairs a freet with its relevance score in one category.
type ScoredFreet struct {
	Freet *model.Freet `json:"freet"`
	Score float64      `json:"score"`
}

// Top returns the n most relevant freets of the category, highest score
// first, hydrated from the freet store. Members whose freet has since been
// deleted are skipped.
func (s *RelevanceService) Top(ctx context.Context, category string, n int) ([]ScoredFreet, error) {
	if n <= 0 {
		n = 10
	}
	members, err := s.rdb.ZRevRangeWithScores(ctx, relevanceKey(category), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	res := make([]ScoredFreet, 0, len(members))
	for _, m := range members {
		id, ok := m.Member.(string)
		if !ok {
			continue
		}
		freet, err := s.freetRepo.FindByID(ctx, id)
		if err != nil {
			continue
		}
		res = append(res, ScoredFreet{Freet: freet, Score: m.Score})
	}
	return res, nil
}

// Remove clears the freet from the category's ranking.
func (s *RelevanceService) Remove(ctx context.Context, category, freetID string) error {
	return s.rdb.ZRem(ctx, relevanceKey(category), freetID).Err()
}
