package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
)

// testEnv wires every service over an in-memory sqlite DB and a miniredis.
type testEnv struct {
	db *gorm.DB

	userRepo   repository.UserRepository
	freetRepo  repository.FreetRepository
	feedRepo   repository.FeedRepository
	followRepo repository.FollowRepository
	fanRepo    repository.FanRepository

	timeline    *TimelineService
	relevance   *RelevanceService
	freets      *FreetService
	relations   RelationshipService
	users       *UserService
	collections *CollectionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Freet{}, &model.Feed{},
		&model.Follow{}, &model.Fan{}, &model.Collection{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	env := &testEnv{db: db}
	env.userRepo = repository.NewUserRepository(db)
	env.freetRepo = repository.NewFreetRepository(db)
	env.feedRepo = repository.NewFeedRepository(db)
	env.followRepo = repository.NewFollowRepository(db)
	env.fanRepo = repository.NewFanRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)

	env.timeline = NewTimelineService(env.feedRepo, env.fanRepo, env.freetRepo)
	env.relevance = NewRelevanceService(rdb, env.freetRepo)
	env.freets = NewFreetService(env.freetRepo, env.userRepo, env.timeline, env.relevance)
	env.relations = NewRelationshipService(env.userRepo, env.followRepo, env.fanRepo, env.timeline)
	env.collections = NewCollectionService(collectionRepo, env.freetRepo)
	tokens := NewTokenIssuer("test-secret", 3600)
	env.users = NewUserService(env.userRepo, env.followRepo, env.fanRepo, env.feedRepo, collectionRepo, env.freets, env.timeline, tokens)
	return env
}

var userSeq int

// newUser registers an account through the real flow, feed row included.
func (e *testEnv) newUser(t *testing.T) *model.User {
	t.Helper()
	userSeq++
	u, err := e.users.Register(context.Background(), fmt.Sprintf("user%04d", userSeq), "password", "")
	require.NoError(t, err)
	return u
}

func (e *testEnv) feedIDs(t *testing.T, userID string) []string {
	t.Helper()
	entries, err := e.timeline.Materialized(context.Background(), userID)
	require.NoError(t, err)
	ids := make([]string, len(entries))
	for i, en := range entries {
		ids[i] = en.FreetID
	}
	return ids
}
