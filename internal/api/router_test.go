package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/maoivy/fritter/config"
	"github.com/maoivy/fritter/internal/api/handler"
	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
	"github.com/maoivy/fritter/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	userRepo := repository.NewUserRepository(db)
	freetRepo := repository.NewFreetRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	followRepo := repository.NewFollowRepository(db)
	fanRepo := repository.NewFanRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)

	timeline := service.NewTimelineService(feedRepo, fanRepo, freetRepo)
	relevance := service.NewRelevanceService(rdb, freetRepo)
	freets := service.NewFreetService(freetRepo, userRepo, timeline, relevance)
	relService := service.NewRelationshipService(userRepo, followRepo, fanRepo, timeline)
	collections := service.NewCollectionService(collectionRepo, freetRepo)
	tokens := service.NewTokenIssuer("test-secret", 3600)
	users := service.NewUserService(userRepo, followRepo, fanRepo, feedRepo, collectionRepo, freets, timeline, tokens)

	h := handler.New(users, freets, timeline, relService, collections, relevance)
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	return NewRouter(cfg, h, users)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
		"username": username, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", gin.H{
		"username": username, "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRouter_FreetAndFeedFlow(t *testing.T) {
	r := newTestRouter(t)

	alice := login(t, r, "alice")
	bob := login(t, r, "bob")

	// bob follows alice
	var aliceID string
	{
		w := doJSON(t, r, http.MethodGet, "/api/v1/users/alice", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		aliceID = resp.Data.ID
	}
	w := doJSON(t, r, http.MethodPost, "/api/v1/follows", bob, gin.H{"user_id": aliceID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// alice publishes; bob's feed sees it
	w = doJSON(t, r, http.MethodPost, "/api/v1/freets", alice, gin.H{
		"content": "hello fritter", "categories": []string{"intro"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/feed", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Data []struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed.Data, 1)
	assert.Equal(t, "hello fritter", feed.Data[0].Content)

	// the fan-in variant agrees here
	w = doJSON(t, r, http.MethodGet, "/api/v1/feed/query", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ValidationRejectedBeforeServices(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "carol")

	// empty content fails binding
	w := doJSON(t, r, http.MethodPost, "/api/v1/freets", token, gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// category over 24 chars fails the registered rule
	w = doJSON(t, r, http.MethodPost, "/api/v1/freets", token, gin.H{
		"content":    "ok",
		"categories": []string{"this-category-name-is-way-too-long"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// feed must be empty: nothing was created
	w = doJSON(t, r, http.MethodGet, "/api/v1/feed", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Data []any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Empty(t, feed.Data)
}

func TestRouter_AuthRequired(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/feed", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
