package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/maoivy/fritter/config"
	"github.com/maoivy/fritter/internal/api"
	"github.com/maoivy/fritter/internal/api/handler"
	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
	"github.com/maoivy/fritter/internal/service"
	"github.com/maoivy/fritter/pkg/database"
	"github.com/maoivy/fritter/pkg/logger"
	"github.com/maoivy/fritter/pkg/tracing"
)

// @title Fritter API
// @version 1.0
// @description Backend of the Fritter micro-posting service.
// @BasePath /api/v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}
	if cfg.Otel.Endpoint != "" {
		shutdown, err := tracing.Init(ctx, "fritter", cfg.Otel.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		return
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Freet{}, &model.Feed{},
		&model.Follow{}, &model.Fan{}, &model.Collection{},
	); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

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
	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	users := service.NewUserService(userRepo, followRepo, fanRepo, feedRepo, collectionRepo, freets, timeline, tokens)

	h := handler.New(users, freets, timeline, relService, collections, relevance)
	router := api.NewRouter(cfg, h, users)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
