// feedbench compares the two timeline read paths on a seeded follower
// graph: write-time fan-out into materialized feeds vs read-time fan-in
// queries. Parameters come from env, as with the other local benches.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/maoivy/fritter/config"
	"github.com/maoivy/fritter/internal/model"
	"github.com/maoivy/fritter/internal/repository"
	"github.com/maoivy/fritter/internal/service"
	"github.com/maoivy/fritter/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			return v
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	must(0, db.AutoMigrate(&model.User{}, &model.Freet{}, &model.Feed{}, &model.Follow{}, &model.Fan{}))

	N := envInt("N", 2000)         // followers of the author
	FREETS := envInt("FREETS", 50) // freets to publish

	userRepo := repository.NewUserRepository(db)
	freetRepo := repository.NewFreetRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	followRepo := repository.NewFollowRepository(db)
	fanRepo := repository.NewFanRepository(db)
	timeline := service.NewTimelineService(feedRepo, fanRepo, freetRepo)

	ctx := context.Background()

	// seed one author and N followers, each with a feed row
	author := &model.User{ID: "author0", Username: "author0", Password: "p"}
	_ = userRepo.Create(ctx, author)
	_ = feedRepo.Create(ctx, author.ID)
	followers := make([]string, N)
	for i := 0; i < N; i++ {
		id := fmt.Sprintf("u%06d", i)
		followers[i] = id
		_ = userRepo.Create(ctx, &model.User{ID: id, Username: id, Password: "p"})
		_ = feedRepo.Create(ctx, id)
		_ = followRepo.Create(ctx, id, author.ID)
		_ = fanRepo.Create(ctx, author.ID, id)
	}

	// publish through the real fan-out path
	pubDurations := make([]time.Duration, 0, FREETS)
	for i := 0; i < FREETS; i++ {
		freet := &model.Freet{
			ID:       fmt.Sprintf("f%06d", i),
			AuthorID: author.ID,
			Content:  fmt.Sprintf("hello %d", i),
		}
		st := time.Now()
		must(0, freetRepo.Create(ctx, freet))
		must(0, timeline.FanoutCreate(ctx, freet))
		pubDurations = append(pubDurations, time.Since(st))
	}

	// read one follower's timeline both ways
	reads := envInt("READS", 200)
	matDur := make([]time.Duration, 0, reads)
	queryDur := make([]time.Duration, 0, reads)
	for i := 0; i < reads; i++ {
		u := followers[i%len(followers)]
		st := time.Now()
		must(timeline.Materialized(ctx, u))
		matDur = append(matDur, time.Since(st))
		st = time.Now()
		must(timeline.QueryTimeline(ctx, u, 0, 50))
		queryDur = append(queryDur, time.Since(st))
	}

	var pubSum, matSum, querySum time.Duration
	for _, d := range pubDurations {
		pubSum += d
	}
	for _, d := range matDur {
		matSum += d
	}
	for _, d := range queryDur {
		querySum += d
	}
	fmt.Printf("N=%d FREETS=%d READS=%d\n", N, FREETS, reads)
	fmt.Printf("Publish + fanout: avg=%v p95=%v p99=%v\n",
		pubSum/time.Duration(len(pubDurations)), pct(pubDurations, 0.95), pct(pubDurations, 0.99))
	fmt.Printf("Materialized read: avg=%v p95=%v p99=%v\n",
		matSum/time.Duration(len(matDur)), pct(matDur, 0.95), pct(matDur, 0.99))
	fmt.Printf("Fan-in query read: avg=%v p95=%v p99=%v\n",
		querySum/time.Duration(len(queryDur)), pct(queryDur, 0.95), pct(queryDur, 0.99))
}
