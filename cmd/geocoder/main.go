package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/geocode"
	"github.com/hjnengare/sayso-web-sub011/internal/adapters/observability"
	redisad "github.com/hjnengare/sayso-web-sub011/internal/adapters/redis"
	"github.com/hjnengare/sayso-web-sub011/internal/app"
	"github.com/hjnengare/sayso-web-sub011/internal/shared"
	mysqlrepo "github.com/hjnengare/sayso-web-sub011/internal/storage/mysql"
)

// Backfills coordinates for businesses whose address never geocoded,
// e.g. because both providers were down at creation time.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.GeocodeWorkers).
		Int("batch", cfg.GeocodeBatchSize).
		Msg("geocode backfill starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	geo := geocode.NewChain(cfg.GeocodePrimaryBase, cfg.GeocodePrimaryKey, cfg.GeocodeFallback)
	bf := app.NewBackfillService(repo, cache, geo)

	pending, err := repo.ListUngeocoded(ctx, cfg.GeocodeBatchSize)
	if err != nil {
		log.Fatal().Err(err).Msg("listing ungeocoded businesses failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.GeocodeWorkers))
	var wg sync.WaitGroup

	for _, b := range pending {
		b := b

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := bf.Backfill(ctx, b); err != nil {
				log.Warn().Int64("id", b.ID).Err(err).Msg("geocode backfill failed")
				return
			}
			log.Info().Int64("id", b.ID).Msg("geocode backfill ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("geocode backfill completed")
}
