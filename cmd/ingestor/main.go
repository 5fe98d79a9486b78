// Command ingestor loads the transformed static hotel dataset CSV into the
// MySQL catalog, so deployments that configure MYSQL_DSN can serve static
// lookups from the database instead of the flat file.
package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_recommender/internal/adapters/observability"
	"hotel_recommender/internal/adapters/staticcsv"
	"hotel_recommender/internal/shared"
	mysqlrepo "hotel_recommender/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().
		Str("csv", cfg.StaticCSV).
		Int("workers", cfg.IngestWorkers).
		Msg("ingestor starting")

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required for ingestion")
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)
	if err := repo.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("create static_hotels table failed")
	}

	entries, err := staticcsv.New(cfg.StaticCSV).Entries(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load static dataset failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.IngestWorkers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, e := range entries {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(e staticcsv.Entry) {
			defer wg.Done()
			defer sem.Release(1)
			if err := repo.UpsertHotel(ctx, e.City, e.Hotel); err != nil {
				log.Warn().Str("id", e.Hotel.ID).Err(err).Msg("upsert failed")
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(e)
	}
	wg.Wait()

	log.Info().Int("total", len(entries)).Int("failed", failed).Msg("ingestion completed")
}
