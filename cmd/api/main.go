package main

import (
	"database/sql"
	"math/rand"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/adapters/amadeus"
	"hotel_recommender/internal/adapters/filecache"
	server "hotel_recommender/internal/adapters/http_server"
	"hotel_recommender/internal/adapters/observability"
	"hotel_recommender/internal/adapters/redistoken"
	"hotel_recommender/internal/adapters/staticcsv"
	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
	"hotel_recommender/internal/shared"
	mysqlrepo "hotel_recommender/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// upstream client, with an optional shared token cache
	var tokens domain.TokenCache
	if cfg.RedisAddr != "" {
		tokens = redistoken.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	client, err := amadeus.New(cfg.AmadeusBase, cfg.AmadeusKey, cfg.AmadeusSecret, cfg.BatchDelay, tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus client")
	}

	store, err := filecache.New(cfg.CacheDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.CacheDir).Msg("failed to open snapshot dir")
	}

	var sampler domain.Sampler = app.NewUniformSampler(newRNG())
	if cfg.TieredSample {
		sampler = app.NewTieredSampler(newRNG(), 10)
	}
	rater := app.NewRatingSynthesizer(newRNG())
	rec := app.NewRecommendationService(client, store, sampler, rater, cfg.SampleCap, cfg.BatchSize)

	// static catalog: MySQL when a DSN is configured, CSV otherwise
	var catalog domain.StaticCatalog
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("static catalog: mysql")
		catalog = mysqlrepo.New(db)
	} else {
		log.Info().Str("path", cfg.StaticCSV).Msg("static catalog: csv")
		catalog = staticcsv.New(cfg.StaticCSV)
	}
	static := app.NewStaticService(catalog)

	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Rec: rec, Static: static})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
