package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	AmadeusBase   string
	AmadeusKey    string
	AmadeusSecret string
	CacheDir      string
	StaticCSV     string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	SampleCap     int
	BatchSize     int
	BatchDelay    time.Duration
	TieredSample  bool
	IngestWorkers int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		AmadeusBase:   env("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusKey:    env("AMADEUS_API_KEY", ""),
		AmadeusSecret: env("AMADEUS_API_SECRET", ""),
		CacheDir:      env("SNAPSHOT_DIR", "."),
		StaticCSV:     env("STATIC_CSV_PATH", "OYO_HOTELS_792_transformed.csv"),
		MySQLDSN:      env("MYSQL_DSN", ""),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		SampleCap:     atoi("SAMPLE_CAP", 60),
		BatchSize:     atoi("OFFER_BATCH_SIZE", 20),
		BatchDelay:    time.Duration(atoi("BATCH_DELAY_MS", 1000)) * time.Millisecond,
		TieredSample:  env("SAMPLER", "uniform") == "tiered",
		IngestWorkers: atoi("INGEST_WORKERS", 8),
	}
	if c.AmadeusKey == "" || c.AmadeusSecret == "" {
		log.Warn().Msg("AMADEUS_API_KEY / AMADEUS_API_SECRET are empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
