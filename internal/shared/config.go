package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	SupplierBase string
	SupplierKey  string
	LLMEndpoint  string
	LLMModel     string
	LLMKey       string
	SeedWorkers  int
	CacheTTL     time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/trippy?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		SupplierBase: env("SUPPLIER_BASE_URL", "https://api.travelsearch.example"),
		SupplierKey:  env("SUPPLIER_API_KEY", ""),
		LLMEndpoint:  env("LLM_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		LLMModel:     env("LLM_MODEL", "gpt-4o-mini"),
		LLMKey:       env("LLM_API_KEY", ""),
		SeedWorkers:  atoi("SEED_WORKERS", 8),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.SupplierKey == "" {
		log.Warn().Msg("SUPPLIER_API_KEY is empty; flight search falls back to deterministic candidates")
	}
	if c.LLMKey == "" {
		log.Warn().Msg("LLM_API_KEY is empty; budget estimates stay at baseline")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
