package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "github.com/stupnd/trippy-sub001/internal/adapters/http_server"
	"github.com/stupnd/trippy-sub001/internal/adapters/llm"
	"github.com/stupnd/trippy-sub001/internal/adapters/observability"
	redisad "github.com/stupnd/trippy-sub001/internal/adapters/redis"
	"github.com/stupnd/trippy-sub001/internal/adapters/supplier"
	"github.com/stupnd/trippy-sub001/internal/app"
	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/shared"
	mysqlrepo "github.com/stupnd/trippy-sub001/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Suppliers are optional: without keys flight recommendations fall
	// back to deterministic candidates and budgets stay at baseline.
	var flights domain.FlightSupplier
	var lodging domain.LodgingSupplier
	if cfg.SupplierKey != "" {
		sc, err := supplier.New(cfg.SupplierBase, cfg.SupplierKey, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("supplier client init failed")
		}
		flights, lodging = sc, sc
	}
	var gen domain.TextGenClient
	if cfg.LLMKey != "" {
		lc, err := llm.New(cfg.LLMEndpoint, cfg.LLMModel, cfg.LLMKey)
		if err != nil {
			log.Fatal().Err(err).Msg("llm client init failed")
		}
		gen = lc
	}

	recs := app.NewRecommendationService(repo, flights, lodging, cache, cfg.CacheTTL)
	decisions := app.NewDecisionService(repo)
	budget := app.NewBudgetService(repo, gen)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Recs: recs, Decisions: decisions, Budget: budget})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
