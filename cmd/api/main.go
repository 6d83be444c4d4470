package main

import (
	"database/sql"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"

	"hotelia/internal/adapters/anthropic"
	server "hotelia/internal/adapters/http_server"
	"hotelia/internal/adapters/observability"
	redisad "hotelia/internal/adapters/redis"
	resendad "hotelia/internal/adapters/resend"
	"hotelia/internal/app"
	"hotelia/internal/domain"
	"hotelia/internal/shared"
	pgrepo "hotelia/internal/storage/postgres"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// db
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := pgrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var ai domain.AIClient
	if client, err := anthropic.New(cfg.AnthropicKey, cfg.AnthropicModel); err != nil {
		log.Warn().Err(err).Msg("AI client disabled")
	} else {
		ai = client
	}
	var sender domain.EmailSender
	if s, err := resendad.New(cfg.ResendKey, cfg.ResendFrom); err != nil {
		log.Warn().Err(err).Msg("email sender disabled")
	} else {
		sender = s
	}

	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:       q,
		Reviews: app.NewReviewService(repo, ai, q),
		Emails:  app.NewEmailService(repo, sender),
		AI:      ai,
		Quota:   app.NewReplyQuota(app.DefaultReplyLimit),
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
