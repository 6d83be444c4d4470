package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"hotelia/internal/adapters/anthropic"
	"hotelia/internal/adapters/observability"
	"hotelia/internal/app"
	"hotelia/internal/shared"
	pgrepo "hotelia/internal/storage/postgres"
)

// The enricher is a batch job: it drains the unenriched backlog once and
// exits. Run it from cron or a scheduler; concurrent runs are safe because
// enrichment is idempotent per review.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.EnrichWorkers).
		Int("rps", cfg.EnrichRPS).
		Int("batch", cfg.EnrichBatch).
		Msg("enricher starting")

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := pgrepo.New(db)

	ai, err := anthropic.New(cfg.AnthropicKey, cfg.AnthropicModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize AI client")
	}

	svc := app.NewEnrichmentService(repo, ai)
	sem := semaphore.NewWeighted(int64(cfg.EnrichWorkers))
	limiter := rate.NewLimiter(rate.Limit(cfg.EnrichRPS), 1)
	var wg sync.WaitGroup

	var enriched, failed int
	var mu sync.Mutex

	for {
		pending, err := svc.ListPending(ctx, cfg.EnrichBatch)
		if err != nil {
			log.Fatal().Err(err).Msg("listing pending reviews failed")
		}
		if len(pending) == 0 {
			break
		}
		batchEnriched := 0

		for _, rv := range pending {
			rv := rv

			// the limiter paces provider calls across all workers
			if err := limiter.Wait(ctx); err != nil {
				log.Fatal().Err(err).Msg("rate limiter interrupted")
			}

			// acquire before launching the goroutine; release inside it
			if err := sem.Acquire(ctx, int64(1)); err != nil {
				log.Fatal().Err(err).Msg("semaphore acquire failed")
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(int64(1))

				if err := svc.EnrichReview(ctx, rv); err != nil {
					log.Warn().Str("review_id", rv.ID).Err(err).Msg("enrich failed")
					mu.Lock()
					failed++
					mu.Unlock()
					return
				}
				log.Info().Str("review_id", rv.ID).Msg("enrich ok")
				mu.Lock()
				enriched++
				batchEnriched++
				mu.Unlock()
			}()
		}
		wg.Wait()

		// failed rows come straight back from ListPending; if a whole batch
		// made no progress another pass would just spin on them
		if batchEnriched == 0 || len(pending) < cfg.EnrichBatch {
			break
		}
	}

	log.Info().Int("enriched", enriched).Int("failed", failed).Msg("enrichment completed")
}
