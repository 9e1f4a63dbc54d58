// careerflix-backend
//
// Job-notification tracker plus movie browser behind one REST API:
//   - scored job dashboard with filters, sorting and saved jobs
//   - daily top-10 digest, frozen per calendar date
//   - application status tracking with a bounded history log
//   - ship-readiness gate (test checklist + proof artifact URLs)
//   - OMDb-backed movie search, favorites, watchlist, recently viewed
//
// Publishes EVENT_STATUS_CHANGED to Redis on tracked status transitions.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"careerflix/backend/internal/auth"
	"careerflix/backend/internal/catalog"
	"careerflix/backend/internal/config"
	"careerflix/backend/internal/db"
	"careerflix/backend/internal/digest"
	"careerflix/backend/internal/httpapi"
	"careerflix/backend/internal/movies"
	"careerflix/backend/internal/status"
	"careerflix/backend/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[careerflix] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[careerflix] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[careerflix] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[careerflix] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[careerflix] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[careerflix] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[careerflix] Redis connected ✓")

	// ── Catalog ──────────────────────────────────────────────────────────────
	seeded, err := catalog.Seed(ctx, pool)
	if err != nil {
		log.Fatalf("[careerflix] Catalog seed: %v", err)
	}
	if seeded > 0 {
		log.Printf("[careerflix] Seeded %d catalog jobs", seeded)
	}
	cat, err := catalog.NewPostgres(ctx, pool)
	if err != nil {
		log.Fatalf("[careerflix] Catalog load: %v", err)
	}
	log.Printf("[careerflix] Catalog loaded — %d jobs", len(cat.Jobs()))

	refresher := catalog.NewRefresher(cat, cfg.CatalogRefreshHours)
	if err := refresher.Start(ctx); err != nil {
		log.Fatalf("[careerflix] Catalog refresher: %v", err)
	}
	defer refresher.Stop()

	// ── Services ─────────────────────────────────────────────────────────────
	st := store.New(store.NewRedisKV(rdb))

	handler := httpapi.NewHandler(
		cat,
		st,
		status.NewService(st, status.NewRedisPublisher(rdb), nil),
		digest.NewService(st, nil),
		auth.NewService(st),
		movies.NewClient(cfg.OMDbAPIKey),
		movies.NewCollections(st),
	)
	if cfg.OMDbAPIKey == "" {
		log.Println("[careerflix] OMDB_API_KEY not set — movie search disabled")
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[careerflix] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[careerflix] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[careerflix] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[careerflix] Shutdown error: %v", err)
	}
	log.Println("[careerflix] Stopped.")
}
