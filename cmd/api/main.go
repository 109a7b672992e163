package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"planhub.org/internal/auth"
	"planhub.org/internal/config"
	"planhub.org/internal/httpapi"
	"planhub.org/internal/migrate"
	"planhub.org/internal/obs"
	"planhub.org/internal/project"
	"planhub.org/internal/store"
	"planhub.org/internal/store/pg"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Persistent storage when a DSN is configured; in-memory otherwise,
	// which keeps local development free of infrastructure.
	var (
		st store.Store
		db *sql.DB
	)
	if cfg.DatabaseDSN != "" {
		pgStore, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()
		st = pgStore
		db = pgStore.DB()

		if cfg.MigrateOnStart {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := migrate.NewManager(db).Up(ctx); err != nil {
				cancel()
				log.Fatalf("migrate: %v", err)
			}
			cancel()
		}
	} else {
		log.Println("no PLANHUB_PG_DSN set, using in-memory store")
		st = store.NewMemory()
	}

	tokens, err := auth.NewTokens([]byte(cfg.AuthSecret),
		auth.WithIssuer(cfg.TokenIssuer),
		auth.WithTTL(cfg.TokenTTL),
	)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	api := httpapi.New(
		httpapi.ReadyProbe{DB: db},
		version,
		auth.NewService(st, tokens),
		project.NewService(st),
		httpapi.WithRateLimit(cfg.RateBurst, cfg.RatePerSec),
		httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting planhub-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
