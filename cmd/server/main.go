package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"photo-booking-api/internal/booking"
	"photo-booking-api/internal/config"
	"photo-booking-api/internal/handler"
	"photo-booking-api/internal/middleware"
	"photo-booking-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg := zerolog.New(os.Stderr)
		lg.Fatal().Err(err).Msg("config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping")
	}
	log.Info().Msg("connected to postgres")

	migrate(log, pool, cfg.MigrationsDir)

	st := store.New(pool)
	svc := booking.NewService(st, log)
	h := handler.New(st, svc, cfg.SessionSecret, log)
	rl := middleware.NewRateLimiter(cfg.AuthRPS, cfg.AuthBurst)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      h.Router(rl),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// migrate applies every .sql file in dir in name order. Statements are
// written to be re-runnable, so a warning here is not fatal.
func migrate(log zerolog.Logger, pool *pgxpool.Pool, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Err(err).Msg("migrations dir not found, skipping")
		return
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("migration read failed")
			continue
		}
		if _, err := pool.Exec(context.Background(), string(sql)); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("migration warning")
			continue
		}
		log.Info().Str("file", name).Msg("migration applied")
	}
}
