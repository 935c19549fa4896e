package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/config"
	"github.com/jsp1440/orchid-continuum-sub004/internal/database"
	"github.com/jsp1440/orchid-continuum-sub004/internal/repository"
	"github.com/jsp1440/orchid-continuum-sub004/internal/server"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var (
		orchidRepo   repository.OrchidRepository
		calendarRepo repository.CalendarRepository
	)

	if cfg.UsePostgres() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pool, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			slog.Error("opening postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		err = database.MigratePostgres(ctx, pool)
		cancel()
		if err != nil {
			slog.Error("running postgres migrations", "error", err)
			os.Exit(1)
		}

		orchidRepo = repository.NewPostgresOrchidRepository(pool)
		calendarRepo = repository.NewPostgresCalendarRepository(pool)
	} else {
		db, err := database.Open(cfg.DatabasePath)
		if err != nil {
			slog.Error("opening database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("running migrations", "error", err)
			os.Exit(1)
		}

		orchidRepo = repository.NewOrchidRepository(db)
		calendarRepo = repository.NewCalendarRepository(db)
	}

	engine := services.NewEngine(catalog.Default(), logger)

	srv := server.New(cfg, engine, orchidRepo, calendarRepo)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
