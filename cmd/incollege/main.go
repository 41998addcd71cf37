package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	dbfs "github.com/garnizeh/incollege/db"
	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/config"
	"github.com/garnizeh/incollege/internal/content"
	"github.com/garnizeh/incollege/internal/db"
	"github.com/garnizeh/incollege/internal/jobboard"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/internal/menu"
	"github.com/garnizeh/incollege/internal/messaging"
	"github.com/garnizeh/incollege/internal/notify"
	"github.com/garnizeh/incollege/internal/profile"
	"github.com/garnizeh/incollege/internal/repository/sqlite"
	"github.com/garnizeh/incollege/internal/settings"
	"github.com/garnizeh/incollege/internal/skills"
	"github.com/garnizeh/incollege/internal/social"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		dbPath     = flag.String("db", "", "Path to the SQLite database (overrides config)")
	)
	flag.Parse()

	if err := run(*configPath, *dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "incollege: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewLogger(logging.Config{
		Environment: os.Getenv("INCOLLEGE_ENV"),
		Level:       cfg.LogLevel,
	})
	logger.Info("starting", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("close db", slog.Any("err", err))
		}
	}()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	repo := sqlite.New(database, logger)

	catalog := skills.NewService(repo, logger)
	if _, err := catalog.SeedFile(ctx, cfg.SkillsPath); err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}

	doc, err := content.LoadFile(ctx, cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	limits := cfg.Limits()
	accounts := auth.NewService(repo, cfg.SessionSecret, cfg.SessionDuration, limits.MaxAccounts, logger)
	svc := menu.Services{
		Auth:     accounts,
		Social:   social.NewService(accounts, repo, repo, logger),
		Jobs:     jobboard.NewService(accounts, repo, limits.MaxJobPostings, logger),
		Messages: messaging.NewService(accounts, repo, logger),
		Profiles: profile.NewService(accounts, repo, logger),
		Settings: settings.NewService(accounts, repo, logger),
		Notify:   notify.NewService(accounts, repo, cfg.ApplicationReminder, logger),
		Skills:   catalog,
	}

	return menu.New(svc, doc, os.Stdin, os.Stdout, logger).Run(ctx)
}
