package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/incollege/db"
	"github.com/garnizeh/incollege/internal/config"
	"github.com/garnizeh/incollege/internal/db"
	"github.com/garnizeh/incollege/internal/repository/sqlite"
	"github.com/garnizeh/incollege/internal/skills"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	n, err := skills.NewService(sqlite.New(database, nil), nil).SeedFile(ctx, cfg.SkillsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database initialized successfully (%d skills seeded).\n", n)
}
