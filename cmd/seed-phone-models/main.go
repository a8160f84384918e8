package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/phonemechanic/repair-ledger/internal/phonemodels"
	"github.com/phonemechanic/repair-ledger/pkg/config"
	"github.com/phonemechanic/repair-ledger/pkg/db"
	"github.com/phonemechanic/repair-ledger/pkg/logger"
	"github.com/phonemechanic/repair-ledger/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-phone-models"})

	_ = godotenv.Load()

	file := flag.String("file", "", "newline separated list of phone model names")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed-phone-models",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"file": *file,
	})

	names, err := readNames(*file)
	if err != nil {
		logg.Error(ctx, "failed to read model list", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	svc, err := phonemodels.NewService(phonemodels.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(ctx, "failed to create phone model service", err)
		os.Exit(1)
	}

	result, err := svc.Seed(ctx, names)
	if err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
	fmt.Printf("inserted %d, skipped %d\n", result.Inserted, result.Skipped)
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanLines(f)
}

func scanLines(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	return names, scanner.Err()
}
