package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/powerhive/pooldesc/internal/logging"
	"github.com/powerhive/pooldesc/pkg/database"
	"github.com/powerhive/pooldesc/pkg/pool"
)

func main() {
	cfg := LoadConfig()

	listAlgos, err := ParseFlags(cfg, flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, level).Named("poolcheck")

	checker, err := NewChecker(cfg, logger)
	if err != nil {
		rich := pool.ToServiceError(err)
		fmt.Fprintf(os.Stderr, "Error: [%s] %v\n", rich.TextCode, err)
		os.Exit(2)
	}

	if listAlgos {
		if err := checker.ListAlgorithms(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(cfg.URLs) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no pool URLs given (set POOL_URLS or --url)\n\n")
		fmt.Fprintf(os.Stderr, "Usage: poolcheck [options] [url ...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var repo database.Repository
	if cfg.DBPath != "" {
		sqlite, err := database.NewSQLiteRepository(cfg.DBPath)
		if err != nil {
			logger.Fatal("failed to open database", "path", cfg.DBPath, "error", err)
		}
		repo = sqlite
		logger.Info("storing descriptors", "path", cfg.DBPath)
	}

	failed := checker.Run(ctx, os.Stdout, repo)
	if repo != nil {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	if failed > 0 {
		logger.Error(fmt.Sprintf("%d of %d pools rejected", failed, len(cfg.URLs)))
		cancel()
		os.Exit(1)
	}
}
