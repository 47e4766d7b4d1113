package main

import (
	"fmt"
	"os"

	"pageturn/internal/config"
	"pageturn/internal/logger"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pageturn",
		Short: "PageTurn second-hand book marketplace API",
		RunE:  runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .env when present, then the process environment.
func loadConfig() (*config.Config, *zap.Logger, error) {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, logger.New(cfg.Log), nil
}
