package main

import (
	"pageturn/internal/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users, books and payment_orders tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := client.InitDBClient(cfg.Database)
			if err != nil {
				return err
			}
			if err := client.Migrate(db); err != nil {
				return err
			}

			log.Info("migration complete", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
