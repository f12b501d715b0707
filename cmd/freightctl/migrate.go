package main

import (
	"context"

	"freight-office/internal/db"
	"freight-office/internal/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pool, err := db.NewPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		return migration.Run(ctx, pool)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
