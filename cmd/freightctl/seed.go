package main

import (
	"context"
	"fmt"
	"os"

	"freight-office/internal/app"
	"freight-office/internal/db"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seedUsername string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin user from ADMIN_PASSWORD",
	Long: `seed creates (or resets the password of) the administrative user.
The password is read from the ADMIN_PASSWORD environment variable so it never
appears in shell history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			return fmt.Errorf("ADMIN_PASSWORD is not set")
		}

		hash, err := app.HashPassword(password)
		if err != nil {
			return err
		}

		ctx := context.Background()
		pool, err := db.NewPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		_, err = pool.Exec(ctx, `
			INSERT INTO users (username, password_hash, role)
			VALUES ($1, $2, 'admin')
			ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
			seedUsername, hash,
		)
		if err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}

		log.Info().Str("username", seedUsername).Msg("admin user seeded")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUsername, "username", "admin", "admin username to create or reset")
	rootCmd.AddCommand(seedCmd)
}
