package main

import (
	"context"
	"fmt"

	"freight-office/internal/db"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check database connectivity and schema state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pool, err := db.NewPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		var applied int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			return fmt.Errorf("schema_migrations missing, run 'freightctl migrate': %w", err)
		}

		checks := []struct {
			label string
			query string
		}{
			{"parties", "SELECT COUNT(*) FROM parties"},
			{"trucks", "SELECT COUNT(*) FROM trucks"},
			{"lorry receipts", "SELECT COUNT(*) FROM lorry_receipts"},
			{"vehicle hirings", "SELECT COUNT(*) FROM vehicle_hirings"},
			{"booking records", "SELECT COUNT(*) FROM booking_records"},
			{"invoices", "SELECT COUNT(*) FROM invoices"},
			{"users", "SELECT COUNT(*) FROM users"},
		}

		fmt.Printf("migrations applied: %d\n", applied)
		for _, c := range checks {
			var count int
			if err := pool.QueryRow(ctx, c.query).Scan(&count); err != nil {
				return fmt.Errorf("check %s: %w", c.label, err)
			}
			fmt.Printf("%-16s %d rows\n", c.label, count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
