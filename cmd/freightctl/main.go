package main

import (
	"fmt"
	"os"

	"freight-office/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "freightctl",
	Short: "Back-office administration for the freight service",
	Long: `freightctl manages the freight back-office database: applying schema
migrations, seeding the admin user, and verifying connectivity.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Setup()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
