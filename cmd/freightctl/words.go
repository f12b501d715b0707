package main

import (
	"fmt"
	"strconv"

	"freight-office/internal/core"

	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words <amount>",
	Short: "Render a rupee amount in words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("amount must be a whole number: %w", err)
		}
		fmt.Println(core.AmountInWords(n) + " Rupees Only")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}
