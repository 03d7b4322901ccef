package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"billing-backend/internal/config"
	"billing-backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "billingctl",
	Short: "Operational tooling for the billing backend",
	Long: `billingctl bundles the operational tasks around the billing backend:
applying the database schema, seeding demo data, and verifying that a
deployment can reach its database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(verifyCmd)
}
