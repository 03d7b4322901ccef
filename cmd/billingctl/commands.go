package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billing-backend/internal/config"
	"billing-backend/internal/core"
	"billing-backend/internal/db"
	"billing-backend/migrations"
)

type configKeyType struct{}

var configKey configKeyType

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	return ctx.Value(configKey).(*config.Config)
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	return db.NewPool(ctx, configFrom(ctx).DatabaseURL)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := migrations.Apply(ctx, pool); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		log.Info().Msg("schema applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small set of demo products",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		products := demoProducts()
		svc := core.NewProductService(pool, core.NewStockLedger())
		for _, p := range products {
			if _, err := svc.CreateProduct(ctx, &p); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.ProductID, err)
			}
		}
		log.Info().Int("count", len(products)).Msg("demo products seeded")
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check database connectivity and schema presence",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		tables := []string{"products", "invoices", "invoice_items", "purchase_orders", "purchase_order_items"}
		for _, table := range tables {
			var exists bool
			err := pool.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
				table).Scan(&exists)
			if err != nil {
				return fmt.Errorf("failed to check table %s: %w", table, err)
			}
			if !exists {
				return fmt.Errorf("table %s is missing, run billingctl migrate", table)
			}
		}
		log.Info().Msg("database is reachable and schema is present")
		return nil
	},
}

func demoProducts() []core.Product {
	return []core.Product{
		{
			ProductID:      "PRD-001",
			ProductName:    "A4 Copy Paper 500 Sheets",
			Category:       "Stationery",
			Brand:          "PaperMax",
			Unit:           "ream",
			UnitPrice:      decimal.NewFromFloat(6.50),
			WholesalePrice: decimal.NewFromFloat(4.20),
			Quantity:       120,
			StockThreshold: 20,
			ProductStatus:  "active",
		},
		{
			ProductID:      "PRD-002",
			ProductName:    "Ballpoint Pen Blue",
			Category:       "Stationery",
			Brand:          "InkWell",
			Unit:           "piece",
			UnitPrice:      decimal.NewFromFloat(0.80),
			WholesalePrice: decimal.NewFromFloat(0.35),
			Quantity:       500,
			StockThreshold: 50,
			ProductStatus:  "active",
		},
		{
			ProductID:      "PRD-003",
			ProductName:    "Desk Stapler",
			Category:       "Office Supplies",
			Brand:          "ClipCo",
			Unit:           "piece",
			UnitPrice:      decimal.NewFromFloat(7.90),
			WholesalePrice: decimal.NewFromFloat(5.10),
			Quantity:       35,
			StockThreshold: 10,
			ProductStatus:  "active",
		},
	}
}
