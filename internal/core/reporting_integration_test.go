package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"billing-backend/internal/core"

	"github.com/shopspring/decimal"
)

func TestReporting_StockKPIs(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewReportingService(pool)
	kpis, err := svc.GetStockKPIs(ctx)
	if err != nil {
		t.Fatalf("GetStockKPIs failed: %v", err)
	}

	// Seed: P-A 10@10/6, P-B 10@5/3, P-C 3@20/12.
	if kpis.TotalStock != 23 {
		t.Errorf("Expected total stock 23, got %d", kpis.TotalStock)
	}
	if !kpis.TotalRetail.Equal(decimal.NewFromInt(210)) {
		t.Errorf("Expected total retail 210, got %s", kpis.TotalRetail)
	}
	if !kpis.TotalCost.Equal(decimal.NewFromInt(126)) {
		t.Errorf("Expected total cost 126, got %s", kpis.TotalCost)
	}
	if !kpis.PotentialProfit.Equal(decimal.NewFromInt(84)) {
		t.Errorf("Expected potential profit 84, got %s", kpis.PotentialProfit)
	}
}

func TestReporting_OverviewCountsBothSides(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	invoiceSvc := core.NewInvoiceService(pool, core.NewStockLedger())
	orderSvc := core.NewOrderService(pool)

	if _, err := invoiceSvc.CreateInvoice(ctx, testInvoice("INV-OV-1", 30.00), []core.LineItem{item("P-A", 3, 10.00)}); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if _, err := orderSvc.CreateOrder(ctx, testOrder("PO-OV-1", "SUP-1", 50.00), []core.LineItem{item("P-B", 10, 5.00)}); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	overview, err := core.NewReportingService(pool).GetOverview(ctx)
	if err != nil {
		t.Fatalf("GetOverview failed: %v", err)
	}
	if overview.TotalInvoices != 1 || overview.TotalOrders != 1 {
		t.Errorf("Expected 1 invoice and 1 order, got %d/%d", overview.TotalInvoices, overview.TotalOrders)
	}
	if !overview.TotalRevenue.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected revenue 30, got %s", overview.TotalRevenue)
	}
	if !overview.TotalPurchaseSpend.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected purchase spend 50, got %s", overview.TotalPurchaseSpend)
	}
}

func TestReporting_MonthlySalesFiltersByMonth(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	invoiceSvc := core.NewInvoiceService(pool, core.NewStockLedger())

	march := testInvoice("INV-MAR", 10.00)
	march.InvoiceDate = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if _, err := invoiceSvc.CreateInvoice(ctx, march, []core.LineItem{item("P-A", 1, 10.00)}); err != nil {
		t.Fatalf("CreateInvoice march failed: %v", err)
	}

	june := testInvoice("INV-JUN", 5.00)
	june.InvoiceDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	if _, err := invoiceSvc.CreateInvoice(ctx, june, []core.LineItem{item("P-B", 1, 5.00)}); err != nil {
		t.Fatalf("CreateInvoice june failed: %v", err)
	}

	svc := core.NewReportingService(pool)
	sales, err := svc.MonthlySales(ctx, time.June)
	if err != nil {
		t.Fatalf("MonthlySales failed: %v", err)
	}
	if len(sales) != 1 || sales[0].InvoiceID != "INV-JUN" {
		t.Errorf("Expected only INV-JUN for June, got %+v", sales)
	}

	var ve *core.ValidationError
	if _, err := svc.MonthlySales(ctx, time.Month(13)); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for month 13, got %v", err)
	}
}
