package core_test

import (
	"context"
	"errors"
	"testing"

	"billing-backend/internal/core"

	"github.com/shopspring/decimal"
)

func TestProduct_CreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewProductService(pool, core.NewStockLedger())

	created, err := svc.CreateProduct(ctx, &core.Product{
		ProductID:      "P-NEW",
		ProductName:    "Widget D",
		Category:       "Widgets",
		Unit:           "unit",
		UnitPrice:      decimal.NewFromFloat(15.50),
		WholesalePrice: decimal.NewFromFloat(9.00),
		Quantity:       40,
		StockThreshold: 5,
		ProductStatus:  "active",
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected a generated id")
	}

	got, err := svc.GetProduct(ctx, "P-NEW")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.ProductName != "Widget D" || got.Quantity != 40 {
		t.Errorf("Unexpected product: %+v", got)
	}
	if !got.UnitPrice.Equal(decimal.NewFromFloat(15.50)) {
		t.Errorf("Expected unit price 15.50, got %s", got.UnitPrice)
	}
}

func TestProduct_CreateRejectsBadInput(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewProductService(pool, core.NewStockLedger())

	var ve *core.ValidationError
	if _, err := svc.CreateProduct(ctx, &core.Product{ProductName: "nameless id"}); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for missing product id, got %v", err)
	}
	if _, err := svc.CreateProduct(ctx, &core.Product{ProductID: "P-NEG", ProductName: "x", Unit: "unit", Quantity: -1}); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for negative quantity, got %v", err)
	}
}

func TestProduct_UpdateAndDelete(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewProductService(pool, core.NewStockLedger())

	p, err := svc.GetProduct(ctx, "P-A")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	p.UnitPrice = decimal.NewFromFloat(11.00)
	p.Quantity = 50
	if err := svc.UpdateProduct(ctx, p); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	updated, err := svc.GetProduct(ctx, "P-A")
	if err != nil {
		t.Fatalf("GetProduct after update failed: %v", err)
	}
	if updated.Quantity != 50 || !updated.UnitPrice.Equal(decimal.NewFromFloat(11.00)) {
		t.Errorf("Update did not stick: %+v", updated)
	}

	if err := svc.DeleteProduct(ctx, "P-A"); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if _, err := svc.GetProduct(ctx, "P-A"); !core.IsNotFound(err) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.UpdateProduct(ctx, p); !core.IsNotFound(err) {
		t.Errorf("Expected ErrNotFound updating a deleted product, got %v", err)
	}
}

func TestProduct_ListByCategoryAndLowStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewProductService(pool, core.NewStockLedger())

	all, err := svc.ListProducts(ctx, "")
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 products, got %d", len(all))
	}

	widgets, err := svc.ListProducts(ctx, "Widgets")
	if err != nil {
		t.Fatalf("ListProducts by category failed: %v", err)
	}
	if len(widgets) != 3 {
		t.Errorf("Expected 3 widgets, got %d", len(widgets))
	}

	none, err := svc.ListProducts(ctx, "Nope")
	if err != nil {
		t.Fatalf("ListProducts unknown category failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no products for unknown category, got %d", len(none))
	}

	// P-C has quantity 3 and threshold 2; drain it to the threshold.
	invoiceSvc := core.NewInvoiceService(pool, core.NewStockLedger())
	if _, err := invoiceSvc.CreateInvoice(ctx, testInvoice("INV-LOW", 20.00), []core.LineItem{item("P-C", 1, 20.00)}); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	low, err := svc.ListLowStock(ctx)
	if err != nil {
		t.Fatalf("ListLowStock failed: %v", err)
	}
	if len(low) != 1 || low[0].ProductID != "P-C" {
		t.Errorf("Expected only P-C at or below threshold, got %+v", low)
	}
}
