package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"billing-backend/internal/core"

	"github.com/shopspring/decimal"
)

func testOrder(orderID, supplierID string, total float64) *core.PurchaseOrder {
	delivery := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	return &core.PurchaseOrder{
		OrderID:         orderID,
		SupplierID:      supplierID,
		OrderDate:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		DeliveryDate:    &delivery,
		PaymentMethod:   "bank",
		PaymentStatus:   "pending",
		CurrencyType:    "INR",
		TransactionID:   "TXN-PO-1",
		ShippingAddress: "Warehouse 1",
		OrderStatus:     "pending",
		OrderNotes:      "restock",
		GrandTotal:      decimal.NewFromFloat(total),
	}
}

func TestOrder_CreateLeavesStockUntouched(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewOrderService(pool)

	// Ordering 100 units of P-C (stock 3) is fine: purchase orders record
	// incoming goods and never mutate the quantity column.
	id, err := svc.CreateOrder(ctx, testOrder("PO-001", "SUP-1", 2000.00), []core.LineItem{
		item("P-C", 100, 20.00),
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected a generated header id, got 0")
	}

	if got := stockOf(t, ctx, pool, "P-C"); got != 3 {
		t.Errorf("Expected P-C stock unchanged at 3, got %d", got)
	}

	po, err := svc.GetOrder(ctx, "PO-001")
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if po.SupplierID != "SUP-1" {
		t.Errorf("Expected supplier SUP-1, got %s", po.SupplierID)
	}
	if len(po.Items) != 1 || po.Items[0].Quantity != 100 {
		t.Errorf("Unexpected items: %+v", po.Items)
	}
	if po.DeliveryDate == nil {
		t.Error("Expected delivery date to round-trip")
	}
}

func TestOrder_HeaderAndItemsAreAtomic(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewOrderService(pool)

	_, err := svc.CreateOrder(ctx, testOrder("PO-002", "SUP-1", 0), []core.LineItem{
		item("P-A", 1, 10.00),
		item("", 1, 10.00),
	})
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	if n := countRows(t, ctx, pool, "purchase_orders"); n != 0 {
		t.Errorf("Expected no order rows after rejection, got %d", n)
	}
	if n := countRows(t, ctx, pool, "purchase_order_items"); n != 0 {
		t.Errorf("Expected no order item rows after rejection, got %d", n)
	}
}

func TestOrder_ListBySupplier(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewOrderService(pool)

	for _, id := range []string{"PO-010", "PO-011"} {
		if _, err := svc.CreateOrder(ctx, testOrder(id, "SUP-2", 50.00), []core.LineItem{item("P-B", 10, 5.00)}); err != nil {
			t.Fatalf("CreateOrder %s failed: %v", id, err)
		}
	}
	if _, err := svc.CreateOrder(ctx, testOrder("PO-012", "SUP-3", 10.00), []core.LineItem{item("P-A", 1, 10.00)}); err != nil {
		t.Fatalf("CreateOrder PO-012 failed: %v", err)
	}

	orders, err := svc.ListOrdersBySupplier(ctx, "SUP-2")
	if err != nil {
		t.Fatalf("ListOrdersBySupplier failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders for SUP-2, got %d", len(orders))
	}
	for _, po := range orders {
		if len(po.Items) != 1 {
			t.Errorf("Order %s: expected items loaded, got %d", po.OrderID, len(po.Items))
		}
	}
}
