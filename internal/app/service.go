package app

import (
	"context"
	"time"

	"billing-backend/internal/core"
)

// ApplicationService is the single interface the HTTP adapter and CLI call.
// It performs all caller-facing validation — malformed input never opens a
// database transaction — and computes derived totals the caller omitted.
type ApplicationService interface {
	// CreateInvoice validates the request, fills in line and grand totals,
	// and drives the transactional invoice write path (header, items,
	// per-item stock reservation).
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*CreateResult, error)
	GetInvoice(ctx context.Context, invoiceID string) (*core.Invoice, error)
	ListInvoices(ctx context.Context) ([]core.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// CreateOrder is the purchase-order counterpart: same shape, same
	// transactional write, no stock mutation.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateResult, error)
	GetOrder(ctx context.Context, orderID string) (*core.PurchaseOrder, error)
	ListOrdersBySupplier(ctx context.Context, supplierID string) ([]core.PurchaseOrder, error)

	CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error)
	UpdateProduct(ctx context.Context, req ProductRequest) error
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (*core.Product, error)
	ListProducts(ctx context.Context, category string) ([]core.Product, error)

	GetStockKPIs(ctx context.Context) (*KPIResult, error)
	GetOverview(ctx context.Context) (*core.Overview, error)
	MonthlySales(ctx context.Context, month time.Month) ([]core.Invoice, error)

	// GetInsights builds a plain-text snapshot of the business figures and
	// asks the AI agent to interpret it.
	GetInsights(ctx context.Context) (*InsightsResult, error)
}
