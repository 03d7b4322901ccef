package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportingService aggregates read-only dashboard figures. Nothing here
// opens a transaction; each report is a single query.
type ReportingService interface {
	// GetStockKPIs computes stock count and valuation over the catalog.
	GetStockKPIs(ctx context.Context) (*StockKPIs, error)

	// GetOverview summarizes invoice and order activity.
	GetOverview(ctx context.Context) (*Overview, error)

	// MonthlySales returns invoices whose invoice date falls in the given
	// calendar month (any year), newest first.
	MonthlySales(ctx context.Context, month time.Month) ([]Invoice, error)
}

type reportingService struct {
	pool *pgxpool.Pool
}

func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) GetStockKPIs(ctx context.Context) (*StockKPIs, error) {
	var k StockKPIs
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(unit_price * quantity), 0),
		       COALESCE(SUM(wholesale_price * quantity), 0)
		FROM products
	`).Scan(&k.TotalStock, &k.TotalRetail, &k.TotalCost)
	if err != nil {
		return nil, persistence("query stock KPIs", err)
	}
	k.PotentialProfit = k.TotalRetail.Sub(k.TotalCost)
	return &k, nil
}

func (s *reportingService) GetOverview(ctx context.Context) (*Overview, error) {
	var o Overview
	err := s.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM invoices),
		       (SELECT COALESCE(SUM(grand_total), 0) FROM invoices),
		       (SELECT COUNT(*) FROM purchase_orders),
		       (SELECT COALESCE(SUM(grand_total), 0) FROM purchase_orders)
	`).Scan(&o.TotalInvoices, &o.TotalRevenue, &o.TotalOrders, &o.TotalPurchaseSpend)
	if err != nil {
		return nil, persistence("query overview", err)
	}
	return &o, nil
}

func (s *reportingService) MonthlySales(ctx context.Context, month time.Month) ([]Invoice, error) {
	if month < time.January || month > time.December {
		return nil, Validationf("month must be between 1 and 12")
	}

	rows, err := invoicesForMonth(ctx, s.pool, month)
	if err != nil {
		return nil, persistence("query monthly sales", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, persistence("scan invoice", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate monthly sales", err)
	}
	return invoices, nil
}
