package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceService owns the sales invoice write path: one transaction covering
// the header insert, the line-item batch insert, and the per-item stock
// reservation, committed all together or not at all.
type InvoiceService interface {
	// CreateInvoice durably creates the invoice and decrements stock for
	// every item. On success it returns the generated surrogate key. On any
	// failure the database is left exactly as it was: the error is a
	// *ValidationError (nothing was written), an *InsufficientStockError
	// naming the offending product, or a *PersistenceError wrapping the
	// database cause.
	CreateInvoice(ctx context.Context, inv *Invoice, items []LineItem) (int, error)

	// GetInvoice returns a header with its items by business identifier.
	GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error)

	// ListInvoices returns all invoice headers, newest first.
	ListInvoices(ctx context.Context) ([]Invoice, error)

	// DeleteInvoice removes a header and its items in one transaction.
	// Stock is not restored; the original system treats deletion as a
	// bookkeeping correction, not a return.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

type invoiceService struct {
	pool  *pgxpool.Pool
	stock *StockLedger
}

func NewInvoiceService(pool *pgxpool.Pool, stock *StockLedger) InvoiceService {
	return &invoiceService{pool: pool, stock: stock}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, inv *Invoice, items []LineItem) (int, error) {
	if len(items) == 0 {
		return 0, Validationf("invoice must have at least one item")
	}
	for i, it := range items {
		if it.ProductID == "" {
			return 0, Validationf("item %d: product id is required", i+1)
		}
		if it.Quantity <= 0 {
			return 0, Validationf("item %d: quantity must be positive", i+1)
		}
	}

	tx, err := s.pool.BeginTx(ctx, txOptions)
	if err != nil {
		return 0, persistence("begin invoice transaction", err)
	}
	defer rollback(ctx, tx, "create invoice")

	// 1. Header row; capture the generated surrogate key.
	var headerID int
	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (invoice_id, customer_id, invoice_date, payment_status, payment_method,
		                      currency_type, transaction_id, shipping_customer_name,
		                      shipping_customer_phone, shipping_address, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, inv.InvoiceID, inv.CustomerID, inv.InvoiceDate, inv.PaymentStatus, inv.PaymentMethod,
		inv.CurrencyType, inv.TransactionID, inv.ShippingCustomerName,
		inv.ShippingCustomerPhone, inv.ShippingAddress, inv.GrandTotal).Scan(&headerID)
	if err != nil {
		return 0, persistence("insert invoice header", err)
	}

	// 2. All items in one statement, so a partial batch can never exist.
	if err := insertItemBatch(ctx, tx, "invoice_items", "invoice_id", headerID, items); err != nil {
		return 0, persistence("insert invoice items", err)
	}

	// 3. Reserve stock per item, strictly in item order. A zero-row update
	// is the insufficient-stock signal, distinct from a database fault.
	for _, it := range items {
		affected, err := s.stock.Reserve(ctx, tx, it.ProductID, it.Quantity)
		if err != nil {
			return 0, persistence(fmt.Sprintf("reserve stock for product %s", it.ProductID), err)
		}
		if affected == 0 {
			return 0, &InsufficientStockError{ProductID: it.ProductID, Requested: it.Quantity}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, persistence("commit invoice", err)
	}
	return headerID, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx, `
		SELECT id, invoice_id, customer_id, invoice_date, payment_status, payment_method,
		       currency_type, transaction_id, shipping_customer_name, shipping_customer_phone,
		       shipping_address, grand_total, created_at
		FROM invoices
		WHERE invoice_id = $1
	`, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceID, ErrNotFound)
		}
		return nil, persistence("fetch invoice", err)
	}

	items, err := fetchItems(ctx, s.pool, "invoice_items", "invoice_id", inv.ID)
	if err != nil {
		return nil, persistence("fetch invoice items", err)
	}
	inv.Items = items
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_id, customer_id, invoice_date, payment_status, payment_method,
		       currency_type, transaction_id, shipping_customer_name, shipping_customer_phone,
		       shipping_address, grand_total, created_at
		FROM invoices
		ORDER BY invoice_date DESC
	`)
	if err != nil {
		return nil, persistence("query invoices", err)
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
		return nil, persistence("iterate invoices", err)
	}
	return invoices, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := s.pool.BeginTx(ctx, txOptions)
	if err != nil {
		return persistence("begin delete transaction", err)
	}
	defer rollback(ctx, tx, "delete invoice")

	// Items first, then the header; ON DELETE CASCADE would also cover the
	// items, but the explicit order keeps the statements self-describing.
	_, err = tx.Exec(ctx, `
		DELETE FROM invoice_items
		WHERE invoice_id = (SELECT id FROM invoices WHERE invoice_id = $1)
	`, invoiceID)
	if err != nil {
		return persistence("delete invoice items", err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM invoices WHERE invoice_id = $1", invoiceID)
	if err != nil {
		return persistence("delete invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return persistence("commit invoice deletion", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceID, &inv.CustomerID, &inv.InvoiceDate, &inv.PaymentStatus,
		&inv.PaymentMethod, &inv.CurrencyType, &inv.TransactionID, &inv.ShippingCustomerName,
		&inv.ShippingCustomerPhone, &inv.ShippingAddress, &inv.GrandTotal, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// insertItemBatch writes all line items for one header as a single multi-row
// INSERT: one round trip, no observable partial batch even before rollback.
func insertItemBatch(ctx context.Context, tx pgx.Tx, table, headerCol string, headerID int, items []LineItem) error {
	var (
		sb   strings.Builder
		args = make([]any, 0, len(items)*8)
	)
	fmt.Fprintf(&sb, `INSERT INTO %s (%s, product_id, product_name, category, unit, quantity, unit_price, line_total) VALUES `,
		table, headerCol)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 8
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args, headerID, it.ProductID, it.ProductName, it.Category, it.Unit,
			it.Quantity, it.UnitPrice, it.LineTotal)
	}
	_, err := tx.Exec(ctx, sb.String(), args...)
	return err
}

// fetchItems loads the line items belonging to one header row.
func fetchItems(ctx context.Context, q pgxQuerier, table, headerCol string, headerID int) ([]LineItem, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(`
		SELECT id, product_id, product_name, category, unit, quantity, unit_price, line_total
		FROM %s
		WHERE %s = $1
		ORDER BY id
	`, table, headerCol), headerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Category, &it.Unit,
			&it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// invoicesForMonth backs the monthly sales report; kept here so the invoice
// queries live in one file.
func invoicesForMonth(ctx context.Context, q pgxQuerier, month time.Month) (pgx.Rows, error) {
	return q.Query(ctx, `
		SELECT id, invoice_id, customer_id, invoice_date, payment_status, payment_method,
		       currency_type, transaction_id, shipping_customer_name, shipping_customer_phone,
		       shipping_address, grand_total, created_at
		FROM invoices
		WHERE EXTRACT(MONTH FROM invoice_date) = $1
		ORDER BY invoice_date DESC
	`, int(month))
}
