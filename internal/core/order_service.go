package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderService owns the purchase order write path. It shares the invoice
// path's transaction shape — header insert then one batched item insert —
// but never touches product stock: goods on order are not goods on hand.
type OrderService interface {
	// CreateOrder durably creates the order header and its items in one
	// transaction and returns the generated surrogate key.
	CreateOrder(ctx context.Context, po *PurchaseOrder, items []LineItem) (int, error)

	// GetOrder returns a header with its items by business identifier.
	GetOrder(ctx context.Context, orderID string) (*PurchaseOrder, error)

	// ListOrdersBySupplier returns a supplier's order history with items.
	ListOrdersBySupplier(ctx context.Context, supplierID string) ([]PurchaseOrder, error)
}

type orderService struct {
	pool *pgxpool.Pool
}

func NewOrderService(pool *pgxpool.Pool) OrderService {
	return &orderService{pool: pool}
}

func (s *orderService) CreateOrder(ctx context.Context, po *PurchaseOrder, items []LineItem) (int, error) {
	if len(items) == 0 {
		return 0, Validationf("order must have at least one item")
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
		return 0, persistence("begin order transaction", err)
	}
	defer rollback(ctx, tx, "create order")

	var headerID int
	err = tx.QueryRow(ctx, `
		INSERT INTO purchase_orders (order_id, supplier_id, order_date, delivery_date, payment_method,
		                             payment_status, currency_type, transaction_id, shipping_address,
		                             order_status, order_notes, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, po.OrderID, po.SupplierID, po.OrderDate, po.DeliveryDate, po.PaymentMethod,
		po.PaymentStatus, po.CurrencyType, po.TransactionID, po.ShippingAddress,
		po.OrderStatus, po.OrderNotes, po.GrandTotal).Scan(&headerID)
	if err != nil {
		return 0, persistence("insert order header", err)
	}

	if err := insertItemBatch(ctx, tx, "purchase_order_items", "order_id", headerID, items); err != nil {
		return 0, persistence("insert order items", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, persistence("commit order", err)
	}
	return headerID, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*PurchaseOrder, error) {
	po, err := scanOrder(s.pool.QueryRow(ctx, `
		SELECT id, order_id, supplier_id, order_date, delivery_date, payment_method,
		       payment_status, currency_type, transaction_id, shipping_address,
		       order_status, order_notes, grand_total, created_at
		FROM purchase_orders
		WHERE order_id = $1
	`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, persistence("fetch order", err)
	}

	items, err := fetchItems(ctx, s.pool, "purchase_order_items", "order_id", po.ID)
	if err != nil {
		return nil, persistence("fetch order items", err)
	}
	po.Items = items
	return po, nil
}

func (s *orderService) ListOrdersBySupplier(ctx context.Context, supplierID string) ([]PurchaseOrder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, supplier_id, order_date, delivery_date, payment_method,
		       payment_status, currency_type, transaction_id, shipping_address,
		       order_status, order_notes, grand_total, created_at
		FROM purchase_orders
		WHERE supplier_id = $1
		ORDER BY order_date DESC
	`, supplierID)
	if err != nil {
		return nil, persistence("query orders", err)
	}
	defer rows.Close()

	var orders []PurchaseOrder
	for rows.Next() {
		po, err := scanOrder(rows)
		if err != nil {
			return nil, persistence("scan order", err)
		}
		orders = append(orders, *po)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate orders", err)
	}

	for i := range orders {
		items, err := fetchItems(ctx, s.pool, "purchase_order_items", "order_id", orders[i].ID)
		if err != nil {
			return nil, persistence("fetch order items", err)
		}
		orders[i].Items = items
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := row.Scan(
		&po.ID, &po.OrderID, &po.SupplierID, &po.OrderDate, &po.DeliveryDate, &po.PaymentMethod,
		&po.PaymentStatus, &po.CurrencyType, &po.TransactionID, &po.ShippingAddress,
		&po.OrderStatus, &po.OrderNotes, &po.GrandTotal, &po.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &po, nil
}
