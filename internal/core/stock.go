package core

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// StockLedger owns all mutations of products.quantity. The invoice path
// reserves stock through a single conditional decrement so the availability
// check and the mutation are one atomic statement; the touched row stays
// exclusively locked until the enclosing transaction commits or rolls back,
// which is what serializes concurrent invoices competing for one product.
type StockLedger struct{}

func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// Reserve decrements a product's on-hand quantity by qty, but only if the
// current quantity covers it. It returns the number of rows modified
// (0 or 1). A zero count means low stock or a lost race, not a database
// fault; the caller decides what to do with it. The availability check and
// the decrement must stay in this one statement, never a read followed by
// a write.
func (l *StockLedger) Reserve(ctx context.Context, tx pgx.Tx, productID string, qty int) (int64, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE product_id = $2 AND quantity >= $1
	`, qty, productID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SetQuantity overwrites a product's on-hand quantity with an absolute
// value. This is the restock/correction path used by product maintenance;
// the invoice path never calls it.
func (l *StockLedger) SetQuantity(ctx context.Context, tx pgx.Tx, productID string, qty int) (int64, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET quantity = $1, updated_at = NOW()
		WHERE product_id = $2
	`, qty, productID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
