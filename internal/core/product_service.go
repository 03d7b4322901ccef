package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductService manages the product catalog. It owns the maintenance
// paths (create, update, delete); the quantity column's transactional
// decrements belong to the StockLedger, not here.
type ProductService interface {
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (*Product, error)
	ListProducts(ctx context.Context, category string) ([]Product, error)
	// ListLowStock returns products at or below their stock threshold.
	ListLowStock(ctx context.Context) ([]Product, error)
}

type productService struct {
	pool  *pgxpool.Pool
	stock *StockLedger
}

func NewProductService(pool *pgxpool.Pool, stock *StockLedger) ProductService {
	return &productService{pool: pool, stock: stock}
}

func (s *productService) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.ProductID == "" || p.ProductName == "" {
		return nil, Validationf("product id and name are required")
	}
	if p.Quantity < 0 {
		return nil, Validationf("quantity cannot be negative")
	}
	if p.Unit == "" {
		p.Unit = "unit"
	}
	if p.ProductStatus == "" {
		p.ProductStatus = "active"
	}

	var created Product
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (product_id, product_name, category, brand, unit, unit_price,
		                      wholesale_price, quantity, stock_threshold, product_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, product_id, product_name, category, brand, unit, unit_price,
		          wholesale_price, quantity, stock_threshold, product_status, created_at, updated_at
	`, p.ProductID, p.ProductName, p.Category, p.Brand, p.Unit, p.UnitPrice,
		p.WholesalePrice, p.Quantity, p.StockThreshold, p.ProductStatus).Scan(
		&created.ID, &created.ProductID, &created.ProductName, &created.Category, &created.Brand,
		&created.Unit, &created.UnitPrice, &created.WholesalePrice, &created.Quantity,
		&created.StockThreshold, &created.ProductStatus, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, persistence("insert product", err)
	}
	return &created, nil
}

func (s *productService) UpdateProduct(ctx context.Context, p *Product) error {
	if p.ProductID == "" {
		return Validationf("product id is required")
	}
	if p.Quantity < 0 {
		return Validationf("quantity cannot be negative")
	}

	tx, err := s.pool.BeginTx(ctx, txOptions)
	if err != nil {
		return persistence("begin product update", err)
	}
	defer rollback(ctx, tx, "update product")

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET product_name = $1, category = $2, brand = $3, unit = $4, unit_price = $5,
		    wholesale_price = $6, stock_threshold = $7, product_status = $8,
		    updated_at = NOW()
		WHERE product_id = $9
	`, p.ProductName, p.Category, p.Brand, p.Unit, p.UnitPrice,
		p.WholesalePrice, p.StockThreshold, p.ProductStatus, p.ProductID)
	if err != nil {
		return persistence("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", p.ProductID, ErrNotFound)
	}

	// Quantity goes through the stock ledger, which owns that column.
	if _, err := s.stock.SetQuantity(ctx, tx, p.ProductID, p.Quantity); err != nil {
		return persistence("set product quantity", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return persistence("commit product update", err)
	}
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE product_id = $1", productID)
	if err != nil {
		return persistence("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	return nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT id, product_id, product_name, category, brand, unit, unit_price,
		       wholesale_price, quantity, stock_threshold, product_status, created_at, updated_at
		FROM products
		WHERE product_id = $1
	`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, persistence("fetch product", err)
	}
	return p, nil
}

func (s *productService) ListProducts(ctx context.Context, category string) ([]Product, error) {
	query := `
		SELECT id, product_id, product_name, category, brand, unit, unit_price,
		       wholesale_price, quantity, stock_threshold, product_status, created_at, updated_at
		FROM products
	`
	args := []any{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, persistence("query products", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (s *productService) ListLowStock(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, product_name, category, brand, unit, unit_price,
		       wholesale_price, quantity, stock_threshold, product_status, created_at, updated_at
		FROM products
		WHERE quantity <= stock_threshold
		ORDER BY quantity ASC
	`)
	if err != nil {
		return nil, persistence("query low stock", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.ProductID, &p.ProductName, &p.Category, &p.Brand, &p.Unit, &p.UnitPrice,
		&p.WholesalePrice, &p.Quantity, &p.StockThreshold, &p.ProductStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, persistence("scan product", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate products", err)
	}
	return products, nil
}
