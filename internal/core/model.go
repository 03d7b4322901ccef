package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog row. Rows pre-exist the invoice/order write path;
// only the quantity column is mutated by it, through the StockLedger.
type Product struct {
	ID             int             `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Quantity       int             `json:"quantity"`
	StockThreshold int             `json:"stock_threshold"`
	ProductStatus  string          `json:"product_status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Invoice is a sales invoice header plus its line items.
type Invoice struct {
	ID                    int             `json:"id"`
	InvoiceID             string          `json:"invoice_id"`
	CustomerID            string          `json:"customer_id"`
	InvoiceDate           time.Time       `json:"invoice_date"`
	PaymentStatus         string          `json:"payment_status"`
	PaymentMethod         string          `json:"payment_method"`
	CurrencyType          string          `json:"currency_type"`
	TransactionID         string          `json:"transaction_id"`
	ShippingCustomerName  string          `json:"shipping_customer_name"`
	ShippingCustomerPhone string          `json:"shipping_customer_phone"`
	ShippingAddress       string          `json:"shipping_address"`
	GrandTotal            decimal.Decimal `json:"grand_total"`
	CreatedAt             time.Time       `json:"created_at"`
	Items                 []LineItem      `json:"items,omitempty"`
}

// PurchaseOrder is a purchase order header plus its line items.
// Creating one never touches product stock.
type PurchaseOrder struct {
	ID              int             `json:"id"`
	OrderID         string          `json:"order_id"`
	SupplierID      string          `json:"supplier_id"`
	OrderDate       time.Time       `json:"order_date"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	CurrencyType    string          `json:"currency_type"`
	TransactionID   string          `json:"transaction_id"`
	ShippingAddress string          `json:"shipping_address"`
	OrderStatus     string          `json:"order_status"`
	OrderNotes      string          `json:"order_notes"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []LineItem      `json:"items,omitempty"`
}

// LineItem is one product-quantity-price row belonging to a header.
// Items are only ever written as an atomic batch alongside their header.
type LineItem struct {
	ID          int             `json:"id,omitempty"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// StockKPIs aggregates stock and valuation figures over the product table.
type StockKPIs struct {
	TotalStock      int             `json:"total_stock"`
	TotalRetail     decimal.Decimal `json:"total_retail"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// Overview summarizes business activity for the dashboard.
type Overview struct {
	TotalInvoices      int             `json:"total_invoices"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalOrders        int             `json:"total_orders"`
	TotalPurchaseSpend decimal.Decimal `json:"total_purchase_spend"`
}
