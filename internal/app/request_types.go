package app

// ItemInput is one proposed line item. Quantity is a whole number of units;
// money fields travel as decimal strings and are parsed during validation so
// a malformed amount is rejected before any transaction opens.
type ItemInput struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal,omitempty"`
}

// CreateInvoiceRequest is the inbound shape for POST /api/invoices.
type CreateInvoiceRequest struct {
	InvoiceID             string      `json:"invoiceId"`
	CustomerID            string      `json:"customerId"`
	InvoiceDate           string      `json:"invoiceDate,omitempty"`
	PaymentStatus         string      `json:"paymentStatus,omitempty"`
	PaymentMethod         string      `json:"paymentMethod,omitempty"`
	CurrencyType          string      `json:"currencyType,omitempty"`
	TransactionID         string      `json:"transactionId,omitempty"`
	ShippingCustomerName  string      `json:"shippingCustomerName,omitempty"`
	ShippingCustomerPhone string      `json:"shippingCustomerPhone,omitempty"`
	ShippingAddress       string      `json:"shippingAddress,omitempty"`
	GrandTotal            string      `json:"grandTotal,omitempty"`
	Items                 []ItemInput `json:"items"`
}

// CreateOrderRequest is the inbound shape for POST /api/orders.
type CreateOrderRequest struct {
	OrderID         string      `json:"orderId"`
	SupplierID      string      `json:"supplierId"`
	OrderDate       string      `json:"orderDate,omitempty"`
	DeliveryDate    string      `json:"deliveryDate,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	PaymentStatus   string      `json:"paymentStatus,omitempty"`
	CurrencyType    string      `json:"currencyType,omitempty"`
	TransactionID   string      `json:"transactionId,omitempty"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	OrderStatus     string      `json:"orderStatus,omitempty"`
	OrderNotes      string      `json:"orderNotes,omitempty"`
	GrandTotal      string      `json:"grandTotal,omitempty"`
	Items           []ItemInput `json:"items"`
}

// ProductRequest is the inbound shape for product create/update.
type ProductRequest struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Category       string `json:"category,omitempty"`
	Brand          string `json:"brand,omitempty"`
	Unit           string `json:"unit,omitempty"`
	UnitPrice      string `json:"unitPrice,omitempty"`
	WholesalePrice string `json:"wholesalePrice,omitempty"`
	Quantity       int    `json:"quantity"`
	StockThreshold int    `json:"stockThreshold,omitempty"`
	ProductStatus  string `json:"productStatus,omitempty"`
}
