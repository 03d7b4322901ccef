package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"billing-backend/internal/ai"
	"billing-backend/internal/core"
)

type appService struct {
	invoices  core.InvoiceService
	orders    core.OrderService
	products  core.ProductService
	reporting core.ReportingService
	insights  ai.InsightsService
}

// NewAppService wires the application facade over the core services.
func NewAppService(
	invoices core.InvoiceService,
	orders core.OrderService,
	products core.ProductService,
	reporting core.ReportingService,
	insights ai.InsightsService,
) ApplicationService {
	return &appService{
		invoices:  invoices,
		orders:    orders,
		products:  products,
		reporting: reporting,
		insights:  insights,
	}
}

// ── Invoices ─────────────────────────────────────────────────────────────────

func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*CreateResult, error) {
	if req.InvoiceID == "" {
		return nil, core.Validationf("invoiceId is required")
	}
	if req.CustomerID == "" {
		return nil, core.Validationf("customerId is required")
	}

	items, computed, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}
	grandTotal, err := resolveGrandTotal(req.GrandTotal, computed)
	if err != nil {
		return nil, err
	}
	invoiceDate, err := parseDate(req.InvoiceDate)
	if err != nil {
		return nil, err
	}

	inv := &core.Invoice{
		InvoiceID:             req.InvoiceID,
		CustomerID:            req.CustomerID,
		InvoiceDate:           invoiceDate,
		PaymentStatus:         defaultStr(req.PaymentStatus, "unpaid"),
		PaymentMethod:         req.PaymentMethod,
		CurrencyType:          defaultStr(req.CurrencyType, "INR"),
		TransactionID:         req.TransactionID,
		ShippingCustomerName:  req.ShippingCustomerName,
		ShippingCustomerPhone: req.ShippingCustomerPhone,
		ShippingAddress:       req.ShippingAddress,
		GrandTotal:            grandTotal,
	}

	id, err := s.invoices.CreateInvoice(ctx, inv, items)
	if err != nil {
		return nil, err
	}
	return &CreateResult{ID: id, BusinessID: req.InvoiceID}, nil
}

func (s *appService) GetInvoice(ctx context.Context, invoiceID string) (*core.Invoice, error) {
	return s.invoices.GetInvoice(ctx, invoiceID)
}

func (s *appService) ListInvoices(ctx context.Context) ([]core.Invoice, error) {
	return s.invoices.ListInvoices(ctx)
}

func (s *appService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.invoices.DeleteInvoice(ctx, invoiceID)
}

// ── Purchase orders ──────────────────────────────────────────────────────────

func (s *appService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateResult, error) {
	if req.OrderID == "" {
		return nil, core.Validationf("orderId is required")
	}
	if req.SupplierID == "" {
		return nil, core.Validationf("supplierId is required")
	}

	items, computed, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}
	grandTotal, err := resolveGrandTotal(req.GrandTotal, computed)
	if err != nil {
		return nil, err
	}
	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		return nil, err
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		d, err := parseDate(req.DeliveryDate)
		if err != nil {
			return nil, err
		}
		deliveryDate = &d
	}

	po := &core.PurchaseOrder{
		OrderID:         req.OrderID,
		SupplierID:      req.SupplierID,
		OrderDate:       orderDate,
		DeliveryDate:    deliveryDate,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   defaultStr(req.PaymentStatus, "unpaid"),
		CurrencyType:    defaultStr(req.CurrencyType, "INR"),
		TransactionID:   transactionIDFor(req.PaymentMethod, req.TransactionID),
		ShippingAddress: req.ShippingAddress,
		OrderStatus:     defaultStr(req.OrderStatus, "pending"),
		OrderNotes:      req.OrderNotes,
		GrandTotal:      grandTotal,
	}

	id, err := s.orders.CreateOrder(ctx, po, items)
	if err != nil {
		return nil, err
	}
	return &CreateResult{ID: id, BusinessID: req.OrderID}, nil
}

func (s *appService) GetOrder(ctx context.Context, orderID string) (*core.PurchaseOrder, error) {
	return s.orders.GetOrder(ctx, orderID)
}

func (s *appService) ListOrdersBySupplier(ctx context.Context, supplierID string) ([]core.PurchaseOrder, error) {
	if supplierID == "" {
		return nil, core.Validationf("supplierId is required")
	}
	return s.orders.ListOrdersBySupplier(ctx, supplierID)
}

// ── Products ─────────────────────────────────────────────────────────────────

func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.products.CreateProduct(ctx, p)
}

func (s *appService) UpdateProduct(ctx context.Context, req ProductRequest) error {
	p, err := productFromRequest(req)
	if err != nil {
		return err
	}
	return s.products.UpdateProduct(ctx, p)
}

func (s *appService) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return core.Validationf("productId is required")
	}
	return s.products.DeleteProduct(ctx, productID)
}

func (s *appService) GetProduct(ctx context.Context, productID string) (*core.Product, error) {
	if productID == "" {
		return nil, core.Validationf("productId is required")
	}
	return s.products.GetProduct(ctx, productID)
}

func (s *appService) ListProducts(ctx context.Context, category string) ([]core.Product, error) {
	return s.products.ListProducts(ctx, category)
}

// ── Reporting and insights ───────────────────────────────────────────────────

func (s *appService) GetStockKPIs(ctx context.Context) (*KPIResult, error) {
	kpis, err := s.reporting.GetStockKPIs(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return &KPIResult{KPIs: kpis, LowStock: lowStock}, nil
}

func (s *appService) GetOverview(ctx context.Context) (*core.Overview, error) {
	return s.reporting.GetOverview(ctx)
}

func (s *appService) MonthlySales(ctx context.Context, month time.Month) ([]core.Invoice, error) {
	return s.reporting.MonthlySales(ctx, month)
}

func (s *appService) GetInsights(ctx context.Context) (*InsightsResult, error) {
	report, err := s.buildReport(ctx)
	if err != nil {
		return nil, err
	}
	insights, err := s.insights.Analyze(ctx, report)
	if err != nil {
		return nil, err
	}
	return &InsightsResult{Report: report, Insights: insights}, nil
}

// buildReport renders the figures the insights agent interprets.
func (s *appService) buildReport(ctx context.Context) (string, error) {
	kpis, err := s.reporting.GetStockKPIs(ctx)
	if err != nil {
		return "", err
	}
	overview, err := s.reporting.GetOverview(ctx)
	if err != nil {
		return "", err
	}
	lowStock, err := s.products.ListLowStock(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Stock: %d units on hand, retail value %s, cost value %s, potential profit %s.\n",
		kpis.TotalStock, kpis.TotalRetail.StringFixed(2), kpis.TotalCost.StringFixed(2),
		kpis.PotentialProfit.StringFixed(2))
	fmt.Fprintf(&sb, "Activity: %d invoices totalling %s revenue; %d purchase orders totalling %s spend.\n",
		overview.TotalInvoices, overview.TotalRevenue.StringFixed(2),
		overview.TotalOrders, overview.TotalPurchaseSpend.StringFixed(2))
	if len(lowStock) == 0 {
		sb.WriteString("Low stock: none.\n")
	} else {
		sb.WriteString("Low stock:\n")
		for _, p := range lowStock {
			fmt.Fprintf(&sb, "- %s (%s): %d on hand, threshold %d\n",
				p.ProductName, p.ProductID, p.Quantity, p.StockThreshold)
		}
	}
	return sb.String(), nil
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// transactionIDFor blanks the transaction reference for cash payments,
// where no external payment system reference exists.
func transactionIDFor(paymentMethod, transactionID string) string {
	if strings.EqualFold(paymentMethod, "cash") {
		return ""
	}
	return transactionID
}

func productFromRequest(req ProductRequest) (*core.Product, error) {
	if req.ProductID == "" {
		return nil, core.Validationf("productId is required")
	}
	unitPrice, err := parseAmount(req.UnitPrice)
	if err != nil {
		return nil, core.Validationf("invalid unitPrice %q", req.UnitPrice)
	}
	wholesale, err := parseAmount(req.WholesalePrice)
	if err != nil {
		return nil, core.Validationf("invalid wholesalePrice %q", req.WholesalePrice)
	}
	if req.Quantity < 0 {
		return nil, core.Validationf("quantity cannot be negative")
	}

	return &core.Product{
		ProductID:      req.ProductID,
		ProductName:    req.ProductName,
		Category:       req.Category,
		Brand:          req.Brand,
		Unit:           req.Unit,
		UnitPrice:      unitPrice,
		WholesalePrice: wholesale,
		Quantity:       req.Quantity,
		StockThreshold: req.StockThreshold,
		ProductStatus:  req.ProductStatus,
	}, nil
}
