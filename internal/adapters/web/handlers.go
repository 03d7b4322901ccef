package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"billing-backend/internal/app"
)

const maxRequestBody = 1 << 20 // 1 MiB

// Handler serves the HTTP API on top of the application service.
type Handler struct {
	svc app.ApplicationService
}

// NewHandler builds the chi router with all routes and middleware wired.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxRequestBody))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", h.createInvoice)
			r.Get("/", h.listInvoices)
			r.Get("/{id}", h.getInvoice)
			r.Delete("/{id}", h.deleteInvoice)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/{supplierID}", h.listOrdersBySupplier)
			r.Get("/id/{id}", h.getOrder)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.createProduct)
			r.Get("/", h.listProducts)
			r.Get("/{productID}", h.getProduct)
			r.Put("/{productID}", h.updateProduct)
			r.Delete("/{productID}", h.deleteProduct)
		})

		r.Get("/kpis", h.stockKPIs)
		r.Get("/overview", h.overview)
		r.Get("/sales", h.monthlySales)
		r.Post("/insights", h.insights)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
