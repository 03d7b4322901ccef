package web

import (
	"net/http"
	"strconv"
	"time"

	"billing-backend/internal/core"
)

func (h *Handler) stockKPIs(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetStockKPIs(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.GetOverview(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handler) monthlySales(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("month")
	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		respondError(w, r, core.Validationf("month must be a number between 1 and 12"))
		return
	}

	invoices, err := h.svc.MonthlySales(r.Context(), time.Month(month))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetInsights(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
