package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"billing-backend/internal/core"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return body
}

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", core.Validationf("quantity must be positive"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"insufficient stock", &core.InsufficientStockError{ProductID: "P-C", Requested: 100}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"not found", core.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", errors.Join(errors.New("invoice INV-1"), core.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"persistence", &core.PersistenceError{Op: "insert invoice header", Err: errors.New("boom")}, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			respondError(rec, req, tc.err)

			if rec.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			body := decodeErrorBody(t, rec)
			if body.Code != tc.wantCode {
				t.Errorf("Expected code %s, got %s", tc.wantCode, body.Code)
			}
		})
	}
}

func TestRespondError_StockConflictNamesProduct(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", nil)
	respondError(rec, req, &core.InsufficientStockError{ProductID: "P-C", Requested: 5})

	body := decodeErrorBody(t, rec)
	if body.ProductID != "P-C" {
		t.Errorf("Expected offending product P-C in payload, got %q", body.ProductID)
	}
}

func TestRespondError_PersistenceDetailsAreHidden(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", nil)
	respondError(rec, req, &core.PersistenceError{Op: "insert invoice header", Err: errors.New("connection refused to 10.0.0.5")})

	body := decodeErrorBody(t, rec)
	if body.Error != "internal server error" {
		t.Errorf("Expected opaque message, got %q", body.Error)
	}
}

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == "" {
		t.Error("Expected a generated request id in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("Expected header %q to match context id %q", got, seen)
	}
}

func TestRequestID_RejectsUnsafeCallerIDs(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "evil\r\ninjection")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got == "evil\r\ninjection" || got == "" {
		t.Errorf("Expected a regenerated request id, got %q", got)
	}
}

func TestRequestID_KeepsSafeCallerIDs(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "caller-supplied-42" {
		t.Errorf("Expected caller id preserved, got %q", got)
	}
}
