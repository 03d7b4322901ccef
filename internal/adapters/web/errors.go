package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"billing-backend/internal/core"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	ProductID string `json:"productId,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, msg, code string, status int) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	})
}

// respondError maps domain errors onto HTTP status codes. Validation failures are
// the caller's fault (400), stock rejections are a business conflict (409), missing
// rows are 404, and anything touching the database is an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, ve.Error(), "VALIDATION_ERROR", http.StatusBadRequest)
		return
	}

	var ise *core.InsufficientStockError
	if errors.As(err, &ise) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     ise.Error(),
			Code:      "INSUFFICIENT_STOCK",
			ProductID: ise.ProductID,
			RequestID: requestIDFromContext(r.Context()),
		})
		return
	}

	if core.IsNotFound(err) {
		writeError(w, r, "not found", "NOT_FOUND", http.StatusNotFound)
		return
	}

	var pe *core.PersistenceError
	if errors.As(err, &pe) {
		log.Error().Err(pe).Str("op", pe.Op).Str("request_id", requestIDFromContext(r.Context())).Msg("persistence failure")
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Msg("unhandled error")
	writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
}

// decodeJSON decodes the request body into v, turning malformed JSON into a 400.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return core.Validationf("invalid request body: %v", err)
	}
	return nil
}
