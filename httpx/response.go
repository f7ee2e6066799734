package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/cosmestock/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// WriteError maps service error kinds onto HTTP statuses. Validation and
// insufficient-stock responses carry details so a UI can render them inline
// next to the triggering input; everything else is a plain error code.
func WriteError(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
		return
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		JSONError(w, http.StatusNotFound, "not_found", map[string]string{"entity": nf.Entity, "id": nf.ID})
		return
	}
	var is *apperr.InsufficientStockError
	if errors.As(err, &is) {
		JSONError(w, http.StatusConflict, "insufficient_stock", map[string]int{"requested": is.Requested, "available": is.Available})
		return
	}
	JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}
