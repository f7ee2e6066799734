package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/cosmestock/auth"
	"github.com/diewo77/cosmestock/httpx"
	"github.com/diewo77/cosmestock/internal/sales"
)

type SaleHandler struct {
	Sales *sales.Service
}

func NewSaleHandler(svc *sales.Service) *SaleHandler { return &SaleHandler{Sales: svc} }

// Record executes a sale for the product named in the path. Insufficient
// stock comes back as 409 with the available quantity so the UI can prompt
// for a lower quantity instead of treating it as a failure.
func (h *SaleHandler) Record(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in sales.Input
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
			return
		}
		in = sales.Input{
			Quantity:     r.FormValue("quantity"),
			CustomerName: r.FormValue("customer_name"),
			Notes:        r.FormValue("notes"),
		}
	}
	sale, err := h.Sales.Record(r.Context(), productID, in, auth.ActorID(r.Context()))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

// List returns the sale history, most recent first.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	history, err := h.Sales.History(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": history, "total": len(history)})
}
