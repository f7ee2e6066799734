package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/cosmestock/httpx"
	"github.com/diewo77/cosmestock/internal/catalog"
	"github.com/diewo77/cosmestock/internal/models"
	"github.com/diewo77/cosmestock/internal/stock"
)

type ProductHandler struct {
	Catalog *catalog.Service
}

func NewProductHandler(svc *catalog.Service) *ProductHandler { return &ProductHandler{Catalog: svc} }

// productView decorates a product with its derived stock status for the UI.
type productView struct {
	models.Product
	Status stock.Level `json:"status"`
}

func viewOf(p models.Product) productView {
	return productView{Product: p, Status: stock.Classify(p.Stock, p.MinStock)}
}

// List applies the search term (q), category, and stock-level filters from the
// query string and returns the matching products with their classification.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	category := r.URL.Query().Get("category")
	level := r.URL.Query().Get("level")
	filtered := stock.Filter(products, q, category, level)
	items := make([]productView, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, viewOf(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// decodeInput accepts either a JSON body or a classic form post; both carry
// the numeric fields as strings, which the catalog's validation boundary
// coerces.
func decodeInput(r *http.Request) (catalog.Input, bool) {
	var in catalog.Input
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, false
		}
		return in, true
	}
	if err := r.ParseForm(); err != nil {
		return in, false
	}
	in = catalog.Input{
		Name:        r.FormValue("name"),
		Brand:       r.FormValue("brand"),
		Category:    r.FormValue("category"),
		SKU:         r.FormValue("sku"),
		Description: r.FormValue("description"),
		Stock:       r.FormValue("stock"),
		MinStock:    r.FormValue("min_stock"),
		Price:       r.FormValue("price"),
	}
	return in, true
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	p, err := h.Catalog.Create(r.Context(), in)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, viewOf(p))
}

// Get returns a single product with its classification for detail views.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewOf(p))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	in, ok := decodeInput(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	p, err := h.Catalog.Update(r.Context(), id, in)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewOf(p))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.Categories(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": categories})
}
