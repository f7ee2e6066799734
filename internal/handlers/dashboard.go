package handlers

import (
	"net/http"

	"github.com/diewo77/cosmestock/httpx"
	"github.com/diewo77/cosmestock/internal/catalog"
	"github.com/diewo77/cosmestock/internal/sales"
	"github.com/diewo77/cosmestock/internal/stock"
)

// DashboardHandler composes read-only stats over the catalog and the sale
// log: product counts per alert bucket, the low-stock lists, and revenue.
type DashboardHandler struct {
	Catalog *catalog.Service
	Sales   *sales.Service
}

func NewDashboardHandler(c *catalog.Service, s *sales.Service) *DashboardHandler {
	return &DashboardHandler{Catalog: c, Sales: s}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	summary, err := h.Sales.Summarize(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	critical, warning, _ := stock.Partition(products)
	criticalViews := make([]productView, 0, len(critical))
	for _, p := range critical {
		criticalViews = append(criticalViews, viewOf(p))
	}
	warningViews := make([]productView, 0, len(warning))
	for _, p := range warning {
		warningViews = append(warningViews, viewOf(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"product_count":  len(products),
		"critical_count": len(critical),
		"warning_count":  len(warning),
		"critical":       criticalViews,
		"warning":        warningViews,
		"sales":          summary,
	})
}
