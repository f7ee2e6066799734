// Package stock classifies products against their alert threshold and drives
// the catalog's search/filter behavior. Everything here is pure.
package stock

import (
	"strings"

	"github.com/diewo77/cosmestock/internal/models"
)

// Level is the stock-status classification of a product.
type Level string

const (
	// Critical: out of stock entirely.
	Critical Level = "critical"
	// Warning: in stock but at or below the alert threshold.
	Warning Level = "warning"
	// Normal: above the alert threshold.
	Normal Level = "normal"
)

// FilterAll disables a category or level filter.
const FilterAll = "all"

// Classify maps stock vs. threshold to a Level. For any non-negative pair the
// three cases are exhaustive and mutually exclusive.
func Classify(stock, minStock int) Level {
	switch {
	case stock == 0:
		return Critical
	case stock <= minStock:
		return Warning
	default:
		return Normal
	}
}

// Matches reports whether a product passes the combined search term, category
// filter, and stock-level filter. The term matches case-insensitively against
// name, brand, and SKU; an empty term matches everything.
func Matches(p models.Product, term, category string, level string) bool {
	if term != "" {
		t := strings.ToLower(term)
		if !strings.Contains(strings.ToLower(p.Name), t) &&
			!strings.Contains(strings.ToLower(p.Brand), t) &&
			!strings.Contains(strings.ToLower(p.SKU), t) {
			return false
		}
	}
	if category != "" && category != FilterAll && p.Category != category {
		return false
	}
	if level != "" && level != FilterAll && Classify(p.Stock, p.MinStock) != Level(level) {
		return false
	}
	return true
}

// Filter returns the products passing Matches, preserving input order.
func Filter(products []models.Product, term, category string, level string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, term, category, level) {
			out = append(out, p)
		}
	}
	return out
}

// Partition splits products into the three alert buckets for dashboard display.
func Partition(products []models.Product) (critical, warning, normal []models.Product) {
	for _, p := range products {
		switch Classify(p.Stock, p.MinStock) {
		case Critical:
			critical = append(critical, p)
		case Warning:
			warning = append(warning, p)
		default:
			normal = append(normal, p)
		}
	}
	return critical, warning, normal
}
