// Package repository defines the persistence boundary consumed by the catalog
// and sale services, with two implementations: a gorm-backed store (sqlite or
// postgres) and an in-memory store for embedded/offline use.
package repository

import (
	"context"
	"errors"

	"github.com/diewo77/cosmestock/internal/models"
)

// ErrDuplicateSKU is returned by Insert and Update when the product's SKU
// collides with another product. The catalog surfaces it as a field violation.
var ErrDuplicateSKU = errors.New("sku already exists")

type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	// Update replaces all mutable fields of the product identified by p.ID.
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	// Categories returns the distinct category values currently present.
	Categories(ctx context.Context) ([]string, error)
}

type SaleRepository interface {
	// GetAll returns sales most recent first (ordered by Date).
	GetAll(ctx context.Context) ([]models.Sale, error)
	Insert(ctx context.Context, s *models.Sale) error
}

// SaleExecutor is the one transactional boundary in the system. ExecuteSale
// must apply the stock check, the stock decrement, and the sale insert as a
// single atomic step: two concurrent sales must never both pass the stock
// check against the same units. The build callback receives the product as it
// was before the decrement and returns the sale record to append.
type SaleExecutor interface {
	ExecuteSale(ctx context.Context, productID string, quantity int, build func(p models.Product) models.Sale) (models.Sale, error)
}

// Store bundles the three persistence facets behind one constructor.
type Store interface {
	SaleExecutor
	Products() ProductRepository
	Sales() SaleRepository
}
