package repository

import (
	"context"
	"sync"

	"github.com/diewo77/cosmestock/internal/apperr"
	"github.com/diewo77/cosmestock/internal/models"
)

// memoryStore keeps the whole state in process memory. One RWMutex guards
// everything; ExecuteSale holds the write lock across its check and both
// mutations, which gives the same no-oversell guarantee as the DB transaction.
type memoryStore struct {
	mu       sync.RWMutex
	products []models.Product
	sales    []models.Sale
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store { return &memoryStore{} }

func (s *memoryStore) Products() ProductRepository { return (*memoryProducts)(s) }
func (s *memoryStore) Sales() SaleRepository       { return (*memorySales)(s) }

func (s *memoryStore) ExecuteSale(_ context.Context, productID string, quantity int, build func(p models.Product) models.Sale) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Sale{}, &apperr.NotFoundError{Entity: "product", ID: productID}
	}
	p := s.products[idx]
	if quantity > p.Stock {
		return models.Sale{}, &apperr.InsufficientStockError{ProductID: productID, Requested: quantity, Available: p.Stock}
	}
	sale := build(p)
	s.products[idx].Stock -= quantity
	// newest first, ordering key is the sale date
	s.sales = append([]models.Sale{sale}, s.sales...)
	return sale, nil
}

type memoryProducts memoryStore

func (r *memoryProducts) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryProducts) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.products {
		if r.products[i].ID == id {
			return r.products[i], nil
		}
	}
	return models.Product{}, &apperr.NotFoundError{Entity: "product", ID: id}
}

func (r *memoryProducts) Insert(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].SKU == p.SKU {
			return ErrDuplicateSKU
		}
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *memoryProducts) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Existence first, so an unknown id is NotFound even when the SKU
	// collides with another row.
	idx := -1
	for i := range r.products {
		if r.products[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &apperr.NotFoundError{Entity: "product", ID: p.ID}
	}
	for i := range r.products {
		if i != idx && r.products[i].SKU == p.SKU {
			return ErrDuplicateSKU
		}
	}
	p.CreatedAt = r.products[idx].CreatedAt
	r.products[idx] = *p
	return nil
}

func (r *memoryProducts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return &apperr.NotFoundError{Entity: "product", ID: id}
}

func (r *memoryProducts) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var categories []string
	for i := range r.products {
		c := r.products[i].Category
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	return categories, nil
}

type memorySales memoryStore

func (r *memorySales) GetAll(_ context.Context) ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

func (r *memorySales) Insert(_ context.Context, s *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append([]models.Sale{*s}, r.sales...)
	return nil
}
