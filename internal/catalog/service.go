// Package catalog owns the product collection: create, update, delete, list,
// and the derived category set. All input crosses the validation boundary as
// strings and is coerced into typed values before anything is persisted.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/cosmestock/internal/apperr"
	"github.com/diewo77/cosmestock/internal/models"
	"github.com/diewo77/cosmestock/internal/repository"
	"github.com/diewo77/cosmestock/validation"
	"github.com/google/uuid"
)

// Input carries raw product fields as submitted, before coercion.
type Input struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Stock       string `json:"stock"`
	MinStock    string `json:"min_stock"`
	Price       string `json:"price"`
}

type Service struct {
	products repository.ProductRepository
}

func NewService(products repository.ProductRepository) *Service {
	return &Service{products: products}
}

// parse coerces and validates input into a Product without an ID. Fail fast:
// a non-empty violation set means nothing was or will be persisted.
func parse(in Input) (models.Product, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("brand", in.Brand, v)
	validation.Required("category", in.Category, v)
	validation.Required("sku", in.SKU, v)
	stock := validation.NonNegativeInt("stock", in.Stock, v)
	minStock := validation.NonNegativeInt("min_stock", in.MinStock, v)
	price := validation.NonNegativeDecimal("price", in.Price, v)
	if !v.Empty() {
		return models.Product{}, &apperr.ValidationError{Violations: v}
	}
	return models.Product{
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		Category:    strings.TrimSpace(in.Category),
		SKU:         strings.ToUpper(strings.TrimSpace(in.SKU)),
		Description: strings.TrimSpace(in.Description),
		Stock:       stock,
		MinStock:    minStock,
		Price:       price,
	}, nil
}

func duplicateSKU(err error) error {
	if errors.Is(err, repository.ErrDuplicateSKU) {
		return &apperr.ValidationError{Violations: validation.Violations{"sku": "already_exists"}}
	}
	return err
}

// Create validates the input, assigns a fresh id, and stores the product.
func (s *Service) Create(ctx context.Context, in Input) (models.Product, error) {
	p, err := parse(in)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = uuid.NewString()
	if err := s.products.Insert(ctx, &p); err != nil {
		return models.Product{}, duplicateSKU(err)
	}
	return p, nil
}

// Update replaces all mutable fields of the identified product.
func (s *Service) Update(ctx context.Context, id string, in Input) (models.Product, error) {
	p, err := parse(in)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = id
	if err := s.products.Update(ctx, &p); err != nil {
		return models.Product{}, duplicateSKU(err)
	}
	return p, nil
}

// Delete removes the product. Sales recorded against it keep their snapshot.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}
