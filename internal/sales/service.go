// Package sales validates and executes sale transactions: check available
// stock, snapshot the product, decrement stock and append the sale record in
// one atomic step.
package sales

import (
	"context"
	"strings"
	"time"

	"github.com/diewo77/cosmestock/internal/apperr"
	"github.com/diewo77/cosmestock/internal/models"
	"github.com/diewo77/cosmestock/internal/repository"
	"github.com/diewo77/cosmestock/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input carries raw sale fields as submitted.
type Input struct {
	Quantity     string `json:"quantity"`
	CustomerName string `json:"customer_name"`
	Notes        string `json:"notes"`
}

// Summary aggregates the sale log for dashboard display.
type Summary struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type Service struct {
	exec  repository.SaleExecutor
	sales repository.SaleRepository
}

func NewService(exec repository.SaleExecutor, sales repository.SaleRepository) *Service {
	return &Service{exec: exec, sales: sales}
}

// Record executes a sale of the given product. Quantity is validated before
// anything is touched; the stock check, decrement, and sale append happen
// atomically inside the executor. The actor id tags the created record.
func (s *Service) Record(ctx context.Context, productID string, in Input, actor string) (models.Sale, error) {
	v := validation.Violations{}
	quantity := validation.PositiveInt("quantity", in.Quantity, v)
	if !v.Empty() {
		return models.Sale{}, &apperr.ValidationError{Violations: v}
	}
	now := time.Now().UTC()
	return s.exec.ExecuteSale(ctx, productID, quantity, func(p models.Product) models.Sale {
		return models.Sale{
			ID:           uuid.NewString(),
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductSKU:   p.SKU,
			Quantity:     quantity,
			UnitPrice:    p.Price,
			TotalPrice:   p.Price.Mul(decimal.NewFromInt(int64(quantity))),
			CustomerName: strings.TrimSpace(in.CustomerName),
			Notes:        strings.TrimSpace(in.Notes),
			SoldBy:       actor,
			Date:         now,
		}
	})
}

// History returns the full sale log, most recent first.
func (s *Service) History(ctx context.Context) ([]models.Sale, error) {
	return s.sales.GetAll(ctx)
}

// Summarize folds the sale log into a count and total revenue.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	all, err := s.sales.GetAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	revenue := decimal.Zero
	for _, sale := range all {
		revenue = revenue.Add(sale.TotalPrice)
	}
	return Summary{Count: len(all), Revenue: revenue}, nil
}
