package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/cosmestock/internal/apperr"
	"github.com/diewo77/cosmestock/internal/models"
	"gorm.io/gorm"
)

type gormStore struct{ db *gorm.DB }

// NewGormStore wraps a connected gorm DB (sqlite or postgres) as a Store.
func NewGormStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Products() ProductRepository { return &gormProducts{db: s.db} }
func (s *gormStore) Sales() SaleRepository       { return &gormSales{db: s.db} }

// ExecuteSale runs the check-then-act sequence inside one transaction. The
// decrement is guarded by `stock >= quantity` in the WHERE clause, so even if
// the pre-read was stale (another client sold the same units between our read
// and our write) the guard misses, RowsAffected stays 0, and the sale is
// refused instead of overselling. sqlite has no SELECT ... FOR UPDATE, which
// is why the guard, not a row lock, is the source of truth.
func (s *gormStore) ExecuteSale(ctx context.Context, productID string, quantity int, build func(p models.Product) models.Sale) (models.Sale, error) {
	var sale models.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Entity: "product", ID: productID}
			}
			return &apperr.PersistenceError{Op: "sale.lookup", Err: err}
		}
		if quantity > p.Stock {
			return &apperr.InsufficientStockError{ProductID: productID, Requested: quantity, Available: p.Stock}
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return &apperr.PersistenceError{Op: "sale.decrement", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			var current models.Product
			available := 0
			if err := tx.First(&current, "id = ?", productID).Error; err == nil {
				available = current.Stock
			}
			return &apperr.InsufficientStockError{ProductID: productID, Requested: quantity, Available: available}
		}
		sale = build(p)
		if err := tx.Create(&sale).Error; err != nil {
			return &apperr.PersistenceError{Op: "sale.insert", Err: err}
		}
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

type gormProducts struct{ db *gorm.DB }

func (r *gormProducts) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&products).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "products.getAll", Err: err}
	}
	return products, nil
}

func (r *gormProducts) GetByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, &apperr.NotFoundError{Entity: "product", ID: id}
		}
		return models.Product{}, &apperr.PersistenceError{Op: "products.getByID", Err: err}
	}
	return p, nil
}

func (r *gormProducts) Insert(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateSKU
		}
		return &apperr.PersistenceError{Op: "products.insert", Err: err}
	}
	return nil
}

func (r *gormProducts) Update(ctx context.Context, p *models.Product) error {
	var existing models.Product
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", p.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Entity: "product", ID: p.ID}
		}
		return &apperr.PersistenceError{Op: "products.update", Err: err}
	}
	p.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateSKU
		}
		return &apperr.PersistenceError{Op: "products.update", Err: err}
	}
	return nil
}

func (r *gormProducts) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return &apperr.PersistenceError{Op: "products.delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

func (r *gormProducts) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Distinct().Pluck("category", &categories).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "products.categories", Err: err}
	}
	return categories, nil
}

type gormSales struct{ db *gorm.DB }

func (r *gormSales) GetAll(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).Order("date desc").Find(&sales).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "sales.getAll", Err: err}
	}
	return sales, nil
}

func (r *gormSales) Insert(ctx context.Context, s *models.Sale) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return &apperr.PersistenceError{Op: "sales.insert", Err: err}
	}
	return nil
}

// isDuplicate detects unique-index violations across drivers: gorm's
// translated error where available, otherwise the sqlite/postgres message.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
