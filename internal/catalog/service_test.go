package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/diewo77/cosmestock/internal/apperr"
	"github.com/diewo77/cosmestock/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return NewService(repository.NewMemoryStore().Products())
}

func validInput() Input {
	return Input{
		Name:        "Rouge à Lèvres Mat",
		Brand:       "Glamour Pro",
		Category:    "Maquillage",
		SKU:         "ral001",
		Description: "Rouge à lèvres longue tenue",
		Stock:       "5",
		MinStock:    "10",
		Price:       "25.99",
	}
}

func TestCreateCoercesAndAssignsID(t *testing.T) {
	svc := newService()
	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 5, p.Stock)
	assert.Equal(t, 10, p.MinStock)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("25.99")))
	assert.Equal(t, "RAL001", p.SKU, "sku is normalized to upper case")
}

func TestCreateValidationFailsFast(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"missing name", func(in *Input) { in.Name = "" }, "name"},
		{"missing brand", func(in *Input) { in.Brand = "  " }, "brand"},
		{"missing category", func(in *Input) { in.Category = "" }, "category"},
		{"missing sku", func(in *Input) { in.SKU = "" }, "sku"},
		{"missing stock", func(in *Input) { in.Stock = "" }, "stock"},
		{"non-numeric stock", func(in *Input) { in.Stock = "beaucoup" }, "stock"},
		{"negative stock", func(in *Input) { in.Stock = "-1" }, "stock"},
		{"non-numeric min stock", func(in *Input) { in.MinStock = "x" }, "min_stock"},
		{"missing price", func(in *Input) { in.Price = "" }, "price"},
		{"malformed price", func(in *Input) { in.Price = "25,99" }, "price"},
		{"negative price", func(in *Input) { in.Price = "-1.00" }, "price"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validInput()
			c.mutate(&in)
			_, err := svc.Create(ctx, in)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Violations, c.field)
		})
	}

	// Nothing was persisted by any failed attempt.
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateDuplicateSKUIsViolation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Name = "Autre Produit"
	_, err = svc.Create(ctx, in)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "already_exists", ve.Violations["sku"])
}

func TestUpdateRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	p, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := Input{
		Name: "Rouge à Lèvres Brillant", Brand: "Glamour Pro", Category: "Maquillage",
		SKU: "RAL001", Stock: "20", MinStock: "4", Price: "29.90",
	}
	updated, err := svc.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Rouge à Lèvres Brillant", all[0].Name)
	assert.Equal(t, 20, all[0].Stock)
	assert.Equal(t, 4, all[0].MinStock)
	assert.True(t, all[0].Price.Equal(decimal.RequireFromString("29.90")))
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newService()
	_, err := svc.Update(context.Background(), "missing", validInput())
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDeleteUnknownID(t *testing.T) {
	svc := newService()
	err := svc.Delete(context.Background(), "missing")
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCategoriesDerived(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	for i, c := range []struct{ sku, category string }{
		{"A001", "Maquillage"}, {"A002", "Soins"}, {"A003", "Maquillage"},
	} {
		in := validInput()
		in.SKU = c.sku
		in.Category = c.category
		in.Name = fmt.Sprintf("%s %d", in.Name, i)
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}
	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Maquillage", "Soins"}, categories)
}
