package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
)

func validProductInput() ProductUpdateInput {
	return ProductUpdateInput{
		Name:           "Product A",
		OriginalPrice:  decimal.RequireFromString("40"),
		OfferPrice:     decimal.RequireFromString("30.50"),
		BottleQuantity: 1,
		Description:    "updated",
		Images:         models.ProductImages{{URL: "/uploads/a-1.png", Name: "front"}},
		IsActive:       true,
	}
}

func TestListProductsSynthesizesCombo(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewProductService(db, cfg)
	ctx := context.Background()

	_, err := svc.UpdateProduct(ctx, 1, validProductInput())
	require.NoError(t, err)

	input := validProductInput()
	input.Name = "Product B"
	input.Images = models.ProductImages{{URL: "/uploads/b-1.png"}, {URL: "/uploads/b-2.png"}}
	_, err = svc.UpdateProduct(ctx, 2, input)
	require.NoError(t, err)

	products, err := svc.ListProducts(ctx, true)
	require.NoError(t, err)
	require.Len(t, products, 3)

	combo := products[2]
	assert.Equal(t, models.ProductTypeCombo, combo.Type)
	assert.Equal(t, models.ProductImages{
		{URL: "/uploads/a-1.png", Name: "front"},
		{URL: "/uploads/b-1.png"},
		{URL: "/uploads/b-2.png"},
	}, combo.Images)

	// 后台列表返回存储的原始数据
	all, err := svc.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, all[2].Images)
}

func TestListProductsActiveOnly(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewProductService(db, cfg)
	ctx := context.Background()

	input := validProductInput()
	input.IsActive = false
	_, err := svc.UpdateProduct(ctx, 1, input)
	require.NoError(t, err)

	active, err := svc.ListProducts(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, uint(2), active[0].ID)
	// 下架单品的图片不进入套餐
	assert.Empty(t, active[1].Images)

	all, err := svc.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetProduct(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewProductService(db, cfg)
	ctx := context.Background()

	_, err := svc.UpdateProduct(ctx, 2, func() ProductUpdateInput {
		in := validProductInput()
		in.Name = "Product B"
		return in
	}())
	require.NoError(t, err)

	combo, err := svc.GetProduct(ctx, 3, true)
	require.NoError(t, err)
	assert.Equal(t, models.ProductImages{{URL: "/uploads/a-1.png", Name: "front"}}, combo.Images)

	raw, err := svc.GetProduct(ctx, 3, false)
	require.NoError(t, err)
	assert.Empty(t, raw.Images)

	_, err = svc.GetProduct(ctx, 99, false)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductHidesInactiveFromPublic(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewProductService(db, cfg)
	ctx := context.Background()

	input := validProductInput()
	input.IsActive = false
	_, err := svc.UpdateProduct(ctx, 1, input)
	require.NoError(t, err)

	_, err = svc.GetProduct(ctx, 1, true)
	assert.ErrorIs(t, err, ErrProductNotFound)

	product, err := svc.GetProduct(ctx, 1, false)
	require.NoError(t, err)
	assert.False(t, product.IsActive)
}

func TestUpdateProduct(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewProductService(db, cfg)
	ctx := context.Background()

	input := validProductInput()
	input.Name = "  Renamed  "
	updated, err := svc.UpdateProduct(ctx, 1, input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	stored, err := svc.GetProduct(ctx, 1, false)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
	assert.True(t, decimal.RequireFromString("30.5").Equal(stored.OfferPrice))
	assert.True(t, decimal.RequireFromString("40").Equal(stored.OriginalPrice))
	assert.Equal(t, models.ProductTypeSingle, stored.Type)
	assert.Equal(t, input.Images, stored.Images)
}

func TestUpdateProductComboDropsImages(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewProductService(db, cfg)

	input := validProductInput()
	input.Name = "Combo"
	input.BottleQuantity = 2
	updated, err := svc.UpdateProduct(context.Background(), 3, input)
	require.NoError(t, err)
	assert.Empty(t, updated.Images)
	assert.Equal(t, models.ProductTypeCombo, updated.Type)
}

func TestUpdateProductValidation(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewProductService(db, cfg)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *ProductUpdateInput)
	}{
		{"empty name", func(in *ProductUpdateInput) { in.Name = "   " }},
		{"negative price", func(in *ProductUpdateInput) { in.OfferPrice = decimal.NewFromInt(-1) }},
		{"zero bottles", func(in *ProductUpdateInput) { in.BottleQuantity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validProductInput()
			tt.mutate(&input)
			_, err := svc.UpdateProduct(ctx, 1, input)

			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}

	input := validProductInput()
	input.Images = make(models.ProductImages, 6)
	for i := range input.Images {
		input.Images[i] = models.ProductImage{URL: "/uploads/x.png"}
	}
	_, err := svc.UpdateProduct(ctx, 1, input)
	assert.ErrorIs(t, err, ErrTooManyImages)

	_, err = svc.UpdateProduct(ctx, 42, validProductInput())
	assert.ErrorIs(t, err, ErrProductNotFound)
}
