package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductImagesUnmarshalMixedShapes(t *testing.T) {
	var images ProductImages
	err := json.Unmarshal([]byte(`["/uploads/a.png", {"url": " /uploads/b.png ", "name": "B"}, {"url": ""}, ""]`), &images)
	require.NoError(t, err)

	assert.Equal(t, ProductImages{
		{URL: "/uploads/a.png"},
		{URL: "/uploads/b.png", Name: "B"},
	}, images)
}

func TestProductImagesUnmarshalInvalid(t *testing.T) {
	var images ProductImages
	assert.Error(t, json.Unmarshal([]byte(`[42]`), &images))
}

func TestProductImagesMarshalNil(t *testing.T) {
	data, err := json.Marshal(struct {
		Images ProductImages `json:"images"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"images": []}`, string(data))
}

func TestProductImagesScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  ProductImages
	}{
		{"nil", nil, ProductImages{}},
		{"null", "null", ProductImages{}},
		{"empty bytes", []byte{}, ProductImages{}},
		{"legacy strings", `["/uploads/a.png"]`, ProductImages{{URL: "/uploads/a.png"}}},
		{"objects", []byte(`[{"url":"/uploads/b.png","name":"b"}]`), ProductImages{{URL: "/uploads/b.png", Name: "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var images ProductImages
			require.NoError(t, images.Scan(tt.value))
			assert.Equal(t, tt.want, images)
		})
	}

	var images ProductImages
	assert.Error(t, images.Scan(12))
}

func TestProductImagesValue(t *testing.T) {
	value, err := ProductImages{{URL: "/uploads/a.png", Name: "a"}}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"url":"/uploads/a.png","name":"a"}]`, value.(string))

	value, err = ProductImages(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestProductPriceMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(Product{OfferPrice: decimal.RequireFromString("29.99")})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 29.99, out["offer_price"])
}

func TestSynthesizeCombo(t *testing.T) {
	products := []Product{
		{BaseModel: BaseModel{ID: 1}, Type: ProductTypeSingle, Images: ProductImages{{URL: "/a1.png"}, {URL: "/a2.png"}}},
		{BaseModel: BaseModel{ID: 2}, Type: ProductTypeSingle, Images: ProductImages{{URL: "/b1.png"}}},
		{BaseModel: BaseModel{ID: 3}, Type: ProductTypeCombo, Images: ProductImages{{URL: "/stale.png"}}},
	}

	result := SynthesizeCombo(products)

	require.Len(t, result, 3)
	assert.Equal(t, ProductImages{{URL: "/a1.png"}, {URL: "/a2.png"}, {URL: "/b1.png"}}, result[2].Images)
	assert.Equal(t, products[0].Images, result[0].Images)

	// 入参不被修改
	assert.Equal(t, ProductImages{{URL: "/stale.png"}}, products[2].Images)

	// 幂等
	assert.Equal(t, result, SynthesizeCombo(result))
}

func TestSynthesizeComboFollowsListingOrder(t *testing.T) {
	products := []Product{
		{BaseModel: BaseModel{ID: 3}, Type: ProductTypeCombo},
		{BaseModel: BaseModel{ID: 2}, Type: ProductTypeSingle, Images: ProductImages{{URL: "/b.png"}}},
		{BaseModel: BaseModel{ID: 1}, Type: ProductTypeSingle, Images: ProductImages{{URL: "/a.png"}}},
	}

	result := SynthesizeCombo(products)
	assert.Equal(t, ProductImages{{URL: "/b.png"}, {URL: "/a.png"}}, result[0].Images)
}

func TestSynthesizeComboWithoutSingles(t *testing.T) {
	result := SynthesizeCombo([]Product{{Type: ProductTypeCombo, Images: ProductImages{{URL: "/x.png"}}}})
	assert.Empty(t, result[0].Images)
	assert.NotNil(t, result[0].Images)
}
