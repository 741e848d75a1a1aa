package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantKeyNormalizesColor(t *testing.T) {
	assert.Equal(t, VariantKey(1, "M", ""), VariantKey(1, "M", "  "))
	assert.NotEqual(t, VariantKey(1, "M", ""), VariantKey(1, "M", "red"))
	assert.NotEqual(t, VariantKey(1, "M", "red"), VariantKey(1, "L", "red"))
	assert.NotEqual(t, VariantKey(1, "M", "red"), VariantKey(2, "M", "red"))
}

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 10.0, Product{Price: 10}.EffectivePrice())
	assert.Equal(t, 8.0, Product{Price: 10, DiscountPrice: 8}.EffectivePrice())
	// A discount above the base price is still the effective price; the
	// rule is only "discount set", not "discount lower".
	assert.Equal(t, 12.0, Product{Price: 10, DiscountPrice: 12}.EffectivePrice())
}

func TestItemsTotal(t *testing.T) {
	assert.Zero(t, ItemsTotal(nil))
	items := []CartItem{
		{Product: Product{ID: 1, Price: 10}, Size: "M", Quantity: 3},
		{Product: Product{ID: 2, Price: 10, DiscountPrice: 8}, Size: "S", Quantity: 2},
	}
	assert.InDelta(t, 46, ItemsTotal(items), 1e-9)
}

func TestCartItemSerializesPersistedLayout(t *testing.T) {
	it := CartItem{
		Product: Product{
			ID: 5, Name: "Denim Jacket", Category: "jackets", Price: 120,
			InStock: true,
			Images:  []string{"/img/denim.jpg"},
			Sizes:   []SizeOption{{Size: "M", Available: true}},
			Color:   []ColorOption{{Color: "blue", ColorCode: "#1e3a8a"}},
		},
		Size:      "M",
		Quantity:  2,
		Color:     "blue",
		ColorCode: "#1e3a8a",
	}
	b, err := json.Marshal(it)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "M", m["size"])
	assert.Equal(t, float64(2), m["quantity"])
	assert.Equal(t, "blue", m["color"])
	assert.Equal(t, "#1e3a8a", m["colorCode"])

	prod, ok := m["product"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"id", "name", "category", "description", "price", "discountPrice", "inStock", "images", "sizes", "color", "featured", "bestSeller"} {
		assert.Contains(t, prod, field)
	}

	// Absent color omits both optional fields.
	b, err = json.Marshal(CartItem{Product: Product{ID: 1}, Size: "L", Quantity: 1})
	require.NoError(t, err)
	var m2 map[string]any
	require.NoError(t, json.Unmarshal(b, &m2))
	assert.NotContains(t, m2, "color")
	assert.NotContains(t, m2, "colorCode")
}
