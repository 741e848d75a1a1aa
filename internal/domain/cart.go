package domain

import (
	"context"
	"fmt"
	"strings"
)

// CartItem is one line of the cart. Product is a snapshot taken at the moment
// the item was added; it is never re-read from the catalog afterwards.
// ColorCode is display metadata only and never participates in identity.
type CartItem struct {
	Product   Product `json:"product"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	ColorCode string  `json:"colorCode,omitempty"`
}

// Key identifies the line for merging: same product, same size, same
// normalized color means the same line.
func (it CartItem) Key() string {
	return VariantKey(it.Product.ID, it.Size, it.Color)
}

func (it CartItem) Subtotal() float64 {
	return it.Product.EffectivePrice() * float64(it.Quantity)
}

// VariantKey builds the merge key for a cart line. An absent color and an
// explicitly empty color land in the same bucket.
func VariantKey(productID int64, size, color string) string {
	return fmt.Sprintf("%d|%s|%s", productID, strings.TrimSpace(size), NormalizeColor(color))
}

func NormalizeColor(c string) string {
	return strings.TrimSpace(c)
}

// ItemsTotal sums EffectivePrice × quantity over the given lines.
func ItemsTotal(items []CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// CartRepository persists the whole cart record after every mutation and
// rehydrates it on startup. A missing record loads as an empty cart.
type CartRepository interface {
	Load(ctx context.Context) ([]CartItem, error)
	Save(ctx context.Context, items []CartItem) error
}

// FavoritesRepository persists the set of favorited product ids.
type FavoritesRepository interface {
	Load(ctx context.Context) ([]int64, error)
	Save(ctx context.Context, ids []int64) error
}
