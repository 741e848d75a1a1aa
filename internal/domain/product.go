package domain

import "time"

type Product struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"size:180;not null" json:"name"`
	Category      string        `gorm:"size:100;index" json:"category"`
	Description   string        `gorm:"type:text" json:"description"`
	Price         float64       `gorm:"type:decimal(12,2);not null" json:"price"`
	DiscountPrice float64       `gorm:"type:decimal(12,2);default:0" json:"discountPrice"`
	InStock       bool          `gorm:"default:true" json:"inStock"`
	Images        []string      `gorm:"type:jsonb;serializer:json" json:"images"`
	Sizes         []SizeOption  `gorm:"type:jsonb;serializer:json" json:"sizes"`
	Color         []ColorOption `gorm:"type:jsonb;serializer:json" json:"color"`
	Featured      bool          `gorm:"default:false;index" json:"featured"`
	BestSeller    bool          `gorm:"default:false;index" json:"bestSeller"`
	CreatedAt     time.Time     `json:"-"`
	UpdatedAt     time.Time     `json:"-"`
}

type SizeOption struct {
	Size      string `json:"size"`
	Available bool   `json:"available"`
}

type ColorOption struct {
	Color     string `json:"color"`
	ColorCode string `json:"colorCode"`
}

// EffectivePrice is the unit price a buyer actually pays: the discount price
// whenever one is set (> 0), the base price otherwise. Cart totals, checkout
// and the API all go through here so there is a single pricing rule.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

type ProductFilter struct {
	Category   string
	Query      string
	Featured   *bool
	BestSeller *bool
	InStock    *bool
	Sort       string
	Page       int
	PageSize   int
}
