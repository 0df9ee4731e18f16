package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a single entry within a category. Pricing is either the flat
// Price or the size-tiered PriceM/PriceL/PriceLiter set; both schemes are
// stored and returned verbatim, with no precedence rule applied anywhere.
type MenuItem struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	CategoryID uuid.UUID     `json:"categoryId" db:"category_id"`
	Order      int           `json:"order" db:"order"`
	Name       LocalizedText `json:"name"`
	Image      string        `json:"image" db:"image"`
	Price      *float64      `json:"price,omitempty" db:"price"`
	PriceM     *float64      `json:"priceM,omitempty" db:"price_m"`
	PriceL     *float64      `json:"priceL,omitempty" db:"price_l"`
	PriceLiter *float64      `json:"priceLiter,omitempty" db:"price_liter"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time     `json:"updatedAt" db:"updated_at"`
}

// MenuItemData carries the writable fields for creating an item.
type MenuItemData struct {
	Order      int           `json:"order"`
	Name       LocalizedText `json:"name"`
	Image      string        `json:"image"`
	Price      *float64      `json:"price,omitempty"`
	PriceM     *float64      `json:"priceM,omitempty"`
	PriceL     *float64      `json:"priceL,omitempty"`
	PriceLiter *float64      `json:"priceLiter,omitempty"`
}

// MenuItemUpdate is a partial update; nil fields are left unchanged.
type MenuItemUpdate struct {
	Order      *int           `json:"order,omitempty"`
	Name       *LocalizedText `json:"name,omitempty"`
	Image      *string        `json:"image,omitempty"`
	Price      *float64       `json:"price,omitempty"`
	PriceM     *float64       `json:"priceM,omitempty"`
	PriceL     *float64       `json:"priceL,omitempty"`
	PriceLiter *float64       `json:"priceLiter,omitempty"`
}
