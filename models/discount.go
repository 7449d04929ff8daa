package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// WeeklyDiscount applies to one item on a fixed set of weekdays.
type WeeklyDiscount struct {
	ID            string          `bson:"id" json:"id"`
	Name          string          `bson:"name" json:"name"`
	ItemID        string          `bson:"itemId" json:"itemId"`
	ItemType      ItemType        `bson:"itemType" json:"itemType"`
	Days          []int           `bson:"days" json:"days"` // 0 = Sunday
	DiscountType  DiscountType    `bson:"discountType" json:"discountType"`
	DiscountValue decimal.Decimal `bson:"discountValue" json:"discountValue"`
}

// AppliesOn reports whether the rule is active on the weekday of date.
func (d WeeklyDiscount) AppliesOn(date time.Time) bool {
	wd := int(date.Weekday())
	for _, day := range d.Days {
		if day == wd {
			return true
		}
	}
	return false
}

// PriceQuote is the outcome of resolving an item's price for a given date.
// Discount is nil when no rule matched.
type PriceQuote struct {
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	Discount       *WeeklyDiscount `json:"discount,omitempty"`
}

// Discounted reports whether a rule was applied.
func (q PriceQuote) Discounted() bool {
	return q.Discount != nil
}
