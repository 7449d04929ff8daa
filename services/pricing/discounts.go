package pricing

import (
	"sync"
	"time"

	"salonbook/models"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountRules holds the weekly discount rules in insertion order. Order
// matters: the first matching rule wins and rules never stack.
type DiscountRules struct {
	mu    sync.RWMutex
	rules []models.WeeklyDiscount
	pub   events.Publisher
}

func NewDiscountRules(pub events.Publisher) *DiscountRules {
	if pub == nil {
		pub = events.Nop{}
	}
	return &DiscountRules{pub: pub}
}

func (d *DiscountRules) Load(rules []models.WeeklyDiscount) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rules = append([]models.WeeklyDiscount(nil), rules...)
}

func validateDiscount(r models.WeeklyDiscount) error {
	switch {
	case r.ItemID == "":
		return utils.NewValidationError("itemId", "is required")
	case !r.ItemType.Valid():
		return utils.NewValidationError("itemType", "must be service or package")
	case r.DiscountType != models.DiscountPercent && r.DiscountType != models.DiscountFixed:
		return utils.NewValidationError("discountType", "must be PERCENT or FIXED")
	case !r.DiscountValue.IsPositive():
		return utils.NewValidationError("discountValue", "must be greater than zero")
	case len(r.Days) == 0:
		return utils.NewValidationError("days", "at least one day is required")
	}
	for _, day := range r.Days {
		if day < 0 || day > 6 {
			return utils.NewValidationError("days", "days must be between 0 (Sunday) and 6 (Saturday)")
		}
	}
	return nil
}

// Add appends a rule.
func (d *DiscountRules) Add(r models.WeeklyDiscount) (models.WeeklyDiscount, error) {
	if err := validateDiscount(r); err != nil {
		return models.WeeklyDiscount{}, err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.Days = append([]int(nil), r.Days...)

	d.mu.Lock()
	for _, existing := range d.rules {
		if existing.ID == r.ID {
			d.mu.Unlock()
			return models.WeeklyDiscount{}, utils.NewValidationError("id", "already exists")
		}
	}
	d.rules = append(d.rules, r)
	d.mu.Unlock()

	d.pub.Publish(events.Upserted(models.KindDiscount, r.ID, r))
	return r, nil
}

// Update replaces a rule in place, keeping its position.
func (d *DiscountRules) Update(r models.WeeklyDiscount) (models.WeeklyDiscount, error) {
	if err := validateDiscount(r); err != nil {
		return models.WeeklyDiscount{}, err
	}
	r.Days = append([]int(nil), r.Days...)

	d.mu.Lock()
	found := false
	for i := range d.rules {
		if d.rules[i].ID == r.ID {
			d.rules[i] = r
			found = true
			break
		}
	}
	d.mu.Unlock()

	if !found {
		return models.WeeklyDiscount{}, utils.NewNotFoundError("discount", r.ID)
	}
	d.pub.Publish(events.Upserted(models.KindDiscount, r.ID, r))
	return r, nil
}

func (d *DiscountRules) Delete(id string) error {
	d.mu.Lock()
	var removed *models.WeeklyDiscount
	for i := range d.rules {
		if d.rules[i].ID == id {
			r := d.rules[i]
			removed = &r
			d.rules = append(d.rules[:i], d.rules[i+1:]...)
			break
		}
	}
	d.mu.Unlock()

	if removed == nil {
		return utils.NewNotFoundError("discount", id)
	}
	d.pub.Publish(events.Deleted(models.KindDiscount, id, *removed))
	return nil
}

// DeleteForItem drops every rule pointing at the item.
func (d *DiscountRules) DeleteForItem(itemID string, itemType models.ItemType) int {
	var ids []string
	for _, r := range d.List() {
		if r.ItemID == itemID && r.ItemType == itemType {
			ids = append(ids, r.ID)
		}
	}
	for _, id := range ids {
		_ = d.Delete(id)
	}
	return len(ids)
}

func (d *DiscountRules) List() []models.WeeklyDiscount {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.WeeklyDiscount(nil), d.rules...)
}

// Match returns the first rule for (itemID, itemType) active on date's weekday.
func (d *DiscountRules) Match(itemID string, itemType models.ItemType, date time.Time) (models.WeeklyDiscount, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, r := range d.rules {
		if r.ItemID == itemID && r.ItemType == itemType && r.AppliesOn(date) {
			return r, true
		}
	}
	return models.WeeklyDiscount{}, false
}

// ResolvePrice applies the first matching rule to price. The result never
// drops below zero. When no rule matches, EffectivePrice equals the original
// and Discount is nil.
func (d *DiscountRules) ResolvePrice(itemID string, itemType models.ItemType, price decimal.Decimal, date time.Time) models.PriceQuote {
	quote := models.PriceQuote{OriginalPrice: price, EffectivePrice: price}
	rule, ok := d.Match(itemID, itemType, date)
	if !ok {
		return quote
	}
	quote.Discount = &rule
	quote.EffectivePrice = ApplyDiscount(price, rule)
	return quote
}

// ApplyDiscount computes the discounted price for a single rule.
func ApplyDiscount(price decimal.Decimal, rule models.WeeklyDiscount) decimal.Decimal {
	var out decimal.Decimal
	switch rule.DiscountType {
	case models.DiscountPercent:
		out = price.Mul(decimal.NewFromInt(1).Sub(rule.DiscountValue.Div(hundred)))
	case models.DiscountFixed:
		out = price.Sub(rule.DiscountValue)
	default:
		out = price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out.Round(2)
}
