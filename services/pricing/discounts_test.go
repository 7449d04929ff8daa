package pricing

import (
	"testing"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday    = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	tuesday   = monday.AddDate(0, 0, 1)
	basePrice = decimal.NewFromInt(100)
)

func TestResolvePriceMondayPercent(t *testing.T) {
	rules := NewDiscountRules(nil)
	_, err := rules.Add(models.WeeklyDiscount{
		Name: "Monday cut", ItemID: "s1", ItemType: models.ItemService,
		Days: []int{1}, DiscountType: models.DiscountPercent, DiscountValue: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	q := rules.ResolvePrice("s1", models.ItemService, basePrice, monday)
	assert.True(t, q.EffectivePrice.Equal(decimal.NewFromInt(90)), q.EffectivePrice.String())
	assert.True(t, q.OriginalPrice.Equal(basePrice))
	require.NotNil(t, q.Discount)
	assert.Equal(t, "Monday cut", q.Discount.Name)

	q = rules.ResolvePrice("s1", models.ItemService, basePrice, tuesday)
	assert.True(t, q.EffectivePrice.Equal(basePrice))
	assert.False(t, q.Discounted())

	// Same id, other item type.
	q = rules.ResolvePrice("s1", models.ItemPackage, basePrice, monday)
	assert.False(t, q.Discounted())
}

func TestFirstMatchingRuleWins(t *testing.T) {
	rules := NewDiscountRules(nil)
	for _, v := range []int64{20, 50} {
		_, err := rules.Add(models.WeeklyDiscount{
			ItemID: "s1", ItemType: models.ItemService, Days: []int{1},
			DiscountType: models.DiscountPercent, DiscountValue: decimal.NewFromInt(v),
		})
		require.NoError(t, err)
	}
	q := rules.ResolvePrice("s1", models.ItemService, basePrice, monday)
	assert.True(t, q.EffectivePrice.Equal(decimal.NewFromInt(80)), q.EffectivePrice.String())
}

func TestApplyDiscount(t *testing.T) {
	fixed := models.WeeklyDiscount{DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(30)}
	assert.True(t, ApplyDiscount(basePrice, fixed).Equal(decimal.NewFromInt(70)))

	fixed.DiscountValue = decimal.NewFromInt(150)
	assert.True(t, ApplyDiscount(basePrice, fixed).IsZero(), "never below zero")

	pct := models.WeeklyDiscount{DiscountType: models.DiscountPercent, DiscountValue: decimal.RequireFromString("33.333")}
	assert.Equal(t, "66.67", ApplyDiscount(basePrice, pct).StringFixed(2))
}

func TestDiscountValidation(t *testing.T) {
	rules := NewDiscountRules(nil)
	bad := []models.WeeklyDiscount{
		{ItemType: models.ItemService, Days: []int{1}, DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(1)},
		{ItemID: "s1", ItemType: "bundle", Days: []int{1}, DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(1)},
		{ItemID: "s1", ItemType: models.ItemService, Days: []int{7}, DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(1)},
		{ItemID: "s1", ItemType: models.ItemService, Days: []int{1}, DiscountType: "BOGO", DiscountValue: decimal.NewFromInt(1)},
		{ItemID: "s1", ItemType: models.ItemService, Days: []int{1}, DiscountType: models.DiscountFixed},
	}
	for _, r := range bad {
		_, err := rules.Add(r)
		assert.ErrorIs(t, err, utils.ErrValidation)
	}
	assert.Empty(t, rules.List())
}

func TestDeleteForItem(t *testing.T) {
	rules := NewDiscountRules(nil)
	add := func(item string, typ models.ItemType) {
		_, err := rules.Add(models.WeeklyDiscount{ItemID: item, ItemType: typ, Days: []int{1}, DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(5)})
		require.NoError(t, err)
	}
	add("s1", models.ItemService)
	add("s1", models.ItemService)
	add("s1", models.ItemPackage)

	assert.Equal(t, 2, rules.DeleteForItem("s1", models.ItemService))
	assert.Len(t, rules.List(), 1)
	assert.ErrorIs(t, rules.Delete("missing"), utils.ErrNotFound)
}
