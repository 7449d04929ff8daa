package pricing

import (
	"testing"

	"salonbook/models"

	"github.com/stretchr/testify/assert"
)

func pct(v float64) *float64 { return &v }

func TestResolveCommissionPrecedence(t *testing.T) {
	pro := models.Professional{
		ID: "p1",
		CommissionOverrides: []models.CommissionOverride{
			{ItemID: "s1", ItemType: models.ItemService, Percentage: 55},
			{ItemID: "t1", ItemType: models.ItemPackage, Percentage: 0},
		},
	}

	got, src := ResolveCommission(pro, "s1", models.ItemService, pct(30), 40)
	assert.Equal(t, 55.0, got)
	assert.Equal(t, SourceOverride, src)

	got, src = ResolveCommission(pro, "s2", models.ItemService, pct(30), 40)
	assert.Equal(t, 30.0, got)
	assert.Equal(t, SourceItem, src)

	got, src = ResolveCommission(pro, "s2", models.ItemService, nil, 40)
	assert.Equal(t, 40.0, got)
	assert.Equal(t, SourceSalonDefault, src)

	// A zero override still wins.
	got, src = ResolveCommission(pro, "t1", models.ItemPackage, pct(25), 40)
	assert.Equal(t, 0.0, got)
	assert.Equal(t, SourceOverride, src)

	// Override for the service does not leak onto a package with the same id.
	got, _ = ResolveCommission(pro, "s1", models.ItemPackage, nil, 40)
	assert.Equal(t, 40.0, got)
}

func TestServiceAndPackageCommission(t *testing.T) {
	pro := models.Professional{ID: "p1"}
	assert.Equal(t, 35.0, ServiceCommission(pro, models.Service{ID: "s1", CommissionPercentage: pct(35)}, 40))
	assert.Equal(t, 40.0, PackageCommission(pro, models.PackageTemplate{ID: "t1"}, 40))
}
