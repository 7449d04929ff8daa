package pricing

import "salonbook/models"

// CommissionSource names which layer a resolved commission came from.
type CommissionSource string

const (
	SourceOverride     CommissionSource = "override"
	SourceItem         CommissionSource = "item"
	SourceSalonDefault CommissionSource = "salon_default"
)

// ResolveCommission returns the commission percentage for the professional
// on the item. Lookup order: professional override for (itemID, itemType),
// then the item's own percentage, then the salon default. First match wins.
func ResolveCommission(pro models.Professional, itemID string, itemType models.ItemType, itemPercentage *float64, salonDefault float64) (float64, CommissionSource) {
	for _, o := range pro.CommissionOverrides {
		if o.ItemID == itemID && o.ItemType == itemType {
			return o.Percentage, SourceOverride
		}
	}
	if itemPercentage != nil {
		return *itemPercentage, SourceItem
	}
	return salonDefault, SourceSalonDefault
}

// ServiceCommission resolves the commission for a service booking.
func ServiceCommission(pro models.Professional, s models.Service, salonDefault float64) float64 {
	pct, _ := ResolveCommission(pro, s.ID, models.ItemService, s.CommissionPercentage, salonDefault)
	return pct
}

// PackageCommission resolves the commission for a package sale.
func PackageCommission(pro models.Professional, t models.PackageTemplate, salonDefault float64) float64 {
	pct, _ := ResolveCommission(pro, t.ID, models.ItemPackage, t.CommissionPercentage, salonDefault)
	return pct
}
