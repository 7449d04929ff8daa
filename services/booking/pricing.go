package booking

import (
	"time"

	"salonbook/models"
	"salonbook/services/pricing"
	"salonbook/utils"
)

// Quote resolves the effective price and the professional's commission for
// an item on date.
func (s *DefaultBookingService) Quote(professionalID, itemID string, itemType models.ItemType, date string) (*Quote, error) {
	pro, err := s.Professionals.Get(professionalID)
	if err != nil {
		return nil, err
	}
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	switch itemType {
	case models.ItemService:
		svc, err := s.Services.Get(itemID)
		if err != nil {
			return nil, err
		}
		return s.quoteService(pro, svc, day), nil
	case models.ItemPackage:
		tpl, err := s.Templates.Get(itemID)
		if err != nil {
			return nil, err
		}
		q := &Quote{PriceQuote: s.Discounts.ResolvePrice(tpl.ID, models.ItemPackage, tpl.Price, day)}
		q.Commission, q.CommissionSource = pricing.ResolveCommission(pro, tpl.ID, models.ItemPackage, tpl.CommissionPercentage, s.Salon.DefaultCommission)
		return q, nil
	}
	return nil, utils.NewValidationError("itemType", "must be service or package")
}

func (s *DefaultBookingService) quoteService(pro models.Professional, svc models.Service, day time.Time) *Quote {
	q := &Quote{PriceQuote: s.Discounts.ResolvePrice(svc.ID, models.ItemService, svc.Price, day)}
	q.Commission, q.CommissionSource = pricing.ResolveCommission(pro, svc.ID, models.ItemService, svc.CommissionPercentage, s.Salon.DefaultCommission)
	return q
}
