package catalog

import (
	"salonbook/models"
	"salonbook/utils"
)

func validatePercentage(field string, p *float64) error {
	if p != nil && (*p < 0 || *p > 100) {
		return utils.NewValidationError(field, "must be between 0 and 100")
	}
	return nil
}

func validateDays(field string, days []int) error {
	for _, d := range days {
		if d < 0 || d > 6 {
			return utils.NewValidationError(field, "days must be between 0 (Sunday) and 6 (Saturday)")
		}
	}
	return nil
}

func validateService(s *models.Service) error {
	if s.Name == "" {
		return utils.NewValidationError("name", "is required")
	}
	if s.Price.IsNegative() {
		return utils.NewValidationError("price", "must not be negative")
	}
	if s.Duration == 0 {
		s.Duration = models.SlotMinutes
	}
	if s.Duration < 0 || s.Duration%models.SlotMinutes != 0 {
		return utils.NewValidationError("duration", "must be a positive multiple of 30 minutes")
	}
	if s.RetouchPeriod < 0 {
		return utils.NewValidationError("retouchPeriod", "must not be negative")
	}
	return validatePercentage("commissionPercentage", s.CommissionPercentage)
}

func validateTemplate(t *models.PackageTemplate) error {
	switch {
	case t.Name == "":
		return utils.NewValidationError("name", "is required")
	case t.ServiceID == "":
		return utils.NewValidationError("serviceId", "is required")
	case t.Price.IsNegative():
		return utils.NewValidationError("price", "must not be negative")
	case t.SessionCount <= 0:
		return utils.NewValidationError("sessionCount", "must be greater than zero")
	case t.ValidityDays <= 0:
		return utils.NewValidationError("validityDays", "must be greater than zero")
	}
	return validatePercentage("commissionPercentage", t.CommissionPercentage)
}

func validateProfessional(p *models.Professional) error {
	if p.Name == "" {
		return utils.NewValidationError("name", "is required")
	}
	if err := validateDays("workingDays", p.WorkingDays); err != nil {
		return err
	}
	var start, end int
	var err error
	if p.StartTime != "" {
		if start, err = models.ParseClock(p.StartTime); err != nil {
			return utils.NewValidationError("startTime", err.Error())
		}
	}
	if p.EndTime != "" {
		if end, err = models.ParseClock(p.EndTime); err != nil {
			return utils.NewValidationError("endTime", err.Error())
		}
	}
	if p.StartTime != "" && p.EndTime != "" && start >= end {
		return utils.NewValidationError("endTime", "must be after startTime")
	}
	for _, o := range p.CommissionOverrides {
		if o.ItemID == "" || !o.ItemType.Valid() {
			return utils.NewValidationError("commissionOverrides", "itemId and a valid itemType are required")
		}
		pct := o.Percentage
		if err := validatePercentage("commissionOverrides.percentage", &pct); err != nil {
			return err
		}
	}
	return nil
}
