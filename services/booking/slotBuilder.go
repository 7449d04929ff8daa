package booking

import (
	"context"
	"time"

	"salonbook/models"
	"salonbook/services/scheduling"
	"salonbook/utils"
)

// AvailableSlots computes the slot blocks for booking serviceID with
// professionalID on date. Client-facing calls (admin=false) only see fully
// free blocks inside working hours.
func (s *DefaultBookingService) AvailableSlots(_ context.Context, professionalID, serviceID, date string, admin bool) ([]models.SlotBlock, error) {
	pro, svc, err := s.bookable(professionalID, serviceID)
	if err != nil {
		return nil, err
	}
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.computeSlots(pro, svc, day, admin), nil
}

func (s *DefaultBookingService) computeSlots(pro models.Professional, svc models.Service, day time.Time, admin bool) []models.SlotBlock {
	dateStr := day.Format(models.DateLayout)
	return scheduling.ComputeSlots(scheduling.SlotQuery{
		Professional:    pro,
		Date:            day,
		DurationMinutes: svc.Duration,
		Appointments:    s.Appointments.Filter(dateStr, pro.ID, ""),
		Salon:           s.Salon,
		Now:             s.clock().Now(),
		ClientFacing:    !admin,
	})
}

// bookable resolves the professional and service and checks that one may be
// booked for the other.
func (s *DefaultBookingService) bookable(professionalID, serviceID string) (models.Professional, models.Service, error) {
	pro, err := s.Professionals.Get(professionalID)
	if err != nil {
		return models.Professional{}, models.Service{}, err
	}
	svc, err := s.Services.Get(serviceID)
	if err != nil {
		return models.Professional{}, models.Service{}, err
	}
	if len(pro.ServiceIDs) > 0 && !pro.OffersService(svc.ID) {
		return models.Professional{}, models.Service{}, utils.NewValidationError("serviceId", "professional does not offer this service")
	}
	if svc.OwnerID != "" && svc.OwnerID != pro.ID {
		return models.Professional{}, models.Service{}, utils.NewValidationError("serviceId", "service is private to another professional")
	}
	return pro, svc, nil
}
