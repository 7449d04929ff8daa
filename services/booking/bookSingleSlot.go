package booking

import (
	"context"
	"errors"
	"time"

	"salonbook/models"
	"salonbook/services/scheduling"
	"salonbook/utils"

	"go.uber.org/zap"
)

func validateRequest(req BookingRequest) error {
	switch {
	case req.ClientID == "":
		return utils.NewValidationError("clientId", "is required")
	case req.ProfessionalID == "":
		return utils.NewValidationError("professionalId", "is required")
	case req.ServiceID == "":
		return utils.NewValidationError("serviceId", "is required")
	case req.Date == "":
		return utils.NewValidationError("date", "is required")
	case req.StartTime == "":
		return utils.NewValidationError("startTime", "is required")
	}
	if req.PaymentStatus != "" && !req.PaymentStatus.Valid() {
		return utils.NewValidationError("paymentStatus", "unknown payment status")
	}
	if req.PaymentStatus == models.PaymentPaidWithPackage && req.ClientPackageID == "" {
		return utils.NewValidationError("clientPackageId", "is required when paying with a package")
	}
	return nil
}

// Book reserves the block starting at req.StartTime. The slot check and the
// insert run under the (professional, date) lock, and a package-paid booking
// consumes one credit after the insert.
func (s *DefaultBookingService) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	logger := s.logger()
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.Clients.Get(req.ClientID); err != nil {
		return nil, err
	}
	pro, svc, err := s.bookable(req.ProfessionalID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	day, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	dateStr := day.Format(models.DateLayout)

	if req.ClientPackageID != "" {
		if err := s.checkPackage(req.ClientPackageID, req.ClientID, svc.ID, day); err != nil {
			return nil, err
		}
	}

	unlock, err := s.Locker.Lock(ctx, slotLockKey(pro.ID, dateStr))
	if err != nil {
		return nil, err
	}
	defer unlock()

	block, ok := findFreeBlock(s.computeSlots(pro, svc, day, req.Admin), req.StartTime)
	if !ok {
		return nil, newSlotUnavailable("%s at %s is not available for %s", dateStr, req.StartTime, pro.Name)
	}

	quote := s.quoteService(pro, svc, day)
	appt := models.Appointment{
		ClientID:             req.ClientID,
		Service:              svc,
		Professional:         pro,
		Date:                 dateStr,
		Time:                 block.Time(),
		PaymentStatus:        req.PaymentStatus,
		CommissionPercentage: quote.Commission,
		OriginalPrice:        quote.OriginalPrice,
		Price:                quote.EffectivePrice,
	}
	if quote.Discount != nil {
		appt.DiscountName = quote.Discount.Name
	}
	if req.ClientPackageID != "" {
		appt.ClientPackageID = req.ClientPackageID
		appt.PaymentStatus = models.PaymentPaidWithPackage
	}

	created, err := s.Appointments.Create(appt)
	if err != nil {
		return nil, err
	}

	if created.ClientPackageID != "" {
		if _, changed, err := s.Ledger.UseCredit(created.ClientPackageID); err != nil || !changed {
			if _, delErr := s.Appointments.Delete(created.ID); delErr != nil {
				logger.Error("failed to roll back appointment after credit failure",
					zap.String("appointmentID", created.ID), zap.Error(delErr))
			}
			if err == nil {
				err = newPackageNotUsable("package %s has no credits left", created.ClientPackageID)
			}
			return nil, err
		}
	}

	logger.Info("appointment booked",
		zap.String("appointmentID", created.ID),
		zap.String("professionalID", pro.ID),
		zap.String("date", created.Date),
		zap.String("time", created.Time),
		zap.String("price", created.Price.String()))
	return &created, nil
}

func findFreeBlock(blocks []models.SlotBlock, start string) (models.SlotBlock, bool) {
	b, ok := scheduling.FindBlock(blocks, start)
	return b, ok && b.IsFullyFree
}

// checkPackage verifies the client package can pay for serviceID on day.
func (s *DefaultBookingService) checkPackage(clientPackageID, clientID, serviceID string, day time.Time) error {
	pkg, err := s.Ledger.Get(clientPackageID)
	if err != nil {
		return err
	}
	if pkg.ClientID != clientID {
		return newPackageNotUsable("package %s belongs to another client", pkg.ID)
	}
	tpl, err := s.Templates.Get(pkg.PackageTemplateID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return newPackageNotUsable("package %s has no template", pkg.ID)
		}
		return err
	}
	if tpl.ServiceID != serviceID {
		return newPackageNotUsable("package %s does not cover this service", pkg.ID)
	}
	if !pkg.ActiveOn(day) {
		return newPackageNotUsable("package %s is expired or has no credits left", pkg.ID)
	}
	return nil
}
