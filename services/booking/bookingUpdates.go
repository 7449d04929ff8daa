package booking

import (
	"context"
	"errors"

	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// Cancel removes the appointment and returns any consumed package credit.
// Only the caller whose delete succeeds refunds, so concurrent cancels
// return the credit once.
func (s *DefaultBookingService) Cancel(_ context.Context, appointmentID string) error {
	removed, err := s.Appointments.Delete(appointmentID)
	if err != nil {
		return err
	}
	s.refund(removed)
	s.logger().Info("appointment cancelled", zap.String("appointmentID", removed.ID))
	return nil
}

// SetStatus moves a scheduled appointment to a terminal status.
func (s *DefaultBookingService) SetStatus(_ context.Context, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, utils.NewValidationError("status", "unknown status")
	}
	updated, err := s.Appointments.Update(appointmentID, models.AppointmentPatch{Status: &status})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ChangePackage moves the appointment's payment to clientPackageID, or
// detaches it when clientPackageID is empty. The new credit is taken before
// the old one is returned.
func (s *DefaultBookingService) ChangePackage(_ context.Context, appointmentID, clientPackageID string) (*models.Appointment, error) {
	appt, err := s.Appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.ClientPackageID == clientPackageID {
		return &appt, nil
	}

	payment := models.PaymentPending
	if clientPackageID != "" {
		day, err := s.parseDate(appt.Date)
		if err != nil {
			return nil, err
		}
		if err := s.checkPackage(clientPackageID, appt.ClientID, appt.Service.ID, day); err != nil {
			return nil, err
		}
		if _, changed, err := s.Ledger.UseCredit(clientPackageID); err != nil {
			return nil, err
		} else if !changed {
			return nil, newPackageNotUsable("package %s has no credits left", clientPackageID)
		}
		payment = models.PaymentPaidWithPackage
	}

	updated, err := s.Appointments.Update(appt.ID, models.AppointmentPatch{
		ClientPackageID: &clientPackageID,
		PaymentStatus:   &payment,
	})
	if err != nil {
		if clientPackageID != "" {
			s.returnCredit(clientPackageID, appt.ID)
		}
		return nil, err
	}
	s.refund(appt)
	return &updated, nil
}

// refund returns the credit consumed by appt, if any.
func (s *DefaultBookingService) refund(appt models.Appointment) {
	if appt.ClientPackageID == "" {
		return
	}
	s.returnCredit(appt.ClientPackageID, appt.ID)
}

func (s *DefaultBookingService) returnCredit(clientPackageID, appointmentID string) {
	logger := s.logger()
	_, changed, err := s.Ledger.ReturnCredit(clientPackageID)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		logger.Warn("package for appointment no longer exists",
			zap.String("appointmentID", appointmentID),
			zap.String("clientPackageID", clientPackageID))
	case err != nil:
		logger.Error("failed to return package credit",
			zap.String("appointmentID", appointmentID),
			zap.String("clientPackageID", clientPackageID),
			zap.Error(err))
	case !changed:
		logger.Debug("package already at full balance",
			zap.String("clientPackageID", clientPackageID))
	}
}
