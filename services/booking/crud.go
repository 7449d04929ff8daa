package booking

import (
	"context"

	"salonbook/models"
	"salonbook/services/retouch"

	"go.uber.org/zap"
)

// BuyPackage sells a template to an existing client at today's price.
func (s *DefaultBookingService) BuyPackage(_ context.Context, clientID, templateID string) (*PackagePurchase, error) {
	if _, err := s.Clients.Get(clientID); err != nil {
		return nil, err
	}
	tpl, err := s.Templates.Get(templateID)
	if err != nil {
		return nil, err
	}
	pkg, err := s.Ledger.Buy(clientID, tpl.ID)
	if err != nil {
		return nil, err
	}
	price := s.Discounts.ResolvePrice(tpl.ID, models.ItemPackage, tpl.Price, s.clock().Now())
	return &PackagePurchase{Package: pkg, Price: price}, nil
}

// DeleteService removes the service and every appointment booked for it,
// returning their package credits first.
func (s *DefaultBookingService) DeleteService(_ context.Context, serviceID string) error {
	if _, err := s.Services.Delete(serviceID); err != nil {
		return err
	}
	removed := s.Appointments.DeleteByServiceID(serviceID)
	for _, a := range removed {
		s.refund(a)
	}
	s.Professionals.DropService(serviceID)
	s.Discounts.DeleteForItem(serviceID, models.ItemService)

	s.logger().Info("service deleted",
		zap.String("serviceID", serviceID),
		zap.Int("appointmentsRemoved", len(removed)))
	return nil
}

// DeleteProfessional removes the professional and their appointments.
func (s *DefaultBookingService) DeleteProfessional(_ context.Context, professionalID string) error {
	if _, err := s.Professionals.Delete(professionalID); err != nil {
		return err
	}
	removed := s.Appointments.DeleteByProfessionalID(professionalID)
	for _, a := range removed {
		s.refund(a)
	}
	s.logger().Info("professional deleted",
		zap.String("professionalID", professionalID),
		zap.Int("appointmentsRemoved", len(removed)))
	return nil
}

// DeleteClient removes the client with their appointments and packages.
func (s *DefaultBookingService) DeleteClient(_ context.Context, clientID string) error {
	if _, err := s.Clients.Delete(clientID); err != nil {
		return err
	}
	appts := s.Appointments.DeleteByClientID(clientID)
	pkgs := s.Ledger.DeleteByClientID(clientID)
	s.logger().Info("client deleted",
		zap.String("clientID", clientID),
		zap.Int("appointmentsRemoved", len(appts)),
		zap.Int("packagesRemoved", len(pkgs)))
	return nil
}

// UpdatePackageTemplate edits a template. Lowering the session count below
// a balance some client already holds is rejected.
func (s *DefaultBookingService) UpdatePackageTemplate(_ context.Context, t models.PackageTemplate) (*models.PackageTemplate, error) {
	if _, err := s.Templates.Get(t.ID); err != nil {
		return nil, err
	}
	var updated models.PackageTemplate
	err := s.Ledger.ResizeTemplate(t.ID, t.SessionCount, func() error {
		var err error
		updated, err = s.Templates.Update(t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePackageTemplate removes the template and hard-deletes every client
// package bought from it.
func (s *DefaultBookingService) DeletePackageTemplate(_ context.Context, templateID string) error {
	if _, err := s.Templates.Delete(templateID); err != nil {
		return err
	}
	pkgs := s.Ledger.DeleteByTemplateID(templateID)
	s.Discounts.DeleteForItem(templateID, models.ItemPackage)
	s.logger().Warn("package template deleted with its client packages",
		zap.String("templateID", templateID),
		zap.Int("packagesRemoved", len(pkgs)))
	return nil
}

// RetouchAlerts lists retouch alerts as of now. A negative threshold uses
// the configured one.
func (s *DefaultBookingService) RetouchAlerts(threshold int, bestOnly bool) []models.RetouchAlert {
	if threshold < 0 {
		threshold = s.RetouchThreshold
		if threshold <= 0 {
			threshold = retouch.DefaultThreshold
		}
	}
	alerts := retouch.Compute(s.Clients.List(), s.Appointments.List(), s.Services.List(), s.clock().Now(), threshold)
	if bestOnly {
		return retouch.BestPerClient(alerts)
	}
	return alerts
}
