package booking

import (
	"salonbook/models"
	"salonbook/services/catalog"
	"salonbook/services/events"
	"salonbook/services/packages"
	"salonbook/services/pricing"
	"salonbook/services/scheduling"
	"salonbook/utils"

	"go.uber.org/zap"
)

// NewDefaultBookingService builds every store around one publisher. A nil
// locker gets a LocalLocker.
func NewDefaultBookingService(pub events.Publisher, clock utils.Clock, salon models.SalonSettings, locker Locker, logger *zap.Logger) *DefaultBookingService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if locker == nil {
		locker = NewLocalLocker()
	}
	services := catalog.NewServiceCatalog(pub)
	templates := catalog.NewPackageCatalog(services, pub)
	return &DefaultBookingService{
		Services:      services,
		Templates:     templates,
		Professionals: catalog.NewProfessionalRoster(pub),
		Clients:       catalog.NewClientRoster(pub),
		Discounts:     pricing.NewDiscountRules(pub),
		Appointments:  scheduling.NewAppointmentStore(pub, clock),
		Ledger:        packages.NewLedger(templates, pub, clock, logger),
		Locker:        locker,
		Clock:         clock,
		Salon:         salon,
		Logger:        logger,
	}
}

// Load replaces every store's contents with snap. Nothing is published.
func (s *DefaultBookingService) Load(snap *models.Snapshot) {
	if snap == nil {
		return
	}
	s.Services.Load(snap.Services)
	s.Templates.Load(snap.PackageTemplates)
	s.Professionals.Load(snap.Professionals)
	s.Clients.Load(snap.Clients)
	s.Discounts.Load(snap.Discounts)
	s.Appointments.Load(snap.Appointments)
	s.Ledger.Load(snap.ClientPackages)
}
