package booking

import (
	"context"
	"time"

	"salonbook/models"
	"salonbook/services/catalog"
	"salonbook/services/packages"
	"salonbook/services/pricing"
	"salonbook/services/scheduling"
	"salonbook/utils"

	"go.uber.org/zap"
)

// BookingService runs the booking flow: slots, price and commission,
// conflict-checked creation, and package credit side effects.
type BookingService interface {
	AvailableSlots(ctx context.Context, professionalID, serviceID, date string, admin bool) ([]models.SlotBlock, error)
	Quote(professionalID, itemID string, itemType models.ItemType, date string) (*Quote, error)
	Book(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID string) error
	SetStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error)
	ChangePackage(ctx context.Context, appointmentID, clientPackageID string) (*models.Appointment, error)
	BuyPackage(ctx context.Context, clientID, templateID string) (*PackagePurchase, error)

	DeleteService(ctx context.Context, serviceID string) error
	DeleteProfessional(ctx context.Context, professionalID string) error
	DeleteClient(ctx context.Context, clientID string) error
	UpdatePackageTemplate(ctx context.Context, t models.PackageTemplate) (*models.PackageTemplate, error)
	DeletePackageTemplate(ctx context.Context, templateID string) error

	RetouchAlerts(threshold int, bestOnly bool) []models.RetouchAlert
}

// DefaultBookingService implements BookingService over the in-memory stores.
type DefaultBookingService struct {
	Services      *catalog.ServiceCatalog
	Templates     *catalog.PackageCatalog
	Professionals *catalog.ProfessionalRoster
	Clients       *catalog.ClientRoster
	Discounts     *pricing.DiscountRules
	Appointments  *scheduling.AppointmentStore
	Ledger        *packages.Ledger
	Locker        Locker
	Clock         utils.Clock
	Salon         models.SalonSettings
	Logger        *zap.Logger

	// RetouchThreshold applies when RetouchAlerts gets a negative threshold.
	RetouchThreshold int
}

// BookingRequest is the input to Book.
type BookingRequest struct {
	ClientID        string               `json:"clientId" binding:"required"`
	ProfessionalID  string               `json:"professionalId" binding:"required"`
	ServiceID       string               `json:"serviceId" binding:"required"`
	Date            string               `json:"date" binding:"required"`
	StartTime       string               `json:"startTime" binding:"required"`
	PaymentStatus   models.PaymentStatus `json:"paymentStatus,omitempty"`
	ClientPackageID string               `json:"clientPackageId,omitempty"`
	// Admin bookings may fall outside working hours or days.
	Admin bool `json:"admin,omitempty"`
}

// Quote is the resolved price and commission for an item on a date.
type Quote struct {
	models.PriceQuote
	Commission       float64                  `json:"commission"`
	CommissionSource pricing.CommissionSource `json:"commissionSource"`
}

// PackagePurchase is a sold client package with the price charged.
type PackagePurchase struct {
	Package models.ClientPackage `json:"package"`
	Price   models.PriceQuote    `json:"price"`
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultBookingService) clock() utils.Clock {
	if s.Clock == nil {
		return utils.SystemClock{}
	}
	return s.Clock
}

func (s *DefaultBookingService) parseDate(date string) (time.Time, error) {
	d, err := models.ParseDate(date, s.clock().Now().Location())
	if err != nil {
		return time.Time{}, utils.NewValidationError("date", err.Error())
	}
	return d, nil
}
