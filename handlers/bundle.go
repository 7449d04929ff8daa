package handlers

import (
	"salonbook/services/booking"
)

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	Booking      *BookingHandler
	Appointments *AppointmentHandler
	Packages     *PackageHandler
	Catalog      *CatalogHandler
	Retouch      *RetouchHandler
}

// NewHandlerBundle wires every handler to the booking service and the stores
// behind it.
func NewHandlerBundle(svc *booking.DefaultBookingService) *HandlerBundle {
	return &HandlerBundle{
		Booking: &BookingHandler{Service: svc},
		Appointments: &AppointmentHandler{
			Service: svc,
			Store:   svc.Appointments,
		},
		Packages: &PackageHandler{
			Service:   svc,
			Templates: svc.Templates,
			Ledger:    svc.Ledger,
			Clock:     svc.Clock,
		},
		Catalog: &CatalogHandler{
			Service:       svc,
			Services:      svc.Services,
			Professionals: svc.Professionals,
			Clients:       svc.Clients,
			Discounts:     svc.Discounts,
		},
		Retouch: &RetouchHandler{Service: svc},
	}
}
