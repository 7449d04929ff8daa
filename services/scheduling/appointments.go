package scheduling

import (
	"fmt"
	"sort"
	"sync"

	"salonbook/models"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/google/uuid"
)

// AppointmentStore is the authoritative appointment collection, kept sorted
// by (date, time).
//
// Create does not re-check slot conflicts; callers run ComputeSlots first.
// Delete does not return package credits; whoever removes a package-paid
// appointment returns its credit.
type AppointmentStore struct {
	mu    sync.RWMutex
	items []models.Appointment
	pub   events.Publisher
	clock utils.Clock
}

func NewAppointmentStore(pub events.Publisher, clock utils.Clock) *AppointmentStore {
	if pub == nil {
		pub = events.Nop{}
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &AppointmentStore{pub: pub, clock: clock}
}

// Load replaces the collection with the persisted snapshot.
func (s *AppointmentStore) Load(appointments []models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Appointment(nil), appointments...)
	s.sortLocked()
}

func (s *AppointmentStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		if s.items[i].Date == s.items[j].Date {
			return s.items[i].Time < s.items[j].Time
		}
		return s.items[i].Date < s.items[j].Date
	})
}

func validateTime(t string) error {
	slots := models.SplitSlots(t)
	if len(slots) == 0 {
		return utils.NewValidationError("time", "is required")
	}
	prev := -1
	for _, label := range slots {
		idx := models.SlotIndex(label)
		if idx < 0 {
			return utils.NewValidationError("time", fmt.Sprintf("%q is not a 30-minute slot", label))
		}
		if idx <= prev {
			return utils.NewValidationError("time", "slots must be in ascending order")
		}
		prev = idx
	}
	return nil
}

func validateAppointment(a models.Appointment) error {
	switch {
	case a.ClientID == "":
		return utils.NewValidationError("clientId", "is required")
	case a.Service.ID == "":
		return utils.NewValidationError("service", "is required")
	case a.Professional.ID == "":
		return utils.NewValidationError("professional", "is required")
	}
	if _, err := models.ParseDate(a.Date, nil); err != nil {
		return utils.NewValidationError("date", err.Error())
	}
	if err := validateTime(a.Time); err != nil {
		return err
	}
	if !a.Status.Valid() {
		return utils.NewValidationError("status", fmt.Sprintf("unknown status %q", a.Status))
	}
	if !a.PaymentStatus.Valid() {
		return utils.NewValidationError("paymentStatus", fmt.Sprintf("unknown payment status %q", a.PaymentStatus))
	}
	if (a.PaymentStatus == models.PaymentPaidWithPackage) != (a.ClientPackageID != "") {
		return utils.NewValidationError("clientPackageId", "must be set exactly when paymentStatus is paid_with_package")
	}
	if a.CommissionPercentage < 0 || a.CommissionPercentage > 100 {
		return utils.NewValidationError("commissionPercentage", "must be between 0 and 100")
	}
	return nil
}

// Create assigns an id, marks the appointment scheduled and inserts it.
func (s *AppointmentStore) Create(a models.Appointment) (models.Appointment, error) {
	a.ID = uuid.New().String()
	a.Status = models.StatusScheduled
	if a.PaymentStatus == "" {
		a.PaymentStatus = models.PaymentPending
	}
	a.Time = models.JoinSlots(models.SplitSlots(a.Time))
	if err := validateAppointment(a); err != nil {
		return models.Appointment{}, err
	}
	a.Service = a.Service.Clone()
	a.Professional = a.Professional.Clone()
	a.CreatedAt = s.clock.Now()

	s.mu.Lock()
	s.items = append(s.items, a)
	s.sortLocked()
	s.mu.Unlock()

	s.pub.Publish(events.Upserted(models.KindAppointment, a.ID, a))
	return a, nil
}

// Update merges patch into the stored appointment. Status only moves when the
// patch sets it, and a terminal status never changes again.
func (s *AppointmentStore) Update(id string, patch models.AppointmentPatch) (models.Appointment, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Appointment{}, utils.NewNotFoundError("appointment", id)
	}
	a := s.items[idx]

	if patch.Status != nil && *patch.Status != a.Status {
		if a.Status.Terminal() {
			s.mu.Unlock()
			return models.Appointment{}, utils.NewValidationError("status", fmt.Sprintf("appointment is already %s", a.Status))
		}
		a.Status = *patch.Status
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Time != nil {
		a.Time = models.JoinSlots(models.SplitSlots(*patch.Time))
	}
	if patch.PaymentStatus != nil {
		a.PaymentStatus = *patch.PaymentStatus
	}
	if patch.ClientPackageID != nil {
		a.ClientPackageID = *patch.ClientPackageID
	}
	if patch.CommissionPercentage != nil {
		a.CommissionPercentage = *patch.CommissionPercentage
	}
	if patch.Price != nil {
		a.Price = *patch.Price
	}
	if patch.Professional != nil {
		a.Professional = patch.Professional.Clone()
	}

	if err := validateAppointment(a); err != nil {
		s.mu.Unlock()
		return models.Appointment{}, err
	}
	s.items[idx] = a
	s.sortLocked()
	s.mu.Unlock()

	s.pub.Publish(events.Upserted(models.KindAppointment, a.ID, a))
	return a, nil
}

// Delete removes the appointment.
func (s *AppointmentStore) Delete(id string) (models.Appointment, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Appointment{}, utils.NewNotFoundError("appointment", id)
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	s.pub.Publish(events.Deleted(models.KindAppointment, id, removed))
	return removed, nil
}

// DeleteByClientID removes every appointment of the client and returns them.
func (s *AppointmentStore) DeleteByClientID(clientID string) []models.Appointment {
	return s.deleteWhere(func(a models.Appointment) bool { return a.ClientID == clientID })
}

// DeleteByServiceID removes every appointment booked for the service.
func (s *AppointmentStore) DeleteByServiceID(serviceID string) []models.Appointment {
	return s.deleteWhere(func(a models.Appointment) bool { return a.Service.ID == serviceID })
}

// DeleteByProfessionalID removes every appointment with the professional.
func (s *AppointmentStore) DeleteByProfessionalID(professionalID string) []models.Appointment {
	return s.deleteWhere(func(a models.Appointment) bool { return a.Professional.ID == professionalID })
}

func (s *AppointmentStore) deleteWhere(match func(models.Appointment) bool) []models.Appointment {
	s.mu.Lock()
	var removed []models.Appointment
	kept := s.items[:0]
	for _, a := range s.items {
		if match(a) {
			removed = append(removed, a)
			continue
		}
		kept = append(kept, a)
	}
	s.items = kept
	s.mu.Unlock()

	for _, a := range removed {
		s.pub.Publish(events.Deleted(models.KindAppointment, a.ID, a))
	}
	return removed
}

func (s *AppointmentStore) indexLocked(id string) int {
	for i, a := range s.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *AppointmentStore) Get(id string) (models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], nil
	}
	return models.Appointment{}, utils.NewNotFoundError("appointment", id)
}

// List returns every appointment in (date, time) order.
func (s *AppointmentStore) List() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Appointment(nil), s.items...)
}

// Filter returns the appointments matching all non-empty arguments.
func (s *AppointmentStore) Filter(date, professionalID, clientID string) []models.Appointment {
	var out []models.Appointment
	for _, a := range s.List() {
		if date != "" && a.Date != date {
			continue
		}
		if professionalID != "" && a.Professional.ID != professionalID {
			continue
		}
		if clientID != "" && a.ClientID != clientID {
			continue
		}
		out = append(out, a)
	}
	return out
}
