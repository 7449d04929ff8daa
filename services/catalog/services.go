package catalog

import (
	"salonbook/models"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/google/uuid"
)

// ServiceCatalog holds the salon's service definitions.
type ServiceCatalog struct {
	reg *registry[models.Service]
}

func NewServiceCatalog(pub events.Publisher) *ServiceCatalog {
	return &ServiceCatalog{
		reg: newRegistry(models.KindService, func(s models.Service) string { return s.ID }, pub),
	}
}

func (c *ServiceCatalog) Load(services []models.Service) { c.reg.load(services) }

// Add validates s, assigns an id when missing and stores it.
func (c *ServiceCatalog) Add(s models.Service) (models.Service, error) {
	if err := validateService(&s); err != nil {
		return models.Service{}, err
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	} else if _, exists := c.reg.get(s.ID); exists {
		return models.Service{}, utils.NewValidationError("id", "already exists")
	}
	c.reg.put(s)
	return s, nil
}

// Update replaces an existing service. Appointments keep their own snapshot.
func (c *ServiceCatalog) Update(s models.Service) (models.Service, error) {
	if _, ok := c.reg.get(s.ID); !ok {
		return models.Service{}, utils.NewNotFoundError("service", s.ID)
	}
	if err := validateService(&s); err != nil {
		return models.Service{}, err
	}
	c.reg.put(s)
	return s, nil
}

func (c *ServiceCatalog) Get(id string) (models.Service, error) {
	s, ok := c.reg.get(id)
	if !ok {
		return models.Service{}, utils.NewNotFoundError("service", id)
	}
	return s, nil
}

func (c *ServiceCatalog) List() []models.Service { return c.reg.list() }

// ListForProfessional returns the shared services plus the ones private to
// professionalID.
func (c *ServiceCatalog) ListForProfessional(professionalID string) []models.Service {
	var out []models.Service
	for _, s := range c.reg.list() {
		if s.OwnerID == "" || s.OwnerID == professionalID {
			out = append(out, s)
		}
	}
	return out
}

// Delete removes the service only; dependent appointments are removed by
// the booking service.
func (c *ServiceCatalog) Delete(id string) (models.Service, error) {
	s, ok := c.reg.remove(id)
	if !ok {
		return models.Service{}, utils.NewNotFoundError("service", id)
	}
	return s, nil
}
