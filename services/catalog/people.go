package catalog

import (
	"salonbook/models"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/google/uuid"
)

// ProfessionalRoster holds the bookable staff.
type ProfessionalRoster struct {
	reg *registry[models.Professional]
}

func NewProfessionalRoster(pub events.Publisher) *ProfessionalRoster {
	return &ProfessionalRoster{
		reg: newRegistry(models.KindProfessional, func(p models.Professional) string { return p.ID }, pub),
	}
}

func (r *ProfessionalRoster) Load(pros []models.Professional) { r.reg.load(pros) }

func (r *ProfessionalRoster) Add(p models.Professional) (models.Professional, error) {
	if err := validateProfessional(&p); err != nil {
		return models.Professional{}, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	} else if _, exists := r.reg.get(p.ID); exists {
		return models.Professional{}, utils.NewValidationError("id", "already exists")
	}
	p = p.Clone()
	r.reg.put(p)
	return p, nil
}

func (r *ProfessionalRoster) Update(p models.Professional) (models.Professional, error) {
	if _, ok := r.reg.get(p.ID); !ok {
		return models.Professional{}, utils.NewNotFoundError("professional", p.ID)
	}
	if err := validateProfessional(&p); err != nil {
		return models.Professional{}, err
	}
	p = p.Clone()
	r.reg.put(p)
	return p, nil
}

func (r *ProfessionalRoster) Get(id string) (models.Professional, error) {
	p, ok := r.reg.get(id)
	if !ok {
		return models.Professional{}, utils.NewNotFoundError("professional", id)
	}
	return p.Clone(), nil
}

func (r *ProfessionalRoster) List() []models.Professional { return r.reg.list() }

func (r *ProfessionalRoster) Delete(id string) (models.Professional, error) {
	p, ok := r.reg.remove(id)
	if !ok {
		return models.Professional{}, utils.NewNotFoundError("professional", id)
	}
	return p, nil
}

// DropService removes serviceID from every professional's bookable list.
func (r *ProfessionalRoster) DropService(serviceID string) {
	for _, p := range r.reg.list() {
		if !p.OffersService(serviceID) {
			continue
		}
		p = p.Clone()
		kept := p.ServiceIDs[:0]
		for _, id := range p.ServiceIDs {
			if id != serviceID {
				kept = append(kept, id)
			}
		}
		p.ServiceIDs = kept
		r.reg.put(p)
	}
}

// ClientRoster holds the salon's clients.
type ClientRoster struct {
	reg *registry[models.Client]
}

func NewClientRoster(pub events.Publisher) *ClientRoster {
	return &ClientRoster{
		reg: newRegistry(models.KindClient, func(c models.Client) string { return c.ID }, pub),
	}
}

func (r *ClientRoster) Load(clients []models.Client) { r.reg.load(clients) }

func (r *ClientRoster) Add(c models.Client) (models.Client, error) {
	if c.Name == "" {
		return models.Client{}, utils.NewValidationError("name", "is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	} else if _, exists := r.reg.get(c.ID); exists {
		return models.Client{}, utils.NewValidationError("id", "already exists")
	}
	r.reg.put(c)
	return c, nil
}

func (r *ClientRoster) Update(c models.Client) (models.Client, error) {
	if _, ok := r.reg.get(c.ID); !ok {
		return models.Client{}, utils.NewNotFoundError("client", c.ID)
	}
	if c.Name == "" {
		return models.Client{}, utils.NewValidationError("name", "is required")
	}
	r.reg.put(c)
	return c, nil
}

func (r *ClientRoster) Get(id string) (models.Client, error) {
	c, ok := r.reg.get(id)
	if !ok {
		return models.Client{}, utils.NewNotFoundError("client", id)
	}
	return c, nil
}

func (r *ClientRoster) List() []models.Client { return r.reg.list() }

func (r *ClientRoster) Delete(id string) (models.Client, error) {
	c, ok := r.reg.remove(id)
	if !ok {
		return models.Client{}, utils.NewNotFoundError("client", id)
	}
	return c, nil
}
