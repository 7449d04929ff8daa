package catalog

import (
	"salonbook/models"
	"salonbook/services/events"
	"salonbook/utils"

	"github.com/google/uuid"
)

// PackageCatalog holds the sellable package templates.
type PackageCatalog struct {
	reg      *registry[models.PackageTemplate]
	services *ServiceCatalog
}

// NewPackageCatalog builds a catalog; when services is non-nil, templates must
// point at an existing service.
func NewPackageCatalog(services *ServiceCatalog, pub events.Publisher) *PackageCatalog {
	return &PackageCatalog{
		reg:      newRegistry(models.KindPackageTemplate, func(t models.PackageTemplate) string { return t.ID }, pub),
		services: services,
	}
}

func (c *PackageCatalog) Load(templates []models.PackageTemplate) { c.reg.load(templates) }

func (c *PackageCatalog) check(t *models.PackageTemplate) error {
	if err := validateTemplate(t); err != nil {
		return err
	}
	if c.services != nil {
		if _, err := c.services.Get(t.ServiceID); err != nil {
			return err
		}
	}
	return nil
}

func (c *PackageCatalog) Add(t models.PackageTemplate) (models.PackageTemplate, error) {
	if err := c.check(&t); err != nil {
		return models.PackageTemplate{}, err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	} else if _, exists := c.reg.get(t.ID); exists {
		return models.PackageTemplate{}, utils.NewValidationError("id", "already exists")
	}
	c.reg.put(t)
	return t, nil
}

func (c *PackageCatalog) Update(t models.PackageTemplate) (models.PackageTemplate, error) {
	if _, ok := c.reg.get(t.ID); !ok {
		return models.PackageTemplate{}, utils.NewNotFoundError("package template", t.ID)
	}
	if err := c.check(&t); err != nil {
		return models.PackageTemplate{}, err
	}
	c.reg.put(t)
	return t, nil
}

func (c *PackageCatalog) Get(id string) (models.PackageTemplate, error) {
	t, ok := c.reg.get(id)
	if !ok {
		return models.PackageTemplate{}, utils.NewNotFoundError("package template", id)
	}
	return t, nil
}

func (c *PackageCatalog) List() []models.PackageTemplate { return c.reg.list() }

// ListForService returns the templates that entitle serviceID.
func (c *PackageCatalog) ListForService(serviceID string) []models.PackageTemplate {
	var out []models.PackageTemplate
	for _, t := range c.reg.list() {
		if t.ServiceID == serviceID {
			out = append(out, t)
		}
	}
	return out
}

// Delete removes the template only. Purchased instances are removed by the
// credit ledger.
func (c *PackageCatalog) Delete(id string) (models.PackageTemplate, error) {
	t, ok := c.reg.remove(id)
	if !ok {
		return models.PackageTemplate{}, utils.NewNotFoundError("package template", id)
	}
	return t, nil
}
