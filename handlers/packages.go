package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/services/catalog"
	"salonbook/services/packages"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

type PackageHandler struct {
	Service   booking.BookingService
	Templates *catalog.PackageCatalog
	Ledger    *packages.Ledger
	Clock     utils.Clock
}

func (h *PackageHandler) now() utils.Clock {
	if h.Clock == nil {
		return utils.SystemClock{}
	}
	return h.Clock
}

func (h *PackageHandler) CreateTemplateHandler(c *gin.Context) {
	var t models.PackageTemplate
	if err := c.ShouldBindJSON(&t); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.Templates.Add(t)
	if err != nil {
		respondError(c, "Failed to create package template", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": created})
}

func (h *PackageHandler) UpdateTemplateHandler(c *gin.Context) {
	var t models.PackageTemplate
	if err := c.ShouldBindJSON(&t); err != nil {
		bindError(c, err)
		return
	}
	t.ID = c.Param("id")
	updated, err := h.Service.UpdatePackageTemplate(c.Request.Context(), t)
	if err != nil {
		respondError(c, "Failed to update package template", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": updated})
}

// ListTemplatesHandler lists templates, optionally narrowed by serviceId.
func (h *PackageHandler) ListTemplatesHandler(c *gin.Context) {
	var list []models.PackageTemplate
	if serviceID := c.Query("serviceId"); serviceID != "" {
		list = h.Templates.ListForService(serviceID)
	} else {
		list = h.Templates.List()
	}
	if list == nil {
		list = []models.PackageTemplate{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": list})
}

// DeleteTemplateHandler removes the template along with every client package
// bought from it.
func (h *PackageHandler) DeleteTemplateHandler(c *gin.Context) {
	if err := h.Service.DeletePackageTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete package template", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Package template deleted"})
}

func (h *PackageHandler) BuyHandler(c *gin.Context) {
	var body struct {
		ClientID   string `json:"clientId" binding:"required"`
		TemplateID string `json:"packageTemplateId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	purchase, err := h.Service.BuyPackage(c.Request.Context(), body.ClientID, body.TemplateID)
	if err != nil {
		respondError(c, "Failed to buy package", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"package": purchase.Package, "price": purchase.Price})
}

// ActiveHandler lists the client's usable packages as of asOf (default today).
func (h *PackageHandler) ActiveHandler(c *gin.Context) {
	asOf := h.now().Now()
	if raw := c.Query("asOf"); raw != "" {
		d, err := models.ParseDate(raw, asOf.Location())
		if err != nil {
			respondError(c, "Invalid asOf", utils.NewValidationError("asOf", err.Error()))
			return
		}
		asOf = d
	}
	active := h.Ledger.GetActiveForClient(c.Param("clientId"), asOf)
	if active == nil {
		active = []models.ActivePackage{}
	}
	c.JSON(http.StatusOK, gin.H{"packages": active})
}

func (h *PackageHandler) ClientPackagesHandler(c *gin.Context) {
	list := h.Ledger.ListForClient(c.Param("clientId"))
	if list == nil {
		list = []models.ClientPackage{}
	}
	c.JSON(http.StatusOK, gin.H{"packages": list})
}

func (h *PackageHandler) UseCreditHandler(c *gin.Context) {
	pkg, changed, err := h.Ledger.UseCredit(c.Param("id"))
	if err != nil {
		respondError(c, "Failed to use credit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg, "changed": changed})
}

func (h *PackageHandler) ReturnCreditHandler(c *gin.Context) {
	pkg, changed, err := h.Ledger.ReturnCredit(c.Param("id"))
	if err != nil {
		respondError(c, "Failed to return credit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg, "changed": changed})
}
