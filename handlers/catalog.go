package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/services/catalog"
	"salonbook/services/pricing"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the salon's reference data. Deletes go through the
// booking service so dependent appointments and packages follow.
type CatalogHandler struct {
	Service       booking.BookingService
	Services      *catalog.ServiceCatalog
	Professionals *catalog.ProfessionalRoster
	Clients       *catalog.ClientRoster
	Discounts     *pricing.DiscountRules
}

// Services

func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var s models.Service
	if err := c.ShouldBindJSON(&s); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.Services.Add(s)
	if err != nil {
		respondError(c, "Failed to create service", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": created})
}

func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var s models.Service
	if err := c.ShouldBindJSON(&s); err != nil {
		bindError(c, err)
		return
	}
	s.ID = c.Param("id")
	updated, err := h.Services.Update(s)
	if err != nil {
		respondError(c, "Failed to update service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": updated})
}

// ListServicesHandler lists services, or only those a professional offers
// when professionalId is given.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	var list []models.Service
	if proID := c.Query("professionalId"); proID != "" {
		list = h.Services.ListForProfessional(proID)
	} else {
		list = h.Services.List()
	}
	if list == nil {
		list = []models.Service{}
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}

func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	s, err := h.Services.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Service not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": s})
}

func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Service.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// Professionals

func (h *CatalogHandler) CreateProfessionalHandler(c *gin.Context) {
	var p models.Professional
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.Professionals.Add(p)
	if err != nil {
		respondError(c, "Failed to create professional", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"professional": created})
}

func (h *CatalogHandler) UpdateProfessionalHandler(c *gin.Context) {
	var p models.Professional
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	p.ID = c.Param("id")
	updated, err := h.Professionals.Update(p)
	if err != nil {
		respondError(c, "Failed to update professional", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professional": updated})
}

func (h *CatalogHandler) ListProfessionalsHandler(c *gin.Context) {
	list := h.Professionals.List()
	if list == nil {
		list = []models.Professional{}
	}
	c.JSON(http.StatusOK, gin.H{"professionals": list})
}

func (h *CatalogHandler) GetProfessionalHandler(c *gin.Context) {
	p, err := h.Professionals.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Professional not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professional": p})
}

func (h *CatalogHandler) DeleteProfessionalHandler(c *gin.Context) {
	if err := h.Service.DeleteProfessional(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete professional", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Professional deleted"})
}

// Clients

func (h *CatalogHandler) CreateClientHandler(c *gin.Context) {
	var cl models.Client
	if err := c.ShouldBindJSON(&cl); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.Clients.Add(cl)
	if err != nil {
		respondError(c, "Failed to create client", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client": created})
}

func (h *CatalogHandler) UpdateClientHandler(c *gin.Context) {
	var cl models.Client
	if err := c.ShouldBindJSON(&cl); err != nil {
		bindError(c, err)
		return
	}
	cl.ID = c.Param("id")
	updated, err := h.Clients.Update(cl)
	if err != nil {
		respondError(c, "Failed to update client", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": updated})
}

func (h *CatalogHandler) ListClientsHandler(c *gin.Context) {
	list := h.Clients.List()
	if list == nil {
		list = []models.Client{}
	}
	c.JSON(http.StatusOK, gin.H{"clients": list})
}

func (h *CatalogHandler) GetClientHandler(c *gin.Context) {
	cl, err := h.Clients.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Client not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": cl})
}

func (h *CatalogHandler) DeleteClientHandler(c *gin.Context) {
	if err := h.Service.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete client", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

// Discounts

func (h *CatalogHandler) CreateDiscountHandler(c *gin.Context) {
	var d models.WeeklyDiscount
	if err := c.ShouldBindJSON(&d); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.Discounts.Add(d)
	if err != nil {
		respondError(c, "Failed to create discount", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"discount": created})
}

func (h *CatalogHandler) UpdateDiscountHandler(c *gin.Context) {
	var d models.WeeklyDiscount
	if err := c.ShouldBindJSON(&d); err != nil {
		bindError(c, err)
		return
	}
	d.ID = c.Param("id")
	updated, err := h.Discounts.Update(d)
	if err != nil {
		respondError(c, "Failed to update discount", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount": updated})
}

func (h *CatalogHandler) ListDiscountsHandler(c *gin.Context) {
	list := h.Discounts.List()
	if list == nil {
		list = []models.WeeklyDiscount{}
	}
	c.JSON(http.StatusOK, gin.H{"discounts": list})
}

func (h *CatalogHandler) DeleteDiscountHandler(c *gin.Context) {
	if err := h.Discounts.Delete(c.Param("id")); err != nil {
		respondError(c, "Failed to delete discount", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount deleted"})
}
