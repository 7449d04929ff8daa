package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Service booking.BookingService
}

// SlotsHandler lists slot blocks for a professional, service and date.
// admin=true returns the full day with flags instead of bookable blocks only.
func (h *BookingHandler) SlotsHandler(c *gin.Context) {
	var q struct {
		ProfessionalID string `form:"professionalId" binding:"required"`
		ServiceID      string `form:"serviceId" binding:"required"`
		Date           string `form:"date" binding:"required"`
		Admin          bool   `form:"admin"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	blocks, err := h.Service.AvailableSlots(c.Request.Context(), q.ProfessionalID, q.ServiceID, q.Date, q.Admin)
	if err != nil {
		respondError(c, "Failed to compute slots", err)
		return
	}
	if blocks == nil {
		blocks = []models.SlotBlock{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": blocks})
}

func (h *BookingHandler) QuoteHandler(c *gin.Context) {
	var q struct {
		ProfessionalID string          `form:"professionalId" binding:"required"`
		ItemID         string          `form:"itemId" binding:"required"`
		ItemType       models.ItemType `form:"itemType"`
		Date           string          `form:"date" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	if q.ItemType == "" {
		q.ItemType = models.ItemService
	}

	quote, err := h.Service.Quote(q.ProfessionalID, q.ItemID, q.ItemType, q.Date)
	if err != nil {
		respondError(c, "Failed to quote", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// BookHandler creates an appointment.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var req booking.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked", "appointment": appt})
}
