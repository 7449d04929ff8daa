package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/services/scheduling"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	Service booking.BookingService
	Store   *scheduling.AppointmentStore
}

// ListHandler filters by date, professionalId and clientId; all optional.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	appts := h.Store.Filter(c.Query("date"), c.Query("professionalId"), c.Query("clientId"))
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	appt, err := h.Store.Get(c.Param("id"))
	if err != nil {
		respondError(c, "Appointment not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

func (h *AppointmentHandler) SetStatusHandler(c *gin.Context) {
	var body struct {
		Status models.AppointmentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Service.SetStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, "Failed to update status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// ChangePackageHandler moves an appointment onto another client package.
// An empty or null clientPackageId detaches it and leaves payment pending.
func (h *AppointmentHandler) ChangePackageHandler(c *gin.Context) {
	var body struct {
		ClientPackageID string `json:"clientPackageId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Service.ChangePackage(c.Request.Context(), c.Param("id"), body.ClientPackageID)
	if err != nil {
		respondError(c, "Failed to change package", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to cancel appointment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
