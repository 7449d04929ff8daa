package handlers

import (
	"net/http"
	"strconv"

	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

type RetouchHandler struct {
	Service booking.BookingService
}

// AlertsHandler returns retouch alerts. threshold defaults to the configured
// value; best=true keeps only the most urgent alert per client.
func (h *RetouchHandler) AlertsHandler(c *gin.Context) {
	threshold := -1
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, "Invalid threshold", utils.NewValidationError("threshold", "must be a non-negative integer"))
			return
		}
		threshold = n
	}

	alerts := h.Service.RetouchAlerts(threshold, c.Query("best") == "true")
	if alerts == nil {
		alerts = []models.RetouchAlert{}
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
