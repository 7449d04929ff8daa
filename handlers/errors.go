package handlers

import (
	"errors"
	"net/http"

	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, utils.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, utils.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrSlotUnavailable), errors.Is(err, booking.ErrPackageNotUsable):
		status = http.StatusConflict
	default:
		getLogger(c).Error(message, zap.String("path", c.FullPath()), zap.Error(err))
	}
	utils.JSONError(c, status, message, err.Error())
}

func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
}
