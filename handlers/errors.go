package handlers

import (
	"errors"
	"net/http"

	"decorhub/middleware"
	"decorhub/services/booking"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, utils.ErrValidation), errors.Is(err, utils.ErrImmutableBooking):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, utils.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, utils.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrDecoratorUnavailable),
		errors.Is(err, utils.ErrConflict),
		errors.Is(err, utils.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, utils.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as a structured JSON error. Duplicate bookings and
// incomplete payments are not failures to the caller and answer 200.
func respondError(c *gin.Context, err error) {
	var dup *booking.DuplicateBookingError
	if errors.As(err, &dup) {
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"duplicate": true,
			"message":   "You already have an active booking for this service",
			"booking":   dup.Existing,
		})
		return
	}
	if errors.Is(err, utils.ErrPaymentIncomplete) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": utils.MessageOf(err)})
		return
	}

	status := statusOf(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		message := "Internal server error"
		if status == http.StatusBadGateway {
			message = utils.MessageOf(err)
		}
		c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
		return
	}
	logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": utils.MessageOf(err)})
}

func currentEmail(c *gin.Context) string {
	return middleware.CurrentEmail(c)
}

func badRequest(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	utils.JSONError(c, http.StatusBadRequest, message, details)
}
