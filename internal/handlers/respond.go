package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthcare-backend/internal/service"
)

// respondError maps a service error kind onto an HTTP status. Validation,
// authorization and not-found messages are service-authored and safe to
// return; everything else gets a generic message so internal detail
// stays in the logs.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": clientMessage(err)})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	case errors.Is(err, service.ErrUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "No response received from AI. Please try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred. Please try again."})
	}
}

// clientMessage strips the wrapped sentinel suffix from a validation
// error, leaving the human-readable part.
func clientMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+service.ErrValidation.Error())
}
