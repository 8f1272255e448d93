package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthcare-backend/internal/middleware"
	"healthcare-backend/internal/service"
)

// NotificationHandler serves the notification list, counter and
// mark-read endpoint.
type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	list, err := h.notifications.List(principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"unread":             list.Unread,
		"read_notifications": list.Read,
	})
}

// Count handles GET /api/notifications/count.
func (h *NotificationHandler) Count(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	count, err := h.notifications.UnreadCount(principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid notification ID format"})
		return
	}

	if err := h.notifications.MarkRead(principal, uint(notificationID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
