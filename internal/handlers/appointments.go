package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthcare-backend/internal/middleware"
	"healthcare-backend/internal/service"
)

// AppointmentHandler serves booking, listing and status updates.
type AppointmentHandler struct {
	appointments *service.AppointmentService
}

func NewAppointmentHandler(appointments *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// Book handles POST /api/appointments (patients only).
func (h *AppointmentHandler) Book(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req service.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Doctor, date and time are required"})
		return
	}

	appointment, err := h.appointments.Book(principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Appointment request sent! Waiting for doctor approval.",
		"appointment": appointment,
	})
}

// List handles GET /api/appointments for either role.
func (h *AppointmentHandler) List(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	appointments, err := h.appointments.ListForUser(principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateStatus handles PUT /api/appointments/:id.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid appointment ID format"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	if err := h.appointments.UpdateStatus(principal, uint(appointmentID), req.Status, req.Notes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment " + req.Status + " successfully"})
}
