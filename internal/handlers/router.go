package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Appointments  *AppointmentHandler
	Symptoms      *SymptomHandler
	Notifications *NotificationHandler
	Tokens        *auth.TokenManager
}

// RegisterRoutes wires all endpoints onto the engine. Route guards
// compose in front of handlers: authentication first, then the role
// check where one applies.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "healthcare-backend"})
	})

	api := r.Group("/api")

	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)

	authed := api.Group("")
	authed.Use(middleware.LoginRequired(h.Tokens))
	{
		authed.GET("/dashboard", h.Profile.Dashboard)
		authed.GET("/profile", h.Profile.Get)
		authed.PUT("/profile", h.Profile.Update)
		authed.GET("/doctors", h.Profile.Doctors)

		authed.GET("/appointments", h.Appointments.List)
		authed.PUT("/appointments/:id", h.Appointments.UpdateStatus)

		authed.GET("/notifications", h.Notifications.List)
		authed.GET("/notifications/count", h.Notifications.Count)
		authed.PUT("/notifications/:id/read", h.Notifications.MarkRead)
	}

	patient := api.Group("")
	patient.Use(middleware.LoginRequired(h.Tokens), middleware.PatientRequired())
	{
		patient.POST("/appointments", h.Appointments.Book)
		patient.POST("/symptom-checker", h.Symptoms.Check)
		patient.GET("/symptom-checks/:id", h.Symptoms.Get)
	}
}
