package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthcare-backend/internal/middleware"
	"healthcare-backend/internal/service"
)

// ProfileHandler serves profile reads and updates plus the doctor
// directory and dashboard projections.
type ProfileHandler struct {
	accounts  *service.AccountService
	dashboard *service.DashboardService
}

func NewProfileHandler(accounts *service.AccountService, dashboard *service.DashboardService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, dashboard: dashboard}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	profile, err := h.accounts.GetProfile(principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid profile payload"})
		return
	}

	if err := h.accounts.UpdateProfile(principal, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}

// Doctors handles GET /api/doctors with an optional specialization filter.
func (h *ProfileHandler) Doctors(c *gin.Context) {
	doctors, err := h.accounts.ListDoctors(c.Query("specialization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// Dashboard handles GET /api/dashboard.
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	dashboard, err := h.dashboard.Load(principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
