package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthcare-backend/internal/middleware"
	"healthcare-backend/internal/service"
)

// SymptomHandler serves the symptom checker (patients only).
type SymptomHandler struct {
	symptoms *service.SymptomService
}

func NewSymptomHandler(symptoms *service.SymptomService) *SymptomHandler {
	return &SymptomHandler{symptoms: symptoms}
}

// Check handles POST /api/symptom-checker.
func (h *SymptomHandler) Check(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req service.SymptomCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Symptoms are required"})
		return
	}

	result, err := h.symptoms.Run(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"analysis":       result.Analysis,
		"has_image":      result.HasImage,
		"image_analysis": result.ImageAnalysis,
		"check_id":       result.CheckID,
	})
}

// Get handles GET /api/symptom-checks/:id, owner-only.
func (h *SymptomHandler) Get(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	checkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid symptom check ID format"})
		return
	}

	check, err := h.symptoms.Get(principal, uint(checkID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "check": check})
}
