package handlers

import (
	"log"

	"MedicAid/middlewares"
	"MedicAid/services"

	"github.com/gin-gonic/gin"
)

type SpecialistHandler struct {
	service *services.SpecialistService
}

func NewSpecialistHandler(service *services.SpecialistService) *SpecialistHandler {
	return &SpecialistHandler{service: service}
}

// Search finds specialists for a specialty near the given coordinates or
// area name.
func (h *SpecialistHandler) Search(c *gin.Context) {
	if _, err := middlewares.ExtractRecordIDFromContext(c.Request.Context()); err != nil {
		c.JSON(401, gin.H{"error": "not authenticated"})
		return
	}

	var query services.SpecialistQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	specialists, err := h.service.Search(c, query)
	if err != nil {
		log.Printf("Specialist search failed: %v", err)
		c.JSON(502, gin.H{"error": "Could not find specialists in that area."})
		return
	}

	c.JSON(200, specialists)
}
