package handlers

import (
	"log"

	"MedicAid/middlewares"
	"MedicAid/models"
	"MedicAid/services"
	"MedicAid/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.PatientService
}

func NewAuthHandler(service *services.PatientService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login identifies the patient by name plus mobile or ABHA id, loads or
// creates the stored record, and sets the session cookies. The cookies are
// only a pointer at the record; the record itself stays in storage.
func (h *AuthHandler) Login(c *gin.Context) {
	var auth models.AuthData
	if err := c.ShouldBindJSON(&auth); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	record, err := h.service.Login(c, auth)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	sessionToken, refreshToken, err := utils.GenerateSessionTokens(record.ID)
	if err != nil {
		log.Printf("Failed to generate session tokens: %v", err)
		c.JSON(500, gin.H{"error": "failed to start session"})
		return
	}
	utils.SetSessionCookies(c, sessionToken, refreshToken)

	c.JSON(200, record)
}

// Logout clears the session cookies. Stored patient data is untouched.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearSessionCookies(c)
	c.JSON(200, gin.H{"message": "logged out"})
}

// GetPatient returns the record the current session points at.
func (h *AuthHandler) GetPatient(c *gin.Context) {
	recordID, err := middlewares.ExtractRecordIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "not authenticated"})
		return
	}

	record, err := h.service.Get(c, recordID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(404, gin.H{"error": "patient record not found"})
		return
	}
	c.JSON(200, record)
}

// RefreshSession rotates the short-lived session token using the refresh
// cookie.
func (h *AuthHandler) RefreshSession(c *gin.Context) {
	refreshToken, err := c.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		c.JSON(401, gin.H{"error": "missing refresh token"})
		return
	}

	claims, err := utils.ValidateSessionToken(refreshToken)
	if err != nil {
		c.JSON(401, gin.H{"error": "invalid refresh token"})
		return
	}

	sessionToken, err := utils.GenerateSessionToken(claims.RecordID)
	if err != nil {
		log.Printf("Failed to refresh session token: %v", err)
		c.JSON(500, gin.H{"error": "failed to refresh session"})
		return
	}
	utils.SetSessionCookies(c, sessionToken, refreshToken)
	c.JSON(200, gin.H{"message": "session refreshed"})
}
