package handlers

import (
	"errors"
	"io"
	"log"

	"MedicAid/middlewares"
	"MedicAid/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService    *services.ChatService
	patientService *services.PatientService
}

func NewChatHandler(chatService *services.ChatService, patientService *services.PatientService) *ChatHandler {
	return &ChatHandler{chatService: chatService, patientService: patientService}
}

// CreateSession opens a chat session seeded from one analysis record of
// the session's patient.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	recordID, err := middlewares.ExtractRecordIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		AnalysisID string `json:"analysisId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.patientService.Get(c, recordID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if patient == nil {
		c.JSON(404, gin.H{"error": "patient record not found"})
		return
	}

	sessionID, greeting, err := h.chatService.CreateSession(patient, req.AnalysisID)
	if err != nil {
		c.JSON(404, gin.H{"error": "analysis record not found"})
		return
	}

	c.JSON(201, gin.H{"sessionId": sessionID, "greeting": greeting})
}

// SendMessage relays a patient message into the session and streams the
// assistant reply back as server-sent events, one fragment per event.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	recordID, err := middlewares.ExtractRecordIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(400, gin.H{"error": "message is required"})
		return
	}

	fragments, err := h.chatService.SendMessage(c.Request.Context(), recordID, c.Param("session_id"), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(404, gin.H{"error": "chat session not found"})
			return
		}
		log.Printf("Chat message failed: %v", err)
		c.JSON(502, gin.H{"error": "I encountered an error connecting to clinical services. Please try again."})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		fragment, ok := <-fragments
		if !ok {
			c.SSEvent("done", "")
			return false
		}
		c.SSEvent("message", fragment)
		return true
	})
}

// CloseSession tears the session down; the stored record is untouched.
func (h *ChatHandler) CloseSession(c *gin.Context) {
	recordID, err := middlewares.ExtractRecordIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "not authenticated"})
		return
	}
	h.chatService.CloseSession(recordID, c.Param("session_id"))
	c.Status(204)
}
