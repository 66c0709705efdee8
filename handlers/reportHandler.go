package handlers

import (
	"encoding/base64"
	"errors"
	"log"

	"MedicAid/llm"
	"MedicAid/middlewares"
	"MedicAid/services"
	"MedicAid/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *services.AnalysisService
}

func NewReportHandler(service *services.AnalysisService) *ReportHandler {
	return &ReportHandler{service: service}
}

// analyzeRequest carries uploaded report content: pasted clinical text
// and/or base64-encoded scans with mime types.
type analyzeRequest struct {
	Texts     []string `json:"texts"`
	Documents []struct {
		Data     string `json:"data"`
		MimeType string `json:"mimeType"`
	} `json:"documents"`
}

// AnalyzeReports runs the full upload pipeline for the session's patient.
// Either the complete merge-and-save happens or nothing does; every
// failure leaves the stored record exactly as it was.
func (h *ReportHandler) AnalyzeReports(c *gin.Context) {
	recordID, err := middlewares.ExtractRecordIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "not authenticated"})
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	docs := make([]llm.Document, 0, len(req.Texts)+len(req.Documents))
	for _, text := range req.Texts {
		if text != "" {
			docs = append(docs, llm.Document{Text: text})
		}
	}
	for _, doc := range req.Documents {
		data, err := base64.StdEncoding.DecodeString(doc.Data)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid base64 document data"})
			return
		}
		docs = append(docs, llm.Document{Data: data, MimeType: doc.MimeType})
	}
	if len(docs) == 0 {
		c.JSON(400, gin.H{"error": "no documents provided"})
		return
	}

	result, err := h.service.AnalyzeAndMerge(c, recordID, docs)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmptyBatch):
			c.JSON(422, gin.H{"error": utils.ErrEmptyBatch.Error()})
		case errors.Is(err, services.ErrMalformedBatch):
			log.Printf("Rejected malformed extraction batch: %v", err)
			c.JSON(502, gin.H{"error": "extraction returned malformed data; nothing was stored"})
		case errors.Is(err, services.ErrRecordNotFound):
			c.JSON(404, gin.H{"error": "patient record not found"})
		default:
			log.Printf("Analysis failed: %v", err)
			c.JSON(502, gin.H{"error": "Analysis encountered an issue. Please ensure the documents are clear."})
		}
		return
	}

	c.JSON(200, result)
}
