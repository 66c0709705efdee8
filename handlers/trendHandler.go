package handlers

import (
	"MedicAid/middlewares"
	"MedicAid/models"
	"MedicAid/services"
	"MedicAid/utils"

	"github.com/gin-gonic/gin"
)

type TrendHandler struct {
	service *services.PatientService
}

func NewTrendHandler(service *services.PatientService) *TrendHandler {
	return &TrendHandler{service: service}
}

func (h *TrendHandler) loadPatient(c *gin.Context) *models.PatientRecord {
	recordID, err := middlewares.ExtractRecordIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "not authenticated"})
		return nil
	}
	record, err := h.service.Get(c, recordID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return nil
	}
	if record == nil {
		c.JSON(404, gin.H{"error": "patient record not found"})
		return nil
	}
	return record
}

// GetTrackableMarkers lists canonical marker keys seen across the history,
// most frequent first. The dashboard charts the first entry by default.
func (h *TrendHandler) GetTrackableMarkers(c *gin.Context) {
	record := h.loadPatient(c)
	if record == nil {
		return
	}
	c.JSON(200, services.TrackableMarkers(record.History))
}

// GetMarkerSeries returns the chronological readings for one canonical
// marker key.
func (h *TrendHandler) GetMarkerSeries(c *gin.Context) {
	record := h.loadPatient(c)
	if record == nil {
		return
	}
	key := utils.NormalizeMarkerName(c.Param("marker_key"))
	c.JSON(200, services.MarkerSeries(key, record.History))
}

// GetMarkerShift reconciles one marker of one analysis record against its
// most recent prior occurrence and reports the clinical direction.
func (h *TrendHandler) GetMarkerShift(c *gin.Context) {
	record := h.loadPatient(c)
	if record == nil {
		return
	}

	analysisID := c.Param("analysis_id")
	markerName := c.Query("name")
	if markerName == "" {
		c.JSON(400, gin.H{"error": "marker name is required"})
		return
	}

	var analysis *models.AnalysisRecord
	for i := range record.History {
		if record.History[i].ID == analysisID {
			analysis = &record.History[i]
			break
		}
	}
	if analysis == nil {
		c.JSON(404, gin.H{"error": "analysis record not found"})
		return
	}

	key := utils.NormalizeMarkerName(markerName)
	var marker *models.LabMarker
	for i := range analysis.Markers {
		if utils.NormalizeMarkerName(analysis.Markers[i].Name) == key {
			marker = &analysis.Markers[i]
			break
		}
	}
	if marker == nil {
		c.JSON(404, gin.H{"error": "marker not found in analysis record"})
		return
	}

	c.JSON(200, services.Reconcile(*marker, analysis.Timestamp, record.History))
}
