package llm

import (
	"testing"

	"MedicAid/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildChatContext(t *testing.T) {
	analysis := models.AnalysisRecord{
		KeyFinding: "Severely elevated fasting glucose",
		Markers: []models.LabMarker{
			{Name: "Fasting Blood Glucose", Value: "180", Unit: "mg/dL", Status: "critical"},
			{Name: "HbA1c", Value: "9.1", Unit: "%", Status: "high"},
		},
	}
	history := []models.AnalysisRecord{
		{KeyFinding: "Severely elevated fasting glucose"},
		{KeyFinding: "Normal glucose"},
	}

	seed := BuildChatContext(analysis, history)

	expected := "Current Report Finding: Severely elevated fasting glucose\n" +
		"Markers: Fasting Blood Glucose: 180 mg/dL (critical), HbA1c: 9.1 % (high)\n" +
		"Historical Context: Severely elevated fasting glucose -> Normal glucose"
	assert.Equal(t, expected, seed)

	// Same inputs always produce the same seed.
	assert.Equal(t, seed, BuildChatContext(analysis, history))
}

func TestBuildChatContextEmptyHistory(t *testing.T) {
	analysis := models.AnalysisRecord{KeyFinding: "Normal panel"}
	seed := BuildChatContext(analysis, nil)
	assert.Contains(t, seed, "Current Report Finding: Normal panel")
	assert.Contains(t, seed, "Historical Context: ")
}
