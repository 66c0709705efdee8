package services

import (
	"sort"
	"strings"
	"time"

	"MedicAid/models"
)

// MergeHistory combines newly extracted records with the stored history.
// Incoming records take precedence in the dedup tie-break because they are
// scanned first. Distinct clinical events are identified by the pair
// (reportDate, keyFinding): later occurrences of the same pair are dropped.
// Survivors are sorted newest-first (stable on equal timestamps, preserving
// insertion order) and capped at HistoryCap, evicting the oldest. Inputs
// are never mutated; merging a set into itself is idempotent.
func MergeHistory(existing, incoming []models.AnalysisRecord) []models.AnalysisRecord {
	combined := make([]models.AnalysisRecord, 0, len(existing)+len(incoming))
	combined = append(combined, incoming...)
	combined = append(combined, existing...)

	type eventKey struct {
		reportDate string
		keyFinding string
	}
	seen := make(map[eventKey]bool, len(combined))
	merged := combined[:0:0]
	for _, record := range combined {
		key := eventKey{record.ReportDate, record.KeyFinding}
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, record)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp > merged[j].Timestamp
	})

	if len(merged) > models.HistoryCap {
		merged = merged[:models.HistoryCap]
	}
	return merged
}

// ApplyDemographics overwrites the patient-level demographic fields with
// the values the extraction reported, keeping prior values where the new
// report left them blank.
func ApplyDemographics(patient *models.PatientRecord, report models.AnalysisRecord) {
	if name := strings.TrimSpace(report.PatientName); name != "" {
		patient.Name = name
	}
	if age := strings.TrimSpace(report.PatientAge); age != "" {
		patient.Age = age
	}
	if gender := strings.TrimSpace(report.PatientGender); gender != "" {
		patient.Gender = gender
	}
}

// BuildHistorySummary renders the stored history into the baseline string
// handed to the extraction model.
func BuildHistorySummary(history []models.AnalysisRecord) string {
	if len(history) == 0 {
		return "No prior facility context."
	}
	lines := make([]string, 0, len(history))
	for _, h := range history {
		date := h.ReportDate
		if date == "" {
			date = time.UnixMilli(h.Timestamp).Format("Jan 2, 2006")
		}
		lines = append(lines, "Date: "+date+", Finding: "+h.KeyFinding)
	}
	return strings.Join(lines, "\n")
}
