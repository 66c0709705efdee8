package services

import (
	"fmt"
	"testing"

	"MedicAid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, ts int64, reportDate, keyFinding string) models.AnalysisRecord {
	return models.AnalysisRecord{
		ID:         id,
		Timestamp:  ts,
		ReportDate: reportDate,
		KeyFinding: keyFinding,
	}
}

func TestMergeHistorySortsNewestFirst(t *testing.T) {
	existing := []models.AnalysisRecord{
		record("a", 5, "2024-05-01", "finding five"),
		record("b", 1, "2024-01-01", "finding one"),
	}
	incoming := []models.AnalysisRecord{
		record("c", 3, "2024-03-01", "finding three"),
	}

	merged := MergeHistory(existing, incoming)

	require.Len(t, merged, 3)
	assert.Equal(t, []int64{5, 3, 1}, []int64{merged[0].Timestamp, merged[1].Timestamp, merged[2].Timestamp})
}

func TestMergeHistoryDedupIncomingWins(t *testing.T) {
	existing := []models.AnalysisRecord{
		record("old", 10, "2024-05-01", "elevated glucose"),
	}
	incoming := []models.AnalysisRecord{
		record("new", 10, "2024-05-01", "elevated glucose"),
	}

	merged := MergeHistory(existing, incoming)

	require.Len(t, merged, 1)
	assert.Equal(t, "new", merged[0].ID)
}

func TestMergeHistoryDistinctEventsKept(t *testing.T) {
	// Same date, different finding: two distinct clinical events.
	existing := []models.AnalysisRecord{
		record("a", 10, "2024-05-01", "elevated glucose"),
	}
	incoming := []models.AnalysisRecord{
		record("b", 10, "2024-05-01", "low hemoglobin"),
	}

	merged := MergeHistory(existing, incoming)
	assert.Len(t, merged, 2)
}

func TestMergeHistoryIdempotent(t *testing.T) {
	history := []models.AnalysisRecord{
		record("a", 5, "2024-05-01", "finding five"),
		record("b", 1, "2024-01-01", "finding one"),
	}
	merged := MergeHistory(history, history)
	assert.Equal(t, MergeHistory(nil, history), merged)
}

func TestMergeHistoryDoesNotMutateInputs(t *testing.T) {
	existing := []models.AnalysisRecord{
		record("a", 1, "2024-01-01", "finding one"),
		record("b", 2, "2024-02-01", "finding two"),
	}
	incoming := []models.AnalysisRecord{
		record("c", 3, "2024-03-01", "finding three"),
	}

	MergeHistory(existing, incoming)

	assert.Equal(t, "a", existing[0].ID)
	assert.Equal(t, "b", existing[1].ID)
	assert.Equal(t, "c", incoming[0].ID)
}

func TestMergeHistoryCapEvictsOldest(t *testing.T) {
	var existing []models.AnalysisRecord
	for i := 0; i < models.HistoryCap; i++ {
		existing = append(existing, record(
			fmt.Sprintf("e%d", i), int64(i+1),
			fmt.Sprintf("2020-01-%02d", i%28+1), fmt.Sprintf("finding %d", i)))
	}
	incoming := []models.AnalysisRecord{
		record("newest", int64(models.HistoryCap+1), "2024-06-01", "brand new finding"),
	}

	merged := MergeHistory(existing, incoming)

	require.Len(t, merged, models.HistoryCap)
	assert.Equal(t, "newest", merged[0].ID)
	// The oldest record (timestamp 1) fell off the end.
	assert.Equal(t, int64(2), merged[len(merged)-1].Timestamp)
}

func TestApplyDemographics(t *testing.T) {
	patient := models.PatientRecord{Name: "Asha Rao", Age: "42", Gender: "Female"}

	ApplyDemographics(&patient, models.AnalysisRecord{PatientName: "Asha R. Rao", PatientAge: "  "})

	assert.Equal(t, "Asha R. Rao", patient.Name)
	assert.Equal(t, "42", patient.Age, "blank fields must not clear stored values")
	assert.Equal(t, "Female", patient.Gender)
}

func TestBuildHistorySummary(t *testing.T) {
	assert.Equal(t, "No prior facility context.", BuildHistorySummary(nil))

	history := []models.AnalysisRecord{
		record("a", 0, "2024-05-01", "elevated glucose"),
		record("b", 0, "2024-01-15", "low hemoglobin"),
	}
	summary := BuildHistorySummary(history)
	assert.Equal(t, "Date: 2024-05-01, Finding: elevated glucose\nDate: 2024-01-15, Finding: low hemoglobin", summary)
}

func TestBuildHistorySummaryTimestampFallback(t *testing.T) {
	history := []models.AnalysisRecord{
		{Timestamp: 1717200000000, KeyFinding: "elevated glucose"}, // 2024-06-01 UTC
	}
	summary := BuildHistorySummary(history)
	assert.Contains(t, summary, "Finding: elevated glucose")
	assert.Contains(t, summary, "Date: ")
}
