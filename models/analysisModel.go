package models

import (
	"encoding/json"
)

// Urgency classifications assigned by the extraction model. Opaque to the
// reconciliation logic; only stored and displayed.
const (
	UrgencyRedAlert = "RED ALERT"
	UrgencyYellow   = "YELLOW"
	UrgencyGreen    = "GREEN"
)

// Marker status values the extraction model may assign.
const (
	MarkerStatusNormal   = "normal"
	MarkerStatusLow      = "low"
	MarkerStatusHigh     = "high"
	MarkerStatusCritical = "critical"
)

// Clinical directions reported by the trend reconciler.
const (
	DirectionImprovement   = "improvement"
	DirectionDeterioration = "deterioration"
	DirectionStable        = "stable"
)

// MarkerValue carries a biomarker reading as extracted. The model API emits
// values as either JSON strings or numbers; both decode to the string form.
type MarkerValue string

func (v *MarkerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MarkerValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = MarkerValue(n.String())
	return nil
}

// LabMarker is one biomarker reading within an analysis record. Raw names
// are never assumed consistent across reports; markers are matched across
// records only via their normalized name.
type LabMarker struct {
	Name           string      `json:"name"`
	Value          MarkerValue `json:"value"`
	Unit           string      `json:"unit"`
	ReferenceRange string      `json:"referenceRange,omitempty"`
	Status         string      `json:"status"`
	Interpretation string      `json:"interpretation,omitempty"`
	Context        string      `json:"context,omitempty"`
}

// AnalysisRecord is one clinical event (one report/date), produced only by
// the extraction collaborator and immutable after creation. Two records
// sharing (reportDate, keyFinding) are the same event and collapse to one
// on merge.
type AnalysisRecord struct {
	ID                     string      `json:"id"`
	Timestamp              int64       `json:"timestamp"`
	ReportDate             string      `json:"reportDate,omitempty"`
	ReportType             string      `json:"reportType"`
	PatientName            string      `json:"patientName,omitempty"`
	PatientAge             string      `json:"patientAge,omitempty"`
	PatientGender          string      `json:"patientGender,omitempty"`
	Urgency                string      `json:"urgency"`
	KeyFinding             string      `json:"keyFinding"`
	Summary                string      `json:"summary"`
	Markers                []LabMarker `json:"markers"`
	PotentialIssues        []string    `json:"potentialIssues,omitempty"`
	Patterns               string      `json:"patterns,omitempty"`
	DietaryRecommendations []string    `json:"dietaryRecommendations"`
	CorrectiveMeasures     []string    `json:"correctiveMeasures"`
	RecommendedSpecialist  string      `json:"recommendedSpecialist"`
	RiskTrajectoryScore    int         `json:"riskTrajectoryScore,omitempty"`
}

// TrendDelta is the outcome of comparing a marker against its most recent
// prior occurrence. All fields are null when no comparison is possible.
type TrendDelta struct {
	PreviousValue *float64 `json:"previousValue"`
	Delta         *float64 `json:"delta"`
	Direction     string   `json:"direction,omitempty"`
}

// MarkerPoint is one chart point in a marker's chronological series.
type MarkerPoint struct {
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Name      string  `json:"name"`
}

// TrackableMarker is a canonical marker key with its occurrence count
// across the patient's history.
type TrackableMarker struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Specialist is one result from the specialist-search collaborator. Title
// is formatted "Name | Suburb, City, Country".
type Specialist struct {
	Title      string `json:"title"`
	URI        string `json:"uri"`
	BookingURL string `json:"bookingUrl,omitempty"`
}
