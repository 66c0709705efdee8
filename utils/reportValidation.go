package utils

import (
	"errors"
	"fmt"
	"log"

	"MedicAid/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrMissingIdentifier = errors.New("either a mobile number or an ABHA id is required")
	ErrEmptyBatch        = errors.New("no clinical data could be extracted from these documents")
)

// ValidateAuthData validates the login payload: a name plus at least one
// identity field.
func ValidateAuthData(auth models.AuthData) error {
	err := validation.ValidateStruct(&auth,
		validation.Field(&auth.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&auth.Email, is.Email),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
		return err
	}
	if auth.Mobile == "" && auth.AbhaID == "" {
		log.Printf("Validation error: %v\n", ErrMissingIdentifier)
		return ErrMissingIdentifier
	}
	return nil
}

// ValidateReportBatch enforces the extraction-boundary schema on a whole
// batch. The merge pipeline assumes required fields are present, so one
// malformed report rejects the entire batch rather than letting a
// partially-populated record into storage.
func ValidateReportBatch(reports []models.AnalysisRecord) error {
	if len(reports) == 0 {
		return ErrEmptyBatch
	}
	for i, report := range reports {
		if err := validateReport(report); err != nil {
			log.Printf("Validation error on report %d: %v\n", i, err)
			return fmt.Errorf("report %d rejected: %w", i, err)
		}
	}
	return nil
}

func validateReport(report models.AnalysisRecord) error {
	err := validation.ValidateStruct(&report,
		validation.Field(&report.ReportDate, validation.Required),
		validation.Field(&report.Urgency, validation.Required,
			validation.In(models.UrgencyRedAlert, models.UrgencyYellow, models.UrgencyGreen)),
		validation.Field(&report.KeyFinding, validation.Required),
		validation.Field(&report.ReportType, validation.Required),
		validation.Field(&report.Summary, validation.Required),
		validation.Field(&report.Markers, validation.NotNil),
		validation.Field(&report.CorrectiveMeasures, validation.NotNil),
		validation.Field(&report.DietaryRecommendations, validation.NotNil),
		validation.Field(&report.RecommendedSpecialist, validation.Required),
		validation.Field(&report.RiskTrajectoryScore, validation.Min(0), validation.Max(10)),
	)
	if err != nil {
		return err
	}
	for i, marker := range report.Markers {
		if err := validateMarker(marker); err != nil {
			return fmt.Errorf("marker %d: %w", i, err)
		}
	}
	return nil
}

func validateMarker(marker models.LabMarker) error {
	return validation.ValidateStruct(&marker,
		validation.Field(&marker.Name, validation.Required),
		validation.Field(&marker.Value, validation.Required),
		validation.Field(&marker.Unit, validation.Required),
		validation.Field(&marker.Status, validation.Required,
			validation.In(models.MarkerStatusNormal, models.MarkerStatusLow,
				models.MarkerStatusHigh, models.MarkerStatusCritical)),
		validation.Field(&marker.Context, validation.Required),
	)
}
