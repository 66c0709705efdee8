package services

import (
	"context"
	"errors"
	"fmt"

	"MedicAid/llm"
	"MedicAid/models"
	"MedicAid/repositories"
	"MedicAid/utils"
)

var ErrRecordNotFound = errors.New("patient record not found")

// AnalysisService runs the upload pipeline: history summary, extraction,
// boundary validation, merge, save. The whole sequence is all-or-nothing —
// the stored record is only replaced after a fully validated merge — and
// runs under the per-record lock so concurrent uploads for the same patient
// cannot interleave their read-modify-write.
type AnalysisService struct {
	repository *repositories.PatientRecordRepository
	analyzer   llm.Analyzer
}

func NewAnalysisService(repository *repositories.PatientRecordRepository, analyzer llm.Analyzer) *AnalysisService {
	return &AnalysisService{repository: repository, analyzer: analyzer}
}

// AnalysisResult carries the updated record plus the newest incoming
// analysis, which the dashboard displays as the current report.
type AnalysisResult struct {
	Patient *models.PatientRecord  `json:"patient"`
	Current *models.AnalysisRecord `json:"current"`
}

// AnalyzeAndMerge sends the documents to the extraction collaborator and
// folds the resulting reports into the patient's stored history.
func (s *AnalysisService) AnalyzeAndMerge(ctx context.Context, recordID string, docs []llm.Document) (*AnalysisResult, error) {
	var result *AnalysisResult

	err := s.repository.WithRecordLock(ctx, recordID, func() error {
		patient, err := s.repository.Load(ctx, recordID)
		if err != nil {
			return fmt.Errorf("failed to load patient record: %w", err)
		}
		if patient == nil {
			return ErrRecordNotFound
		}

		summary := BuildHistorySummary(patient.History)
		reports, err := s.analyzer.Analyze(ctx, docs, summary)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		if len(reports) == 0 {
			return utils.ErrEmptyBatch
		}
		if err := utils.ValidateReportBatch(reports); err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedBatch, err)
		}

		ApplyDemographics(patient, reports[0])
		patient.History = MergeHistory(patient.History, reports)

		if err := s.repository.Save(ctx, patient); err != nil {
			return fmt.Errorf("failed to save merged record: %w", err)
		}

		current := newestRecord(reports)
		if current.Urgency == models.UrgencyRedAlert && patient.Email != "" {
			// Best effort; a failed mail never fails the upload.
			notify := *current
			email := patient.Email
			go func() {
				_ = utils.SendRedAlertEmail(email, notify)
			}()
		}

		result = &AnalysisResult{Patient: patient, Current: current}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ErrMalformedBatch marks an extraction batch rejected at the boundary
// because a report was missing required fields. The merge is skipped
// entirely rather than storing a partially-populated record.
var ErrMalformedBatch = errors.New("extraction returned malformed data")

func newestRecord(reports []models.AnalysisRecord) *models.AnalysisRecord {
	newest := &reports[0]
	for i := range reports {
		if reports[i].Timestamp > newest.Timestamp {
			newest = &reports[i]
		}
	}
	return newest
}
