package services

import (
	"context"
	"fmt"
	"strings"

	"MedicAid/models"
	"MedicAid/repositories"
	"MedicAid/utils"
)

// PatientService owns login-time record resolution and record reads. The
// session pointer (cookie) and the stored record are independent entries:
// logout clears only the pointer, never the record.
type PatientService struct {
	repository *repositories.PatientRecordRepository
}

func NewPatientService(repository *repositories.PatientRecordRepository) *PatientService {
	return &PatientService{repository: repository}
}

// Login derives the stable record key from the identity fields, then loads
// the stored record or creates a fresh one on first identification.
func (s *PatientService) Login(ctx context.Context, auth models.AuthData) (*models.PatientRecord, error) {
	if err := utils.ValidateAuthData(auth); err != nil {
		return nil, err
	}

	key := utils.DeriveRecordKey(auth.Name, auth.Mobile, auth.AbhaID)
	record, err := s.repository.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient record: %w", err)
	}
	if record != nil {
		// Returning patient: refresh contact details when supplied.
		if email := strings.TrimSpace(auth.Email); email != "" && record.Email != email {
			record.Email = email
			if err := s.repository.Save(ctx, record); err != nil {
				return nil, fmt.Errorf("failed to update patient record: %w", err)
			}
		}
		return record, nil
	}

	record = &models.PatientRecord{
		ID:      key,
		Name:    strings.TrimSpace(auth.Name),
		Mobile:  strings.TrimSpace(auth.Mobile),
		AbhaID:  strings.TrimSpace(auth.AbhaID),
		Email:   strings.TrimSpace(auth.Email),
		History: []models.AnalysisRecord{},
	}
	if err := s.repository.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create patient record: %w", err)
	}
	return record, nil
}

// Get loads the record for an authenticated session.
func (s *PatientService) Get(ctx context.Context, recordID string) (*models.PatientRecord, error) {
	return s.repository.Load(ctx, recordID)
}
