package models

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryCap is the maximum number of analysis records retained per patient.
// Merges evict the oldest entries past this limit.
const HistoryCap = 100

// PatientRecord is the identity anchor for one patient. The ID is derived
// deterministically from the login identity fields and doubles as the
// storage key. History is kept sorted newest-first.
type PatientRecord struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Mobile  string           `json:"mobile,omitempty"`
	AbhaID  string           `json:"abhaId,omitempty"`
	Email   string           `json:"email,omitempty"`
	Age     string           `json:"age,omitempty"`
	Gender  string           `json:"gender,omitempty"`
	History []AnalysisRecord `json:"history"`
}

// PatientDocument is the persisted form of a PatientRecord: one JSONB row
// per patient id, last-write-wins, no partial updates.
type PatientDocument struct {
	ID        string         `gorm:"primaryKey;column:id" json:"id"`
	Document  datatypes.JSON `gorm:"column:document;not null" json:"document"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PatientDocument) TableName() string {
	return "patient_document"
}

// AuthData is the login payload. Name plus either a mobile number or an
// ABHA health id is required; email is optional and only used for urgent
// report notifications.
type AuthData struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	AbhaID string `json:"abhaId"`
	Email  string `json:"email"`
}
