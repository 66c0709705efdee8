package services

import (
	"context"
	"testing"

	"MedicAid/llm"
	"MedicAid/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionFactory struct {
	lastSeed string
}

func (f *stubSessionFactory) NewChatSession(seedContext string) *llm.ChatSession {
	f.lastSeed = seedContext
	return &llm.ChatSession{}
}

func chatPatient() *models.PatientRecord {
	return &models.PatientRecord{
		ID: "record-1",
		History: []models.AnalysisRecord{
			{
				ID:         "analysis-1",
				ReportDate: "2024-06-10",
				ReportType: "Blood Test",
				KeyFinding: "Severely elevated fasting glucose",
				Markers: []models.LabMarker{
					{Name: "Fasting Blood Glucose", Value: "180", Unit: "mg/dL", Status: "critical"},
				},
			},
		},
	}
}

func TestCreateSessionSeedsFromAnalysis(t *testing.T) {
	factory := &stubSessionFactory{}
	service := NewChatService(factory)

	sessionID, greeting, err := service.CreateSession(chatPatient(), "analysis-1")

	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.Equal(t, "Hello. I've analyzed your Blood Test from 2024-06-10. How can I help you understand these findings today?", greeting)
	assert.Contains(t, factory.lastSeed, "Current Report Finding: Severely elevated fasting glucose")
	assert.Contains(t, factory.lastSeed, "Fasting Blood Glucose: 180 mg/dL (critical)")
}

func TestCreateSessionUnknownAnalysis(t *testing.T) {
	service := NewChatService(&stubSessionFactory{})
	_, _, err := service.CreateSession(chatPatient(), "no-such-analysis")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSendMessageUnknownSession(t *testing.T) {
	service := NewChatService(&stubSessionFactory{})
	_, err := service.SendMessage(context.Background(), "record-1", "missing", "hi")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSendMessageWrongRecordRejected(t *testing.T) {
	service := NewChatService(&stubSessionFactory{})
	sessionID, _, err := service.CreateSession(chatPatient(), "analysis-1")
	require.NoError(t, err)

	_, err = service.SendMessage(context.Background(), "someone-else", sessionID, "hi")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCloseSessionRemovesOwnSessionOnly(t *testing.T) {
	service := NewChatService(&stubSessionFactory{})
	sessionID, _, err := service.CreateSession(chatPatient(), "analysis-1")
	require.NoError(t, err)

	// A different record cannot tear the session down.
	service.CloseSession("someone-else", sessionID)
	_, ok := service.sessions[sessionID]
	assert.True(t, ok)

	service.CloseSession("record-1", sessionID)
	_, ok = service.sessions[sessionID]
	assert.False(t, ok)

	// Closing again is a no-op.
	service.CloseSession("record-1", sessionID)
}
