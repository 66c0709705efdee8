package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"MedicAid/llm"
	"MedicAid/models"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("chat session not found")

// sessionTTL bounds how long an idle chat session is kept before the
// registry drops it.
const sessionTTL = time.Hour

// SessionFactory creates seeded chat sessions; satisfied by llm.Client.
type SessionFactory interface {
	NewChatSession(seedContext string) *llm.ChatSession
}

// ChatService keeps live chat sessions in memory, keyed by a random
// session id. Sessions are seeded deterministically from the selected
// analysis and the patient's history.
type ChatService struct {
	factory  SessionFactory
	mu       sync.Mutex
	sessions map[string]*chatEntry
}

type chatEntry struct {
	session  *llm.ChatSession
	recordID string
	lastUsed time.Time
}

func NewChatService(factory SessionFactory) *ChatService {
	return &ChatService{
		factory:  factory,
		sessions: make(map[string]*chatEntry),
	}
}

// CreateSession seeds a chat session for one analysis of the patient's
// record and returns the session id plus the opening assistant message.
func (s *ChatService) CreateSession(patient *models.PatientRecord, analysisID string) (string, string, error) {
	analysis := findAnalysis(patient.History, analysisID)
	if analysis == nil {
		return "", "", fmt.Errorf("analysis %s: %w", analysisID, ErrRecordNotFound)
	}

	seed := llm.BuildChatContext(*analysis, patient.History)
	sessionID := uuid.New().String()

	s.mu.Lock()
	s.purgeExpiredLocked()
	s.sessions[sessionID] = &chatEntry{
		session:  s.factory.NewChatSession(seed),
		recordID: patient.ID,
		lastUsed: time.Now(),
	}
	s.mu.Unlock()

	greeting := fmt.Sprintf(
		"Hello. I've analyzed your %s from %s. How can I help you understand these findings today?",
		analysis.ReportType, analysis.ReportDate)
	return sessionID, greeting, nil
}

// SendMessage relays a message into the session and returns the streamed
// reply fragments. The session must belong to the given record.
func (s *ChatService) SendMessage(ctx context.Context, recordID, sessionID, message string) (<-chan string, error) {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if ok && entry.recordID != recordID {
		ok = false
	}
	if ok {
		entry.lastUsed = time.Now()
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry.session.SendMessage(ctx, message)
}

// CloseSession tears the session down. Any in-flight stream stops when its
// request context is cancelled; closing an unknown session is not an error.
func (s *ChatService) CloseSession(recordID, sessionID string) {
	s.mu.Lock()
	if entry, ok := s.sessions[sessionID]; ok && entry.recordID == recordID {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
}

func (s *ChatService) purgeExpiredLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, entry := range s.sessions {
		if entry.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func findAnalysis(history []models.AnalysisRecord, id string) *models.AnalysisRecord {
	for i := range history {
		if history[i].ID == id {
			return &history[i]
		}
	}
	return nil
}
