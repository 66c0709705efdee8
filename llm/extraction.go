package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"MedicAid/models"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// extractionSystemPrompt drives the structured clinical extraction. The
// application contributes no parsing of its own; the model returns the full
// report objects as JSON.
const extractionSystemPrompt = `You are Medic-AI-d, a senior clinical diagnostic architect.
Your mission is to perform deep-set analysis on medical documents.

CRITICAL EXTRACTION RULES:
1. EXHAUSTIVE MARKERS: Extract EVERY SINGLE biomarker, lab result, or clinical value found in the report.
2. CLINICAL CONTEXT: For EVERY marker, generate a "context" string that explains how its current value and status relate to the "potentialIssues" identified.
3. IDENTIFY DISTINCT EVENTS: Create separate report objects for each distinct test date.
4. RISK TRAJECTORY: Calculate a "risk_trajectory_score" from 1 to 10.
5. STANDARDIZED NAMING: Use universal clinical names for markers.
6. VERNACULAR: Translate medical terms from Hindi/Hinglish to standard English.

OUTPUT STRUCTURE:
Return a single JSON object with "reports" (array) and "risk_trajectory_score" (integer 1-10).
Each report object has: reportDate, urgency ("RED ALERT"|"YELLOW"|"GREEN"), keyFinding,
reportType, summary, markers (array of {name, value, unit, referenceRange, status, interpretation, context}),
potentialIssues (array of strings), patterns, correctiveMeasures (array of strings),
dietaryRecommendations (array of strings), recommendedSpecialist, and optionally
patientName, patientAge, patientGender.`

// Document is one uploaded report part: either pasted text or a binary
// scan/PDF with its mime type.
type Document struct {
	Text     string
	Data     []byte
	MimeType string
}

// Analyzer is the extraction collaborator boundary. Implementations send
// documents to the hosted model and return fully-shaped analysis records.
type Analyzer interface {
	Analyze(ctx context.Context, docs []Document, historySummary string) ([]models.AnalysisRecord, error)
}

// Client calls the OpenAI API for extraction, chat, and specialist search.
// API credentials and model names are loaded from environment variables.
type Client struct {
	api       *openai.Client
	model     string
	fastModel string
}

// NewClient constructs the model client. Falls back to default model names
// when the environment does not override them.
func NewClient() *Client {
	apiKey := os.Getenv("OPENAI_API_KEY")

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}
	fastModel := os.Getenv("OPENAI_MODEL_FAST")
	if fastModel == "" {
		fastModel = "gpt-4o-mini"
	}

	return &Client{
		api:       openai.NewClient(apiKey),
		model:     model,
		fastModel: fastModel,
	}
}

// extractionEnvelope mirrors the JSON shape the extraction prompt requests.
type extractionEnvelope struct {
	Reports             []models.AnalysisRecord `json:"reports"`
	RiskTrajectoryScore int                     `json:"risk_trajectory_score"`
}

// Analyze sends the documents and the historical baseline to the model and
// decodes the structured reports. Each returned record gets a fresh id and
// a timestamp derived from its report date (extraction time when the date
// does not parse).
func (c *Client) Analyze(ctx context.Context, docs []Document, historySummary string) ([]models.AnalysisRecord, error) {
	if c.api == nil {
		return nil, errors.New("model client not initialized")
	}

	parts := make([]openai.ChatMessagePart, 0, len(docs)+1)
	for i, doc := range docs {
		if doc.Text != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: fmt.Sprintf("Document Part %d: %s", i+1, doc.Text),
			})
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", doc.MimeType, base64.StdEncoding.EncodeToString(doc.Data)),
			},
		})
	}
	if historySummary == "" {
		historySummary = "None"
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: "Historical Baseline: " + historySummary,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	return ParseExtraction([]byte(resp.Choices[0].Message.Content), time.Now())
}

// ParseExtraction decodes the model's response envelope and stamps each
// report with an id, a timestamp, and the batch-level risk score.
func ParseExtraction(raw []byte, now time.Time) ([]models.AnalysisRecord, error) {
	var envelope extractionEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	reports := envelope.Reports
	for i := range reports {
		reports[i].ID = uuid.New().String()
		if ts, ok := parseReportDate(reports[i].ReportDate); ok {
			reports[i].Timestamp = ts
		} else {
			reports[i].Timestamp = now.UnixMilli()
		}
		if reports[i].RiskTrajectoryScore == 0 {
			reports[i].RiskTrajectoryScore = envelope.RiskTrajectoryScore
		}
	}
	return reports, nil
}

// reportDateLayouts covers the date formats the model is known to emit.
var reportDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC3339,
}

func parseReportDate(date string) (int64, bool) {
	s := strings.TrimSpace(date)
	if s == "" {
		return 0, false
	}
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
