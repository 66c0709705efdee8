package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"MedicAid/models"

	openai "github.com/sashabaranov/go-openai"
)

// FindSpecialists asks the model for top-rated specialists near the given
// area, constrained to one "Name | Suburb, City, Country" line per result,
// and parses the lines into Specialist entries with a maps lookup URI.
func (c *Client) FindSpecialists(ctx context.Context, specialty string, issues []string, area string) ([]models.Specialist, error) {
	if c.api == nil {
		return nil, errors.New("model client not initialized")
	}

	prompt := fmt.Sprintf(`TASK: Find top-rated %s specialists and hospitals.
LOCATION CONSTRAINT: Search strictly within the area of %s.
STRICT GEOGRAPHIC RULE: DO NOT return results from other countries or regions than the specified area.
FORMAT: Every result MUST be exactly one line: "Name | Full Suburb, City, Country".
ADDRESS REQUIREMENT: YOU MUST INCLUDE THE FULL DETAILED LOCALITY FOR EVERY SINGLE ITEM.
TOPIC: Patient has issues: %s.
Return at most 8 results, one per line, nothing else.`, specialty, area, strings.Join(issues, ", "))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.fastModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("specialist search failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	return ParseSpecialistLines(resp.Choices[0].Message.Content), nil
}

// ParseSpecialistLines extracts "Name | Address" lines from the model
// response, skipping anything that does not carry the separator.
func ParseSpecialistLines(text string) []models.Specialist {
	var specialists []models.Specialist
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. ")
		line = strings.TrimSpace(strings.Trim(line, `"`))
		if !strings.Contains(line, "|") {
			continue
		}
		specialists = append(specialists, models.Specialist{
			Title: line,
			URI:   "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(line),
		})
	}
	return specialists
}
