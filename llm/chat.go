package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"MedicAid/models"

	openai "github.com/sashabaranov/go-openai"
)

const chatSystemPrompt = "You are the Medic-AI-d Clinical Assistant. Use the context of the " +
	"patient's history to answer. Always disclaim that you do not provide a medical diagnosis."

// BuildChatContext composes the deterministic seed string for a chat
// session from the current analysis and the full history: the current
// finding, the current marker readings, and the chronological sequence of
// historical findings.
func BuildChatContext(analysis models.AnalysisRecord, history []models.AnalysisRecord) string {
	markers := make([]string, 0, len(analysis.Markers))
	for _, m := range analysis.Markers {
		markers = append(markers, fmt.Sprintf("%s: %s %s (%s)", m.Name, m.Value, m.Unit, m.Status))
	}
	findings := make([]string, 0, len(history))
	for _, h := range history {
		findings = append(findings, h.KeyFinding)
	}
	return "Current Report Finding: " + analysis.KeyFinding + "\n" +
		"Markers: " + strings.Join(markers, ", ") + "\n" +
		"Historical Context: " + strings.Join(findings, " -> ")
}

// ChatSession is a stateful conversation seeded with patient context.
// Messages accumulate across turns; responses stream back as text
// fragments. Not safe for concurrent SendMessage calls on the same session.
type ChatSession struct {
	client   *Client
	mu       sync.Mutex
	messages []openai.ChatCompletionMessage
}

// NewChatSession seeds a session with the assistant instruction and the
// patient context string.
func (c *Client) NewChatSession(seedContext string) *ChatSession {
	return &ChatSession{
		client: c,
		messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt + "\n\n" + seedContext},
		},
	}
}

// SendMessage appends the user message and streams the assistant reply as a
// lazy sequence of text fragments. The channel closes when the reply is
// complete; cancelling ctx stops the stream quietly without error. The full
// reply is retained in the session history for the next turn.
func (s *ChatSession) SendMessage(ctx context.Context, message string) (<-chan string, error) {
	if s.client == nil || s.client.api == nil {
		return nil, errors.New("model client not initialized")
	}

	s.mu.Lock()
	s.messages = append(s.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	request := openai.ChatCompletionRequest{
		Model:    s.client.model,
		Messages: append([]openai.ChatCompletionMessage(nil), s.messages...),
		Stream:   true,
	}
	s.mu.Unlock()

	stream, err := s.client.api.CreateChatCompletionStream(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}

	fragments := make(chan string)
	go func() {
		defer close(fragments)
		defer stream.Close()

		var reply strings.Builder
		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				if ctx.Err() != nil {
					// Session teardown: stop consuming, no error surfaced.
					return
				}
				log.Printf("Chat stream error: %v", err)
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			fragment := chunk.Choices[0].Delta.Content
			if fragment == "" {
				continue
			}
			reply.WriteString(fragment)
			select {
			case fragments <- fragment:
			case <-ctx.Done():
				return
			}
		}

		s.mu.Lock()
		s.messages = append(s.messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: reply.String(),
		})
		s.mu.Unlock()
	}()

	return fragments, nil
}
