package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// JobDraft is a suggested listing. Nothing is persisted until the client posts it.
type JobDraft struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	SuggestedBudget *float64 `json:"suggested_budget"`
	Skills          []string `json:"skills"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig allows pointing the client at another base URL.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// DraftJobListing turns a client's short brief into a structured listing draft.
func (s *AIService) DraftJobListing(ctx context.Context, brief string) (*JobDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You help clients write freelance job listings. Turn the brief below into a listing.

Brief:
%s

Respond with a single JSON object:
{
  "title": "short job title",
  "description": "two or three paragraphs describing scope and deliverables",
  "suggested_budget": number or null,
  "skills": ["skill", ...]
}

Return JSON only, without markdown fences or commentary.`, brief)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.4,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var draft JobDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("AI response is missing a title")
	}

	return &draft, nil
}
