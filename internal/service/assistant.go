package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const parseMealSystemPrompt = `You are a nutrition assistant. Parse the meal description and return a JSON object with:
- "food_label" (string, cleaned up title case)
- "quantity" (number)
- "unit" (one of: each, g, ml, serving)
- "calories" (number, total for the full quantity)
- "protein_g" (number, total for the full quantity)
- "carbs_g" (number, total for the full quantity)
- "fat_g" (number, total for the full quantity)
- "confidence" (integer 1-5: 5=exact known nutritional data, 1=very uncertain)

Always provide your best estimate, even for unfamiliar or vague items. Only return {"error": "unrecognized"} if the input is not food at all.
Return only valid JSON, no explanation.`

const chatSystemPromptTemplate = `You are a friendly nutrition coach. The user's situation today:
%s

Answer the user's question in 2-4 short sentences. Be concrete and reference their numbers where relevant. Never invent data you were not given.`

// ParsedMeal is the structured nutrition the assistant extracted from a
// free-text meal description.
type ParsedMeal struct {
	FoodLabel  string  `json:"food_label"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Calories   float64 `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	Confidence int     `json:"confidence"`
}

// ErrUnrecognizedMeal is returned when the model cannot identify any food in
// the description.
var ErrUnrecognizedMeal = fmt.Errorf("meal description not recognized")

// AssistantService is glue around an OpenAI-compatible chat completions API.
// It never owns nutrition math: parsed estimates come straight from the
// model, and chat answers are grounded on the summary the caller supplies.
type AssistantService struct {
	apiKey  string
	apiURL  string
	model   string
	client  *http.Client
	meals   *MealService
	targets *TargetService
}

func NewAssistantService(meals *MealService, targets *TargetService) (*AssistantService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("OPENAI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
		}
		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}
		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("OPENAI_API_URL")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &AssistantService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		client:  &http.Client{Timeout: 15 * time.Second},
		meals:   meals,
		targets: targets,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// ParseMeal asks the model to turn a free-text description into structured
// nutrition. Returns ErrUnrecognizedMeal when the input is not food.
func (s *AssistantService) ParseMeal(ctx context.Context, description string) (*ParsedMeal, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is required")
	}

	content, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: parseMealSystemPrompt},
		{Role: "user", Content: description},
	}, true)
	if err != nil {
		return nil, err
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(content), &errResp); err != nil {
		return nil, fmt.Errorf("unmarshal assistant response: %w", err)
	}
	if errResp.Error == "unrecognized" {
		return nil, ErrUnrecognizedMeal
	}

	var parsed ParsedMeal
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal parsed meal: %w", err)
	}
	if parsed.FoodLabel == "" || parsed.Calories == 0 {
		return nil, ErrUnrecognizedMeal
	}
	return &parsed, nil
}

// Chat answers a user question, grounded on today's intake and target.
func (s *AssistantService) Chat(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	if userID == uuid.Nil {
		return "", ErrUnauthorized
	}
	summary := s.todaySummary(ctx, userID)
	return s.complete(ctx, []chatMessage{
		{Role: "system", Content: fmt.Sprintf(chatSystemPromptTemplate, summary)},
		{Role: "user", Content: message},
	}, false)
}

// todaySummary renders the user's day for the chat prompt. Failures degrade
// to a note instead of failing the chat.
func (s *AssistantService) todaySummary(ctx context.Context, userID uuid.UUID) string {
	progress, err := s.meals.Progress(ctx, userID, time.Now())
	if err != nil {
		log.Printf("[assistant] progress unavailable: %v", err)
		return "(no intake data available)"
	}

	var sb strings.Builder
	if progress.HasTarget {
		sb.WriteString("Accepted daily target and intake so far:\n")
	} else {
		sb.WriteString("No accepted daily target. Intake so far:\n")
	}
	for _, name := range []string{"calories", "protein", "carbs", "fat"} {
		n := progress.Nutrients[name]
		if progress.HasTarget {
			fmt.Fprintf(&sb, "- %s: %.0f of %.0f (%.0f%%)\n", name, n.Consumed, n.Target, n.Percent*100)
		} else {
			fmt.Fprintf(&sb, "- %s: %.0f\n", name, n.Consumed)
		}
	}
	return sb.String()
}

// complete sends one chat completions request and returns the first choice's
// content.
func (s *AssistantService) complete(ctx context.Context, messages []chatMessage, jsonMode bool) (string, error) {
	reqBody := chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0,
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant api returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal assistant response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in assistant response")
	}
	return result.Choices[0].Message.Content, nil
}
