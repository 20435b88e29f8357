package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// AssistantService answers nutrition questions through a hosted LLM, grounding
// the prompt in the user's current plan summary.
type AssistantService struct {
	client *http.Client
	token  string
	model  string
	plans  *PlanService
}

func NewAssistantService(plans *PlanService) *AssistantService {
	return &AssistantService{
		client: &http.Client{Timeout: 15 * time.Second}, // LLM calls need a bit more time
		token:  os.Getenv("HUGGINGFACE_TOKEN"),
		model:  "google/flan-t5-small",
		plans:  plans,
	}
}

// Ask builds a plan-aware prompt and returns the model's answer as plain text.
func (a *AssistantService) Ask(userID uint, question string) (string, error) {
	if a.token == "" {
		return "", fmt.Errorf("HUGGINGFACE_TOKEN not set")
	}
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is empty")
	}

	var sb bytes.Buffer
	if doc, err := a.plans.CurrentPlan(userID); err == nil {
		t := SummarizePlan(doc)
		sb.WriteString(fmt.Sprintf(
			"The user's current meal plan averages %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat per day.\n",
			t.Calories, t.Protein, t.Carbs, t.Fat,
		))
	} else {
		sb.WriteString("The user has no active meal plan.\n")
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\nAnswer briefly and practically, as a nutrition coach.")

	body := map[string]any{
		"inputs": sb.String(),
		"parameters": map[string]any{
			"max_new_tokens": 160,
			"temperature":    0.2,
		},
	}
	b, _ := json.Marshal(body)

	req, _ := http.NewRequest(
		"POST",
		fmt.Sprintf("https://api-inference.huggingface.co/models/%s", a.model),
		bytes.NewReader(b),
	)
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call assistant API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant API error %d: %s", resp.StatusCode, string(raw))
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || len(out) == 0 {
		return "", fmt.Errorf("unexpected assistant response: %s", string(raw))
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}
