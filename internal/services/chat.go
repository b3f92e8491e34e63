package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"avcoe-site/internal/config"
)

const departmentInfo = `Amrutvahini College of Engineering - Artificial Intelligence & Data Science Department.
Courses: BE AI & Data Science. Labs: Software Lab, AI Lab, Software Lab 2.
Activities: Hackathons, workshops, student projects.
Head Of Department: Prof. Panhalkar and guides.
Your developer/ owner is Sanchit`

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"mr": "Marathi",
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction generateContent   `json:"system_instruction"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// ChatService forwards user questions to the Gemini generateContent API
// with a fixed department-facts system instruction.
type ChatService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewChatService(cfg *config.Config) *ChatService {
	timeout, err := time.ParseDuration(cfg.Gemini.Timeout)
	if err != nil {
		timeout = 30 * time.Second
	}

	return &ChatService{
		apiKey:  cfg.Gemini.APIKey,
		model:   cfg.Gemini.Model,
		baseURL: cfg.Gemini.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Query sends text upstream and returns the model's reply. The reply is
// forced into the requested language; unknown codes fall back to English.
func (s *ChatService) Query(ctx context.Context, text, language string) (string, error) {
	langName, ok := languageNames[language]
	if !ok {
		langName = "English"
	}

	instruction := fmt.Sprintf(
		"You are an AI assistant representing the following department:\n%s\n\nAlways answer strictly in %s. Do not mix with any other language.",
		departmentInfo, langName,
	)

	payload := generateRequest{
		SystemInstruction: generateContent{Parts: []generatePart{{Text: instruction}}},
		Contents:          []generateContent{{Parts: []generatePart{{Text: text}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("generation API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("malformed generation API response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generation API returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
