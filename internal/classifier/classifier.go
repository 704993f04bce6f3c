// Package classifier wraps the external language-model collaborator that
// judges whether a ranked ballot is a good-faith submission, and the decision
// procedure layered on top of it.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sairajesh711/premier-top6/internal/logger"
)

// systemInstruction is the fixed classification prompt. The model is told to
// answer with a two-field JSON object, but the response is still treated as
// untrusted free text by the caller.
const systemInstruction = `You are a soccer pundit. Respond ONLY with JSON {"verdict": "reasonable"|"troll", "reason": "<one short sentence why>"}`

// Client defines the external text-classification collaborator. Classify
// returns the model's raw response text; parsing and validation are the
// caller's job since the collaborator enforces no schema.
type Client interface {
	Classify(ctx context.Context, picks []string) (string, error)
}

// HTTPClient calls an OpenAI-style chat-completions API.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
	log         logger.Logger
}

// NewHTTPClient creates a classification client. timeout bounds each request;
// zero means no timeout.
func NewHTTPClient(baseURL, apiKey, model string, temperature float64, timeout time.Duration, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
		log:         log,
	}
}

// NewHTTPClientWithHTTPClient creates a classification client with a custom
// http.Client (for tests).
func NewHTTPClientWithHTTPClient(baseURL, apiKey, model string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
		log:        log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Classify sends the ranked list to the model and returns its raw reply text.
func (c *HTTPClient) Classify(ctx context.Context, picks []string) (string, error) {
	picksJSON, err := json.Marshal(picks)
	if err != nil {
		return "", fmt.Errorf("failed to encode picks: %w", err)
	}

	reqBody := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: fmt.Sprintf("Top-6: %s", picksJSON)},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/chat/completions", c.baseURL)
	c.log.Debug("Classifier request", "url", apiURL, "model", c.model, "picks", string(picksJSON))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach classifier: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("Classifier response", "status", resp.StatusCode, "body", string(body))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response envelope: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("classifier error: %s (%s)", response.Error.Message, response.Error.Type)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("classifier returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
