// Package ai proxies free-text prompts to the Gemini generateContent REST
// API. The endpoint degrades to 501 when no API key is configured.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/khohang/khohang/internal/platform/httpx"
)

// DefaultBaseURL is the production text-generation endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel matches the model the original deployment pinned.
const DefaultModel = "gemini-2.5-pro"

// defaultSystemInstruction is applied when the caller supplies none.
const defaultSystemInstruction = "Always answer in Vietnamese using valid Markdown (headings, lists, tables, code blocks where helpful)."

// emptyReply is returned when the model produces no candidates.
const emptyReply = "(Không có phản hồi từ mô hình)"

// ErrNotConfigured signals that the server has no API key.
var ErrNotConfigured = fmt.Errorf("gemini api key is not set on the server: %w", httpx.ErrNotConfigured)

// Client wraps interactions with the Gemini API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new client. Empty baseURL and model select the
// production endpoint and the default model.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// IsConfigured reports whether the client can reach the provider.
func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"system_instruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the model's text reply.
func (c *Client) Generate(ctx context.Context, prompt string, systemInstruction *string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	instruction := defaultSystemInstruction
	if systemInstruction != nil && *systemInstruction != "" {
		instruction = *systemInstruction
	}
	payload := generateRequest{
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: instruction}}},
		Contents:          []generateContent{{Role: "user", Parts: []generatePart{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini unreachable: %w", httpx.ErrUpstream)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini returned status %d: %w", resp.StatusCode, httpx.ErrUpstream)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("gemini response malformed: %w", httpx.ErrUpstream)
	}
	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text, nil
			}
		}
	}
	return emptyReply, nil
}
