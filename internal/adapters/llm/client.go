package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stupnd/trippy-sub001/internal/adapters/observability"
	"github.com/stupnd/trippy-sub001/internal/domain"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. The reply
// content is returned verbatim; callers own the defensive parsing.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	hc       *http.Client
}

func New(endpoint, model, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		hc:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

const systemPrompt = "You are a travel budget assistant. Reply with strict JSON and nothing else."

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("llm", "completions", 0, time.Since(start))
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("llm", "completions", resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("llm error %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrUpstreamMalformed)
	}
	return out.Choices[0].Message.Content, nil
}
