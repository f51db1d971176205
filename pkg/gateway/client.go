// Package gateway implements the AI service boundary on top of an
// OpenAI-compatible chat completions API (OpenRouter by default).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dotsetgreg/personastudio/pkg/persona"
)

const (
	defaultAPIBase     = "https://openrouter.ai/api/v1"
	defaultModel       = "openai/gpt-5.2"
	defaultHTTPTimeout = 300 * time.Second

	// onlineSuffix routes a request through the provider's web-search
	// plugin. Only search-backed generation uses it.
	onlineSuffix = ":online"
)

// Config configures a Client. Zero values fall back to the OpenRouter
// defaults; only APIKey is required.
type Config struct {
	APIBase string
	APIKey  string
	Model   string
	Proxy   string
	Timeout time.Duration
}

// Client talks to the chat completions endpoint and implements
// persona.Gateway.
type Client struct {
	apiBase    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient validates the config and builds a client.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}
	apiBase := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := &http.Client{Timeout: timeout}
	if proxy := strings.TrimSpace(cfg.Proxy); proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("parse gateway proxy: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	return &Client{
		apiBase:    apiBase,
		apiKey:     apiKey,
		model:      model,
		httpClient: client,
	}, nil
}

// complete sends one chat completion request and returns the assistant
// text. An empty model uses the configured default.
func (c *Client) complete(ctx context.Context, model string, messages []persona.Message) (string, error) {
	if c == nil {
		return "", fmt.Errorf("gateway client not initialized")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = c.model
	}

	requestBody := map[string]interface{}{
		"model":    model,
		"messages": messages,
	}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshal gateway request: %w", err)
	}

	endpoint := c.apiBase + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send gateway request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("gateway request failed: status=%d error=%s",
			resp.StatusCode, extractAPIError(body))
	}

	text, err := parseCompletion(body)
	if err != nil {
		return "", fmt.Errorf("parse gateway response: %w", err)
	}
	return text, nil
}

func (c *Client) completeText(ctx context.Context, system, user string) (string, error) {
	out, err := c.complete(ctx, "", []persona.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// GenerateSummary writes a free-form persona description from the
// structured fields.
func (c *Client) GenerateSummary(ctx context.Context, state persona.State) (string, error) {
	return c.completeText(ctx, summarySystemPrompt, summaryUserPrompt(state))
}

// GenerateWithSearch rebuilds the summary with web search enabled and
// returns the citation list the model reports.
func (c *Client) GenerateWithSearch(ctx context.Context, state persona.State, topic string) (string, []persona.Source, error) {
	out, err := c.complete(ctx, c.model+onlineSuffix, []persona.Message{
		{Role: "system", Content: searchSystemPrompt},
		{Role: "user", Content: searchUserPrompt(state, topic)},
	})
	if err != nil {
		return "", nil, err
	}
	summary, sources, err := parseSearchResult(out)
	if err != nil {
		return "", nil, fmt.Errorf("parse search result: %w", err)
	}
	return summary, sources, nil
}

// ExtractParameters pulls structured persona fields out of free text.
func (c *Client) ExtractParameters(ctx context.Context, text string) (persona.Params, error) {
	out, err := c.complete(ctx, "", []persona.Message{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		return persona.Params{}, err
	}
	params, err := parseParams(out)
	if err != nil {
		return persona.Params{}, fmt.Errorf("parse extraction result: %w", err)
	}
	return params, nil
}

// Condense compresses text to a one-line form for list views and prompts.
func (c *Client) Condense(ctx context.Context, text string) (string, error) {
	return c.completeText(ctx, condenseSystemPrompt, text)
}

// DescribeChange writes a one-line description of what changed between
// two persona states.
func (c *Client) DescribeChange(ctx context.Context, oldState, newState persona.State) (string, error) {
	return c.completeText(ctx, describeChangeSystemPrompt, describeChangeUserPrompt(oldState, newState))
}

// AnalyzePersonality classifies the persona on the MBTI axes.
func (c *Client) AnalyzePersonality(ctx context.Context, state persona.State) (persona.MBTIProfile, error) {
	out, err := c.complete(ctx, "", []persona.Message{
		{Role: "system", Content: personalitySystemPrompt},
		{Role: "user", Content: summaryUserPrompt(state)},
	})
	if err != nil {
		return persona.MBTIProfile{}, err
	}
	profile, err := parseMBTI(out)
	if err != nil {
		return persona.MBTIProfile{}, fmt.Errorf("parse personality result: %w", err)
	}
	return profile, nil
}

// ConversationalRefine continues a refinement dialogue and returns the
// assistant reply plus any field updates it proposed.
func (c *Client) ConversationalRefine(ctx context.Context, history []persona.Message, current persona.Params) (string, persona.Params, error) {
	messages := make([]persona.Message, 0, len(history)+1)
	messages = append(messages, persona.Message{
		Role:    "system",
		Content: refineSystemPrompt(current),
	})
	messages = append(messages, history...)

	out, err := c.complete(ctx, "", messages)
	if err != nil {
		return "", persona.Params{}, err
	}
	reply, params, err := parseRefineResult(out)
	if err != nil {
		return "", persona.Params{}, fmt.Errorf("parse refine result: %w", err)
	}
	return reply, params, nil
}

// ChatReply answers in-character as the persona.
func (c *Client) ChatReply(ctx context.Context, state persona.State, history []persona.Message) (string, error) {
	messages := make([]persona.Message, 0, len(history)+1)
	messages = append(messages, persona.Message{
		Role:    "system",
		Content: chatSystemPrompt(state),
	})
	messages = append(messages, history...)

	out, err := c.complete(ctx, "", messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
