package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dotsetgreg/personastudio/pkg/persona"
)

func parseCompletion(body []byte) (string, error) {
	var apiResponse struct {
		Choices []struct {
			Message struct {
				Content interface{} `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", err
	}
	if len(apiResponse.Choices) == 0 {
		return "", nil
	}
	return flattenMessageContent(apiResponse.Choices[0].Message.Content), nil
}

// flattenMessageContent tolerates the string and content-part shapes
// different providers return for the assistant message.
func flattenMessageContent(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if text, ok := m["text"].(string); ok {
				parts = append(parts, text)
				continue
			}
			if content, ok := m["content"].(string); ok {
				parts = append(parts, content)
			}
		}
		return strings.Join(parts, "")
	default:
		return ""
	}
}

func extractAPIError(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "empty response body"
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}

	if len(trimmed) > 2000 {
		return trimmed[:2000] + "..."
	}
	return trimmed
}

// extractJSONObject recovers the JSON object from model output that may
// wrap it in code fences or surrounding prose.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in model output")
	}
	return text[start : end+1], nil
}

func parseParams(text string) (persona.Params, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		return persona.Params{}, err
	}
	var params persona.Params
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return persona.Params{}, err
	}
	return params, nil
}

func parseSearchResult(text string) (string, []persona.Source, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		return "", nil, err
	}
	var payload struct {
		Summary string           `json:"summary"`
		Sources []persona.Source `json:"sources"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", nil, err
	}
	summary := strings.TrimSpace(payload.Summary)
	if summary == "" {
		return "", nil, fmt.Errorf("search result has no summary")
	}
	return summary, payload.Sources, nil
}

func parseMBTI(text string) (persona.MBTIProfile, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		return persona.MBTIProfile{}, err
	}
	var profile persona.MBTIProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return persona.MBTIProfile{}, err
	}
	profile.Type = strings.ToUpper(strings.TrimSpace(profile.Type))
	if profile.Type == "" {
		return persona.MBTIProfile{}, fmt.Errorf("personality result has no type")
	}
	profile.Scores.Mind = clampScore(profile.Scores.Mind)
	profile.Scores.Energy = clampScore(profile.Scores.Energy)
	profile.Scores.Nature = clampScore(profile.Scores.Nature)
	profile.Scores.Tactics = clampScore(profile.Scores.Tactics)
	return profile, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func parseRefineResult(text string) (string, persona.Params, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		// Plain-text reply with no JSON is still usable as a reply.
		return strings.TrimSpace(text), persona.Params{}, nil
	}
	var payload struct {
		Reply  string         `json:"reply"`
		Params persona.Params `json:"params"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", persona.Params{}, err
	}
	reply := strings.TrimSpace(payload.Reply)
	if reply == "" {
		return "", persona.Params{}, fmt.Errorf("refine result has no reply")
	}
	return reply, payload.Params, nil
}
