package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dotsetgreg/personastudio/pkg/persona"
)

type capturedRequest struct {
	path  string
	auth  string
	model string
	msgs  []persona.Message
}

// newCompletionsServer fakes the chat completions endpoint. respond maps
// the captured request to the assistant content.
func newCompletionsServer(t *testing.T, respond func(req capturedRequest) (string, int)) (*httptest.Server, *capturedRequest) {
	t.Helper()
	last := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model    string            `json:"model"`
			Messages []persona.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		*last = capturedRequest{
			path:  r.URL.Path,
			auth:  r.Header.Get("Authorization"),
			model: body.Model,
			msgs:  body.Messages,
		}

		content, status := respond(*last)
		w.WriteHeader(status)
		if status != http.StatusOK {
			fmt.Fprintf(w, `{"error":{"message":%q}}`, content)
			return
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, last
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		APIBase: server.URL,
		APIKey:  "test-key",
		Model:   "test/model",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected error without API key")
	}
}

func TestGenerateSummarySendsFieldsAndAuth(t *testing.T) {
	server, last := newCompletionsServer(t, func(req capturedRequest) (string, int) {
		return "  A mentor persona.  ", http.StatusOK
	})
	client := newTestClient(t, server)

	summary, err := client.GenerateSummary(context.Background(), persona.State{
		Name: "Ada",
		Role: "mentor",
	})
	if err != nil {
		t.Fatalf("generate summary: %v", err)
	}
	if summary != "A mentor persona." {
		t.Fatalf("expected trimmed summary, got %q", summary)
	}
	if last.path != "/chat/completions" {
		t.Fatalf("unexpected path %q", last.path)
	}
	if last.auth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", last.auth)
	}
	if last.model != "test/model" {
		t.Fatalf("unexpected model %q", last.model)
	}
	if len(last.msgs) != 2 || last.msgs[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", last.msgs)
	}
	if !strings.Contains(last.msgs[1].Content, "Name: Ada") || !strings.Contains(last.msgs[1].Content, "Role: mentor") {
		t.Fatalf("fields missing from prompt: %q", last.msgs[1].Content)
	}
}

func TestGenerateWithSearchUsesOnlineModel(t *testing.T) {
	server, last := newCompletionsServer(t, func(req capturedRequest) (string, int) {
		return `{"summary":"researched","sources":[{"title":"A","uri":"https://a.example"}]}`, http.StatusOK
	})
	client := newTestClient(t, server)

	summary, sources, err := client.GenerateWithSearch(context.Background(), persona.State{Name: "Ada"}, "Ada Lovelace")
	if err != nil {
		t.Fatalf("generate with search: %v", err)
	}
	if last.model != "test/model:online" {
		t.Fatalf("search generation must use the online model variant, got %q", last.model)
	}
	if summary != "researched" {
		t.Fatalf("unexpected summary %q", summary)
	}
	if len(sources) != 1 || sources[0].URI != "https://a.example" {
		t.Fatalf("unexpected sources: %+v", sources)
	}
	if !strings.Contains(last.msgs[1].Content, "Ada Lovelace") {
		t.Fatalf("topic missing from prompt: %q", last.msgs[1].Content)
	}
}

func TestExtractParametersParsesFencedJSON(t *testing.T) {
	server, _ := newCompletionsServer(t, func(req capturedRequest) (string, int) {
		return "```json\n{\"name\":\"Ada\",\"role\":\"mentor\"}\n```", http.StatusOK
	})
	client := newTestClient(t, server)

	params, err := client.ExtractParameters(context.Background(), "some biography text")
	if err != nil {
		t.Fatalf("extract parameters: %v", err)
	}
	if params.Name != "Ada" || params.Role != "mentor" {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestClientSurfacesAPIError(t *testing.T) {
	server, _ := newCompletionsServer(t, func(req capturedRequest) (string, int) {
		return "rate limited", http.StatusTooManyRequests
	})
	client := newTestClient(t, server)

	_, err := client.GenerateSummary(context.Background(), persona.State{Name: "Ada"})
	if err == nil {
		t.Fatalf("expected error on API failure")
	}
	if !strings.Contains(err.Error(), "rate limited") || !strings.Contains(err.Error(), "429") {
		t.Fatalf("error must carry status and message, got %v", err)
	}
}

func TestConversationalRefineIncludesCurrentParams(t *testing.T) {
	server, last := newCompletionsServer(t, func(req capturedRequest) (string, int) {
		return `{"reply":"Named her Ada.","params":{"name":"Ada"}}`, http.StatusOK
	})
	client := newTestClient(t, server)

	history := []persona.Message{{Role: "user", Content: "call her Ada"}}
	reply, params, err := client.ConversationalRefine(context.Background(), history, persona.Params{Role: "mentor"})
	if err != nil {
		t.Fatalf("conversational refine: %v", err)
	}
	if reply != "Named her Ada." || params.Name != "Ada" {
		t.Fatalf("unexpected result: %q %+v", reply, params)
	}
	if !strings.Contains(last.msgs[0].Content, `"role":"mentor"`) {
		t.Fatalf("current params missing from system prompt: %q", last.msgs[0].Content)
	}
	if last.msgs[1].Content != "call her Ada" {
		t.Fatalf("history must follow the system prompt: %+v", last.msgs)
	}
}

func TestChatReplySpeaksInCharacter(t *testing.T) {
	server, last := newCompletionsServer(t, func(req capturedRequest) (string, int) {
		return "Delighted to meet you.", http.StatusOK
	})
	client := newTestClient(t, server)

	reply, err := client.ChatReply(context.Background(), persona.State{
		Name:    "Ada",
		Summary: "You are Ada, a mentor.",
	}, []persona.Message{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("chat reply: %v", err)
	}
	if reply != "Delighted to meet you." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if !strings.Contains(last.msgs[0].Content, "You are Ada, a mentor.") {
		t.Fatalf("persona summary missing from system prompt: %q", last.msgs[0].Content)
	}
}
