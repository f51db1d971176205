package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dotsetgreg/personastudio/pkg/persona"
)

// chatStub implements persona.Gateway for session tests; only the chat
// calls do anything.
type chatStub struct {
	chatReplyFn func(state persona.State, history []persona.Message) (string, error)
	refineFn    func(history []persona.Message, params persona.Params) (string, persona.Params, error)
}

func (s *chatStub) GenerateSummary(ctx context.Context, state persona.State) (string, error) {
	return "", nil
}

func (s *chatStub) GenerateWithSearch(ctx context.Context, state persona.State, topic string) (string, []persona.Source, error) {
	return "", nil, nil
}

func (s *chatStub) ExtractParameters(ctx context.Context, text string) (persona.Params, error) {
	return persona.Params{}, nil
}

func (s *chatStub) Condense(ctx context.Context, text string) (string, error) {
	return "", nil
}

func (s *chatStub) DescribeChange(ctx context.Context, oldState, newState persona.State) (string, error) {
	return "", nil
}

func (s *chatStub) AnalyzePersonality(ctx context.Context, state persona.State) (persona.MBTIProfile, error) {
	return persona.MBTIProfile{}, nil
}

func (s *chatStub) ConversationalRefine(ctx context.Context, history []persona.Message, params persona.Params) (string, persona.Params, error) {
	if s.refineFn != nil {
		return s.refineFn(history, params)
	}
	return "Tell me more.", persona.Params{}, nil
}

func (s *chatStub) ChatReply(ctx context.Context, state persona.State, history []persona.Message) (string, error) {
	if s.chatReplyFn != nil {
		return s.chatReplyFn(state, history)
	}
	return "reply", nil
}

func TestSessionSendBuildsTranscript(t *testing.T) {
	ctx := context.Background()
	stub := &chatStub{
		chatReplyFn: func(state persona.State, history []persona.Message) (string, error) {
			return fmt.Sprintf("as %s, turn %d", state.Name, len(history)), nil
		},
	}
	session := NewSession(stub, persona.State{Name: "Ada"})

	reply, err := session.Send(ctx, "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "as Ada, turn 1" {
		t.Fatalf("unexpected reply %q", reply)
	}

	if _, err := session.Send(ctx, "and again"); err != nil {
		t.Fatalf("send: %v", err)
	}
	history := session.History()
	if len(history) != 4 {
		t.Fatalf("expected 4 transcript messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "assistant" {
		t.Fatalf("unexpected transcript roles: %+v", history)
	}
}

func TestSessionSendFailureLeavesTranscript(t *testing.T) {
	ctx := context.Background()
	fail := true
	stub := &chatStub{
		chatReplyFn: func(state persona.State, history []persona.Message) (string, error) {
			if fail {
				return "", fmt.Errorf("model unavailable")
			}
			return fmt.Sprintf("history length %d", len(history)), nil
		},
	}
	session := NewSession(stub, persona.State{Name: "Ada"})

	_, err := session.Send(ctx, "hello")
	var gwErr *persona.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if got := len(session.History()); got != 0 {
		t.Fatalf("failed turn must not pollute the transcript, got %d messages", got)
	}

	fail = false
	reply, err := session.Send(ctx, "retry")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if reply != "history length 1" {
		t.Fatalf("retry must replay without the failed turn, got %q", reply)
	}
}

func TestSessionSendRejectsEmptyInput(t *testing.T) {
	session := NewSession(&chatStub{}, persona.State{Name: "Ada"})
	var emptyErr *persona.EmptyInputError
	if _, err := session.Send(context.Background(), "   "); !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyInputError, got %v", err)
	}
}

func TestSessionReset(t *testing.T) {
	ctx := context.Background()
	session := NewSession(&chatStub{}, persona.State{Name: "Ada"})
	if _, err := session.Send(ctx, "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	session.Reset()
	if got := len(session.History()); got != 0 {
		t.Fatalf("reset must clear the transcript, got %d messages", got)
	}
}

func TestRefineSessionMergesParamsAcrossTurns(t *testing.T) {
	ctx := context.Background()
	turn := 0
	stub := &chatStub{
		refineFn: func(history []persona.Message, params persona.Params) (string, persona.Params, error) {
			turn++
			switch turn {
			case 1:
				return "Named her Ada.", persona.Params{Name: "Ada"}, nil
			default:
				return "Gave her a tone.", persona.Params{Tone: "warm"}, nil
			}
		},
	}
	session := NewRefineSession(stub, persona.Params{Role: "mentor"})

	if _, _, err := session.Send(ctx, "call her Ada"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	_, merged, err := session.Send(ctx, "make her warm")
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if merged.Name != "Ada" || merged.Tone != "warm" || merged.Role != "mentor" {
		t.Fatalf("expected accumulated params, got %+v", merged)
	}
	if got := session.Params(); got != merged {
		t.Fatalf("session params out of sync: %+v vs %+v", got, merged)
	}
}

func TestRefineSessionFailureKeepsParams(t *testing.T) {
	ctx := context.Background()
	stub := &chatStub{
		refineFn: func(history []persona.Message, params persona.Params) (string, persona.Params, error) {
			return "", persona.Params{}, fmt.Errorf("model unavailable")
		},
	}
	session := NewRefineSession(stub, persona.Params{Name: "Ada"})

	_, _, err := session.Send(ctx, "change everything")
	var gwErr *persona.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if got := session.Params(); got.Name != "Ada" {
		t.Fatalf("failed turn must keep prior params, got %+v", got)
	}
}

func TestTrimHistoryDropsOldestFirst(t *testing.T) {
	long := strings.Repeat("x", 4000) // ~1600 estimated tokens
	var history []persona.Message
	for i := 0; i < 8; i++ {
		history = append(history, persona.Message{
			Role:    "user",
			Content: fmt.Sprintf("%d-%s", i, long),
		})
	}
	trimmed := trimHistory(history)
	if len(trimmed) == 0 || len(trimmed) >= len(history) {
		t.Fatalf("expected a proper suffix, got %d of %d", len(trimmed), len(history))
	}
	last := trimmed[len(trimmed)-1]
	if !strings.HasPrefix(last.Content, "7-") {
		t.Fatalf("most recent message must survive, got prefix %q", last.Content[:2])
	}
	first := trimmed[0]
	if strings.HasPrefix(first.Content, "0-") {
		t.Fatalf("oldest message should have been dropped")
	}
}
