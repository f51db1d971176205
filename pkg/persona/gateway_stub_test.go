package persona

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func waitForCondition(tb testing.TB, timeout time.Duration, fn func() bool) {
	tb.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	tb.Fatalf("condition not met within %s", timeout)
}

// stubGateway answers deterministically unless a per-call func overrides
// the behavior. Call counts are tracked per operation.
type stubGateway struct {
	mu    sync.Mutex
	calls map[string]int

	generateSummaryFn      func(ctx context.Context, state State) (string, error)
	generateWithSearchFn   func(ctx context.Context, state State, topic string) (string, []Source, error)
	extractParametersFn    func(ctx context.Context, text string) (Params, error)
	condenseFn             func(ctx context.Context, text string) (string, error)
	describeChangeFn       func(ctx context.Context, oldState, newState State) (string, error)
	analyzePersonalityFn   func(ctx context.Context, state State) (MBTIProfile, error)
	conversationalRefineFn func(ctx context.Context, history []Message, params Params) (string, Params, error)
	chatReplyFn            func(ctx context.Context, state State, history []Message) (string, error)
}

func newStubGateway() *stubGateway {
	return &stubGateway{calls: map[string]int{}}
}

func (g *stubGateway) record(op string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[op]++
}

func (g *stubGateway) callCount(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *stubGateway) GenerateSummary(ctx context.Context, state State) (string, error) {
	g.record("generate_summary")
	if g.generateSummaryFn != nil {
		return g.generateSummaryFn(ctx, state)
	}
	return "A persona named " + state.Name + ".", nil
}

func (g *stubGateway) GenerateWithSearch(ctx context.Context, state State, topic string) (string, []Source, error) {
	g.record("generate_with_search")
	if g.generateWithSearchFn != nil {
		return g.generateWithSearchFn(ctx, state, topic)
	}
	return "Researched summary about " + topic + ".",
		[]Source{{Title: topic, URI: "https://example.com/" + topic}}, nil
}

func (g *stubGateway) ExtractParameters(ctx context.Context, text string) (Params, error) {
	g.record("extract_parameters")
	if g.extractParametersFn != nil {
		return g.extractParametersFn(ctx, text)
	}
	return Params{}, nil
}

func (g *stubGateway) Condense(ctx context.Context, text string) (string, error) {
	g.record("condense")
	if g.condenseFn != nil {
		return g.condenseFn(ctx, text)
	}
	return "condensed: " + truncateRunes(text, 24), nil
}

func (g *stubGateway) DescribeChange(ctx context.Context, oldState, newState State) (string, error) {
	g.record("describe_change")
	if g.describeChangeFn != nil {
		return g.describeChangeFn(ctx, oldState, newState)
	}
	return fmt.Sprintf("Changed %s", newState.Name), nil
}

func (g *stubGateway) AnalyzePersonality(ctx context.Context, state State) (MBTIProfile, error) {
	g.record("analyze_personality")
	if g.analyzePersonalityFn != nil {
		return g.analyzePersonalityFn(ctx, state)
	}
	return MBTIProfile{
		Type:     "INTJ",
		TypeName: "Architect",
		Scores:   MBTIScores{Mind: 20, Energy: 80, Nature: 35, Tactics: 70},
	}, nil
}

func (g *stubGateway) ConversationalRefine(ctx context.Context, history []Message, params Params) (string, Params, error) {
	g.record("conversational_refine")
	if g.conversationalRefineFn != nil {
		return g.conversationalRefineFn(ctx, history, params)
	}
	return "Tell me more.", Params{}, nil
}

func (g *stubGateway) ChatReply(ctx context.Context, state State, history []Message) (string, error) {
	g.record("chat_reply")
	if g.chatReplyFn != nil {
		return g.chatReplyFn(ctx, state, history)
	}
	return "In character as " + state.Name + ".", nil
}

func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
