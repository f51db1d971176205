// Package chat holds the conversational sessions: in-character chat with
// a persona and the guided refinement dialogue.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/dotsetgreg/personastudio/pkg/persona"
)

// historyTokenBudget bounds how much transcript is replayed to the
// gateway per turn. Oldest turns fall off first.
const historyTokenBudget = 6000

// Session is an in-character conversation with one persona.
type Session struct {
	gw persona.Gateway

	mu      sync.Mutex
	state   persona.State
	history []persona.Message
}

// NewSession starts a chat session against the given persona state.
func NewSession(gw persona.Gateway, state persona.State) *Session {
	return &Session{gw: gw, state: state.Clone()}
}

// Send submits a user message and returns the persona's reply. Failed
// turns leave the transcript without the failed exchange so a retry
// replays cleanly.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &persona.EmptyInputError{Input: "message"}
	}

	s.mu.Lock()
	state := s.state.Clone()
	history := append(trimHistory(s.history), persona.Message{Role: "user", Content: text})
	s.mu.Unlock()

	reply, err := s.gw.ChatReply(ctx, state, history)
	if err != nil {
		return "", &persona.GatewayError{Op: "chat reply", Err: err}
	}

	s.mu.Lock()
	s.history = append(history, persona.Message{Role: "assistant", Content: reply})
	s.mu.Unlock()
	return reply, nil
}

// UpdateState swaps in a newer persona state. The transcript carries
// over; the next turn speaks with the updated character.
func (s *Session) UpdateState(state persona.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
}

// Reset clears the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// History returns a copy of the transcript.
func (s *Session) History() []persona.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]persona.Message{}, s.history...)
}

// RefineSession is the guided dialogue that builds persona fields through
// conversation. Each turn may update some fields; non-empty updates win,
// untouched fields carry over.
type RefineSession struct {
	gw persona.Gateway

	mu      sync.Mutex
	params  persona.Params
	history []persona.Message
}

// NewRefineSession starts a refinement dialogue seeded with the current
// structured fields.
func NewRefineSession(gw persona.Gateway, current persona.Params) *RefineSession {
	return &RefineSession{gw: gw, params: current}
}

// Send submits a user message and returns the assistant reply plus the
// merged field set after this turn.
func (s *RefineSession) Send(ctx context.Context, text string) (string, persona.Params, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", persona.Params{}, &persona.EmptyInputError{Input: "message"}
	}

	s.mu.Lock()
	current := s.params
	history := append(trimHistory(s.history), persona.Message{Role: "user", Content: text})
	s.mu.Unlock()

	reply, updates, err := s.gw.ConversationalRefine(ctx, history, current)
	if err != nil {
		return "", persona.Params{}, &persona.GatewayError{Op: "conversational refine", Err: err}
	}

	merged := mergeParams(current, updates)

	s.mu.Lock()
	s.params = merged
	s.history = append(history, persona.Message{Role: "assistant", Content: reply})
	s.mu.Unlock()
	return reply, merged, nil
}

// Params returns the field set accumulated so far.
func (s *RefineSession) Params() persona.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func mergeParams(current, updates persona.Params) persona.Params {
	pick := func(prev, next string) string {
		if v := strings.TrimSpace(next); v != "" {
			return v
		}
		return prev
	}
	return persona.Params{
		Name:        pick(current.Name, updates.Name),
		Role:        pick(current.Role, updates.Role),
		Tone:        pick(current.Tone, updates.Tone),
		Personality: pick(current.Personality, updates.Personality),
		Worldview:   pick(current.Worldview, updates.Worldview),
		Experience:  pick(current.Experience, updates.Experience),
		Other:       pick(current.Other, updates.Other),
	}
}

// trimHistory drops the oldest turns once the transcript exceeds the
// token budget. Returns a fresh slice the caller may append to.
func trimHistory(history []persona.Message) []persona.Message {
	used := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		tokens := estimateMessageTokens(history[i].Content)
		if used+tokens > historyTokenBudget && start < len(history) {
			break
		}
		used += tokens
		start = i
	}
	return append([]persona.Message{}, history[start:]...)
}

func estimateMessageTokens(content string) int {
	runes := len([]rune(content))
	if runes == 0 {
		return 0
	}
	tokens := runes * 2 / 5
	if tokens < 8 {
		tokens = 8
	}
	return tokens
}
