package persona

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// State is the editable field set of a persona, excluding identity and
// history. It is a plain value: copy it freely, but use Clone when the
// copy must not share slice or pointer data with the original.
type State struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Personality string `json:"personality,omitempty"`
	Worldview   string `json:"worldview,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Other       string `json:"other,omitempty"`

	// Summary is derived from the structured fields but independently
	// editable. It is never overwritten without an explicit trigger.
	Summary      string `json:"summary,omitempty"`
	ShortSummary string `json:"short_summary,omitempty"`
	ShortTone    string `json:"short_tone,omitempty"`

	// Sources are replaced as a whole list by web-search-backed
	// generation, never appended to incrementally.
	Sources []Source `json:"sources,omitempty"`

	MBTI *MBTIProfile `json:"mbti_profile,omitempty"`
}

// Source is a web citation attached by search-backed generation.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// MBTIProfile is a four-axis personality classification produced by
// gateway analysis.
type MBTIProfile struct {
	Type        string     `json:"type"`
	TypeName    string     `json:"type_name"`
	Description string     `json:"description"`
	Scores      MBTIScores `json:"scores"`
}

// MBTIScores hold each axis in [0,100].
type MBTIScores struct {
	Mind    int `json:"mind"`
	Energy  int `json:"energy"`
	Nature  int `json:"nature"`
	Tactics int `json:"tactics"`
}

// Persona is a stored character: state plus stable identity and a bounded
// edit history.
type Persona struct {
	ID string `json:"id,omitempty"`
	State
	History []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry records the state a persona had before one saved update.
// Entries are immutable once created.
type HistoryEntry struct {
	State         State  `json:"state"`
	CreatedAtMS   int64  `json:"created_at_ms"`
	ChangeSummary string `json:"change_summary"`
}

// Params is the structured field set produced by gateway extraction and
// conversational refinement. Empty fields mean "no opinion", not "clear".
type Params struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Tone        string `json:"tone"`
	Personality string `json:"personality"`
	Worldview   string `json:"worldview"`
	Experience  string `json:"experience"`
	Other       string `json:"other"`
}

// Message is a provider-agnostic chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Gateway is the generative-AI service boundary. Implementations must
// tolerate malformed model output for the structured calls and surface it
// as an error rather than a crash.
type Gateway interface {
	// GenerateSummary produces a narrative summary from the structured
	// fields. Callers blank State.Summary before the request so the
	// previous text cannot anchor the result.
	GenerateSummary(ctx context.Context, state State) (string, error)

	// GenerateWithSearch produces a summary plus web citations for the
	// given topic in one atomic call.
	GenerateWithSearch(ctx context.Context, state State, topic string) (string, []Source, error)

	// ExtractParameters derives structured fields from free text.
	ExtractParameters(ctx context.Context, text string) (Params, error)

	// Condense compresses text into a short form.
	Condense(ctx context.Context, text string) (string, error)

	// DescribeChange produces a one-line description of the difference
	// between two states.
	DescribeChange(ctx context.Context, oldState, newState State) (string, error)

	// AnalyzePersonality classifies the persona on four MBTI axes.
	AnalyzePersonality(ctx context.Context, state State) (MBTIProfile, error)

	// ConversationalRefine continues a refinement dialog and proposes
	// partial parameter updates.
	ConversationalRefine(ctx context.Context, history []Message, params Params) (string, Params, error)

	// ChatReply answers in character for the given persona state.
	ChatReply(ctx context.Context, state State, history []Message) (string, error)
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	if len(s.Sources) > 0 {
		out.Sources = append([]Source{}, s.Sources...)
	}
	if s.MBTI != nil {
		mbti := *s.MBTI
		out.MBTI = &mbti
	}
	return out
}

// Params returns the structured fields of the state.
func (s State) Params() Params {
	return Params{
		Name:        s.Name,
		Role:        s.Role,
		Tone:        s.Tone,
		Personality: s.Personality,
		Worldview:   s.Worldview,
		Experience:  s.Experience,
		Other:       s.Other,
	}
}

// ApplyParams replaces the structured fields of the state wholesale.
// Summary, short forms, sources and the MBTI profile are untouched.
func (s *State) ApplyParams(p Params) {
	s.Name = p.Name
	s.Role = p.Role
	s.Tone = p.Tone
	s.Personality = p.Personality
	s.Worldview = p.Worldview
	s.Experience = p.Experience
	s.Other = p.Other
}

// MergeParams overlays extracted parameters onto the state. Non-empty
// extracted values win; empty extracted values leave the prior value
// untouched, so an extraction that returned an empty `other` can never
// drop existing `other` content.
func MergeParams(s State, p Params) State {
	out := s.Clone()
	apply := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	apply(&out.Name, p.Name)
	apply(&out.Role, p.Role)
	apply(&out.Tone, p.Tone)
	apply(&out.Personality, p.Personality)
	apply(&out.Worldview, p.Worldview)
	apply(&out.Experience, p.Experience)
	apply(&out.Other, p.Other)
	return out
}

// HasContent reports whether any structured field or the summary carries text
// beyond whitespace.
func (s State) HasContent() bool {
	for _, v := range []string{s.Name, s.Role, s.Tone, s.Personality, s.Worldview, s.Experience, s.Other, s.Summary} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// DedupeSources drops later entries that repeat an earlier URI. Order is
// preserved; titles of dropped duplicates are discarded.
func DedupeSources(sources []Source) []Source {
	if len(sources) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	out := make([]Source, 0, len(sources))
	for _, src := range sources {
		uri := strings.TrimSpace(src.URI)
		if uri == "" {
			continue
		}
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}
		out = append(out, Source{Title: strings.TrimSpace(src.Title), URI: uri})
	}
	return out
}

func (p Persona) clone() Persona {
	out := p
	out.State = p.State.Clone()
	if len(p.History) > 0 {
		out.History = append([]HistoryEntry{}, p.History...)
	}
	return out
}

func personaFromJSON(raw string) (Persona, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "{}" {
		return Persona{}, false
	}
	var p Persona
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Persona{}, false
	}
	if strings.TrimSpace(p.Name) == "" {
		return Persona{}, false
	}
	return p, true
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}
