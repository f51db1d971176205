package persona

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Mode identifies which studio tab is active. Passive summary sync only
// runs while the editor tab is current.
type Mode int

const (
	ModeEditor Mode = iota
	ModeTools
	ModeChat
)

// DefaultDebounceWindow is the quiet period after the last structured-field
// edit before a passive summary regeneration fires.
const DefaultDebounceWindow = 1500 * time.Millisecond

// EditorConfig tunes an editor session.
type EditorConfig struct {
	// DebounceWindow overrides DefaultDebounceWindow when positive.
	DebounceWindow time.Duration
	Logger         *zap.Logger
}

// Editor owns one editing session for a persona draft: the working state,
// the single-slot undo buffer, and the debounced bidirectional sync with
// the AI gateway. Explicit actions return typed errors; passive triggers
// log and swallow failures.
//
// Every async result is tagged with the session token current at dispatch
// and discarded if the token has moved on, so responses that straggle in
// after Open, Close or a revert cannot overwrite fresher state.
type Editor struct {
	gw     Gateway
	log    *zap.Logger
	window time.Duration

	mu       sync.Mutex
	state    State
	undo     UndoBuffer
	mode     Mode
	session  uint64
	timer    *time.Timer
	inflight bool
	dirty    bool
}

// NewEditor creates an editor bound to the given gateway. The session
// starts closed; call Open with the draft state before editing.
func NewEditor(gw Gateway, cfg EditorConfig) *Editor {
	window := cfg.DebounceWindow
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		gw:     gw,
		log:    log,
		window: window,
		mode:   ModeEditor,
	}
}

// Open starts a new editing session on the given draft. Opening never
// schedules a regeneration: the first passive sync waits for an actual
// edit.
func (e *Editor) Open(state State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.cancelTimerLocked()
	e.dirty = false
	e.state = state.Clone()
	e.mode = ModeEditor
	e.undo.Disarm()
}

// Close ends the session. Pending and in-flight passive work is
// superseded; late responses are dropped by the token check.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.cancelTimerLocked()
	e.dirty = false
}

// SetMode records the active tab. Leaving the editor tab cancels any
// pending passive sync.
func (e *Editor) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = m
	if m != ModeEditor {
		e.cancelTimerLocked()
	}
}

// Mode returns the active tab.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// State returns a copy of the working draft.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// UndoArmed reports whether an undo snapshot is live.
func (e *Editor) UndoArmed() bool {
	return e.undo.Armed()
}

// EditParams replaces the structured fields from a form snapshot and
// restarts the passive sync timer (trailing-edge debounce).
func (e *Editor) EditParams(p Params) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ApplyParams(p)
	e.schedulePassiveLocked()
}

// EditSummary replaces the summary text. Summary edits never trigger a
// passive regeneration; the reverse sync is the explicit SyncFromSummary.
func (e *Editor) EditSummary(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Summary = text
}

// RefreshSummary regenerates the summary from the structured fields on
// explicit user request. The current summary is blanked in the request so
// it cannot anchor the result.
func (e *Editor) RefreshSummary(ctx context.Context) error {
	e.mu.Lock()
	e.cancelTimerLocked()
	if strings.TrimSpace(e.state.Name) == "" {
		e.mu.Unlock()
		return &EmptyInputError{Input: "name"}
	}
	snap := e.state.Clone()
	snap.Summary = ""
	token := e.session
	e.mu.Unlock()

	text, err := e.gw.GenerateSummary(ctx, snap)
	if err != nil {
		return &GatewayError{Op: "generate summary", Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if token == e.session {
		e.state.Summary = strings.TrimSpace(text)
	}
	return nil
}

// SyncFromSummary extracts structured fields from the summary text and
// merges them over the draft. The pre-call state is armed for undo; a
// failed extraction disarms it, since a failed overwrite has nothing to
// undo.
func (e *Editor) SyncFromSummary(ctx context.Context) error {
	e.mu.Lock()
	summary := strings.TrimSpace(e.state.Summary)
	if summary == "" {
		e.mu.Unlock()
		return &EmptyInputError{Input: "summary"}
	}
	e.undo.Arm(e.state)
	token := e.session
	e.mu.Unlock()

	params, err := e.gw.ExtractParameters(ctx, summary)
	if err != nil {
		e.undo.Disarm()
		return &GatewayError{Op: "extract parameters", Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if token == e.session {
		e.state = MergeParams(e.state, params)
	}
	return nil
}

// ImportDocument extracts structured fields from an uploaded reference
// document. Merge semantics match SyncFromSummary: extracted non-empty
// values win, and existing content — notably a non-empty `other` field —
// survives an empty extraction result.
func (e *Editor) ImportDocument(ctx context.Context, document string) error {
	document = strings.TrimSpace(document)
	if document == "" {
		return &EmptyInputError{Input: "document"}
	}

	e.mu.Lock()
	e.undo.Arm(e.state)
	token := e.session
	e.mu.Unlock()

	params, err := e.gw.ExtractParameters(ctx, document)
	if err != nil {
		e.undo.Disarm()
		return &GatewayError{Op: "extract parameters", Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if token == e.session {
		e.state = MergeParams(e.state, params)
	}
	return nil
}

// RegenerateWithSearch rebuilds the summary from web-search-backed
// generation and swaps in the returned citation list wholesale.
func (e *Editor) RegenerateWithSearch(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return &EmptyInputError{Input: "topic"}
	}

	e.mu.Lock()
	e.undo.Arm(e.state)
	snap := e.state.Clone()
	token := e.session
	e.mu.Unlock()

	summary, sources, err := e.gw.GenerateWithSearch(ctx, snap, topic)
	if err != nil {
		e.undo.Disarm()
		return &GatewayError{Op: "search generation", Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if token == e.session {
		e.state.Summary = strings.TrimSpace(summary)
		e.state.Sources = DedupeSources(sources)
	}
	return nil
}

// AnalyzePersonality attaches an MBTI classification to the draft.
// Last response wins; there is no undo arming for a single-field write.
func (e *Editor) AnalyzePersonality(ctx context.Context) error {
	e.mu.Lock()
	if !e.state.HasContent() {
		e.mu.Unlock()
		return &EmptyInputError{Input: "persona details"}
	}
	snap := e.state.Clone()
	token := e.session
	e.mu.Unlock()

	profile, err := e.gw.AnalyzePersonality(ctx, snap)
	if err != nil {
		return &GatewayError{Op: "personality analysis", Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if token == e.session {
		e.state.MBTI = &profile
	}
	return nil
}

// Undo restores the snapshot armed before the last bulk overwrite, if one
// is live. Undo always clears the slot; there is no redo.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap, ok := e.undo.Consume()
	if !ok {
		return false
	}
	e.cancelTimerLocked()
	e.state = snap
	return true
}

// RevertTo applies a history entry's snapshot as the new working state.
// Reverting supersedes any pending undo or passive sync: the undo slot is
// cleared and in-flight responses are dropped by the token bump.
func (e *Editor) RevertTo(entry HistoryEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.cancelTimerLocked()
	e.dirty = false
	e.state = entry.State.Clone()
	e.undo.Disarm()
}

func (e *Editor) cancelTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Editor) schedulePassiveLocked() {
	if e.mode != ModeEditor {
		return
	}
	e.cancelTimerLocked()
	token := e.session
	e.timer = time.AfterFunc(e.window, func() {
		e.passiveFire(token)
	})
}

func (e *Editor) passiveFire(token uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.session || e.mode != ModeEditor {
		return
	}
	if e.inflight {
		// Coalesce: only the latest snapshot matters once the current
		// request resolves. No queue beyond depth 1.
		e.dirty = true
		return
	}
	e.launchLocked(token)
}

// launchLocked starts one passive regeneration for the current snapshot.
// Caller holds mu.
func (e *Editor) launchLocked(token uint64) {
	if strings.TrimSpace(e.state.Name) == "" {
		e.log.Debug("passive summary sync skipped: name empty")
		return
	}
	e.inflight = true
	snap := e.state.Clone()
	snap.Summary = ""

	go func() {
		text, err := e.gw.GenerateSummary(context.Background(), snap)

		e.mu.Lock()
		defer e.mu.Unlock()
		e.inflight = false
		if token != e.session {
			return
		}
		if err != nil {
			e.log.Warn("passive summary sync failed", zap.Error(err))
		} else if trimmed := strings.TrimSpace(text); trimmed != "" && e.mode == ModeEditor {
			e.state.Summary = trimmed
		}
		if e.dirty {
			e.dirty = false
			e.launchLocked(token)
		}
	}()
}
