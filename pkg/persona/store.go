package persona

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KV is the durable key/value backend a Store persists into. A nil KV
// leaves the store memory-only, which the tests and ephemeral sessions
// rely on.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// personaCollectionKey is the single record holding every saved persona.
// The collection is small (tens of personas, bounded histories), so one
// blob read/write per mutation beats per-persona bookkeeping.
const personaCollectionKey = "personas/v1"

// Store holds the saved personas. All mutations go through the store so
// the derived short fields and the version history stay consistent with
// the persisted state.
type Store struct {
	gw  Gateway
	log *zap.Logger

	mu       sync.Mutex
	kv       KV
	personas map[string]Persona
}

// NewStore creates a store and loads any previously persisted collection.
// An unreadable or unparsable collection degrades to an empty store with
// a warning rather than failing startup.
func NewStore(ctx context.Context, gw Gateway, kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		gw:       gw,
		log:      log,
		kv:       kv,
		personas: map[string]Persona{},
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.kv == nil {
		return
	}
	raw, ok, err := s.kv.Load(ctx, personaCollectionKey)
	if err != nil {
		s.log.Warn("persona collection load failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var personas []Persona
	if err := json.Unmarshal(raw, &personas); err != nil {
		s.log.Warn("persona collection unparsable, starting empty", zap.Error(err))
		return
	}
	for _, p := range personas {
		if p.ID == "" || strings.TrimSpace(p.Name) == "" {
			continue
		}
		s.personas[p.ID] = p.clone()
	}
}

// Save creates or updates a persona from the given state. An empty id
// creates a new persona. Updates that change the state push a history
// entry capturing the pre-save snapshot, with an AI-written change
// description when the gateway cooperates.
func (s *Store) Save(ctx context.Context, id string, state State) (Persona, error) {
	if strings.TrimSpace(state.Name) == "" {
		return Persona{}, &ValidationError{Field: "name"}
	}
	state = state.Clone()
	s.deriveShortFields(ctx, &state)

	s.mu.Lock()
	defer s.mu.Unlock()

	var p Persona
	if id == "" {
		p = Persona{ID: "psn-" + uuid.NewString(), State: state}
	} else {
		prev, ok := s.personas[id]
		if !ok {
			return Persona{}, ErrNotFound
		}
		p = prev.clone()
		if !reflect.DeepEqual(prev.State, state) {
			entry := RecordChange(ctx, s.gw, prev.State, state)
			p.History = PushHistory(p.History, entry)
		}
		p.State = state
	}
	s.personas[p.ID] = p.clone()
	s.persistLocked(ctx)
	return p.clone(), nil
}

// deriveShortFields fills the compact summary and tone used by list views
// and chat prompts. Derivation is best-effort: a gateway failure leaves
// the field empty rather than blocking the save.
func (s *Store) deriveShortFields(ctx context.Context, state *State) {
	state.ShortSummary = s.condense(ctx, state.Summary)
	state.ShortTone = s.condense(ctx, state.Tone)
}

func (s *Store) condense(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	out, err := s.gw.Condense(ctx, text)
	if err != nil {
		s.log.Warn("condense failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(out)
}

// Ingest adds an imported persona record, history included. An empty or
// already-taken id gets a fresh one so an import never overwrites an
// existing persona.
func (s *Store) Ingest(ctx context.Context, p Persona) (Persona, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Persona{}, &ValidationError{Field: "name"}
	}
	p = p.clone()
	s.deriveShortFields(ctx, &p.State)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.personas[p.ID]; p.ID == "" || taken {
		p.ID = "psn-" + uuid.NewString()
	}
	s.personas[p.ID] = p.clone()
	s.persistLocked(ctx)
	return p.clone(), nil
}

// Get returns the persona with the given id.
func (s *Store) Get(id string) (Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.personas[id]
	if !ok {
		return Persona{}, ErrNotFound
	}
	return p.clone(), nil
}

// List returns every saved persona sorted by name.
func (s *Store) List() []Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Persona, 0, len(s.personas))
	for _, p := range s.personas {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete removes a persona and its history.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.personas[id]; !ok {
		return ErrNotFound
	}
	delete(s.personas, id)
	s.persistLocked(ctx)
	return nil
}

// persistLocked writes the collection through the KV backend. Persistence
// failures are logged, not returned: the in-memory commit already
// happened and the next mutation retries the full write.
func (s *Store) persistLocked(ctx context.Context) {
	if s.kv == nil {
		return
	}
	personas := make([]Persona, 0, len(s.personas))
	for _, p := range s.personas {
		personas = append(personas, p)
	}
	sort.Slice(personas, func(i, j int) bool { return personas[i].ID < personas[j].ID })
	raw, err := json.Marshal(personas)
	if err != nil {
		s.log.Error("persona collection encode failed", zap.Error(err))
		return
	}
	if err := s.kv.Save(ctx, personaCollectionKey, raw); err != nil {
		s.log.Warn("persona collection persist failed",
			zap.Error(&StorageError{Op: "save collection", Err: err}))
	}
}
