package persona

import (
	"context"
	"strings"
)

// HistoryLimit caps the per-persona audit trail. Oldest entries are
// evicted first; history is a convenience trail, not a durable ledger.
const HistoryLimit = 10

// genericChangeSummary stands in when the gateway cannot describe a change.
const genericChangeSummary = "Updated persona details"

// RecordChange builds a history entry for the transition from oldState to
// newState. The entry captures the OLD state, so reverting to it restores
// the pre-change version. The change description is delegated to the
// gateway; a failure substitutes the generic description and never blocks
// the save.
func RecordChange(ctx context.Context, gw Gateway, oldState, newState State) HistoryEntry {
	summary := ""
	if gw != nil {
		if text, err := gw.DescribeChange(ctx, oldState, newState); err == nil {
			summary = strings.TrimSpace(text)
		}
	}
	if summary == "" {
		summary = genericChangeSummary
	}
	return HistoryEntry{
		State:         oldState.Clone(),
		CreatedAtMS:   nowMS(),
		ChangeSummary: summary,
	}
}

// PushHistory prepends entry and truncates to HistoryLimit entries,
// most recent first.
func PushHistory(entries []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	if len(out) > HistoryLimit {
		out = out[:HistoryLimit]
	}
	return out
}
