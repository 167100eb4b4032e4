// Package suggest owns the suggestion lifecycle: whether a mention query is
// active, which candidates it produced and which one is selected. The state
// is recomputed from the document and cursor after every change and is the
// single source of truth for the popup.
package suggest

import (
	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/document"
)

// Phase is the lifecycle phase of a suggestion session.
type Phase int

const (
	Inactive Phase = iota
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "inactive"
}

// State is a snapshot of the machine. The zero value is Inactive.
//
// While Active, Range starts at the trigger character and ends at the cursor,
// Query is the text between them, and Selected indexes Candidates whenever
// Candidates is non-empty.
type State struct {
	Phase      Phase
	Range      document.Range
	Query      string
	Candidates []directory.Identity
	Selected   int
}

// Active reports whether a query is in progress.
func (s State) Active() bool {
	return s.Phase == Active
}

// HasCandidates reports whether there is anything to choose from.
func (s State) HasCandidates() bool {
	return s.Active() && len(s.Candidates) > 0
}

func sameCandidates(a, b []directory.Identity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
