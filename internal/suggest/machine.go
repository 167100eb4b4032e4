package suggest

import (
	"errors"
	"fmt"

	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/logging/events"
	"github.com/atomicstack/mention-popup/internal/mention"
	"github.com/atomicstack/mention-popup/internal/trigger"
)

var (
	// ErrInactive is returned when committing without an active query.
	ErrInactive = errors.New("no active mention query")

	// ErrNoCandidate is returned when the requested candidate does not exist.
	ErrNoCandidate = errors.New("no such candidate")

	// ErrStaleRange is returned when the trigger range no longer holds the
	// query text at commit time. The document is left untouched.
	ErrStaleRange = errors.New("mention range is stale")
)

// Provider supplies candidates for a query.
type Provider interface {
	Candidates(query string) []directory.Identity
}

// Editor is the part of the editor surface the machine reads and writes.
// Replace must apply the whole edit or nothing and leave the collapsed cursor
// at the given position.
type Editor interface {
	Document() *document.Document
	Selection() document.Selection
	Replace(r document.Range, content []document.Inline, cursor int) error
}

// Machine is the suggestion state machine.
type Machine struct {
	trigger  rune
	provider Provider
	state    State
}

// NewMachine returns an Inactive machine.
func NewMachine(provider Provider, trigger rune) *Machine {
	if trigger == 0 {
		trigger = mention.DefaultTrigger
	}
	return &Machine{trigger: trigger, provider: provider}
}

// Trigger returns the trigger character.
func (m *Machine) Trigger() rune {
	return m.trigger
}

// State returns the current snapshot.
func (m *Machine) State() State {
	return m.state
}

// Update recomputes the state from scratch for the given document and
// selection. After a document change the selection resets to the first
// candidate; after a pure cursor move it is kept only when the query and
// candidates are unchanged.
func (m *Machine) Update(doc *document.Document, sel document.Selection, docChanged bool) State {
	prev := m.state
	match, ok := trigger.Detect(doc, sel, m.trigger)
	if !ok {
		m.state = State{}
		if prev.Active() {
			reason := events.SuggestReasonNoMatch
			if !sel.Empty() {
				reason = events.SuggestReasonSelection
			}
			events.Suggest.Deactivate(prev.Query, reason)
		}
		return m.state
	}
	next := State{
		Phase:      Active,
		Range:      match.Range,
		Query:      match.Query,
		Candidates: m.candidates(match.Query),
	}
	if !docChanged && prev.Active() && prev.Range == next.Range && prev.Query == next.Query &&
		sameCandidates(prev.Candidates, next.Candidates) {
		next.Selected = prev.Selected
	}
	m.state = next
	if !prev.Active() || prev.Range != next.Range || prev.Query != next.Query {
		events.Suggest.Activate(next.Query, next.Range.From, next.Range.To, len(next.Candidates))
	}
	return m.state
}

// SetProvider swaps the candidate source, e.g. after the directory file was
// reloaded, and refilters an active query.
func (m *Machine) SetProvider(provider Provider) State {
	m.provider = provider
	if !m.state.Active() {
		return m.state
	}
	candidates := m.candidates(m.state.Query)
	if !sameCandidates(candidates, m.state.Candidates) {
		m.state.Candidates = candidates
		m.state.Selected = 0
	}
	return m.state
}

func (m *Machine) candidates(query string) []directory.Identity {
	if m.provider == nil {
		return nil
	}
	return m.provider.Candidates(query)
}

// Next moves the selection down, wrapping to the first candidate.
func (m *Machine) Next() bool {
	n := len(m.state.Candidates)
	if !m.state.Active() || n == 0 {
		return false
	}
	m.state.Selected = (m.state.Selected + 1) % n
	events.Suggest.Cursor(m.state.Selected)
	return true
}

// Prev moves the selection up, wrapping to the last candidate.
func (m *Machine) Prev() bool {
	n := len(m.state.Candidates)
	if !m.state.Active() || n == 0 {
		return false
	}
	m.state.Selected = (m.state.Selected - 1 + n) % n
	events.Suggest.Cursor(m.state.Selected)
	return true
}

// Dismiss closes the session without touching the document.
func (m *Machine) Dismiss() bool {
	if !m.state.Active() {
		return false
	}
	events.Suggest.Deactivate(m.state.Query, events.SuggestReasonEscape)
	m.state = State{}
	return true
}

// CommitSelected commits the selected candidate.
func (m *Machine) CommitSelected(ed Editor) (mention.Token, error) {
	return m.Commit(ed, m.state.Selected)
}

// Commit replaces the trigger range with a token for candidate index followed
// by one space, and leaves the cursor after the space. The machine is
// Inactive afterwards whether or not the edit succeeded.
func (m *Machine) Commit(ed Editor, index int) (mention.Token, error) {
	st := m.state
	if !st.Active() {
		return mention.Token{}, ErrInactive
	}
	if index < 0 || index >= len(st.Candidates) {
		return mention.Token{}, fmt.Errorf("commit candidate %d of %d: %w", index, len(st.Candidates), ErrNoCandidate)
	}
	chosen := st.Candidates[index]
	m.state = State{}

	if err := m.validate(ed.Document(), st); err != nil {
		events.Suggest.Abort(st.Query, err)
		return mention.Token{}, err
	}
	tok := mention.New(chosen.ID, chosen.Label)
	content := []document.Inline{document.NewMention(tok), document.Text{Value: " "}}
	if err := ed.Replace(st.Range, content, st.Range.From+2); err != nil {
		events.Suggest.Abort(st.Query, err)
		return mention.Token{}, fmt.Errorf("commit mention: %w", err)
	}
	events.Suggest.Commit(tok.ID, tok.Label, st.Range.From, st.Range.To)
	return tok, nil
}

// validate checks that the range still holds exactly trigger+query as text.
func (m *Machine) validate(doc *document.Document, st State) error {
	if doc == nil {
		return ErrStaleRange
	}
	inlines, err := doc.Slice(st.Range.From, st.Range.To)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStaleRange, err)
	}
	want := string(m.trigger) + st.Query
	if len(inlines) != 1 {
		return fmt.Errorf("%w: expected %q at %s", ErrStaleRange, want, st.Range)
	}
	text, ok := inlines[0].(document.Text)
	if !ok || text.Value != want {
		return fmt.Errorf("%w: expected %q at %s", ErrStaleRange, want, st.Range)
	}
	return nil
}
