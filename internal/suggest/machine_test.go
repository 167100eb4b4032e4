package suggest

import (
	"errors"
	"testing"

	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/testutil"
)

func newMachine() *Machine {
	return NewMachine(directory.New(directory.Builtin()), '@')
}

func typeAndUpdate(t *testing.T, m *Machine, ed *testutil.Editor, text string) State {
	t.Helper()
	var st State
	for _, r := range text {
		ed.Type(t, string(r))
		st = m.Update(ed.Doc, ed.Sel, true)
	}
	return st
}

func labels(ids []directory.Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Label
	}
	return out
}

func TestTypingTriggerActivatesWithFullDirectory(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("Hey ")
	st := typeAndUpdate(t, m, ed, "@")
	if !st.Active() {
		t.Fatalf("expected active state after trigger, got %v", st.Phase)
	}
	if st.Query != "" {
		t.Fatalf("expected empty query, got %q", st.Query)
	}
	if st.Range != (document.Range{From: 5, To: 6}) {
		t.Fatalf("unexpected range %s", st.Range)
	}
	if len(st.Candidates) != 5 || st.Selected != 0 {
		t.Fatalf("expected 5 candidates with first selected, got %v selected=%d", labels(st.Candidates), st.Selected)
	}
}

func TestQueryNarrowsCandidates(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("Hey ")
	st := typeAndUpdate(t, m, ed, "@s")
	got := labels(st.Candidates)
	if len(got) != 2 || got[0] != "Total Walrus" || got[1] != "Smart Owl" {
		t.Fatalf("unexpected candidates for %q: %v", st.Query, got)
	}
	st = typeAndUpdate(t, m, ed, "m")
	if st.Range != (document.Range{From: 5, To: 8}) || st.Query != "sm" {
		t.Fatalf("unexpected state %s %q", st.Range, st.Query)
	}
	if got := labels(st.Candidates); len(got) != 1 || got[0] != "Smart Owl" {
		t.Fatalf("unexpected candidates %v", got)
	}
}

func TestNoMatchesStaysActiveWithEmptyList(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	st := typeAndUpdate(t, m, ed, "@zzz")
	if !st.Active() || st.HasCandidates() {
		t.Fatalf("expected active state without candidates, got %+v", st)
	}
	if m.Next() || m.Prev() {
		t.Fatalf("navigation should be a no-op without candidates")
	}
	if _, err := m.CommitSelected(ed); !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v", err)
	}
}

func TestNavigationWraps(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	typeAndUpdate(t, m, ed, "@")
	m.Prev()
	if got := m.State().Selected; got != 4 {
		t.Fatalf("expected prev from first to wrap to 4, got %d", got)
	}
	m.Next()
	if got := m.State().Selected; got != 0 {
		t.Fatalf("expected next from last to wrap to 0, got %d", got)
	}
	m.Next()
	m.Next()
	if st := m.State(); st.Candidates[st.Selected].Label != "Advanced Yak" {
		t.Fatalf("unexpected selected candidate %+v", st.Candidates[st.Selected])
	}
}

func TestSelectionKeptOnCursorOnlyUpdate(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	typeAndUpdate(t, m, ed, "@")
	m.Next()
	m.Next()
	st := m.Update(ed.Doc, ed.Sel, false)
	if st.Selected != 2 {
		t.Fatalf("expected selection to survive cursor-only update, got %d", st.Selected)
	}
	st = m.Update(ed.Doc, ed.Sel, true)
	if st.Selected != 0 {
		t.Fatalf("expected document change to reset selection, got %d", st.Selected)
	}
}

func TestCursorMoveChangesQuery(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("Hey ")
	typeAndUpdate(t, m, ed, "@sm")
	m.Next()
	ed.Sel = document.Cursor(7)
	st := m.Update(ed.Doc, ed.Sel, false)
	if !st.Active() || st.Query != "s" || st.Range != (document.Range{From: 5, To: 7}) {
		t.Fatalf("unexpected state after cursor move %+v", st)
	}
	if st.Selected != 0 {
		t.Fatalf("expected new query to reset selection, got %d", st.Selected)
	}
	ed.Sel = document.Cursor(4)
	if st := m.Update(ed.Doc, ed.Sel, false); st.Active() {
		t.Fatalf("expected cursor before trigger to deactivate")
	}
}

func TestRangeSelectionDeactivates(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("Hey ")
	typeAndUpdate(t, m, ed, "@sm")
	ed.Sel = document.Selection{Anchor: 6, Head: 8}
	if st := m.Update(ed.Doc, ed.Sel, false); st.Active() {
		t.Fatalf("expected non-empty selection to deactivate")
	}
}

func TestDismissLeavesDocument(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	typeAndUpdate(t, m, ed, "@")
	before := ed.Doc.Clone()
	if !m.Dismiss() {
		t.Fatalf("expected dismiss to close the session")
	}
	if m.State().Active() {
		t.Fatalf("expected inactive after dismiss")
	}
	if !ed.Doc.Equal(before) || ed.Text('@') != "@" {
		t.Fatalf("dismiss changed the document: %s", ed)
	}
	if m.Dismiss() {
		t.Fatalf("second dismiss should report nothing to do")
	}
	st := typeAndUpdate(t, m, ed, "d")
	if !st.Active() || st.Query != "d" {
		t.Fatalf("expected next edit to re-evaluate the trigger, got %+v", st)
	}
}

func TestCommitReplacesRangeWithToken(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("Hey ")
	typeAndUpdate(t, m, ed, "@sm")

	tok, err := m.CommitSelected(ed)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if tok.ID != "2" || tok.Label != "Smart Owl" {
		t.Fatalf("unexpected token %+v", tok)
	}
	if m.State().Active() {
		t.Fatalf("expected inactive after commit")
	}
	if got := ed.Text('@'); got != "Hey @Smart Owl " {
		t.Fatalf("unexpected document text %q", got)
	}
	if ed.Sel != document.Cursor(7) {
		t.Fatalf("expected cursor at 7, got %+v", ed.Sel)
	}
	inline, ok := ed.Doc.InlineBefore(6)
	if !ok {
		t.Fatalf("expected token before position 6")
	}
	if mt, ok := inline.(document.Mention); !ok || mt.Token != tok {
		t.Fatalf("expected committed token at [5,6), got %#v", inline)
	}
	if st := m.Update(ed.Doc, ed.Sel, true); st.Active() {
		t.Fatalf("expected no trigger after committed token")
	}
}

func TestCommitByIndexIgnoresSelection(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	typeAndUpdate(t, m, ed, "@")
	tok, err := m.Commit(ed, 3)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if tok.Label != "Code Ninja" {
		t.Fatalf("expected candidate 3, got %+v", tok)
	}
}

func TestCommitStaleRange(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("Hey ")
	typeAndUpdate(t, m, ed, "@sm")
	if err := ed.Doc.Replace(5, 8, document.Text{Value: "xyz"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	before := ed.Doc.Clone()
	if _, err := m.CommitSelected(ed); !errors.Is(err, ErrStaleRange) {
		t.Fatalf("expected ErrStaleRange, got %v", err)
	}
	if !ed.Doc.Equal(before) {
		t.Fatalf("stale commit changed the document: %s", ed)
	}
	if m.State().Active() {
		t.Fatalf("expected inactive after stale commit")
	}
}

func TestCommitEditFailure(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	typeAndUpdate(t, m, ed, "@")
	boom := errors.New("boom")
	ed.FailReplace = boom
	if _, err := m.CommitSelected(ed); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped edit error, got %v", err)
	}
	if m.State().Active() || ed.Text('@') != "@" {
		t.Fatalf("failed commit should leave inactive state and text: %s", ed)
	}
}

func TestCommitWhileInactive(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("plain")
	if _, err := m.CommitSelected(ed); !errors.Is(err, ErrInactive) {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
}

func TestTwoCommitsYieldIndependentTokens(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	typeAndUpdate(t, m, ed, "@sm")
	if _, err := m.CommitSelected(ed); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	m.Update(ed.Doc, ed.Sel, true)
	typeAndUpdate(t, m, ed, "@sm")
	if _, err := m.CommitSelected(ed); err != nil {
		t.Fatalf("second commit: %v", err)
	}
	mentions := ed.Doc.Mentions()
	if len(mentions) != 2 {
		t.Fatalf("expected two tokens, got %d", len(mentions))
	}
	if mentions[0].Token != mentions[1].Token {
		t.Fatalf("expected equal payloads, got %+v and %+v", mentions[0].Token, mentions[1].Token)
	}
	if mentions[0].Key == mentions[1].Key {
		t.Fatalf("expected distinct token instances")
	}
	if got := ed.Text('@'); got != "@Smart Owl @Smart Owl " {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestSetProviderRefilters(t *testing.T) {
	m := newMachine()
	ed := testutil.Typed("")
	typeAndUpdate(t, m, ed, "@a")
	m.Next()
	reloaded := directory.New([]directory.Identity{{ID: "9", Label: "Ada"}})
	st := m.SetProvider(reloaded)
	if got := labels(st.Candidates); len(got) != 1 || got[0] != "Ada" {
		t.Fatalf("unexpected candidates after reload %v", got)
	}
	if st.Selected != 0 {
		t.Fatalf("expected selection reset after reload, got %d", st.Selected)
	}
}

func TestCustomTrigger(t *testing.T) {
	m := NewMachine(directory.New(directory.Builtin()), '#')
	ed := testutil.Typed("")
	if st := typeAndUpdate(t, m, ed, "@ow"); st.Active() {
		t.Fatalf("default trigger should not fire with a custom trigger")
	}
	st := typeAndUpdate(t, m, ed, " #ow")
	if !st.Active() || st.Query != "ow" {
		t.Fatalf("expected custom trigger to activate, got %+v", st)
	}
}
