package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/logging"
	"github.com/atomicstack/mention-popup/internal/mention"
	"github.com/atomicstack/mention-popup/internal/suggest"
	"github.com/atomicstack/mention-popup/internal/testutil"
)

type fixture struct {
	ed   *testutil.Editor
	m    *suggest.Machine
	ctrl *Controller
}

func newFixture(text string) *fixture {
	ed := testutil.Typed(text)
	m := suggest.NewMachine(directory.New(directory.Builtin()), '@')
	return &fixture{ed: ed, m: m, ctrl: New(m, ed)}
}

func (f *fixture) typeText(t *testing.T, text string) {
	t.Helper()
	for _, r := range text {
		f.ed.Type(t, string(r))
		f.m.Update(f.ed.Doc, f.ed.Sel, true)
	}
}

func (f *fixture) sync() suggest.State {
	return f.m.Update(f.ed.Doc, f.ed.Sel, true)
}

func TestKeysPassThroughWhenInactive(t *testing.T) {
	f := newFixture("plain")
	for _, k := range []Key{KeyUp, KeyDown, KeyEnter, KeyTab, KeyEscape, KeyOther} {
		handled, err := f.ctrl.HandleKey(k)
		if handled || err != nil {
			t.Fatalf("expected %s to pass through, got handled=%v err=%v", k, handled, err)
		}
	}
}

func TestKeysPassThroughWithoutCandidates(t *testing.T) {
	f := newFixture("")
	f.typeText(t, "@zzz")
	if handled, _ := f.ctrl.HandleKey(KeyEnter); handled {
		t.Fatalf("enter should reach the editor when the list is empty")
	}
	if !f.m.State().Active() {
		t.Fatalf("state should remain active")
	}
}

func TestArrowKeysNavigate(t *testing.T) {
	f := newFixture("")
	f.typeText(t, "@")
	if handled, _ := f.ctrl.HandleKey(KeyDown); !handled {
		t.Fatalf("down should be handled")
	}
	if got := f.m.State().Selected; got != 1 {
		t.Fatalf("expected selection 1, got %d", got)
	}
	f.ctrl.HandleKey(KeyUp)
	f.ctrl.HandleKey(KeyUp)
	if got := f.m.State().Selected; got != 4 {
		t.Fatalf("expected wrap to 4, got %d", got)
	}
}

func TestOtherKeysNotHandledWhileActive(t *testing.T) {
	f := newFixture("")
	f.typeText(t, "@")
	for _, k := range []Key{KeyOther, KeyBackspace, KeyDelete} {
		if handled, _ := f.ctrl.HandleKey(k); handled {
			t.Fatalf("%s should not be intercepted", k)
		}
	}
}

func TestEnterAndTabCommit(t *testing.T) {
	for _, k := range []Key{KeyEnter, KeyTab} {
		f := newFixture("Hey ")
		f.typeText(t, "@sm")
		handled, err := f.ctrl.HandleKey(k)
		if !handled || err != nil {
			t.Fatalf("%s: handled=%v err=%v", k, handled, err)
		}
		if got := f.ed.Text('@'); got != "Hey @Smart Owl " {
			t.Fatalf("%s: unexpected text %q", k, got)
		}
		if f.ed.Sel.Head != 7 {
			t.Fatalf("%s: expected cursor 7, got %d", k, f.ed.Sel.Head)
		}
		if len(f.ed.Doc.Blocks) != 1 {
			t.Fatalf("%s: committed key must not also split the block", k)
		}
	}
}

func TestEscapeDismisses(t *testing.T) {
	f := newFixture("")
	f.typeText(t, "@")
	handled, _ := f.ctrl.HandleKey(KeyEscape)
	if !handled || f.m.State().Active() {
		t.Fatalf("escape should close the popup")
	}
	if got := f.ed.Text('@'); got != "@" {
		t.Fatalf("escape changed the text to %q", got)
	}
	if handled, _ := f.ctrl.HandleKey(KeyEscape); handled {
		t.Fatalf("escape with no popup belongs to the host")
	}
}

func TestStaleCommitIsReportedAndConsumed(t *testing.T) {
	f := newFixture("")
	f.typeText(t, "@sm")
	if err := f.ed.Doc.Replace(1, 4, document.Text{Value: "abc"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	handled, err := f.ctrl.HandleKey(KeyEnter)
	if !handled || !errors.Is(err, suggest.ErrStaleRange) {
		t.Fatalf("expected handled stale commit, got handled=%v err=%v", handled, err)
	}
	if got := f.ed.Text('@'); got != "abc" {
		t.Fatalf("stale commit changed the text to %q", got)
	}
}

func TestClickCommitsIndex(t *testing.T) {
	f := newFixture("")
	f.typeText(t, "@")
	f.ctrl.HandleKey(KeyDown)
	tok, err := f.ctrl.Click(4)
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if tok != mention.New("5", "Data Wizard") {
		t.Fatalf("unexpected token %+v", tok)
	}
	if got := f.ed.Text('@'); got != "@Data Wizard " {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestClickOutOfRange(t *testing.T) {
	f := newFixture("")
	f.typeText(t, "@sm")
	if _, err := f.ctrl.Click(3); !errors.Is(err, suggest.ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v", err)
	}
}

func TestBackspaceAfterTokenRemovesIt(t *testing.T) {
	f := newFixture("Hey ")
	f.typeText(t, "@sm")
	f.ctrl.HandleKey(KeyEnter)
	f.sync()

	if !f.ctrl.Backspace() {
		t.Fatalf("backspace over the space failed")
	}
	if got := f.ed.Text('@'); got != "Hey @Smart Owl" || f.ed.Sel.Head != 6 {
		t.Fatalf("unexpected state after first backspace: %s", f.ed)
	}
	if !f.ctrl.Backspace() {
		t.Fatalf("backspace over the token failed")
	}
	if got := f.ed.Text('@'); got != "Hey " {
		t.Fatalf("expected token removed whole, got %q", got)
	}
	if f.ed.Sel.Head != 5 || len(f.ed.Doc.Mentions()) != 0 {
		t.Fatalf("unexpected state after token delete: %s", f.ed)
	}
}

func TestDeleteBeforeTokenRemovesIt(t *testing.T) {
	doc := document.FromBlocks(document.Block{Inlines: []document.Inline{
		document.Text{Value: "a"},
		document.NewMention(mention.New("3", "Advanced Yak")),
		document.Text{Value: "b"},
	}})
	ed := testutil.NewEditor(doc, 2)
	ctrl := New(suggest.NewMachine(directory.New(directory.Builtin()), '@'), ed)
	if !ctrl.Delete() {
		t.Fatalf("delete failed")
	}
	if got := ed.Text('@'); got != "ab" || ed.Sel.Head != 2 {
		t.Fatalf("unexpected state %s", ed)
	}
}

func TestBackspaceJoinsBlocks(t *testing.T) {
	ed := testutil.NewEditor(document.New("one", "two"), 6)
	ctrl := New(suggest.NewMachine(nil, '@'), ed)
	if !ctrl.Backspace() {
		t.Fatalf("join failed")
	}
	if len(ed.Doc.Blocks) != 1 || ed.Text('@') != "onetwo" || ed.Sel.Head != 4 {
		t.Fatalf("unexpected state %s", ed)
	}
	ed.Sel = document.Cursor(1)
	if ctrl.Backspace() {
		t.Fatalf("backspace at document start should do nothing")
	}
}

func TestDeleteJoinsBlocks(t *testing.T) {
	ed := testutil.NewEditor(document.New("one", "two"), 4)
	ctrl := New(suggest.NewMachine(nil, '@'), ed)
	if !ctrl.Delete() {
		t.Fatalf("join failed")
	}
	if ed.Text('@') != "onetwo" || ed.Sel.Head != 4 {
		t.Fatalf("unexpected state %s", ed)
	}
	ed.Sel = document.Cursor(7)
	if ctrl.Delete() {
		t.Fatalf("delete at document end should do nothing")
	}
}

func TestBackspaceRemovesRangeSelection(t *testing.T) {
	ed := testutil.NewEditor(document.New("hello world"), 1)
	ed.Sel = document.Selection{Anchor: 12, Head: 6}
	ctrl := New(suggest.NewMachine(nil, '@'), ed)
	if !ctrl.Backspace() {
		t.Fatalf("range delete failed")
	}
	if ed.Text('@') != "hello" || ed.Sel.Head != 6 {
		t.Fatalf("unexpected state %s", ed)
	}
}

func TestTokenDeletionIsTraced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	logging.Configure(path)
	logging.SetTraceEnabled(true)
	t.Cleanup(func() {
		logging.SetTraceEnabled(false)
		logging.Configure("")
	})

	doc := document.FromBlocks(document.Block{Inlines: []document.Inline{
		document.Text{Value: "a"},
		document.NewMention(mention.New("3", "Advanced Yak")),
	}})
	ed := testutil.NewEditor(doc, 3)
	ctrl := New(suggest.NewMachine(nil, '@'), ed)
	if !ctrl.Backspace() || !ctrl.Backspace() {
		t.Fatalf("backspace failed: %s", ed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if n := strings.Count(string(data), `"editor.delete-token"`); n != 1 {
		t.Fatalf("expected one token deletion traced, got %d in %s", n, data)
	}
	if !strings.Contains(string(data), `"Advanced Yak"`) {
		t.Fatalf("trace missing token label: %s", data)
	}
}
