// Package testutil holds fixtures shared by the engine tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/atomicstack/mention-popup/internal/document"
)

// Editor is an in-memory editor surface: a document, a selection and a
// record of the edits applied through Replace.
type Editor struct {
	Doc   *document.Document
	Sel   document.Selection
	Edits []document.Range

	// FailReplace makes the next Replace fail without touching the document.
	FailReplace error
}

// NewEditor returns an editor over doc with the cursor at pos.
func NewEditor(doc *document.Document, pos int) *Editor {
	return &Editor{Doc: doc, Sel: document.Cursor(pos)}
}

// Typed builds a single-paragraph editor with the cursor after text, as if
// the user had just typed it.
func Typed(text string) *Editor {
	doc := document.New(text)
	return NewEditor(doc, doc.Start(0)+doc.Blocks[0].Size())
}

func (e *Editor) Document() *document.Document { return e.Doc }

func (e *Editor) Selection() document.Selection { return e.Sel }

// Replace applies the edit and moves the cursor.
func (e *Editor) Replace(r document.Range, content []document.Inline, cursor int) error {
	if err := e.FailReplace; err != nil {
		e.FailReplace = nil
		return err
	}
	if err := e.Doc.Replace(r.From, r.To, content...); err != nil {
		return err
	}
	e.Edits = append(e.Edits, r)
	e.Sel = document.Cursor(cursor)
	return nil
}

// Type inserts text at the cursor.
func (e *Editor) Type(t *testing.T, text string) {
	t.Helper()
	next, err := e.Doc.InsertText(e.Sel.Head, text)
	if err != nil {
		t.Fatalf("type %q at %d: %v", text, e.Sel.Head, err)
	}
	e.Sel = document.Cursor(next)
}

// Text flattens the document with the given trigger.
func (e *Editor) Text(trigger rune) string {
	return e.Doc.PlainText(trigger)
}

// String describes the editor state for failure messages.
func (e *Editor) String() string {
	return fmt.Sprintf("%q cursor=%d", e.Doc.PlainText('@'), e.Sel.Head)
}
