// Package controller routes key and pointer input to the suggestion machine
// while a popup is showing, and applies the atomic token deletion rule for
// the host's own deletions.
package controller

import (
	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/logging/events"
	"github.com/atomicstack/mention-popup/internal/mention"
	"github.com/atomicstack/mention-popup/internal/suggest"
)

// Key is an input key as far as suggestion handling is concerned.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
)

var keyNames = map[Key]string{
	KeyOther:     "other",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyEscape:    "escape",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "other"
}

// Controller ties a machine to the editor it commits into.
type Controller struct {
	machine *suggest.Machine
	editor  suggest.Editor
}

// New returns a controller for machine and editor.
func New(machine *suggest.Machine, editor suggest.Editor) *Controller {
	return &Controller{machine: machine, editor: editor}
}

// HandleKey consumes navigation keys while the popup shows candidates.
// handled reports whether the host must skip its default behaviour for the
// key. err carries a failed commit; the key is still consumed.
func (c *Controller) HandleKey(k Key) (handled bool, err error) {
	if !c.machine.State().HasCandidates() {
		return false, nil
	}
	switch k {
	case KeyUp:
		c.machine.Prev()
	case KeyDown:
		c.machine.Next()
	case KeyEnter, KeyTab:
		_, err = c.machine.CommitSelected(c.editor)
	case KeyEscape:
		c.machine.Dismiss()
	default:
		return false, nil
	}
	events.Editor.Key(k.String(), true)
	return true, err
}

// Click commits candidate i regardless of the keyboard selection.
func (c *Controller) Click(i int) (mention.Token, error) {
	events.Popup.Click(i)
	return c.machine.Commit(c.editor, i)
}

// Backspace deletes backward from the cursor. A token directly before the
// cursor is removed whole, a block start joins the previous block, and a
// range selection is removed as a unit.
func (c *Controller) Backspace() bool {
	return c.remove((*document.Document).BackwardRange)
}

// Delete deletes forward from the cursor with the same rules as Backspace.
func (c *Controller) Delete() bool {
	return c.remove((*document.Document).ForwardRange)
}

func (c *Controller) remove(span func(*document.Document, int) (document.Range, bool)) bool {
	sel := c.editor.Selection()
	r := sel.Range()
	if sel.Empty() {
		doc := c.editor.Document()
		var ok bool
		if r, ok = span(doc, sel.Head); !ok {
			return false
		}
		traceToken(doc, r)
	}
	return c.editor.Replace(r, nil, r.From) == nil
}

func traceToken(doc *document.Document, r document.Range) {
	if r.Len() != 1 {
		return
	}
	if in, ok := doc.InlineBefore(r.To); ok {
		if m, ok := in.(document.Mention); ok {
			events.Editor.DeleteToken(m.Token.ID, m.Token.Label)
		}
	}
}
