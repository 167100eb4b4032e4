// Package mention defines the atomic inline token inserted when an author
// commits a suggestion, together with its structured (HTML) and plain-text
// serialized forms.
package mention

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTrigger starts a mention query when no other trigger is configured.
const DefaultTrigger = '@'

// Attribute names and values of the structured form. A host importing saved
// documents recognises a token by TypeAttr=TypeValue on a span element.
const (
	TypeAttr  = "data-type"
	TypeValue = "mention"
	IDAttr    = "data-id"
	LabelAttr = "data-label"
	ClassName = "mention"
)

// Selector matches serialized tokens.
const Selector = `span[data-type="mention"]`

// Token is the identity copied into the document at commit time.
type Token struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// New returns a token for the given identity fields.
func New(id, label string) Token {
	return Token{ID: id, Label: label}
}

// Valid reports whether both attributes are present.
func (t Token) Valid() bool {
	return t.ID != "" && t.Label != ""
}

// Text returns the plain-text fallback: the trigger followed by the label.
func (t Token) Text(trigger rune) string {
	return string(trigger) + t.Label
}

// Node builds the structured form as an HTML span. Empty attributes are left
// out rather than written as empty strings.
func (t Token) Node(trigger rune) *html.Node {
	attrs := []html.Attribute{{Key: TypeAttr, Val: TypeValue}, {Key: "class", Val: ClassName}}
	if t.ID != "" {
		attrs = append(attrs, html.Attribute{Key: IDAttr, Val: t.ID})
	}
	if t.Label != "" {
		attrs = append(attrs, html.Attribute{Key: LabelAttr, Val: t.Label})
	}
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     attrs,
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: t.Text(trigger)})
	return span
}

// Is reports whether the selection is a serialized token.
func Is(sel *goquery.Selection) bool {
	return sel != nil && sel.Is(Selector)
}

// FromSelection reads a token back from its structured form. Missing
// attributes never fail the parse: a missing label is recovered from the
// element text and a missing id is left empty.
func FromSelection(sel *goquery.Selection, trigger rune) Token {
	id, _ := sel.Attr(IDAttr)
	label, ok := sel.Attr(LabelAttr)
	if !ok || label == "" {
		label = strings.TrimPrefix(strings.TrimSpace(sel.Text()), string(trigger))
	}
	return Token{ID: id, Label: label}
}
