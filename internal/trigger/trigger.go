// Package trigger decides, after every edit, whether the text behind the
// cursor forms an active mention query.
package trigger

import (
	"unicode"

	"github.com/atomicstack/mention-popup/internal/document"
)

// Match is an active query: Range runs from the trigger character to the
// cursor and Query is the text in between.
type Match struct {
	Range document.Range
	Query string
}

// Detect scans backward from a collapsed cursor inside its block. The scan
// stops at whitespace, at a mention token or at the block start without a
// match, and succeeds at the first trigger character it meets.
func Detect(doc *document.Document, sel document.Selection, trigger rune) (Match, bool) {
	if doc == nil || !sel.Empty() {
		return Match{}, false
	}
	cursor := sel.Head
	r, err := doc.Resolve(cursor)
	if err != nil {
		return Match{}, false
	}
	inlines, err := doc.Slice(doc.Start(r.Block), cursor)
	if err != nil {
		return Match{}, false
	}
	pos := cursor
	for i := len(inlines) - 1; i >= 0; i-- {
		text, ok := inlines[i].(document.Text)
		if !ok {
			return Match{}, false
		}
		runes := []rune(text.Value)
		for j := len(runes) - 1; j >= 0; j-- {
			pos--
			switch {
			case runes[j] == trigger:
				query, err := doc.TextBetween(pos+1, cursor)
				if err != nil {
					return Match{}, false
				}
				return Match{Range: document.Range{From: pos, To: cursor}, Query: query}, true
			case unicode.IsSpace(runes[j]):
				return Match{}, false
			}
		}
	}
	return Match{}, false
}
