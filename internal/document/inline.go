package document

import (
	"unicode/utf8"

	"github.com/atomicstack/mention-popup/internal/mention"
	"github.com/google/uuid"
)

// ObjectReplacement stands in for a mention token in flattened text.
const ObjectReplacement = '\uFFFC'

// Inline is one piece of block content. The set of variants is closed to
// this package.
type Inline interface {
	// Size is the number of positions the inline occupies.
	Size() int
	isInline()
}

// Text is a run of plain characters.
type Text struct {
	Value string
}

// Size implements Inline.
func (t Text) Size() int { return utf8.RuneCountInString(t.Value) }

func (Text) isInline() {}

// Mention is an embedded mention token. Key distinguishes independent
// instances carrying the same token.
type Mention struct {
	Key   string
	Token mention.Token
}

// NewMention wraps a token in a freshly keyed inline.
func NewMention(tok mention.Token) Mention {
	return Mention{Key: uuid.NewString(), Token: tok}
}

// Size implements Inline; tokens are atoms.
func (Mention) Size() int { return 1 }

func (Mention) isInline() {}

func inlinesSize(inlines []Inline) int {
	n := 0
	for _, in := range inlines {
		n += in.Size()
	}
	return n
}

// splitInlines cuts content at offset. Offsets never land inside a mention.
func splitInlines(inlines []Inline, offset int) (left, right []Inline) {
	left = make([]Inline, 0, len(inlines))
	right = make([]Inline, 0, len(inlines))
	pos := 0
	for _, in := range inlines {
		size := in.Size()
		switch {
		case pos+size <= offset:
			left = append(left, in)
		case pos >= offset:
			right = append(right, in)
		default:
			// only text can straddle the cut
			runes := []rune(in.(Text).Value)
			cut := offset - pos
			left = append(left, Text{Value: string(runes[:cut])})
			right = append(right, Text{Value: string(runes[cut:])})
		}
		pos += size
	}
	return left, right
}

// normalize merges adjacent text runs and drops empty ones.
func normalize(inlines []Inline) []Inline {
	out := make([]Inline, 0, len(inlines))
	for _, in := range inlines {
		t, ok := in.(Text)
		if ok && t.Value == "" {
			continue
		}
		if ok && len(out) > 0 {
			if prev, prevOK := out[len(out)-1].(Text); prevOK {
				out[len(out)-1] = Text{Value: prev.Value + t.Value}
				continue
			}
		}
		out = append(out, in)
	}
	return out
}
