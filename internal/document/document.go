package document

import (
	"fmt"
	"strings"
)

// Block is a text block (paragraph).
type Block struct {
	Inlines []Inline
}

// Size is the number of content positions in the block.
func (b Block) Size() int {
	return inlinesSize(b.Inlines)
}

// Text flattens the block, writing mentions through render. A nil render
// writes ObjectReplacement for each token.
func (b Block) Text(render func(Mention) string) string {
	var sb strings.Builder
	for _, in := range b.Inlines {
		switch v := in.(type) {
		case Text:
			sb.WriteString(v.Value)
		case Mention:
			if render == nil {
				sb.WriteRune(ObjectReplacement)
			} else {
				sb.WriteString(render(v))
			}
		}
	}
	return sb.String()
}

// Document is the editable content: always at least one block.
type Document struct {
	Blocks []Block
}

// New returns a document with one block per paragraph of plain text.
func New(paragraphs ...string) *Document {
	d := &Document{}
	for _, p := range paragraphs {
		d.Blocks = append(d.Blocks, Block{Inlines: normalize([]Inline{Text{Value: p}})})
	}
	if len(d.Blocks) == 0 {
		d.Blocks = []Block{{}}
	}
	return d
}

// FromBlocks builds a document from prepared content.
func FromBlocks(blocks ...Block) *Document {
	d := &Document{Blocks: make([]Block, 0, len(blocks))}
	for _, b := range blocks {
		d.Blocks = append(d.Blocks, Block{Inlines: normalize(b.Inlines)})
	}
	if len(d.Blocks) == 0 {
		d.Blocks = []Block{{}}
	}
	return d
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	dup := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		dup.Blocks[i] = Block{Inlines: append([]Inline(nil), b.Inlines...)}
	}
	return dup
}

// Size is the total number of positions.
func (d *Document) Size() int {
	n := 0
	for _, b := range d.Blocks {
		n += b.Size() + 2
	}
	return n
}

// Start returns the first content position of block i.
func (d *Document) Start(i int) int {
	pos := 0
	for j := 0; j < i && j < len(d.Blocks); j++ {
		pos += d.Blocks[j].Size() + 2
	}
	return pos + 1
}

// End returns the last content position of the document.
func (d *Document) End() int {
	last := len(d.Blocks) - 1
	return d.Start(last) + d.Blocks[last].Size()
}

// Resolved locates a position inside block content.
type Resolved struct {
	Pos    int
	Block  int
	Offset int
}

// Resolve maps a position onto block content.
func (d *Document) Resolve(pos int) (Resolved, error) {
	start := 1
	for i, b := range d.Blocks {
		size := b.Size()
		if pos >= start && pos <= start+size {
			return Resolved{Pos: pos, Block: i, Offset: pos - start}, nil
		}
		start += size + 2
	}
	return Resolved{}, fmt.Errorf("resolve %d: %w", pos, ErrOutOfRange)
}

// Slice returns the content between two positions of the same block.
func (d *Document) Slice(from, to int) ([]Inline, error) {
	if to < from {
		return nil, fmt.Errorf("slice %s: %w", Range{From: from, To: to}, ErrRangeInvalid)
	}
	rf, err := d.Resolve(from)
	if err != nil {
		return nil, err
	}
	rt, err := d.Resolve(to)
	if err != nil {
		return nil, err
	}
	if rf.Block != rt.Block {
		return nil, fmt.Errorf("slice %s: %w", Range{From: from, To: to}, ErrCrossBlock)
	}
	_, right := splitInlines(d.Blocks[rf.Block].Inlines, rf.Offset)
	mid, _ := splitInlines(right, rt.Offset-rf.Offset)
	return normalize(mid), nil
}

// TextBetween flattens the content between two positions of one block.
func (d *Document) TextBetween(from, to int) (string, error) {
	inlines, err := d.Slice(from, to)
	if err != nil {
		return "", err
	}
	return Block{Inlines: inlines}.Text(nil), nil
}

// InlineBefore returns the inline content ending at pos, narrowed to a single
// rune for text. ok is false at a block start.
func (d *Document) InlineBefore(pos int) (Inline, bool) {
	r, err := d.Resolve(pos)
	if err != nil || r.Offset == 0 {
		return nil, false
	}
	inlines, err := d.Slice(pos-1, pos)
	if err != nil || len(inlines) != 1 {
		return nil, false
	}
	return inlines[0], true
}

// Mentions lists every token in document order.
func (d *Document) Mentions() []Mention {
	var out []Mention
	for _, b := range d.Blocks {
		for _, in := range b.Inlines {
			if m, ok := in.(Mention); ok {
				out = append(out, m)
			}
		}
	}
	return out
}

// Equal compares content, ignoring mention instance keys.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range d.Blocks {
		a, b := d.Blocks[i].Inlines, other.Blocks[i].Inlines
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if !inlineEqual(a[j], b[j]) {
				return false
			}
		}
	}
	return true
}

func inlineEqual(a, b Inline) bool {
	switch av := a.(type) {
	case Text:
		bv, ok := b.(Text)
		return ok && av.Value == bv.Value
	case Mention:
		bv, ok := b.(Mention)
		return ok && av.Token == bv.Token
	}
	return false
}
