package document

import "fmt"

// Range is a half-open span of positions: [From, To).
type Range struct {
	From int
	To   int
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.From, r.To)
}

// Len returns the number of positions covered.
func (r Range) Len() int {
	return r.To - r.From
}

// IsValid returns true if From <= To.
func (r Range) IsValid() bool {
	return r.From <= r.To
}

// Selection is an anchor/head pair. Head is where the cursor is drawn.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// Empty reports whether the selection is collapsed.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// Range returns the ordered span covered by the selection.
func (s Selection) Range() Range {
	if s.Anchor <= s.Head {
		return Range{From: s.Anchor, To: s.Head}
	}
	return Range{From: s.Head, To: s.Anchor}
}
