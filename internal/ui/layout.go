package ui

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/popup"
)

// segment is one drawable unit: a rune of text or a whole mention token.
type segment struct {
	text    string
	pos     int
	width   int
	mention bool
}

// stop is a position the cursor can rest on and the column it is drawn at.
type stop struct {
	pos int
	col int
}

type visualLine struct {
	block    int
	segments []segment
	stops    []stop
}

// layout wraps the document into screen lines and remembers where every
// position lands.
type layout struct {
	lines  []visualLine
	coords map[int]popup.Point
}

// layoutDocument wraps blocks at width cells. A width of zero disables
// wrapping. One cell per line is kept free so a cursor at the end of a full
// line stays on screen.
func layoutDocument(doc *document.Document, width int, trigger rune) layout {
	l := layout{coords: make(map[int]popup.Point)}
	limit := width - 1
	for bi, block := range doc.Blocks {
		pos := doc.Start(bi)
		line := visualLine{block: bi}
		col := 0
		place := func(text string, mention bool) {
			w := ansi.StringWidth(text)
			if limit > 0 && col > 0 && col+w > limit {
				l.lines = append(l.lines, line)
				line = visualLine{block: bi}
				col = 0
			}
			l.coords[pos] = popup.Point{X: col, Y: len(l.lines)}
			line.stops = append(line.stops, stop{pos: pos, col: col})
			line.segments = append(line.segments, segment{text: text, pos: pos, width: w, mention: mention})
			col += w
			pos++
		}
		for _, in := range block.Inlines {
			switch v := in.(type) {
			case document.Text:
				for _, r := range v.Value {
					place(string(r), false)
				}
			case document.Mention:
				place(v.Token.Text(trigger), true)
			}
		}
		l.coords[pos] = popup.Point{X: col, Y: len(l.lines)}
		line.stops = append(line.stops, stop{pos: pos, col: col})
		l.lines = append(l.lines, line)
	}
	return l
}

// lineOf returns the line index holding pos.
func (l layout) lineOf(pos int) (int, bool) {
	pt, ok := l.coords[pos]
	return pt.Y, ok
}

// nearest returns the position on line closest to col without passing it.
func (l layout) nearest(line, col int) (int, bool) {
	if line < 0 || line >= len(l.lines) {
		return 0, false
	}
	stops := l.lines[line].stops
	if len(stops) == 0 {
		return 0, false
	}
	best := stops[0].pos
	for _, s := range stops {
		if s.col > col {
			break
		}
		best = s.pos
	}
	return best, true
}
