// Package popup renders the candidate list and decides where it goes on
// screen.
package popup

import (
	"errors"

	"github.com/atomicstack/mention-popup/internal/logging/events"
)

// ErrNotRendered is returned by a Lookup for positions that are not on
// screen.
var ErrNotRendered = errors.New("position is not rendered")

// Point is a terminal cell, zero-based from the top-left corner.
type Point struct {
	X int
	Y int
}

// Lookup maps a document position to the cell at its left edge.
type Lookup func(pos int) (Point, error)

// Positioner anchors the popup below the trigger character.
type Positioner struct {
	OffsetX  int
	OffsetY  int
	Fallback Point
}

// DefaultPositioner places the popup on the line below the anchor and falls
// back to a fixed spot near the top-left corner.
func DefaultPositioner() Positioner {
	return Positioner{OffsetY: 1, Fallback: Point{X: 2, Y: 2}}
}

// Place returns the popup origin for anchor. A failed lookup is not an
// error: the fallback point is used and anchored is false.
func (p Positioner) Place(anchor int, lookup Lookup) (origin Point, anchored bool) {
	if lookup == nil {
		events.Popup.Fallback(ErrNotRendered)
		return p.Fallback, false
	}
	pt, err := lookup(anchor)
	if err != nil {
		events.Popup.Fallback(err)
		return p.Fallback, false
	}
	return Point{X: pt.X + p.OffsetX, Y: pt.Y + p.OffsetY}, true
}
