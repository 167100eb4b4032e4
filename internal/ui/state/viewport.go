// Package state holds scroll state for the editor body.
package state

// Viewport is a window of visible lines over a longer list.
type Viewport struct {
	Offset int
}

// EnsureVisible adjusts the offset so line stays inside a window of
// maxVisible lines over total lines.
func (v *Viewport) EnsureVisible(line, maxVisible, total int) {
	if total <= 0 || maxVisible <= 0 {
		v.Offset = 0
		return
	}
	if line < 0 {
		line = 0
	}
	if line >= total {
		line = total - 1
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if line < v.Offset {
		v.Offset = line
	}
	upper := v.Offset + maxVisible - 1
	if line > upper {
		v.Offset = line - maxVisible + 1
		if v.Offset < 0 {
			v.Offset = 0
		}
		if v.Offset > maxOffset {
			v.Offset = maxOffset
		}
	}
}

// Visible reports whether line is inside the window.
func (v Viewport) Visible(line, maxVisible int) bool {
	if maxVisible <= 0 {
		return line >= 0
	}
	return line >= v.Offset && line < v.Offset+maxVisible
}

// Window returns the half-open line span to draw.
func (v Viewport) Window(maxVisible, total int) (start, end int) {
	if maxVisible <= 0 || total <= maxVisible {
		return 0, total
	}
	start = v.Offset
	if start < 0 {
		start = 0
	}
	if start+maxVisible > total {
		start = total - maxVisible
	}
	return start, start + maxVisible
}
