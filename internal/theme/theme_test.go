package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestForModeSelectsStyleSet(t *testing.T) {
	if ForMode(false) != Default() {
		t.Fatalf("light mode should return the default styles")
	}
	if ForMode(true) == ForMode(false) {
		t.Fatalf("dark and light modes should differ")
	}
	if ForMode(true) != ForMode(true) {
		t.Fatalf("dark styles should be shared")
	}
}

func TestStylesPopulated(t *testing.T) {
	for _, dark := range []bool{false, true} {
		s := ForMode(dark)
		for name, style := range map[string]*lipgloss.Style{
			"text":     s.Text,
			"mention":  s.Mention,
			"cursor":   s.Cursor,
			"popup":    s.Popup,
			"item":     s.Item,
			"selected": s.SelectedItem,
			"avatar":   s.Avatar,
			"footer":   s.Footer,
		} {
			if style == nil {
				t.Fatalf("dark=%v: %s style missing", dark, name)
			}
		}
	}
}
