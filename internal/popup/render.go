package popup

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"

	"github.com/atomicstack/mention-popup/internal/format/table"
	"github.com/atomicstack/mention-popup/internal/suggest"
	"github.com/atomicstack/mention-popup/internal/theme"
)

const (
	// DefaultLabelWidth caps label cells in the list.
	DefaultLabelWidth = 24

	selectedIndicator = "›"
	ellipsis          = "…"
)

// Renderer turns a suggestion state into the popup body.
type Renderer struct {
	LabelWidth int
	Zones      *zone.Manager
	zonePrefix string
}

// NewRenderer returns a renderer. zones may be nil, in which case rows are
// not marked for pointer hit testing.
func NewRenderer(labelWidth int, zones *zone.Manager) Renderer {
	if labelWidth <= 0 {
		labelWidth = DefaultLabelWidth
	}
	prefix := "mention-row-"
	if zones != nil {
		prefix = zones.NewPrefix()
	}
	return Renderer{LabelWidth: labelWidth, Zones: zones, zonePrefix: prefix}
}

// RowID is the zone id of row i.
func (r Renderer) RowID(i int) string {
	return r.zonePrefix + strconv.Itoa(i)
}

// Avatar is the glyph shown before a label: its first grapheme, upper-cased.
func Avatar(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "?"
	}
	first, _, _, _ := uniseg.FirstGraphemeClusterInString(label, -1)
	return strings.ToUpper(first)
}

// Rows returns the aligned, unstyled row texts for st.
func (r Renderer) Rows(st suggest.State) []string {
	if !st.HasCandidates() {
		return nil
	}
	cells := make([][]string, len(st.Candidates))
	for i, c := range st.Candidates {
		indicator := " "
		if i == st.Selected {
			indicator = selectedIndicator
		}
		cells[i] = []string{indicator, Avatar(c.Label), r.label(c.Label)}
	}
	return table.Format(cells, nil, " ")
}

// Render draws the boxed candidate list, or "" when there is nothing to
// show.
func (r Renderer) Render(st suggest.State, styles *theme.Styles) string {
	if !st.HasCandidates() {
		return ""
	}
	if styles == nil {
		styles = theme.Default()
	}
	cells := make([][]string, len(st.Candidates))
	for i, c := range st.Candidates {
		indicator := styles.ItemIndicator.Render(" ")
		itemStyle := styles.Item
		if i == st.Selected {
			indicator = styles.ItemIndicator.Render(selectedIndicator)
			itemStyle = styles.SelectedItem
		}
		cells[i] = []string{indicator, styles.Avatar.Render(Avatar(c.Label)), itemStyle.Render(r.label(c.Label))}
	}
	lines := table.Format(cells, nil, "")
	if r.Zones != nil {
		for i := range lines {
			lines[i] = r.Zones.Mark(r.RowID(i), lines[i])
		}
	}
	return styles.Popup.Render(strings.Join(lines, "\n"))
}

func (r Renderer) label(label string) string {
	if r.LabelWidth <= 0 || lipgloss.Width(label) <= r.LabelWidth {
		return label
	}
	return truncate.StringWithTail(label, uint(r.LabelWidth), ellipsis)
}
