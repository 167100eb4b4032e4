package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/mention-popup/internal/popup"
	"github.com/atomicstack/mention-popup/internal/theme"
)

const footerLines = 1

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	styles := theme.ForMode(m.dark)
	l := m.layout()
	visible := m.bodyHeight()
	start, end := m.viewport.Window(visible, len(l.lines))
	body := make([]string, 0, end-start+footerLines)
	for _, line := range l.lines[start:end] {
		body = append(body, m.renderLine(line, styles))
	}
	if h := m.popups.Handle(); h != nil {
		body = overlay(body, h.View, h.Origin)
	}
	if visible > 0 {
		for len(body) < visible {
			body = append(body, "")
		}
		body = body[:visible]
	}
	body = append(body, m.footer(styles))
	view := strings.Join(body, "\n")
	if m.zones != nil {
		view = m.zones.Scan(view)
	}
	return view
}

func (m *Model) renderLine(line visualLine, styles *theme.Styles) string {
	var b strings.Builder
	cursor := m.sel.Head
	drawn := false
	for _, seg := range line.segments {
		style := styles.Text
		if seg.mention {
			style = styles.Mention
		}
		if seg.pos == cursor && m.sel.Empty() {
			b.WriteString(styles.Cursor.Render(seg.text))
			drawn = true
			continue
		}
		b.WriteString(style.Render(seg.text))
	}
	if !drawn && m.sel.Empty() && len(line.stops) > 0 {
		last := line.stops[len(line.stops)-1]
		if last.pos == cursor && (len(line.segments) == 0 || line.segments[len(line.segments)-1].pos != cursor) {
			b.WriteString(styles.Cursor.Render(" "))
		}
	}
	return b.String()
}

func (m *Model) footer(styles *theme.Styles) string {
	switch {
	case m.errMsg != "":
		return styles.Error.Render(m.errMsg)
	case m.infoMsg != "":
		return styles.Info.Render(m.infoMsg)
	case m.popups.Open():
		return styles.Footer.Render(m.help.ShortHelpView(m.keys.PopupHelp()))
	default:
		return styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
}

// overlay draws box over base with its top-left corner at at. Lines are
// added to base when the box reaches past its end.
func overlay(base []string, box string, at popup.Point) []string {
	if box == "" {
		return base
	}
	boxLines := strings.Split(box, "\n")
	for len(base) < at.Y+len(boxLines) {
		base = append(base, "")
	}
	x := at.X
	if x < 0 {
		x = 0
	}
	for i, line := range boxLines {
		y := at.Y + i
		if y < 0 {
			continue
		}
		bg := base[y]
		left := ansi.Truncate(bg, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		if end := x + ansi.StringWidth(line); ansi.StringWidth(bg) > end {
			right = ansi.TruncateLeft(bg, end, "")
		}
		base[y] = left + line + right
	}
	return base
}
