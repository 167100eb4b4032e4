package popup

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/logging/events"
	"github.com/atomicstack/mention-popup/internal/suggest"
	"github.com/atomicstack/mention-popup/internal/theme"
)

// Handle is the popup currently on screen.
type Handle struct {
	Origin   Point
	Anchored bool
	Range    document.Range
	View     string
	Width    int
	Height   int
	Rows     int

	// RowsTop is the first row line relative to Origin.
	RowsTop int
}

// RowAt maps a screen cell onto a row index.
func (h *Handle) RowAt(x, y int) (int, bool) {
	if h == nil {
		return 0, false
	}
	if x < h.Origin.X || x >= h.Origin.X+h.Width {
		return 0, false
	}
	row := y - h.Origin.Y - h.RowsTop
	if row < 0 || row >= h.Rows {
		return 0, false
	}
	return row, true
}

// Manager owns at most one popup and keeps it in step with the suggestion
// state.
type Manager struct {
	positioner Positioner
	renderer   Renderer
	handle     *Handle
}

// NewManager returns a manager with nothing on screen.
func NewManager(positioner Positioner, renderer Renderer) *Manager {
	return &Manager{positioner: positioner, renderer: renderer}
}

// Sync creates, rebuilds or removes the popup for st. It returns the popup
// on screen afterwards, or nil.
func (m *Manager) Sync(st suggest.State, lookup Lookup, styles *theme.Styles) *Handle {
	if !st.HasCandidates() {
		m.Close()
		return nil
	}
	if styles == nil {
		styles = theme.Default()
	}
	view := m.renderer.Render(st, styles)
	origin, anchored := m.positioner.Place(st.Range.From, lookup)
	opened := m.handle == nil
	m.handle = &Handle{
		Origin:   origin,
		Anchored: anchored,
		Range:    st.Range,
		View:     view,
		Width:    lipgloss.Width(view),
		Height:   lipgloss.Height(view),
		Rows:     len(st.Candidates),
		RowsTop:  styles.Popup.GetBorderTopSize() + styles.Popup.GetPaddingTop(),
	}
	if opened {
		events.Popup.Open(origin.X, origin.Y, len(st.Candidates))
	}
	return m.handle
}

// Handle returns the popup on screen, or nil.
func (m *Manager) Handle() *Handle {
	return m.handle
}

// Open reports whether a popup is on screen.
func (m *Manager) Open() bool {
	return m.handle != nil
}

// Close removes the popup. It is safe to call at any time.
func (m *Manager) Close() {
	if m.handle == nil {
		return
	}
	m.handle = nil
	events.Popup.Close()
}

// HitTest returns the row under a mouse event. Zone marks are consulted
// first; the popup geometry is used when zones are unavailable or not yet
// scanned.
func (m *Manager) HitTest(msg tea.MouseMsg) (int, bool) {
	if m.handle == nil {
		return 0, false
	}
	if zones := m.renderer.Zones; zones != nil {
		for i := 0; i < m.handle.Rows; i++ {
			if zones.Get(m.renderer.RowID(i)).InBounds(msg) {
				return i, true
			}
		}
	}
	return m.handle.RowAt(msg.X, msg.Y)
}
