package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/logging"
	"github.com/atomicstack/mention-popup/internal/logging/events"
	"github.com/atomicstack/mention-popup/internal/suggest"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return m.quit()
	}
	if key.Matches(keyMsg, m.keys.Theme) {
		m.dark = !m.dark
		events.Editor.Theme(m.dark)
		return nil
	}

	if handled, err := m.ctrl.HandleKey(m.keys.controllerKey(keyMsg)); handled {
		m.reportCommit(err)
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Dismiss):
		if m.Suggestion().Active() {
			m.machine.Dismiss()
			return nil
		}
		return m.quit()
	case key.Matches(keyMsg, m.keys.Accept):
		m.splitBlock()
	case key.Matches(keyMsg, m.keys.Backspace):
		m.ctrl.Backspace()
	case key.Matches(keyMsg, m.keys.Delete):
		m.ctrl.Delete()
	case key.Matches(keyMsg, m.keys.Left):
		m.moveHorizontal(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveHorizontal(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.moveVertical(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveVertical(1)
	case key.Matches(keyMsg, m.keys.Home):
		m.moveToBlockEdge(false)
	case key.Matches(keyMsg, m.keys.End):
		m.moveToBlockEdge(true)
	case keyMsg.Type == tea.KeySpace:
		m.insertText(" ")
	case keyMsg.Type == tea.KeyRunes:
		m.insertText(string(keyMsg.Runes))
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.popups.Close()
	return tea.Quit
}

func (m *Model) reportCommit(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	if errors.Is(err, suggest.ErrStaleRange) {
		logging.Warn("mention commit discarded", "err", err)
		m.setInfo("mention discarded: text changed")
		return
	}
	logging.Error(err)
	m.errMsg = err.Error()
}

// insertText replaces a range selection or inserts at the cursor.
func (m *Model) insertText(text string) {
	if text == "" {
		return
	}
	r := m.sel.Range()
	t := document.Text{Value: text}
	if err := m.Replace(r, []document.Inline{t}, r.From+t.Size()); err != nil {
		logging.Error(err)
	}
}

func (m *Model) splitBlock() {
	if !m.sel.Empty() {
		r := m.sel.Range()
		if err := m.Replace(r, nil, r.From); err != nil {
			logging.Error(err)
			return
		}
	}
	next, err := m.doc.SplitBlock(m.sel.Head)
	if err != nil {
		logging.Error(err)
		return
	}
	m.rev++
	m.sel = document.Cursor(next)
}

func (m *Model) moveHorizontal(delta int) {
	pos := m.sel.Head
	res, err := m.doc.Resolve(pos)
	if err != nil {
		return
	}
	size := m.doc.Blocks[res.Block].Size()
	switch {
	case delta < 0 && res.Offset == 0:
		if res.Block == 0 {
			return
		}
		pos -= 2
	case delta > 0 && res.Offset == size:
		if res.Block == len(m.doc.Blocks)-1 {
			return
		}
		pos += 2
	default:
		pos += delta
	}
	m.sel = document.Cursor(pos)
}

func (m *Model) moveVertical(delta int) {
	l := m.layout()
	pt, ok := l.coords[m.sel.Head]
	if !ok {
		return
	}
	if pos, ok := l.nearest(pt.Y+delta, pt.X); ok {
		m.sel = document.Cursor(pos)
	}
}

func (m *Model) moveToBlockEdge(end bool) {
	res, err := m.doc.Resolve(m.sel.Head)
	if err != nil {
		return
	}
	pos := m.doc.Start(res.Block)
	if end {
		pos += m.doc.Blocks[res.Block].Size()
	}
	m.sel = document.Cursor(pos)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if mouse.Action != tea.MouseActionRelease {
		return nil
	}
	// X10 reporting does not say which button was released.
	if mouse.Button != tea.MouseButtonLeft && mouse.Button != tea.MouseButtonNone {
		return nil
	}
	if row, ok := m.popups.HitTest(mouse); ok {
		_, err := m.ctrl.Click(row)
		m.reportCommit(err)
		return nil
	}
	m.placeCursorAt(mouse.X, mouse.Y)
	return nil
}

func (m *Model) placeCursorAt(x, y int) {
	line := y
	if m.bodyHeight() > 0 {
		line += m.viewport.Offset
	}
	if pos, ok := m.layout().nearest(line, x); ok {
		m.sel = document.Cursor(pos)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.help.Width = m.width
	return nil
}
