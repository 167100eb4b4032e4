package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/logging"
)

func waitForDirectoryEvent(w *directory.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return directoryDoneMsg{}
		}
		return directoryEventMsg{event: evt}
	}
}

type directoryEventMsg struct {
	event directory.Event
}

type directoryDoneMsg struct{}

func (m *Model) handleDirectoryEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(directoryEventMsg)
	if !ok {
		return nil
	}
	m.applyDirectoryEvent(eventMsg.event)
	if m.watcher != nil {
		return waitForDirectoryEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleDirectoryDoneMsg(msg tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyDirectoryEvent swaps in reloaded identities. A failed reload keeps
// the previous directory.
func (m *Model) applyDirectoryEvent(evt directory.Event) {
	if evt.Err != nil {
		logging.Error(evt.Err)
		m.errMsg = fmt.Sprintf("directory reload failed: %v", evt.Err)
		return
	}
	m.errMsg = ""
	m.dir = m.dir.WithEntries(evt.Entries)
	m.machine.SetProvider(m.dir)
	m.setInfo(fmt.Sprintf("directory reloaded: %d entries", m.dir.Len()))
}
