package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mention-popup/internal/controller"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Accept    key.Binding
	Complete  key.Binding
	Dismiss   key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Theme     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:     key.NewBinding(key.WithKeys("right", "ctrl+f")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert")),
		Complete:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "insert")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Theme, k.Quit}
}

// PopupHelp lists the bindings shown while the popup is open.
func (k keyMap) PopupHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Accept, k.Dismiss}
}

// FullHelp is part of the help.KeyMap interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.PopupHelp(), k.ShortHelp()}
}

// controllerKey classifies a key press for the suggestion controller.
func (k keyMap) controllerKey(msg tea.KeyMsg) controller.Key {
	switch {
	case key.Matches(msg, k.Up):
		return controller.KeyUp
	case key.Matches(msg, k.Down):
		return controller.KeyDown
	case key.Matches(msg, k.Accept):
		return controller.KeyEnter
	case key.Matches(msg, k.Complete):
		return controller.KeyTab
	case key.Matches(msg, k.Dismiss):
		return controller.KeyEscape
	case key.Matches(msg, k.Backspace):
		return controller.KeyBackspace
	case key.Matches(msg, k.Delete):
		return controller.KeyDelete
	default:
		return controller.KeyOther
	}
}
