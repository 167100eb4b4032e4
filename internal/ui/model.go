package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/atomicstack/mention-popup/internal/controller"
	"github.com/atomicstack/mention-popup/internal/directory"
	"github.com/atomicstack/mention-popup/internal/document"
	"github.com/atomicstack/mention-popup/internal/mention"
	"github.com/atomicstack/mention-popup/internal/popup"
	"github.com/atomicstack/mention-popup/internal/suggest"
	"github.com/atomicstack/mention-popup/internal/theme"
	uistate "github.com/atomicstack/mention-popup/internal/ui/state"
)

const infoTTL = 3 * time.Second

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Document   *document.Document
	Directory  *directory.Directory
	Watcher    *directory.Watcher
	Trigger    rune
	Dark       bool
	Width      int
	Height     int
	Positioner popup.Positioner
	LabelWidth int
	Zones      *zone.Manager
}

// Model is the editor surface: it owns the document, the cursor and the
// theme flag, and runs the mention engine after every message.
type Model struct {
	doc     *document.Document
	sel     document.Selection
	trigger rune
	dark    bool

	// rev counts document edits; syncedRev and syncedSel are what the
	// suggestion machine last saw.
	rev       int
	syncedRev int
	syncedSel document.Selection

	dir     *directory.Directory
	watcher *directory.Watcher
	machine *suggest.Machine
	ctrl    *controller.Controller
	popups  *popup.Manager
	zones   *zone.Manager

	keys     keyMap
	help     help.Model
	viewport uistate.Viewport

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	quitting   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the editor with the cursor at the end of the document.
// The model edits its own copy of opts.Document.
func NewModel(opts Options) *Model {
	doc := document.New()
	if opts.Document != nil {
		doc = opts.Document.Clone()
	}
	dir := opts.Directory
	if dir == nil {
		dir = directory.New(directory.Builtin())
	}
	trigger := opts.Trigger
	if trigger == 0 {
		trigger = mention.DefaultTrigger
	}
	positioner := opts.Positioner
	if positioner == (popup.Positioner{}) {
		positioner = popup.DefaultPositioner()
	}
	m := &Model{
		doc:       doc,
		sel:       document.Cursor(doc.End()),
		trigger:   trigger,
		dark:      opts.Dark,
		dir:       dir,
		watcher:   opts.Watcher,
		machine:   suggest.NewMachine(dir, trigger),
		popups:    popup.NewManager(positioner, popup.NewRenderer(opts.LabelWidth, opts.Zones)),
		zones:     opts.Zones,
		keys:      defaultKeyMap(),
		help:      help.New(),
		syncedRev: -1,
	}
	m.ctrl = controller.New(m.machine, m)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	m.syncEngine()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForDirectoryEvent(m.watcher)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(directoryEventMsg{}): m.handleDirectoryEventMsg,
		reflect.TypeOf(directoryDoneMsg{}):  m.handleDirectoryDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate runs the engine once the message has been applied, so the
// suggestion state and popup always reflect the final document and cursor.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncEngine()
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.clearInfo()
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) syncEngine() {
	docChanged := m.rev != m.syncedRev
	if docChanged || m.sel != m.syncedSel {
		m.machine.Update(m.doc, m.sel, docChanged)
		m.syncedRev = m.rev
		m.syncedSel = m.sel
	}
	m.ensureCursorVisible()
	m.popups.Sync(m.machine.State(), m.CoordsAtPos, theme.ForMode(m.dark))
}

// Document is part of the suggest.Editor interface.
func (m *Model) Document() *document.Document {
	return m.doc
}

// Selection is part of the suggest.Editor interface.
func (m *Model) Selection() document.Selection {
	return m.sel
}

// Replace is part of the suggest.Editor interface.
func (m *Model) Replace(r document.Range, content []document.Inline, cursor int) error {
	if err := m.doc.Replace(r.From, r.To, content...); err != nil {
		return err
	}
	m.rev++
	m.sel = document.Cursor(cursor)
	return nil
}

// CoordsAtPos maps a position to the screen cell it is drawn at. Positions
// scrolled out of view fail with popup.ErrNotRendered.
func (m *Model) CoordsAtPos(pos int) (popup.Point, error) {
	l := m.layout()
	pt, ok := l.coords[pos]
	if !ok {
		return popup.Point{}, popup.ErrNotRendered
	}
	visible := m.bodyHeight()
	if !m.viewport.Visible(pt.Y, visible) {
		return popup.Point{}, popup.ErrNotRendered
	}
	if visible > 0 {
		pt.Y -= m.viewport.Offset
	}
	return pt, nil
}

// Suggestion returns the current suggestion state.
func (m *Model) Suggestion() suggest.State {
	return m.machine.State()
}

// Popup returns the popup on screen, or nil.
func (m *Model) Popup() *popup.Handle {
	return m.popups.Handle()
}

// Dark reports the theme flag.
func (m *Model) Dark() bool {
	return m.dark
}

// Trigger returns the trigger character.
func (m *Model) Trigger() rune {
	return m.trigger
}

// Close releases the popup. The host defers it.
func (m *Model) Close() {
	m.popups.Close()
}

func (m *Model) layout() layout {
	return layoutDocument(m.doc, m.width, m.trigger)
}

// bodyHeight is the number of document lines on screen, or zero when the
// height is unknown.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) ensureCursorVisible() {
	visible := m.bodyHeight()
	if visible <= 0 {
		m.viewport.Offset = 0
		return
	}
	l := m.layout()
	line, ok := l.lineOf(m.sel.Head)
	if !ok {
		return
	}
	m.viewport.EnsureVisible(line, visible, len(l.lines))
}

func (m *Model) setInfo(msg string) {
	m.infoMsg = msg
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) clearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}
