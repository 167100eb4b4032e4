package events

import "github.com/atomicstack/mention-popup/internal/logging"

type EditorTracer struct{}

type PopupTracer struct{}

type DirectoryTracer struct{}

var (
	Editor    = EditorTracer{}
	Popup     = PopupTracer{}
	Directory = DirectoryTracer{}
)

func (EditorTracer) Key(key string, handled bool) {
	logging.Trace("editor.key", map[string]interface{}{"key": key, "handled": handled})
}

func (EditorTracer) DeleteToken(id, label string) {
	logging.Trace("editor.delete-token", map[string]interface{}{"id": id, "label": label})
}

func (EditorTracer) Theme(dark bool) {
	logging.Trace("editor.theme", map[string]interface{}{"dark": dark})
}

func (PopupTracer) Open(x, y, rows int) {
	logging.Trace("popup.open", map[string]interface{}{"x": x, "y": y, "rows": rows})
}

func (PopupTracer) Close() {
	logging.Trace("popup.close", nil)
}

func (PopupTracer) Fallback(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("popup.fallback", payload)
}

func (PopupTracer) Click(index int) {
	logging.Trace("popup.click", map[string]interface{}{"index": index})
}

func (DirectoryTracer) Load(path string, entries int, mode string, limit int) {
	logging.Trace("directory.load", map[string]interface{}{"path": path, "entries": entries, "match": mode, "limit": limit})
}

func (DirectoryTracer) Reload(path string, entries int, err error) {
	payload := map[string]interface{}{"path": path, "entries": entries}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("directory.reload", payload)
}
