package events

import "github.com/atomicstack/mention-popup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Export(format string, size, mentions int, changed bool) {
	logging.Trace("app.export", map[string]interface{}{"format": format, "bytes": size, "mentions": mentions, "changed": changed})
}
