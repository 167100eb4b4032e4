package events

import "github.com/atomicstack/mention-popup/internal/logging"

type SuggestTracer struct{}

type suggestReason string

const (
	SuggestReasonEscape    suggestReason = "escape"
	SuggestReasonNoMatch   suggestReason = "no-match"
	SuggestReasonSelection suggestReason = "selection"
)

var Suggest = SuggestTracer{}

func (SuggestTracer) Activate(query string, from, to, candidates int) {
	logging.Trace("suggest.activate", map[string]interface{}{
		"query":      query,
		"from":       from,
		"to":         to,
		"candidates": candidates,
	})
}

func (SuggestTracer) Deactivate(query string, reason suggestReason) {
	logging.Trace("suggest.deactivate", map[string]interface{}{"query": query, "reason": string(reason)})
}

func (SuggestTracer) Cursor(selected int) {
	logging.Trace("suggest.cursor", map[string]interface{}{"selected": selected})
}

func (SuggestTracer) Commit(id, label string, from, to int) {
	logging.Trace("suggest.commit", map[string]interface{}{
		"id":    id,
		"label": label,
		"from":  from,
		"to":    to,
	})
}

func (SuggestTracer) Abort(query string, err error) {
	payload := map[string]interface{}{"query": query}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("suggest.abort", payload)
}
