package directory

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
)

// MatchMode selects how a query is compared with labels.
type MatchMode string

const (
	// MatchSubstring is case-insensitive substring containment.
	MatchSubstring MatchMode = "substring"
	// MatchFuzzy accepts labels containing the query's characters in order.
	MatchFuzzy MatchMode = "fuzzy"
)

// ParseMatchMode validates a mode name. Empty selects substring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchFuzzy:
		return MatchFuzzy, nil
	}
	return "", fmt.Errorf("unknown match mode %q", s)
}

// Filter returns the identities whose label contains query, ignoring case,
// in directory order and capped at limit. An empty query matches everything.
func Filter(entries []Identity, query string, limit int) []Identity {
	fold := cases.Fold()
	needle := fold.String(query)
	return collect(entries, limit, func(id Identity) bool {
		return strings.Contains(fold.String(id.Label), needle)
	})
}

// FilterFuzzy is Filter with subsequence matching and Unicode normalisation.
func FilterFuzzy(entries []Identity, query string, limit int) []Identity {
	return collect(entries, limit, func(id Identity) bool {
		return fuzzy.MatchNormalizedFold(query, id.Label)
	})
}

func collect(entries []Identity, limit int, match func(Identity) bool) []Identity {
	if limit <= 0 {
		limit = MaxCandidates
	}
	out := make([]Identity, 0, limit)
	for _, id := range entries {
		if len(out) == limit {
			break
		}
		if match(id) {
			out = append(out, id)
		}
	}
	return out
}
