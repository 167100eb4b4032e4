// Package directory holds the identities eligible for mention and the
// candidate filter run against them.
package directory

// MaxCandidates is the default cap on filtered results.
const MaxCandidates = 5

// Identity is a directory entry. IDs are opaque and assumed unique.
type Identity struct {
	ID    string `toml:"id" json:"id"`
	Label string `toml:"label" json:"label"`
}

// Directory is an ordered, read-only list of identities plus the matching
// rules applied to it.
type Directory struct {
	entries []Identity
	mode    MatchMode
	limit   int
}

// Option configures a Directory.
type Option func(*Directory)

// WithMatchMode selects substring or fuzzy matching.
func WithMatchMode(mode MatchMode) Option {
	return func(d *Directory) { d.mode = mode }
}

// WithLimit overrides the candidate cap. Values below 1 keep the default.
func WithLimit(limit int) Option {
	return func(d *Directory) {
		if limit > 0 {
			d.limit = limit
		}
	}
}

// New returns a directory over a copy of entries.
func New(entries []Identity, opts ...Option) *Directory {
	d := &Directory{
		entries: cloneIdentities(entries),
		mode:    MatchSubstring,
		limit:   MaxCandidates,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Entries returns a copy of the identities in directory order.
func (d *Directory) Entries() []Identity {
	return cloneIdentities(d.entries)
}

// Len reports the number of identities.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Limit reports the candidate cap.
func (d *Directory) Limit() int {
	return d.limit
}

// Mode reports the match mode.
func (d *Directory) Mode() MatchMode {
	return d.mode
}

// WithEntries returns a directory with the same rules over new entries.
func (d *Directory) WithEntries(entries []Identity) *Directory {
	return New(entries, WithMatchMode(d.mode), WithLimit(d.limit))
}

// Candidates filters the directory against query.
func (d *Directory) Candidates(query string) []Identity {
	if d == nil {
		return nil
	}
	if d.mode == MatchFuzzy {
		return FilterFuzzy(d.entries, query, d.limit)
	}
	return Filter(d.entries, query, d.limit)
}

// Builtin is the directory shipped with the composer when no file is given.
func Builtin() []Identity {
	return []Identity{
		{ID: "1", Label: "Total Walrus"},
		{ID: "2", Label: "Smart Owl"},
		{ID: "3", Label: "Advanced Yak"},
		{ID: "4", Label: "Code Ninja"},
		{ID: "5", Label: "Data Wizard"},
	}
}

func cloneIdentities(entries []Identity) []Identity {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Identity, len(entries))
	copy(dup, entries)
	return dup
}
