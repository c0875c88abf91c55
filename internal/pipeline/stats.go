package pipeline

import "time"

// SourceStats counts what happened to one source's postings within one
// language pass. Every fetched posting lands in exactly one of the outcome
// buckets (invalid/irrelevant/stale/duplicate/stored/failed); enriched and
// degraded subdivide stored.
type SourceStats struct {
	Fetched     int
	Invalid     int
	Irrelevant  int
	Stale       int
	Duplicate   int
	Stored      int
	Enriched    int
	Degraded    int
	Failed      int
	FetchFailed bool
}

// LanguageStats aggregates per-source counters for one language pass.
type LanguageStats struct {
	sources map[string]*SourceStats
	order   []string

	// Stored is the number of newly inserted jobs for the language; the
	// import limit is evaluated against it.
	Stored   int
	LimitHit bool
}

// Source returns the counter block for a source, creating it on first use.
func (l *LanguageStats) Source(name string) *SourceStats {
	if s, ok := l.sources[name]; ok {
		return s
	}
	s := &SourceStats{}
	l.sources[name] = s
	l.order = append(l.order, name)
	return s
}

// SourceNames returns source names in first-seen (configuration) order.
func (l *LanguageStats) SourceNames() []string { return l.order }

// RunStats is the full outcome report of one import run.
type RunStats struct {
	languages map[string]*LanguageStats
	order     []string

	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunStats creates an empty stats accumulator.
func NewRunStats() *RunStats {
	return &RunStats{languages: make(map[string]*LanguageStats)}
}

// Language returns the stats block for a language, creating it on first use.
func (r *RunStats) Language(lang string) *LanguageStats {
	if l, ok := r.languages[lang]; ok {
		return l
	}
	l := &LanguageStats{sources: make(map[string]*SourceStats)}
	r.languages[lang] = l
	r.order = append(r.order, lang)
	return l
}

// LanguageNames returns languages in processing order.
func (r *RunStats) LanguageNames() []string { return r.order }

// Totals sums every source block across all languages.
func (r *RunStats) Totals() SourceStats {
	var t SourceStats
	for _, lang := range r.order {
		l := r.languages[lang]
		for _, name := range l.order {
			s := l.sources[name]
			t.Fetched += s.Fetched
			t.Invalid += s.Invalid
			t.Irrelevant += s.Irrelevant
			t.Stale += s.Stale
			t.Duplicate += s.Duplicate
			t.Stored += s.Stored
			t.Enriched += s.Enriched
			t.Degraded += s.Degraded
			t.Failed += s.Failed
		}
	}
	return t
}

// Duration returns the run's wall-clock duration.
func (r *RunStats) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
