package domain

import "time"

// SourceType classifies how a configured source is fetched.
type SourceType string

const (
	SourceRSS    SourceType = "rss"
	SourceGitHub SourceType = "github"
	SourceNews   SourceType = "news"
	SourceDirect SourceType = "direct"
)

// CandidateItem is a normalized record extracted from one fetch of one source.
// Candidates live only for the duration of a discovery pass: they either become
// a SeenItem or are dropped as duplicates.
type CandidateItem struct {
	SourceType  SourceType
	SourceName  string
	Title       string
	URL         string
	Snippet     string
	PublishedAt time.Time
	// RawKey is the content-derived identity used for fingerprinting:
	// the canonical URL when available, the normalized title otherwise.
	RawKey string
}

// SeenItem is a durable record marking a fingerprint as already notified.
// Presence in the store is both the dedup key and the notification record;
// rows are never updated, and only the retention sweep deletes them.
type SeenItem struct {
	Fingerprint string
	SourceType  SourceType
	SourceName  string
	Title       string
	URL         string
	Snippet     string
	PublishedAt time.Time
	FirstSeenAt time.Time
}

// NotificationRecord is an audit entry for one delivery attempt on one
// channel. It is never consulted for deduplication.
type NotificationRecord struct {
	Fingerprint  string
	Channel      string
	SentAt       time.Time
	Success      bool
	ErrorMessage string
}

// SourceStats counts one source's outcome within a pass.
type SourceStats struct {
	Fetched int
	New     int
	Errored int
}

// PassSummary aggregates per-source counts for one discovery pass.
type PassSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Sources    map[string]SourceStats
}

// NewPassSummary returns an empty summary stamped with the pass start time.
func NewPassSummary(startedAt time.Time) PassSummary {
	return PassSummary{StartedAt: startedAt, Sources: map[string]SourceStats{}}
}

// AddFetched records candidates fetched from a source.
func (s *PassSummary) AddFetched(source string, n int) {
	stats := s.Sources[source]
	stats.Fetched += n
	s.Sources[source] = stats
}

// AddNew records items staged as new for a source.
func (s *PassSummary) AddNew(source string, n int) {
	stats := s.Sources[source]
	stats.New += n
	s.Sources[source] = stats
}

// MarkErrored records a failed fetch for a source.
func (s *PassSummary) MarkErrored(source string) {
	stats := s.Sources[source]
	stats.Errored++
	s.Sources[source] = stats
}

// TotalFetched sums fetched candidates across all sources.
func (s PassSummary) TotalFetched() int {
	total := 0
	for _, stats := range s.Sources {
		total += stats.Fetched
	}
	return total
}

// TotalNew sums newly discovered items across all sources.
func (s PassSummary) TotalNew() int {
	total := 0
	for _, stats := range s.Sources {
		total += stats.New
	}
	return total
}

// TotalErrored sums failed sources.
func (s PassSummary) TotalErrored() int {
	total := 0
	for _, stats := range s.Sources {
		total += stats.Errored
	}
	return total
}
