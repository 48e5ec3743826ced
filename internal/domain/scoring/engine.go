// Package scoring computes the derived competence level from a declared
// level and the usage history of a (collaborator, technology) pair.
//
// The usage-breadth term counts history rows, not distinct projects, so an
// entry imported twice inflates it. Known fidelity limitation, kept on
// purpose.
package scoring

import (
	"math"
	"time"
)

// Params are the declared constants of the formula. They are served verbatim
// by the scoring parameters endpoint so callers and tests can assert on them.
type Params struct {
	DeclaredWeight float64 `json:"declared_level_weight"`
	UsageWeight    float64 `json:"usage_breadth_weight"`
	RecencyWeight  float64 `json:"recency_weight"`

	MinLevel float64 `json:"min_level"`
	MaxLevel float64 `json:"max_level"`

	RecencyWindowMonths int     `json:"recency_penalty_window_months"`
	ScorePerProject     float64 `json:"score_per_project"`
	MaxUsageScore       float64 `json:"max_usage_score"`
}

func DefaultParams() Params {
	return Params{
		DeclaredWeight:      0.3,
		UsageWeight:         0.4,
		RecencyWeight:       0.3,
		MinLevel:            1.0,
		MaxLevel:            5.0,
		RecencyWindowMonths: 12,
		ScorePerProject:     1.0,
		MaxUsageScore:       5.0,
	}
}

// HistoryEntry is one usage of a technology on a project. EndPeriod is the
// raw stored value, either YYYY-MM or a full calendar date.
type HistoryEntry struct {
	EndPeriod      *string
	DurationMonths *int
}

// Compute maps a declared level and its usage history to the computed level.
// Pure: identical inputs always yield the identical score.
func Compute(p Params, declaredLevel int, history []HistoryEntry, now time.Time) float64 {
	if len(history) == 0 {
		return float64(declaredLevel)
	}

	usage := math.Min(p.MaxUsageScore, float64(len(history))*p.ScorePerProject)

	recency := p.MaxLevel
	if last, ok := mostRecentEnd(history); ok {
		elapsed := monthsBetween(last, now)
		recency = math.Max(0, p.MaxLevel-float64(elapsed)/float64(p.RecencyWindowMonths))
	}

	raw := float64(declaredLevel)*p.DeclaredWeight + usage*p.UsageWeight + recency*p.RecencyWeight

	score := math.Max(p.MinLevel, math.Min(p.MaxLevel, raw))
	return math.Round(score*100) / 100
}

// mostRecentEnd returns the latest parseable end period. Rows without one,
// or with an unparseable one, are skipped silently.
func mostRecentEnd(history []HistoryEntry) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, h := range history {
		if h.EndPeriod == nil {
			continue
		}
		t, ok := ParsePeriod(*h.EndPeriod)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}

// monthsBetween is whole-month arithmetic (year*12+month), not day-precise.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

var periodLayouts = []string{
	"2006-01",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// ParsePeriod normalizes the mixed-granularity end-period strings into a
// time value. The bool result is the only failure signal; a bad date is a
// data-quality gap, not an error.
func ParsePeriod(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
