package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCompute_EmptyHistoryReturnsDeclared(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for declared := 1; declared <= 5; declared++ {
		got := Compute(p, declared, nil, now)
		require.Equal(t, float64(declared), got)
	}
}

func TestCompute_WorkedExample(t *testing.T) {
	// Declared 2, one history row ending exactly 12 months before now:
	// usage=1, recency=5-12/12=4, raw=2*0.3+1*0.4+4*0.3=2.2.
	p := DefaultParams()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	six := 6
	history := []HistoryEntry{{EndPeriod: strPtr("2024-06"), DurationMonths: &six}}

	got := Compute(p, 2, history, now)
	require.Equal(t, 2.2, got)
}

func TestCompute_AlwaysWithinBounds(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	fresh := make([]HistoryEntry, 50)
	for i := range fresh {
		fresh[i] = HistoryEntry{EndPeriod: strPtr("2025-06")}
	}
	require.LessOrEqual(t, Compute(p, 1, fresh, now), 5.0)
	require.LessOrEqual(t, Compute(p, 5, fresh, now), 5.0)

	stale := []HistoryEntry{{EndPeriod: strPtr("2005-01")}}
	require.GreaterOrEqual(t, Compute(p, 1, stale, now), 1.0)
}

func TestCompute_UsageBreadthSaturates(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	mk := func(n int) []HistoryEntry {
		out := make([]HistoryEntry, n)
		for i := range out {
			out[i] = HistoryEntry{EndPeriod: strPtr("2025-05")}
		}
		return out
	}

	require.Equal(t, Compute(p, 3, mk(5), now), Compute(p, 3, mk(500), now))
}

func TestCompute_RecencyDecay(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 24 months stale: recency term = 5 - 24/12 = 3.
	// raw = 3*0.3 + 1*0.4 + 3*0.3 = 2.2
	got := Compute(p, 3, []HistoryEntry{{EndPeriod: strPtr("2023-06")}}, now)
	require.Equal(t, 2.2, got)

	// 60+ months stale: recency floors at 0.
	// raw = 3*0.3 + 1*0.4 + 0*0.3 = 1.3
	got = Compute(p, 3, []HistoryEntry{{EndPeriod: strPtr("2019-01")}}, now)
	require.Equal(t, 1.3, got)
}

func TestCompute_NoParseableDatesTreatedAsRecent(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// raw = 2*0.3 + 2*0.4 + 5*0.3 = 2.9
	history := []HistoryEntry{
		{EndPeriod: nil},
		{EndPeriod: strPtr("not a date")},
	}
	require.Equal(t, 2.9, Compute(p, 2, history, now))
}

func TestCompute_UnparseableRowSkippedNotFatal(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// The garbage row still counts toward usage breadth, and the parseable
	// one drives recency: usage=2, recency=5-12/12=4.
	// raw = 2*0.3 + 2*0.4 + 4*0.3 = 2.6
	history := []HistoryEntry{
		{EndPeriod: strPtr("garbage")},
		{EndPeriod: strPtr("2024-06")},
	}
	require.Equal(t, 2.6, Compute(p, 2, history, now))
}

func TestCompute_MostRecentEndWins(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// The 2024-06 entry (12 months back) outranks the 2019 one.
	// usage=2, recency=4, raw = 2*0.3 + 2*0.4 + 4*0.3 = 2.6
	history := []HistoryEntry{
		{EndPeriod: strPtr("2019-03")},
		{EndPeriod: strPtr("2024-06-15")},
	}
	require.Equal(t, 2.6, Compute(p, 2, history, now))
}

func TestCompute_Idempotent(t *testing.T) {
	p := DefaultParams()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	history := []HistoryEntry{
		{EndPeriod: strPtr("2024-02")},
		{EndPeriod: strPtr("2023-11-30")},
	}

	first := Compute(p, 4, history, now)
	second := Compute(p, 4, history, now)
	require.Equal(t, first, second)
}

func TestParsePeriod(t *testing.T) {
	tm, ok := ParsePeriod("2024-08")
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), tm)

	tm, ok = ParsePeriod("2024-08-15")
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), tm)

	_, ok = ParsePeriod("")
	require.False(t, ok)

	_, ok = ParsePeriod("august 2024")
	require.False(t, ok)
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	require.Equal(t, 0.3, p.DeclaredWeight)
	require.Equal(t, 0.4, p.UsageWeight)
	require.Equal(t, 0.3, p.RecencyWeight)
	require.Equal(t, 1.0, p.MinLevel)
	require.Equal(t, 5.0, p.MaxLevel)
	require.Equal(t, 12, p.RecencyWindowMonths)
	require.InDelta(t, 1.0, p.DeclaredWeight+p.UsageWeight+p.RecencyWeight, 1e-9)
}
