package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skill-matrix/internal/repository"
)

// mockCache is a map-backed Cache; pattern deletes drop everything, which is
// the only pattern the usecases issue.
type mockCache struct {
	store       map[string][]byte
	invalidated int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *mockCache) DeleteByPattern(context.Context, string) error {
	m.store = make(map[string][]byte)
	m.invalidated++
	return nil
}

// countingAnalytics wraps the shared mock, counting Gaps calls so the test
// can tell a cache hit from a store read.
type countingAnalytics struct {
	mockAnalyticsRepo
	gapCalls *int
}

func (c countingAnalytics) Gaps(ctx context.Context, threshold int) ([]repository.GapRow, error) {
	*c.gapCalls += 1
	return c.mockAnalyticsRepo.Gaps(ctx, threshold)
}

func TestAggregationCache_ReadThrough(t *testing.T) {
	calls := 0
	analytics := countingAnalytics{
		mockAnalyticsRepo: mockAnalyticsRepo{gaps: []repository.GapRow{{Technology: "Go", Experts: 1, BestLevel: 4.5}}},
		gapCalls:          &calls,
	}
	cache := newMockCache()
	uc := NewAllocationUsecase(analytics, cache, nil)

	first, err := uc.Gaps(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.Gaps(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected a single store read, got %d", calls)
	}
	if len(second.Gaps) != len(first.Gaps) || second.Gaps[0].Technology != "Go" {
		t.Fatalf("cached report differs: %+v vs %+v", first, second)
	}

	// A different threshold is a different key.
	if _, err := uc.Gaps(context.Background(), 3); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a second store read, got %d", calls)
	}
}

func TestAggregationCache_WritesInvalidate(t *testing.T) {
	cache := newMockCache()
	uc := NewCollaboratorUsecase(mockCollaboratorRepo{}, cache, nil)

	if _, err := uc.Create(context.Background(), CollaboratorInput{FirstName: "Jane", LastName: "Doe"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected 1 invalidation, got %d", cache.invalidated)
	}

	if _, err := uc.Create(context.Background(), CollaboratorInput{FirstName: " ", LastName: "Doe"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("rejected write must not invalidate, got %d", cache.invalidated)
	}
}
