package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// aggCacheKeyPrefix namespaces every cached aggregation response so a single
// pattern delete invalidates them all after a write or rescore.
const aggCacheKeyPrefix = "agg:"

// Cache is the read-through cache the aggregation usecases sit behind. A nil
// Cache, or one whose backend is down, degrades to plain store reads.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

func aggCacheKey(view string, parts ...any) string {
	key := aggCacheKeyPrefix + view
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// invalidateAggregates drops every cached aggregation after a write. Failure
// only costs freshness, so it is logged and swallowed.
func invalidateAggregates(ctx context.Context, c Cache, logger *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.DeleteByPattern(ctx, aggCacheKeyPrefix+"*"); err != nil && logger != nil {
		logger.Warn("aggregation cache invalidation failed", zap.Error(err))
	}
}

// cached wraps an aggregation read. Cache errors are deliberately ignored:
// a broken cache must never break a query.
func cached[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if c == nil {
		return fetch()
	}

	var out T
	if ok, err := c.GetJSON(ctx, key, &out); err == nil && ok {
		return out, nil
	}

	out, err := fetch()
	if err != nil {
		return out, err
	}
	_ = c.SetJSON(ctx, key, out, ttl)
	return out, nil
}
