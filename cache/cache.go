// Package cache provides a small byte cache for expensive chart payloads.
package cache

import (
	"context"
	"time"
)

// ChartCache stores rendered chart JSON keyed by chart name and window.
type ChartCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// NoopChartCache is used when no Redis address is configured.
type NoopChartCache struct{}

func (NoopChartCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopChartCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (NoopChartCache) Invalidate(_ context.Context, _ ...string) error {
	return nil
}
