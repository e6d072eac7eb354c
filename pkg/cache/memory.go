package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/marek-kar/riskdash/pkg/model"
)

type Memory struct {
	c   *ristretto.Cache[string, *model.Bundle]
	ttl time.Duration
}

// NewMemory keeps up to maxEntries bundles in process. Every entry costs 1,
// so MaxCost is an entry count. A zero ttl keeps entries until they are
// evicted.
func NewMemory(maxEntries int64, ttl time.Duration) (*Memory, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("memory cache: max entries must be positive, got %d", maxEntries)
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, *model.Bundle]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	return &Memory{c: c, ttl: ttl}, nil
}

func (m *Memory) Get(_ context.Context, key string) (*model.Bundle, bool) {
	return m.c.Get(key)
}

// Set stores b. Writes are buffered; the entry becomes visible shortly
// after Set returns.
func (m *Memory) Set(_ context.Context, key string, b *model.Bundle) {
	m.c.SetWithTTL(key, b, 1, m.ttl)
}

// Wait blocks until buffered writes are applied.
func (m *Memory) Wait() { m.c.Wait() }

func (m *Memory) Close() error {
	m.c.Close()
	return nil
}
