// Package cache memoizes report bundles by the content hash of their input.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/marek-kar/riskdash/pkg/analysis"
	"github.com/marek-kar/riskdash/pkg/config"
	"github.com/marek-kar/riskdash/pkg/logging"
	"github.com/marek-kar/riskdash/pkg/model"
)

const keyPrefix = "riskdash:report:" + model.SchemaVersion + ":"

// Cache stores computed bundles. Implementations never fail a request:
// backend errors surface as misses.
type Cache interface {
	Get(ctx context.Context, key string) (*model.Bundle, bool)
	Set(ctx context.Context, key string, b *model.Bundle)
	Close() error
}

// Key derives the cache key for a record collection built with opts. Equal
// collections in the same order under the same options share a key.
func Key(records []model.RiskRecord, opts analysis.Options) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return fmt.Sprintf("%sl%d:r%t:%016x", keyPrefix, opts.RankingLimit, opts.Recompute, xxhash.Sum64(data)), nil
}

func New(cfg config.CacheConfig, log logging.Logger) (Cache, error) {
	if log == nil {
		log = logging.NewNop()
	}
	switch cfg.Backend {
	case config.CacheMemory:
		return NewMemory(cfg.MaxEntries, cfg.TTL)
	case config.CacheRedis:
		return NewRedis(cfg.Redis, cfg.TTL, log.Named("cache")), nil
	case config.CacheNone, "":
		return Nop{}, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

type Nop struct{}

func (Nop) Get(context.Context, string) (*model.Bundle, bool) { return nil, false }

func (Nop) Set(context.Context, string, *model.Bundle) {}

func (Nop) Close() error { return nil }
