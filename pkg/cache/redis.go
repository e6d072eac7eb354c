package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marek-kar/riskdash/pkg/config"
	"github.com/marek-kar/riskdash/pkg/logging"
	"github.com/marek-kar/riskdash/pkg/model"
)

// Redis shares bundles between instances. Values are stored as JSON.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    logging.Logger
}

func NewRedis(cfg config.RedisConfig, ttl time.Duration, log logging.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Redis{client: client, ttl: ttl, log: log}
}

func (r *Redis) Get(ctx context.Context, key string) (*model.Bundle, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.Warn("redis get failed", logging.String("key", key), logging.Err(err))
		return nil, false
	}

	var b model.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		r.log.Warn("discarding undecodable cache entry", logging.String("key", key), logging.Err(err))
		return nil, false
	}
	return &b, true
}

func (r *Redis) Set(ctx context.Context, key string, b *model.Bundle) {
	data, err := json.Marshal(b)
	if err != nil {
		r.log.Error("encode cache entry", logging.String("key", key), logging.Err(err))
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.log.Warn("redis set failed", logging.String("key", key), logging.Err(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
