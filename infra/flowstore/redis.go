// Package flowstore provides the Redis-backed and in-memory implementations
// of the purchase flow snapshot store.
package flowstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/propvest/propvest/pkg/domain/flow"
	"github.com/propvest/propvest/pkg/flowstore"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists flow snapshots in Redis as JSON, one key per project,
// with a TTL so abandoned flows age out on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore creates a RedisStore from an existing client. The prefix
// namespaces this deployment's keys; ttl bounds how long an abandoned flow
// survives.
func NewRedisStore(
	client *redis.Client,
	prefix string,
	ttl time.Duration,
	logger *slog.Logger,
) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (r *RedisStore) key(slot string) string {
	return r.prefix + slot
}

// Load implements flowstore.Store.
func (r *RedisStore) Load(ctx context.Context, projectID string) (*flow.State, error) {
	val, err := r.client.Get(ctx, r.key(flowstore.StateKey(projectID))).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("flow snapshot miss", "project_id", projectID)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("flow snapshot get error", "project_id", projectID, "error", err)
		return nil, err
	}
	var st flow.State
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		r.logger.Error("flow snapshot unmarshal error", "project_id", projectID, "error", err)
		return nil, err
	}
	return &st, nil
}

// Save implements flowstore.Store.
func (r *RedisStore) Save(ctx context.Context, state *flow.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	key := r.key(flowstore.StateKey(state.ProjectID))
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("flow snapshot set error",
			"project_id", state.ProjectID, "error", err)
		return err
	}
	r.logger.Debug("flow snapshot saved",
		"project_id", state.ProjectID, "step", state.CurrentStep)
	return nil
}

// Delete implements flowstore.Store.
func (r *RedisStore) Delete(ctx context.Context, projectID string) error {
	return r.client.Del(ctx, r.key(flowstore.StateKey(projectID))).Err()
}

// ClearAll implements flowstore.Store. Keys are collected with SCAN per
// prefix; the slot count per deployment is small.
func (r *RedisStore) ClearAll(ctx context.Context) error {
	for _, prefix := range []string{flowstore.StateKeyPrefix, flowstore.BillingKeyPrefix} {
		iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}
