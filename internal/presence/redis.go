package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "snake:presence"

// playerKey returns the Redis key for one player
func playerKey(id string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, id)
}

// indexKey returns the Redis key for the SET of active player IDs
func indexKey() string {
	return fmt.Sprintf("%s:index", keyPrefix)
}

// RedisStore shares presence between processes. Each player is a JSON value
// with a TTL, so players of a crashed host expire on their own; the index set
// is pruned lazily by List.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to url and verifies the connection.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("presence: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("presence: connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Put(ctx context.Context, p Player) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("presence: encode player: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, playerKey(p.ID), data, r.ttl)
	pipe.SAdd(ctx, indexKey(), p.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("presence: put %s: %w", p.ID, err)
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("presence: remove %s: %w", id, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (Player, error) {
	data, err := r.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Player{}, ErrNotFound
		}
		return Player{}, fmt.Errorf("presence: get %s: %w", id, err)
	}

	var p Player
	if err := json.Unmarshal(data, &p); err != nil {
		return Player{}, fmt.Errorf("presence: decode %s: %w", id, err)
	}
	return p, nil
}

func (r *RedisStore) List(ctx context.Context) ([]Player, error) {
	ids, err := r.client.SMembers(ctx, indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("presence: list index: %w", err)
	}
	if len(ids) == 0 {
		return []Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("presence: list players: %w", err)
	}

	players := make([]Player, 0, len(values))
	var expired []any
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var p Player
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, fmt.Errorf("presence: decode %s: %w", ids[i], err)
		}
		players = append(players, p)
	}

	if len(expired) > 0 {
		if err := r.client.SRem(ctx, indexKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("presence: prune index: %w", err)
		}
	}

	sortPlayers(players)
	return players, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
