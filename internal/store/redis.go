package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key the redis backend writes.
const DefaultRedisPrefix = "shindan"

// RedisResultRepo implements ResultRepo on Redis. Keys:
//
//	{prefix}:result:{id}  JSON-encoded Result
//	{prefix}:results      sorted set of IDs scored by creation time
//	{prefix}:stats        hash of character code to result count
type RedisResultRepo struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisResultRepo returns a ResultRepo backed by client. An empty
// prefix means DefaultRedisPrefix.
func NewRedisResultRepo(client redis.UniversalClient, prefix string) *RedisResultRepo {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisResultRepo{client: client, prefix: prefix}
}

func (r *RedisResultRepo) resultKey(id string) string {
	return fmt.Sprintf("%s:result:%s", r.prefix, id)
}

func (r *RedisResultRepo) indexKey() string { return r.prefix + ":results" }
func (r *RedisResultRepo) statsKey() string { return r.prefix + ":stats" }

func (r *RedisResultRepo) Save(ctx context.Context, res *Result) error {
	prepare(res)

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.resultKey(res.ID), data, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{
			Score:  float64(res.CreatedAt.UnixMilli()),
			Member: res.ID,
		})
		pipe.HIncrBy(ctx, r.statsKey(), res.CharacterCode, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save result %s: %w", res.ID, err)
	}
	return nil
}

func (r *RedisResultRepo) Get(ctx context.Context, id string) (*Result, error) {
	data, err := r.client.Get(ctx, r.resultKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get result %s: %w", id, err)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", id, err)
	}
	return &res, nil
}

func (r *RedisResultRepo) List(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list result ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.resultKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	out := make([]Result, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// Indexed but the document is gone.
			continue
		}
		var res Result
		if err := json.Unmarshal([]byte(s), &res); err != nil {
			return nil, fmt.Errorf("decode result %s: %w", ids[i], err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *RedisResultRepo) CharacterStats(ctx context.Context) ([]CharacterStat, error) {
	counts, err := r.client.HGetAll(ctx, r.statsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("character stats: %w", err)
	}

	out := make([]CharacterStat, 0, len(counts))
	for code, n := range counts {
		count, err := strconv.Atoi(n)
		if err != nil {
			return nil, fmt.Errorf("character stats: count for %s: %w", code, err)
		}
		out = append(out, CharacterStat{Code: code, Count: count})
	}
	slices.SortFunc(out, func(a, b CharacterStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return out, nil
}
