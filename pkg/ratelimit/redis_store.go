package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// recordScript atomically prunes expired entries, checks the limit, and
// records the new timestamp. Sorted-set members are nanosecond timestamps;
// scores are the same value so range pruning works on time.
//
// KEYS[1] = window key
// ARGV[1] = now (unix nanos), ARGV[2] = window (nanos), ARGV[3] = limit
// Returns {allowed(0|1), count-after-call}.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
	return {0, count}
end
redis.call('ZADD', key, now, tostring(now))
redis.call('PEXPIRE', key, math.ceil(window / 1000000))
return {1, count + 1}
`)

// RedisStore keeps sliding windows in Redis sorted sets so multiple
// service instances enforce one shared policy.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed sliding window store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// RecordIfAllowed implements Store.
func (s *RedisStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int64, error) {
	res, err := recordScript.Run(ctx, s.client, []string{redisKeyPrefix + key},
		now.UnixNano(), window.Nanoseconds(), limit).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: redis record: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("ratelimit: unexpected script reply of length %d", len(res))
	}

	allowed, err := toInt64(res[0])
	if err != nil {
		return false, 0, err
	}
	count, err := toInt64(res[1])
	if err != nil {
		return false, 0, err
	}

	return allowed == 1, count, nil
}

// CountInWindow implements Store.
func (s *RedisStore) CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	count, err := s.client.ZCount(ctx, redisKeyPrefix+key, "("+cutoff, "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: redis count: %w", err)
	}
	return count, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis delete: %w", err)
	}
	return nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("ratelimit: unexpected script reply type %T", v)
	}
}
