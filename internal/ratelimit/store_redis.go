package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// slidingWindowScript prunes, counts and conditionally records in one
// round trip so that concurrent instances cannot both take the last slot.
//
// KEYS[1] = sorted set of request timestamps (ms)
// ARGV    = now (ms), window (ms), limit, member
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
	return {0, count}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, count + 1}
`)

// RedisStore keeps each identifier's window in a Redis sorted set scored
// by request time, so every instance pointed at the same Redis shares one
// limit. Keys expire one window after their last admitted request.
type RedisStore struct {
	client redis.Scripter
}

// NewRedisStore wraps an existing go-redis client.
func NewRedisStore(client redis.Scripter) *RedisStore {
	return &RedisStore{client: client}
}

// Hit implements [Store].
func (s *RedisStore) Hit(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int, error) {
	nowMs := now.UnixMilli()
	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())

	res, err := slidingWindowScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + key},
		nowMs, window.Milliseconds(), limit, member,
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	return res[0] == 1, int(res[1]), nil
}
