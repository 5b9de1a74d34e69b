package otpguard

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// markUsedScript stores ARGV[1] only when it is greater than the current value.
var markUsedScript = redis.NewScript(`
local last = redis.call('GET', KEYS[1])
if last and tonumber(last) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return 1
`)

// incrementScript starts the expiry on the first failure only.
var incrementScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisStore implements Store on Redis so that several instances share
// replay and attempt state.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces the keys. Default "sealkit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.prefix = prefix
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{client: client, prefix: "sealkit:"}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *RedisStore) MarkUsed(ctx context.Context, accountID string, counter int64, ttl time.Duration) (bool, error) {
	res, err := markUsedScript.Run(ctx, rs.client,
		[]string{rs.usedKey(accountID)},
		strconv.FormatInt(counter, 10), ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func (rs *RedisStore) IncrementAttempts(ctx context.Context, accountID string, window time.Duration) (int64, error) {
	return incrementScript.Run(ctx, rs.client,
		[]string{rs.attemptsKey(accountID)},
		window.Milliseconds(),
	).Int64()
}

func (rs *RedisStore) Attempts(ctx context.Context, accountID string) (int64, error) {
	n, err := rs.client.Get(ctx, rs.attemptsKey(accountID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (rs *RedisStore) ResetAttempts(ctx context.Context, accountID string) error {
	return rs.client.Del(ctx, rs.attemptsKey(accountID)).Err()
}

func (rs *RedisStore) usedKey(accountID string) string {
	return rs.prefix + "otp:used:" + accountID
}

func (rs *RedisStore) attemptsKey(accountID string) string {
	return rs.prefix + "otp:attempts:" + accountID
}
