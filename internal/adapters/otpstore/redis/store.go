package redis

import (
	"context"
	"fmt"
	"time"

	"gestor-visitas/internal/domain/otp"

	"github.com/redis/go-redis/v9"
)

const (
	codeKeyPrefix = "otp:code:"
	expiryIndex   = "otp:expiry"
)

// Cada código vive en un hash {code, exp} con PEXPIREAT, más un índice
// (sorted set por exp) que usa el barrido. Los scripts arman claves a partir
// del prefijo, así que asumen una sola instancia (sin cluster).
var (
	putScript = redis.NewScript(`
redis.call('HSET', KEYS[1], 'code', ARGV[1], 'exp', ARGV[2])
redis.call('PEXPIREAT', KEYS[1], ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[2], ARGV[3])
return 1
`)

	consumeScript = redis.NewScript(`
local code = redis.call('HGET', KEYS[1], 'code')
if not code then return 0 end
local exp = tonumber(redis.call('HGET', KEYS[1], 'exp'))
if tonumber(ARGV[2]) >= exp then
  redis.call('DEL', KEYS[1])
  redis.call('ZREM', KEYS[2], ARGV[3])
  return 2
end
if code ~= ARGV[1] then return 3 end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[3])
return 1
`)

	sweepScript = redis.NewScript(`
local emails = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, e in ipairs(emails) do
  redis.call('DEL', ARGV[2] .. e)
end
if #emails > 0 then
  redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
end
return #emails
`)
)

// Store implementa otp.Store sobre Redis para compartir códigos entre instancias.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Put(ctx context.Context, rec otp.Record) error {
	keys := []string{codeKeyPrefix + rec.Email, expiryIndex}
	return putScript.Run(ctx, s.client, keys, rec.Code, rec.ExpiresAt.UnixMilli(), rec.Email).Err()
}

func (s *Store) Consume(ctx context.Context, email, code string, now time.Time) (otp.Outcome, error) {
	keys := []string{codeKeyPrefix + email, expiryIndex}
	res, err := consumeScript.Run(ctx, s.client, keys, code, now.UnixMilli(), email).Int()
	if err != nil {
		return otp.OutcomeMissing, fmt.Errorf("consume otp: %w", err)
	}
	switch res {
	case 1:
		return otp.OutcomeMatched, nil
	case 2:
		return otp.OutcomeExpired, nil
	case 3:
		return otp.OutcomeMismatch, nil
	}
	return otp.OutcomeMissing, nil
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	n, err := sweepScript.Run(ctx, s.client, []string{expiryIndex}, now.UnixMilli(), codeKeyPrefix).Int()
	if err != nil {
		return 0, fmt.Errorf("sweep otp: %w", err)
	}
	return n, nil
}

// NewClient abre un cliente desde una URL redis:// y verifica la conexión.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
