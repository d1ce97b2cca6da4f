package identity

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const tokenKeyPrefix = "auth:token:"

// CachedVerifier memoises successful verifications in redis, keyed by a hash
// of the token. Rejections are never cached.
type CachedVerifier struct {
	Inner  Verifier
	Cache  *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewCachedVerifier(inner Verifier, cache *redis.Client, ttl time.Duration, logger *zap.Logger) Verifier {
	if cache == nil || ttl <= 0 {
		return inner
	}
	return &CachedVerifier{Inner: inner, Cache: cache, TTL: ttl, Logger: logger}
}

// TokenKey derives the cache key of a bearer token.
func TokenKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return tokenKeyPrefix + hex.EncodeToString(sum[:])
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	key := TokenKey(token)

	if raw, err := v.Cache.Get(ctx, key).Bytes(); err == nil {
		var id Identity
		if json.Unmarshal(raw, &id) == nil && id.Email != "" {
			return &id, nil
		}
	} else if err != redis.Nil {
		v.Logger.Warn("auth cache read failed", zap.Error(err))
	}

	id, err := v.Inner.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(id); err == nil {
		if err := v.Cache.Set(ctx, key, raw, v.TTL).Err(); err != nil {
			v.Logger.Warn("auth cache write failed", zap.Error(err))
		}
	}
	return id, nil
}
