package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"decorhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJWTVerifier(t *testing.T) {
	v, err := NewJWTVerifier("test-secret")
	require.NoError(t, err)

	token, err := v.IssueToken("amina@decorhub.test", "Amina", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "amina@decorhub.test", id.Email)
	assert.Equal(t, "Amina", id.Name)
}

func TestJWTVerifier_Rejections(t *testing.T) {
	v, err := NewJWTVerifier("test-secret")
	require.NoError(t, err)
	other, err := NewJWTVerifier("another-secret")
	require.NoError(t, err)

	expired, err := v.IssueToken("amina@decorhub.test", "", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), expired)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	forged, err := other.IssueToken("admin@decorhub.test", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), forged)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = v.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = NewJWTVerifier("")
	assert.Error(t, err)
}

func TestTokenKey(t *testing.T) {
	k1 := TokenKey("token-a")
	assert.True(t, strings.HasPrefix(k1, tokenKeyPrefix))
	assert.Equal(t, k1, TokenKey("token-a"))
	assert.NotEqual(t, k1, TokenKey("token-b"))
	assert.NotContains(t, k1, "token-a")
}

func TestNewCachedVerifier_WithoutCacheReturnsInner(t *testing.T) {
	inner, err := NewJWTVerifier("test-secret")
	require.NoError(t, err)

	assert.Same(t, inner, NewCachedVerifier(inner, nil, time.Minute, zap.NewNop()))
}

func TestCachedVerifier_FallsThroughWhenRedisIsDown(t *testing.T) {
	inner, err := NewJWTVerifier("test-secret")
	require.NoError(t, err)
	// Nothing listens on this port; every cache call fails fast.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	v := NewCachedVerifier(inner, client, time.Minute, zap.NewNop())
	token, err := inner.IssueToken("amina@decorhub.test", "", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "amina@decorhub.test", id.Email)

	_, err = v.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}
