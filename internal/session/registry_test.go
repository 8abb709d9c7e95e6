package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RegisterIsValidRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewMemory()

	ok, err := reg.IsValid(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, reg.Register(ctx, "tok"))

	ok, err = reg.IsValid(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, reg.Revoke(ctx, "tok"))

	ok, err = reg.IsValid(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_RevokeIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewMemory()

	require.NoError(t, reg.Register(ctx, "tok"))
	require.NoError(t, reg.Revoke(ctx, "tok"))
	require.NoError(t, reg.Revoke(ctx, "tok"))
	require.NoError(t, reg.Revoke(ctx, "never-registered"))
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			tok := fmt.Sprintf("tok-%d", i)
			_ = reg.Register(ctx, tok)
			_, _ = reg.IsValid(ctx, tok)
			_ = reg.Revoke(ctx, tok)
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		ok, err := reg.IsValid(ctx, fmt.Sprintf("tok-%d", i))
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestRedisKeyIsHashed(t *testing.T) {
	t.Parallel()

	k := key("some.jwt.token")
	assert.NotContains(t, k, "some.jwt.token")
	assert.Len(t, k, len(keyPrefix)+64)
	assert.Equal(t, key("some.jwt.token"), k)
	assert.NotEqual(t, key("other.jwt.token"), k)
}
