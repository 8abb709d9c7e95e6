package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hash)

	assert.True(t, CheckPasswordHash(hash, "pw1"))
	assert.False(t, CheckPasswordHash(hash, "pw2"))
}

func TestNewVerificationCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 13)

		for _, r := range code {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'),
				"unexpected rune %q in code %q", r, code)
		}

		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q", code)
		seen[code] = struct{}{}
	}
}

func TestNewResetTicket(t *testing.T) {
	t.Parallel()

	now := time.Now()

	token, expires, err := NewResetTicket(now)
	require.NoError(t, err)
	assert.Len(t, token, 40) // 20 bytes, hex-encoded
	assert.Equal(t, now.Add(time.Hour), expires)

	other, _, err := NewResetTicket(now)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
