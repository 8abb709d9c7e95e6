package mailer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP_DisabledWithoutCredentials(t *testing.T) {
	t.Parallel()

	lgr := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, tc := range []struct {
		name string
		host string
		user string
		pass string
	}{
		{"no host", "", "u", "p"},
		{"no user", "smtp.example.com:465", "", "p"},
		{"no password", "smtp.example.com:465", "u", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewSMTP(tc.host, tc.user, tc.pass, "Shop <noreply@shop.local>", false, lgr)
			require.NoError(t, err)
			assert.True(t, c.disabled)

			// Send is a no-op when disabled.
			assert.NoError(t, c.Send("a@x.com", "subject", "body"))
		})
	}
}

func TestNewSMTP_BadFromAddress(t *testing.T) {
	t.Parallel()

	lgr := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewSMTP("smtp.example.com:465", "u", "p", "not-an-address", false, lgr)
	assert.Error(t, err)
}
