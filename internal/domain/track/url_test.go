package track_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attnlabs/focusd/internal/domain/track"
)

func TestExtractDomain(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"https", "https://github.com/attnlabs/focusd", "github.com"},
		{"http with port", "http://localhost:3000/app", "localhost"},
		{"subdomain", "https://mail.google.com/mail/u/0", "mail.google.com"},
		{"query and fragment", "https://news.ycombinator.com/item?id=1#up", "news.ycombinator.com"},
		{"no scheme", "notaurl", "notaurl"},
		{"empty host", "file:///tmp/notes.txt", "file:///tmp/notes.txt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, track.ExtractDomain(tc.in))
		})
	}
}
