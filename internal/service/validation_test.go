package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"feedpoll/internal/locale"
	"feedpoll/internal/service"
)

func TestValidateURL(t *testing.T) {
	subscribed := []string{"https://example.com/rss"}

	tests := []struct {
		name    string
		input   string
		wantKey string
		wantErr error
	}{
		{name: "valid https", input: "https://news.example.org/feed.xml"},
		{name: "valid http with query", input: "http://example.com/rss?lang=ru"},
		{name: "surrounding spaces trimmed", input: "  https://example.com/other  "},
		{name: "empty", input: "", wantKey: locale.KeyRequired, wantErr: service.ErrInvalid},
		{name: "blank", input: "   ", wantKey: locale.KeyRequired, wantErr: service.ErrInvalid},
		{name: "no scheme", input: "example.com/rss", wantKey: locale.KeyURL, wantErr: service.ErrInvalid},
		{name: "garbage", input: "not a url", wantKey: locale.KeyURL, wantErr: service.ErrInvalid},
		{name: "ftp scheme", input: "ftp://example.com/rss", wantKey: locale.KeyURL, wantErr: service.ErrInvalid},
		{name: "missing host", input: "https:///rss", wantKey: locale.KeyURL, wantErr: service.ErrInvalid},
		{name: "already subscribed", input: "https://example.com/rss", wantKey: locale.KeyURLNotOneOf, wantErr: service.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateURL(tt.input, subscribed)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, tt.wantKey, service.ErrorKey(err))
		})
	}
}

func TestErrorKey_PlainError(t *testing.T) {
	require.Empty(t, service.ErrorKey(service.ErrNotFound))
	require.Empty(t, service.ErrorKey(nil))
}
