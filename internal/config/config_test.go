package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://x.test")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_REDIRECT_URL", "")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://x.test", cfg.SupabaseURL)
	require.Equal(t, "anon-key", cfg.SupabaseAnonKey)
	require.Equal(t, "http://localhost:8080/", cfg.RedirectURL)
	require.Equal(t, time.Hour, cfg.SessionTTL)
	require.Equal(t, "memory", cfg.SessionStore)
}

func TestLoad_MissingKeys(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		anonKey string
		want    []string
	}{
		{"both missing", "", "", []string{"SUPABASE_URL", "SUPABASE_ANON_KEY"}},
		{"url missing", "", "k", []string{"SUPABASE_URL"}},
		{"key missing", "https://x.test", "", []string{"SUPABASE_ANON_KEY"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SUPABASE_URL", tc.url)
			t.Setenv("SUPABASE_ANON_KEY", tc.anonKey)

			_, err := Load()
			require.Error(t, err)

			var missing *MissingKeysError
			require.True(t, errors.As(err, &missing))
			require.Equal(t, tc.want, missing.Keys)
		})
	}
}

func TestLoad_WhitespaceOnlyIsMissing(t *testing.T) {
	t.Setenv("SUPABASE_URL", "   ")
	t.Setenv("SUPABASE_ANON_KEY", "k")

	_, err := Load()
	var missing *MissingKeysError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{"SUPABASE_URL"}, missing.Keys)
}
