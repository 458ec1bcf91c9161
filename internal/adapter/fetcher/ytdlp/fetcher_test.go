package ytdlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"rate limited", "ERROR: unable to download: HTTP Error 429: Too Many Requests", true},
		{"forbidden", "ERROR: HTTP Error 403: Forbidden", true},
		{"bot check", "ERROR: Sign in to confirm you're not a bot", true},
		{"rate-limit keyword", "ERROR: This request was rate-limited", true},
		{"ordinary failure", "ERROR: unsupported URL", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBlockedOutput(tt.output))
		})
	}
}

func TestFindByPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123.m4a"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.m4a"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "abc123-dir"), 0o755))

	path, err := findByPrefix(dir, "abc123.")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abc123.m4a"), path)
}

func TestFindByPrefix_NoMatch(t *testing.T) {
	_, err := findByPrefix(t.TempDir(), "missing")
	assert.Error(t, err)
}

func TestNewFetcher_DefaultBinary(t *testing.T) {
	assert.Equal(t, "yt-dlp", NewFetcher("").binary)
	assert.Equal(t, "/opt/yt-dlp", NewFetcher("/opt/yt-dlp").binary)
}
