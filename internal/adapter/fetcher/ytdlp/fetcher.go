// Package ytdlp acquires caption tracks and audio-only streams from
// remote video platforms by wrapping the yt-dlp binary.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
	"github.com/bnema/insightreel/internal/port"
)

type Fetcher struct {
	binary string
}

func NewFetcher(binary string) *Fetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Fetcher{binary: binary}
}

// FetchCaptions downloads the auto-generated caption track for url in
// the requested language. yt-dlp reports success even when no track
// exists, so the expected output file is checked afterwards; its
// absence is domain.ErrNoCaptions, a soft failure.
func (f *Fetcher) FetchCaptions(ctx context.Context, url, lang, destDir string) (string, error) {
	template := filepath.Join(destDir, uuid.NewString())

	args := []string{
		url,
		"--write-auto-sub",
		"--sub-lang", lang,
		"--skip-download",
		"-o", template,
	}
	cmd := exec.CommandContext(ctx, f.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp subtitles: %w: %s", err, strings.TrimSpace(string(output)))
	}

	captionPath := fmt.Sprintf("%s.%s.vtt", template, lang)
	if _, err := os.Stat(captionPath); err != nil {
		return "", domain.ErrNoCaptions
	}
	return captionPath, nil
}

// FetchAudio downloads the best audio-only stream for url into destDir
// and returns the resulting file path. yt-dlp picks the extension, so
// the output template uses a unique prefix that is searched afterwards.
func (f *Fetcher) FetchAudio(ctx context.Context, url, destDir string) (string, error) {
	base := uuid.NewString()
	template := filepath.Join(destDir, base+".%(ext)s")

	args := []string{
		url,
		"-x",
		"--audio-format", "m4a",
		"--referer", "https://www.youtube.com/",
		"-o", template,
	}
	cmd := exec.CommandContext(ctx, f.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(output))
		if isBlockedOutput(msg) {
			logger.Warn.Printf("platform blocked audio download of %s: %s",
				logger.SanitizeForLog(url), logger.SanitizeForLog(msg))
			return "", &domain.SourceBlockedError{URL: url, Err: err}
		}
		return "", fmt.Errorf("yt-dlp audio: %w: %s", err, msg)
	}

	path, err := findByPrefix(destDir, base)
	if err != nil {
		return "", fmt.Errorf("downloaded audio file missing: %w", err)
	}
	return path, nil
}

// blockedMarkers are yt-dlp output fragments that indicate the platform
// refused the download rather than the download failing locally.
var blockedMarkers = []string{
	"HTTP Error 429",
	"HTTP Error 403",
	"Sign in to confirm",
	"rate-limit",
	"blocked it from display",
}

func isBlockedOutput(output string) bool {
	for _, marker := range blockedMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

func findByPrefix(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no file with prefix %s in %s", prefix, dir)
}

var _ port.MediaFetcher = (*Fetcher)(nil)
