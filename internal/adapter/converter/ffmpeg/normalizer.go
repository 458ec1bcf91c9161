// Package ffmpeg normalizes arbitrary media files into the canonical
// audio form required by the transcription engine.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

type Normalizer struct {
	binary string
}

func NewNormalizer(binary string) *Normalizer {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Normalizer{binary: binary}
}

// Normalize transcodes inputPath into a mono 16kHz signed 16-bit PCM
// WAV at outputPath. The input must exist before ffmpeg is invoked; a
// non-zero exit wraps the tool's stderr in a NormalizationError. The
// call blocks until ffmpeg exits or ctx is cancelled. Callers must not
// share an output path between concurrent invocations.
func (n *Normalizer) Normalize(ctx context.Context, inputPath, outputPath string) error {
	if err := validatePath(inputPath); err != nil {
		return &domain.NormalizationError{Err: fmt.Errorf("invalid input path: %w", err)}
	}
	if err := validatePath(outputPath); err != nil {
		return &domain.NormalizationError{Err: fmt.Errorf("invalid output path: %w", err)}
	}
	if _, err := os.Stat(inputPath); err != nil {
		return &domain.NormalizationError{Err: fmt.Errorf("input file not found: %w", err)}
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outputPath,
	}
	cmd := exec.CommandContext(ctx, n.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return &domain.NormalizationError{
			Err: fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(output))),
		}
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	return nil
}

var _ port.AudioNormalizer = (*Normalizer)(nil)
