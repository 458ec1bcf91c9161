package ffmpeg

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/insightreel/internal/domain"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "valid path",
			path:    "/tmp/audio.m4a",
			wantErr: nil,
		},
		{
			name:    "valid path with spaces",
			path:    "/tmp/my audio.m4a",
			wantErr: nil,
		},
		{
			name:    "relative path",
			path:    "audio.m4a",
			wantErr: nil,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: ErrEmptyPath,
		},
		{
			name:    "null byte",
			path:    "/tmp/\x00audio.m4a",
			wantErr: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizer_Normalize_InputValidation(t *testing.T) {
	n := NewNormalizer("")

	tests := []struct {
		name       string
		inputPath  string
		outputPath string
		errMsg     string
	}{
		{
			name:       "empty input",
			inputPath:  "",
			outputPath: "/tmp/out.wav",
			errMsg:     "invalid input path",
		},
		{
			name:       "empty output",
			inputPath:  "/tmp/in.m4a",
			outputPath: "",
			errMsg:     "invalid output path",
		},
		{
			name:       "null byte in input",
			inputPath:  "/tmp/\x00in.m4a",
			outputPath: "/tmp/out.wav",
			errMsg:     "invalid input path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := n.Normalize(context.Background(), tt.inputPath, tt.outputPath)
			if err == nil {
				t.Fatalf("Normalize() expected error containing %q, got nil", tt.errMsg)
			}
			var normErr *domain.NormalizationError
			if !errors.As(err, &normErr) {
				t.Errorf("Normalize() error type = %T, want *domain.NormalizationError", err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Normalize() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestNormalizer_Normalize_MissingInputFailsBeforeInvocation(t *testing.T) {
	// Binary name that cannot exist; the stat check must fail first.
	n := NewNormalizer("definitely-not-a-real-ffmpeg-binary")

	missing := filepath.Join(t.TempDir(), "does-not-exist.m4a")
	err := n.Normalize(context.Background(), missing, filepath.Join(t.TempDir(), "out.wav"))

	if err == nil {
		t.Fatal("Normalize() expected error for missing input")
	}
	var normErr *domain.NormalizationError
	if !errors.As(err, &normErr) {
		t.Fatalf("Normalize() error type = %T, want *domain.NormalizationError", err)
	}
	if !strings.Contains(err.Error(), "input file not found") {
		t.Errorf("Normalize() error = %v, want input-not-found", err)
	}
}
