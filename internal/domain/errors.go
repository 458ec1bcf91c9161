package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	// ErrNoCaptions is the soft failure of the caption-track strategy:
	// the platform reported captions but no caption file materialized.
	// The pipeline falls through to the next acquisition strategy.
	ErrNoCaptions = errors.New("no caption track available")
)

// SourceBlockedError is raised when the remote platform rejects an
// audio-stream download (rate limiting, bot detection). It is surfaced
// to users without technical detail.
type SourceBlockedError struct {
	URL string
	Err error
}

func (e *SourceBlockedError) Error() string {
	return fmt.Sprintf("source blocked download of %s: %v", e.URL, e.Err)
}

func (e *SourceBlockedError) Unwrap() error { return e.Err }

// NormalizationError wraps a failed transcode to canonical audio. The
// underlying tool's message is wrapped, not swallowed.
type NormalizationError struct {
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("audio normalization failed: %v", e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

// TranscriptionError is the single opaque failure category of the
// speech-to-text engine. Internal engine diagnostics are logged at the
// adapter and never reach end users.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription engine failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
