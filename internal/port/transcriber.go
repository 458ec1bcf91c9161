package port

import (
	"context"

	"github.com/bnema/insightreel/internal/domain"
)

// Transcriber runs speech-to-text over canonical PCM audio. The engine
// handle is acquired and released within a single call; failures
// surface as *domain.TranscriptionError with diagnostics kept out of
// the returned error chain.
type Transcriber interface {
	Transcribe(ctx context.Context, pcmPath string) (string, []domain.WordTiming, error)
}
