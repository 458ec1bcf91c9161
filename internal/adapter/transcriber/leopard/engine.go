// Package leopard adapts the Picovoice Leopard speech-to-text engine.
// Leopard is a licensed resource: a handle is initialized per job from
// the access key and released on every exit path. Engine diagnostics
// stay in the logs; callers only ever see an opaque TranscriptionError.
package leopard

import (
	"context"
	"fmt"

	pv "github.com/Picovoice/leopard/binding/go/v2"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
	"github.com/bnema/insightreel/internal/port"
)

type Engine struct {
	accessKey string
}

func NewEngine(accessKey string) *Engine {
	return &Engine{accessKey: accessKey}
}

// Transcribe runs the engine over a canonical PCM file. Each call
// acquires its own handle, so concurrent jobs never share engine
// state. ctx is consulted before the (non-interruptible) engine call.
func (e *Engine) Transcribe(ctx context.Context, pcmPath string) (string, []domain.WordTiming, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	handle := pv.NewLeopard(e.accessKey)
	if err := handle.Init(); err != nil {
		logger.Error.Printf("leopard init failed: %v", err)
		return "", nil, &domain.TranscriptionError{Err: fmt.Errorf("engine init")}
	}
	defer func() {
		if err := handle.Delete(); err != nil {
			logger.Warn.Printf("leopard release failed: %v", err)
		}
	}()

	transcript, words, err := handle.ProcessFile(pcmPath)
	if err != nil {
		logger.Error.Printf("leopard process failed for %s: %v", pcmPath, err)
		return "", nil, &domain.TranscriptionError{Err: fmt.Errorf("engine process")}
	}

	timings := make([]domain.WordTiming, len(words))
	for i, w := range words {
		timings[i] = domain.WordTiming{
			Word:     w.Word,
			StartSec: float64(w.StartSec),
			EndSec:   float64(w.EndSec),
		}
	}
	return transcript, timings, nil
}

var _ port.Transcriber = (*Engine)(nil)
