package port

import "context"

// AudioNormalizer converts an arbitrary media file into the canonical
// audio form the transcription engine requires: mono, 16 kHz, signed
// 16-bit little-endian PCM. Failures surface as
// *domain.NormalizationError.
type AudioNormalizer interface {
	Normalize(ctx context.Context, inputPath, outputPath string) error
}
