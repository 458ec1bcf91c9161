package port

import "context"

// VideoDetails is the platform metadata consulted before acquisition.
type VideoDetails struct {
	Title       string
	HasCaptions bool
}

// VideoPlatform answers metadata questions about a hosted video,
// identified by its public watch URL.
type VideoPlatform interface {
	Details(ctx context.Context, videoURL string) (*VideoDetails, error)
}

// MediaFetcher downloads caption tracks and audio streams from a
// remote platform into local files.
type MediaFetcher interface {
	// FetchCaptions downloads the caption track for url into destDir
	// and returns its path. domain.ErrNoCaptions when no track
	// materializes.
	FetchCaptions(ctx context.Context, url, lang, destDir string) (string, error)
	// FetchAudio downloads the best audio-only stream for url into
	// destDir. A platform rejection surfaces as
	// *domain.SourceBlockedError.
	FetchAudio(ctx context.Context, url, destDir string) (string, error)
}
