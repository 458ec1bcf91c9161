package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
	"github.com/bnema/insightreel/internal/port"
	"github.com/bnema/insightreel/internal/subtitle"
)

// errNotApplicable is returned by a strategy that does not apply to the
// video's origin so the chain moves on to the next one.
var errNotApplicable = errors.New("acquisition strategy not applicable")

// acquired is the outcome of the acquisition phase: either a finished
// transcript taken from a caption track, or a local audio file for the
// normalization and transcription stages.
type acquired struct {
	captions  *subtitle.Result
	audioPath string
}

type acquireStrategy interface {
	name() string
	attempt(ctx context.Context, video *domain.Video, sweep *tempFiles) (*acquired, error)
}

// acquire walks the strategy chain in order and returns the first
// result. Strategies signal inapplicability with errNotApplicable; any
// other error aborts the pipeline.
func (s *VideoService) acquire(ctx context.Context, video *domain.Video, sweep *tempFiles) (*acquired, error) {
	if err := os.MkdirAll(s.workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	strategies := []acquireStrategy{
		&captionTrackStrategy{platform: s.platform, fetcher: s.fetcher, lang: s.captionLang, workDir: s.workDir},
		&audioStreamStrategy{fetcher: s.fetcher, workDir: s.workDir},
		&objectDownloadStrategy{objects: s.objects, workDir: s.workDir},
	}
	for _, strategy := range strategies {
		acq, err := strategy.attempt(ctx, video, sweep)
		if errors.Is(err, errNotApplicable) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strategy.name(), err)
		}
		logger.Info.Printf("acquisition: id=%s strategy=%s", video.ID, strategy.name())
		return acq, nil
	}
	return nil, fmt.Errorf("no acquisition strategy applies to %q", video.StoragePath)
}

// captionTrackStrategy tries to skip transcription entirely by reusing
// the platform's caption track. Every failure here is soft: the chain
// falls through to downloading audio instead.
type captionTrackStrategy struct {
	platform port.VideoPlatform
	fetcher  port.MediaFetcher
	lang     string
	workDir  string
}

func (c *captionTrackStrategy) name() string { return "caption-track" }

func (c *captionTrackStrategy) attempt(ctx context.Context, video *domain.Video, sweep *tempFiles) (*acquired, error) {
	if !video.IsRemoteURL() || c.platform == nil {
		return nil, errNotApplicable
	}

	details, err := c.platform.Details(ctx, video.StoragePath)
	if err != nil {
		logger.Warn.Printf("caption-track: metadata lookup failed for %s: %v", video.ID, err)
		return nil, errNotApplicable
	}
	if details.Title != "" && (video.Title == "" || video.Title == video.StoragePath) {
		video.Title = details.Title
	}
	if !details.HasCaptions {
		return nil, errNotApplicable
	}

	path, err := c.fetcher.FetchCaptions(ctx, video.StoragePath, c.lang, c.workDir)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCaptions) {
			logger.Warn.Printf("caption-track: fetch failed for %s: %v", video.ID, err)
		}
		return nil, errNotApplicable
	}
	sweep.add(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn.Printf("caption-track: read failed for %s: %v", video.ID, err)
		return nil, errNotApplicable
	}
	result := subtitle.Parse(string(raw))
	if len(result.Words) == 0 {
		logger.Warn.Printf("caption-track: empty track for %s", video.ID)
		return nil, errNotApplicable
	}
	return &acquired{captions: &result}, nil
}

// audioStreamStrategy downloads the audio-only stream of a remote
// video. A platform rejection is fatal for the pipeline.
type audioStreamStrategy struct {
	fetcher port.MediaFetcher
	workDir string
}

func (a *audioStreamStrategy) name() string { return "audio-stream" }

func (a *audioStreamStrategy) attempt(ctx context.Context, video *domain.Video, sweep *tempFiles) (*acquired, error) {
	if !video.IsRemoteURL() {
		return nil, errNotApplicable
	}
	path, err := a.fetcher.FetchAudio(ctx, video.StoragePath, a.workDir)
	if path != "" {
		sweep.add(path)
	}
	if err != nil {
		return nil, err
	}
	return &acquired{audioPath: path}, nil
}

// objectDownloadStrategy pulls an uploaded file back out of object
// storage into the work directory.
type objectDownloadStrategy struct {
	objects port.ObjectStore
	workDir string
}

func (o *objectDownloadStrategy) name() string { return "object-download" }

func (o *objectDownloadStrategy) attempt(ctx context.Context, video *domain.Video, sweep *tempFiles) (*acquired, error) {
	if video.IsRemoteURL() {
		return nil, errNotApplicable
	}

	body, err := o.objects.Download(ctx, video.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download object %s: %w", video.StoragePath, err)
	}
	defer body.Close() //nolint:errcheck

	localPath := filepath.Join(o.workDir, video.ID+filepath.Ext(video.StoragePath))
	sweep.add(localPath)
	out, err := os.Create(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create local copy: %w", err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to write local copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close local copy: %w", err)
	}
	return &acquired{audioPath: localPath}, nil
}
