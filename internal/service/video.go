package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
	"github.com/bnema/insightreel/internal/port"
)

// signedURLTTL bounds how long a playback link for a stored object
// stays valid.
const signedURLTTL = time.Hour

// VideoService owns the video catalog and runs the ingestion pipeline
// that turns a submitted origin into a time-aligned transcript.
type VideoService struct {
	videos      port.VideoStore
	users       port.UserStore
	settings    port.SettingsStore
	objects     port.ObjectStore
	platform    port.VideoPlatform
	fetcher     port.MediaFetcher
	normalizer  port.AudioNormalizer
	transcriber port.Transcriber
	workDir     string
	captionLang string
}

// VideoServiceDeps collects the collaborators of VideoService. All
// fields are required except Platform, which may be nil when no
// metadata API key is configured.
type VideoServiceDeps struct {
	Videos      port.VideoStore
	Users       port.UserStore
	Settings    port.SettingsStore
	Objects     port.ObjectStore
	Platform    port.VideoPlatform
	Fetcher     port.MediaFetcher
	Normalizer  port.AudioNormalizer
	Transcriber port.Transcriber
	DataDir     string
	CaptionLang string
}

func NewVideoService(deps VideoServiceDeps) *VideoService {
	lang := deps.CaptionLang
	if lang == "" {
		lang = "en"
	}
	return &VideoService{
		videos:      deps.Videos,
		users:       deps.Users,
		settings:    deps.Settings,
		objects:     deps.Objects,
		platform:    deps.Platform,
		fetcher:     deps.Fetcher,
		normalizer:  deps.Normalizer,
		transcriber: deps.Transcriber,
		workDir:     filepath.Join(deps.DataDir, "work"),
		captionLang: lang,
	}
}

func (s *VideoService) List(ctx context.Context, user *domain.User) ([]*domain.Video, error) {
	return s.videos.List(ctx, user.ID, user.IsAdmin())
}

func (s *VideoService) Get(ctx context.Context, id string, user *domain.User) (*domain.Video, error) {
	return s.videos.GetOwned(ctx, id, user.ID, user.IsAdmin())
}

// Delete removes the catalog entry and, for uploaded videos, the stored
// blob. Remote origins have nothing in object storage to remove.
func (s *VideoService) Delete(ctx context.Context, id string, user *domain.User) error {
	video, err := s.videos.GetOwned(ctx, id, user.ID, user.IsAdmin())
	if err != nil {
		return err
	}
	if !video.IsRemoteURL() {
		if err := s.objects.Delete(ctx, video.StoragePath); err != nil {
			logger.Error.Printf("failed to delete object %s: %v", video.StoragePath, err)
			return fmt.Errorf("failed to delete stored file: %w", err)
		}
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info.Printf("video deleted: id=%s by user=%d", id, user.ID)
	return nil
}

// PlayURL resolves where the client should stream the video from: the
// original URL for remote origins, a short-lived signed link otherwise.
func (s *VideoService) PlayURL(ctx context.Context, id string, user *domain.User) (string, error) {
	video, err := s.videos.GetOwned(ctx, id, user.ID, user.IsAdmin())
	if err != nil {
		return "", err
	}
	if video.IsRemoteURL() {
		return video.StoragePath, nil
	}
	return s.objects.SignedURL(ctx, video.StoragePath, signedURLTTL)
}

// Search runs a full-text query over completed transcripts the user can
// see. A blank query matches nothing.
func (s *VideoService) Search(ctx context.Context, query string, user *domain.User) ([]*domain.Video, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	return s.videos.SearchCompleted(ctx, query, user.ID, user.IsAdmin())
}

// CleanupStale sweeps the pipeline work directory for files older than
// maxAge. Normal runs remove their own artifacts; this catches leftovers
// from crashed processes.
func (s *VideoService) CleanupStale(maxAge time.Duration) {
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error.Printf("failed to read work directory: %v", err)
		}
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.workDir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Error.Printf("failed to remove stale file %s: %v", path, err)
			continue
		}
		logger.Info.Printf("removed stale work file: %s", entry.Name())
	}
}
