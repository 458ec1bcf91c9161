package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
)

// Messages stored as the transcript text of videos that never produced
// one. Pipeline internals stay in the logs; these are what users see.
const (
	MsgGloballyDisabled = "Transcription service is globally disabled."
	MsgDisabledByUser   = "Transcription service was disabled by the user."
	MsgSourceBlocked    = "The remote platform blocked the request for this video."
	MsgEngineFailed     = "The transcription engine could not process this audio."
)

// SubmitUpload stores an already-received file in object storage,
// registers it in the catalog and runs the pipeline on it. The filename
// must already be sanitized by the transport.
func (s *VideoService) SubmitUpload(ctx context.Context, user *domain.User, title, filename, contentType string, file io.Reader) (*domain.Video, error) {
	key := fmt.Sprintf("%d/%d-%s", user.ID, time.Now().UnixMilli(), filename)
	if err := s.objects.Upload(ctx, key, file, contentType); err != nil {
		logger.Error.Printf("failed to upload %s: %v", key, err)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	if title == "" {
		title = filename
	}
	video := domain.NewVideo(title, filename, key, user.ID)
	if err := s.videos.Save(ctx, video); err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			logger.Error.Printf("failed to remove orphaned object %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to save video: %w", err)
	}
	logger.Info.Printf("upload submitted: id=%s key=%s user=%d", video.ID, key, user.ID)

	return s.process(ctx, video), nil
}

// SubmitYouTube registers a remote video by URL and runs the pipeline on
// it. Only the URL shape is validated here; any network work, including
// the metadata lookup, happens inside the pipeline after the
// authorization gates.
func (s *VideoService) SubmitYouTube(ctx context.Context, user *domain.User, rawURL, title string) (*domain.Video, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid video URL: %q", rawURL)
	}

	if title == "" {
		title = rawURL
	}
	video := domain.NewVideo(title, "", rawURL, user.ID)
	if err := s.videos.Save(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to save video: %w", err)
	}
	logger.Info.Printf("youtube import submitted: id=%s url=%s user=%d", video.ID, rawURL, user.ID)

	return s.process(ctx, video), nil
}

// process drives the video to a terminal status: authorization gates,
// acquisition, normalization, transcription, persistence. Every
// temporary file registered along the way is removed before returning,
// whatever the outcome.
func (s *VideoService) process(ctx context.Context, video *domain.Video) *domain.Video {
	sweep := &tempFiles{}
	defer sweep.removeAll()

	setting, err := s.settings.FindOrCreate(ctx, domain.SettingGlobalTranscription)
	if err != nil {
		return s.fail(ctx, video, fmt.Errorf("failed to read transcription setting: %w", err))
	}
	if !setting.IsEnabled {
		logger.Info.Printf("transcription skipped (global gate): id=%s", video.ID)
		video.MarkDisabled(MsgGloballyDisabled)
		s.persistResult(ctx, video)
		return video
	}

	owner, err := s.users.GetUserByID(ctx, video.OwnerID)
	if err != nil {
		return s.fail(ctx, video, fmt.Errorf("failed to load owner: %w", err))
	}
	if !owner.TranscriptionEnabled {
		logger.Info.Printf("transcription skipped (user gate): id=%s user=%d", video.ID, owner.ID)
		video.MarkDisabled(MsgDisabledByUser)
		s.persistResult(ctx, video)
		return video
	}

	acq, err := s.acquire(ctx, video, sweep)
	if err != nil {
		return s.fail(ctx, video, err)
	}

	if acq.captions != nil {
		logger.Info.Printf("transcript taken from caption track: id=%s words=%d", video.ID, len(acq.captions.Words))
		video.MarkCompleted(acq.captions.Transcript, acq.captions.Words)
		s.persistResult(ctx, video)
		return video
	}

	if err := os.MkdirAll(s.workDir, 0755); err != nil {
		return s.fail(ctx, video, fmt.Errorf("failed to create work directory: %w", err))
	}
	pcmPath := filepath.Join(s.workDir, video.ID+".wav")
	sweep.add(pcmPath)
	if err := s.normalizer.Normalize(ctx, acq.audioPath, pcmPath); err != nil {
		return s.fail(ctx, video, err)
	}

	transcript, words, err := s.transcriber.Transcribe(ctx, pcmPath)
	if err != nil {
		return s.fail(ctx, video, err)
	}

	video.MarkCompleted(transcript, words)
	s.persistResult(ctx, video)
	logger.Info.Printf("transcription completed: id=%s words=%d", video.ID, len(words))
	return video
}

// fail records the failure with a user-facing explanation. The precise
// cause goes to the logs; only curated messages leave the pipeline for
// blocked sources and engine errors.
func (s *VideoService) fail(ctx context.Context, video *domain.Video, err error) *domain.Video {
	logger.Error.Printf("pipeline failed: id=%s: %v", video.ID, err)
	video.MarkFailed(failureMessage(err))
	s.persistResult(ctx, video)
	return video
}

func failureMessage(err error) string {
	var blocked *domain.SourceBlockedError
	if errors.As(err, &blocked) {
		return MsgSourceBlocked
	}
	var engine *domain.TranscriptionError
	if errors.As(err, &engine) {
		return MsgEngineFailed
	}
	return err.Error()
}

func (s *VideoService) persistResult(ctx context.Context, video *domain.Video) {
	if err := s.videos.UpdateResult(ctx, video); err != nil {
		logger.Error.Printf("failed to persist result for %s: %v", video.ID, err)
	}
}

// tempFiles tracks pipeline artifacts for unconditional removal. Paths
// that were registered but never created are tolerated.
type tempFiles struct {
	paths []string
}

func (t *tempFiles) add(path string) {
	t.paths = append(t.paths, path)
}

func (t *tempFiles) removeAll() {
	for _, path := range t.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Error.Printf("failed to remove temp file %s: %v", path, err)
		}
	}
}
