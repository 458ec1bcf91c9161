// Package http is the JSON API surface over the video catalog and the
// ingestion pipeline.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/insightreel/internal/adapter/http/validation"
	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
)

type VideoService interface {
	SubmitUpload(ctx context.Context, user *domain.User, title, filename, contentType string, file io.Reader) (*domain.Video, error)
	SubmitYouTube(ctx context.Context, user *domain.User, rawURL, title string) (*domain.Video, error)
	List(ctx context.Context, user *domain.User) ([]*domain.Video, error)
	Get(ctx context.Context, id string, user *domain.User) (*domain.Video, error)
	Delete(ctx context.Context, id string, user *domain.User) error
	PlayURL(ctx context.Context, id string, user *domain.User) (string, error)
	Search(ctx context.Context, query string, user *domain.User) ([]*domain.Video, error)
}

type SettingsService interface {
	GlobalTranscription(ctx context.Context) (bool, error)
	SetGlobalTranscription(ctx context.Context, enabled bool) (bool, error)
	UserTranscription(ctx context.Context, userID int64) (bool, error)
	SetUserTranscription(ctx context.Context, userID int64, enabled bool) error
}

type Handlers struct {
	videos        VideoService
	settings      SettingsService
	maxUploadSize int64
}

func NewHandlers(videos VideoService, settings SettingsService, maxSizeMB int) *Handlers {
	return &Handlers{
		videos:        videos,
		settings:      settings,
		maxUploadSize: int64(maxSizeMB) << 20,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps catalog lookups to status codes. Missing and
// foreign-owned records are indistinguishable on purpose.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	logger.Error.Printf("request failed: %v", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// Upload accepts a multipart form with a "video" file part and an
// optional "title" field, then runs the pipeline on it before
// responding.
func (h *Handlers) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
			return
		}
		defer r.MultipartForm.RemoveAll() //nolint:errcheck

		file, header, err := r.FormFile("video")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing video file")
			return
		}
		defer file.Close() //nolint:errcheck

		filename := validation.SanitizeFilename(header.Filename)
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		video, err := h.videos.SubmitUpload(r.Context(), user, r.FormValue("title"), filename, contentType, file)
		if err != nil {
			logger.Error.Printf("upload submission failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to process upload")
			return
		}
		writeJSON(w, http.StatusCreated, video)
	}
}

// ImportYouTube registers a remote video by URL and runs the pipeline
// on it.
func (h *Handlers) ImportYouTube() http.HandlerFunc {
	type request struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		video, err := h.videos.SubmitYouTube(r.Context(), user, req.URL, req.Title)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to import: %v", err))
			return
		}
		writeJSON(w, http.StatusCreated, video)
	}
}

func (h *Handlers) ListVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		videos, err := h.videos.List(r.Context(), user)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if videos == nil {
			videos = []*domain.Video{}
		}
		writeJSON(w, http.StatusOK, videos)
	}
}

func (h *Handlers) GetVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		video, err := h.videos.Get(r.Context(), r.PathValue("id"), user)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, video)
	}
}

func (h *Handlers) DeleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		if err := h.videos.Delete(r.Context(), r.PathValue("id"), user); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// PlayVideo returns the URL the client should stream from.
func (h *Handlers) PlayVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		url, err := h.videos.PlayURL(r.Context(), r.PathValue("id"), user)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func (h *Handlers) SearchVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		videos, err := h.videos.Search(r.Context(), r.URL.Query().Get("q"), user)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if videos == nil {
			videos = []*domain.Video{}
		}
		writeJSON(w, http.StatusOK, videos)
	}
}

type transcriptionSetting struct {
	Enabled bool `json:"enabled"`
}

// UserTranscriptionSetting reads the caller's own transcription flag.
func (h *Handlers) UserTranscriptionSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		enabled, err := h.settings.UserTranscription(r.Context(), user.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transcriptionSetting{Enabled: enabled})
	}
}

func (h *Handlers) SetUserTranscriptionSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		var req transcriptionSetting
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.settings.SetUserTranscription(r.Context(), user.ID, req.Enabled); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transcriptionSetting{Enabled: req.Enabled})
	}
}

// GlobalTranscriptionSetting reads the instance-wide switch. Admin only.
func (h *Handlers) GlobalTranscriptionSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enabled, err := h.settings.GlobalTranscription(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transcriptionSetting{Enabled: enabled})
	}
}

func (h *Handlers) SetGlobalTranscriptionSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transcriptionSetting
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		enabled, err := h.settings.SetGlobalTranscription(r.Context(), req.Enabled)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transcriptionSetting{Enabled: enabled})
	}
}
