package port

import (
	"context"

	"github.com/bnema/insightreel/internal/domain"
)

type VideoStore interface {
	Save(ctx context.Context, v *domain.Video) error
	Get(ctx context.Context, id string) (*domain.Video, error)
	// GetOwned returns the video only if ownerID owns it; admins see
	// every video.
	GetOwned(ctx context.Context, id string, ownerID int64, admin bool) (*domain.Video, error)
	List(ctx context.Context, ownerID int64, admin bool) ([]*domain.Video, error)
	Delete(ctx context.Context, id string) error
	// UpdateResult persists the terminal status, transcript and word
	// timings in one write. Called exactly once per video.
	UpdateResult(ctx context.Context, v *domain.Video) error
	// SearchCompleted runs full-text search over transcripts of
	// completed videos only; non-completed transcripts are diagnostic
	// text and never indexed.
	SearchCompleted(ctx context.Context, query string, ownerID int64, admin bool) ([]*domain.Video, error)
}

type UserStore interface {
	GetUser(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	SetTranscriptionEnabled(ctx context.Context, id int64, enabled bool) error
}

type SettingsStore interface {
	// FindOrCreate returns the setting, inserting it enabled on first
	// access so absence is never an error.
	FindOrCreate(ctx context.Context, key string) (*domain.AppSetting, error)
	Update(ctx context.Context, key string, enabled bool) (*domain.AppSetting, error)
}
