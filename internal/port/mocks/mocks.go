// Package mocks provides testify mocks for the port interfaces.
package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port"
)

type VideoStoreMock struct {
	mock.Mock
}

func (m *VideoStoreMock) Save(ctx context.Context, v *domain.Video) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VideoStoreMock) Get(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) GetOwned(ctx context.Context, id string, ownerID int64, admin bool) (*domain.Video, error) {
	args := m.Called(ctx, id, ownerID, admin)
	if v := args.Get(0); v != nil {
		return v.(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) List(ctx context.Context, ownerID int64, admin bool) ([]*domain.Video, error) {
	args := m.Called(ctx, ownerID, admin)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *VideoStoreMock) UpdateResult(ctx context.Context, v *domain.Video) error {
	return m.Called(ctx, v).Error(0)
}

func (m *VideoStoreMock) SearchCompleted(ctx context.Context, query string, ownerID int64, admin bool) ([]*domain.Video, error) {
	args := m.Called(ctx, query, ownerID, admin)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

type UserStoreMock struct {
	mock.Mock
}

func (m *UserStoreMock) GetUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStoreMock) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStoreMock) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, username, passwordHash)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStoreMock) SetTranscriptionEnabled(ctx context.Context, id int64, enabled bool) error {
	return m.Called(ctx, id, enabled).Error(0)
}

type SettingsStoreMock struct {
	mock.Mock
}

func (m *SettingsStoreMock) FindOrCreate(ctx context.Context, key string) (*domain.AppSetting, error) {
	args := m.Called(ctx, key)
	if s := args.Get(0); s != nil {
		return s.(*domain.AppSetting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettingsStoreMock) Update(ctx context.Context, key string, enabled bool) (*domain.AppSetting, error) {
	args := m.Called(ctx, key, enabled)
	if s := args.Get(0); s != nil {
		return s.(*domain.AppSetting), args.Error(1)
	}
	return nil, args.Error(1)
}

type ObjectStoreMock struct {
	mock.Mock
}

func (m *ObjectStoreMock) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

func (m *ObjectStoreMock) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ObjectStoreMock) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *ObjectStoreMock) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

type VideoPlatformMock struct {
	mock.Mock
}

func (m *VideoPlatformMock) Details(ctx context.Context, videoURL string) (*port.VideoDetails, error) {
	args := m.Called(ctx, videoURL)
	if d := args.Get(0); d != nil {
		return d.(*port.VideoDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

type MediaFetcherMock struct {
	mock.Mock
}

func (m *MediaFetcherMock) FetchCaptions(ctx context.Context, url, lang, destDir string) (string, error) {
	args := m.Called(ctx, url, lang, destDir)
	return args.String(0), args.Error(1)
}

func (m *MediaFetcherMock) FetchAudio(ctx context.Context, url, destDir string) (string, error) {
	args := m.Called(ctx, url, destDir)
	return args.String(0), args.Error(1)
}

type AudioNormalizerMock struct {
	mock.Mock
}

func (m *AudioNormalizerMock) Normalize(ctx context.Context, inputPath, outputPath string) error {
	return m.Called(ctx, inputPath, outputPath).Error(0)
}

type TranscriberMock struct {
	mock.Mock
}

func (m *TranscriberMock) Transcribe(ctx context.Context, pcmPath string) (string, []domain.WordTiming, error) {
	args := m.Called(ctx, pcmPath)
	var words []domain.WordTiming
	if w := args.Get(1); w != nil {
		words = w.([]domain.WordTiming)
	}
	return args.String(0), words, args.Error(2)
}

var (
	_ port.VideoStore      = (*VideoStoreMock)(nil)
	_ port.UserStore       = (*UserStoreMock)(nil)
	_ port.SettingsStore   = (*SettingsStoreMock)(nil)
	_ port.ObjectStore     = (*ObjectStoreMock)(nil)
	_ port.VideoPlatform   = (*VideoPlatformMock)(nil)
	_ port.MediaFetcher    = (*MediaFetcherMock)(nil)
	_ port.AudioNormalizer = (*AudioNormalizerMock)(nil)
	_ port.Transcriber     = (*TranscriberMock)(nil)
)
