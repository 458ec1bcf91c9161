package service

import (
	"context"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
	"github.com/bnema/insightreel/internal/port"
)

// SettingsService owns the two transcription authorization gates: the
// instance-wide switch and each user's personal flag. The pipeline
// consults both before doing any work.
type SettingsService struct {
	settings port.SettingsStore
	users    port.UserStore
}

func NewSettingsService(settings port.SettingsStore, users port.UserStore) *SettingsService {
	return &SettingsService{
		settings: settings,
		users:    users,
	}
}

// GlobalTranscription reads the instance-wide switch, creating it
// enabled on first access.
func (s *SettingsService) GlobalTranscription(ctx context.Context) (bool, error) {
	setting, err := s.settings.FindOrCreate(ctx, domain.SettingGlobalTranscription)
	if err != nil {
		return false, err
	}
	return setting.IsEnabled, nil
}

func (s *SettingsService) SetGlobalTranscription(ctx context.Context, enabled bool) (bool, error) {
	setting, err := s.settings.Update(ctx, domain.SettingGlobalTranscription, enabled)
	if err != nil {
		return false, err
	}
	logger.Info.Printf("global transcription switch set to %v", enabled)
	return setting.IsEnabled, nil
}

// UserTranscription reads the user's personal flag from a fresh copy of
// the record rather than the request's cached user.
func (s *SettingsService) UserTranscription(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.TranscriptionEnabled, nil
}

func (s *SettingsService) SetUserTranscription(ctx context.Context, userID int64, enabled bool) error {
	if err := s.users.SetTranscriptionEnabled(ctx, userID, enabled); err != nil {
		return err
	}
	logger.Info.Printf("transcription flag for user=%d set to %v", userID, enabled)
	return nil
}
