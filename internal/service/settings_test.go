package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port/mocks"
)

func TestSettingsService_GlobalSwitch(t *testing.T) {
	settings := &mocks.SettingsStoreMock{}
	settings.On("FindOrCreate", mock.Anything, domain.SettingGlobalTranscription).
		Return(&domain.AppSetting{Key: domain.SettingGlobalTranscription, IsEnabled: true}, nil)
	settings.On("Update", mock.Anything, domain.SettingGlobalTranscription, false).
		Return(&domain.AppSetting{Key: domain.SettingGlobalTranscription, IsEnabled: false}, nil)

	svc := NewSettingsService(settings, &mocks.UserStoreMock{})

	enabled, err := svc.GlobalTranscription(t.Context())
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = svc.SetGlobalTranscription(t.Context(), false)
	require.NoError(t, err)
	assert.False(t, enabled)
	settings.AssertExpectations(t)
}

func TestSettingsService_UserFlag(t *testing.T) {
	users := &mocks.UserStoreMock{}
	users.On("GetUserByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, TranscriptionEnabled: false}, nil)
	users.On("SetTranscriptionEnabled", mock.Anything, int64(3), true).Return(nil)

	svc := NewSettingsService(&mocks.SettingsStoreMock{}, users)

	enabled, err := svc.UserTranscription(t.Context(), 3)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, svc.SetUserTranscription(t.Context(), 3, true))
	users.AssertExpectations(t)
}
