package sqlite

import (
	"context"
	"fmt"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port"
)

// FindOrCreate reads a setting, inserting it enabled on first access.
// The upsert guarantees a row always exists so absence is never an
// error for gate checks.
func (s *Store) FindOrCreate(ctx context.Context, key string) (*domain.AppSetting, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO app_settings (key, is_enabled) VALUES (?, 1)
		 ON CONFLICT(key) DO NOTHING`, key); err != nil {
		return nil, fmt.Errorf("ensure setting %s: %w", key, err)
	}

	var enabled bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT is_enabled FROM app_settings WHERE key = ?`, key).Scan(&enabled); err != nil {
		return nil, fmt.Errorf("read setting %s: %w", key, err)
	}
	return &domain.AppSetting{Key: key, IsEnabled: enabled}, nil
}

func (s *Store) Update(ctx context.Context, key string, enabled bool) (*domain.AppSetting, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO app_settings (key, is_enabled) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET is_enabled = excluded.is_enabled`,
		key, enabled); err != nil {
		return nil, fmt.Errorf("update setting %s: %w", key, err)
	}
	return &domain.AppSetting{Key: key, IsEnabled: enabled}, nil
}

var _ port.SettingsStore = (*Store)(nil)
