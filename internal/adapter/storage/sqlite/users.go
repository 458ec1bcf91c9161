package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port"
)

const userColumns = "id, username, password_hash, role, transcription_enabled, created_at"

func (s *Store) GetUser(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, transcription_enabled, created_at)
		 VALUES (?, ?, 'user', 1, ?)`,
		username, passwordHash, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user id: %w", err)
	}
	return &domain.User{
		ID:                   id,
		Username:             username,
		PasswordHash:         passwordHash,
		Role:                 domain.RoleUser,
		TranscriptionEnabled: true,
		CreatedAt:            now,
	}, nil
}

func (s *Store) SetTranscriptionEnabled(ctx context.Context, id int64, enabled bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET transcription_enabled = ? WHERE id = ?`, enabled, id)
	if err != nil {
		return fmt.Errorf("update user gate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role, createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role,
		&u.TranscriptionEnabled, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = domain.Role(role)
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

var _ port.UserStore = (*Store)(nil)
