package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	// TranscriptionEnabled is the per-user authorization gate. New users
	// default to enabled.
	TranscriptionEnabled bool      `json:"is_transcription_enabled"`
	CreatedAt            time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
