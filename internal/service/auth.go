package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("expired token")
	ErrInvalidCreds    = errors.New("invalid credentials")
	ErrUserExists      = errors.New("user already exists")
	ErrWeakPassword    = errors.New("password does not meet requirements")
	ErrInvalidUsername = errors.New("invalid username")
)

const tokenLifetime = 7 * 24 * time.Hour

func validateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("must be at least 3 characters")
	}
	if len(username) > 50 {
		return fmt.Errorf("must be at most 50 characters")
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return fmt.Errorf("must contain only letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrWeakPassword)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	var missing []string
	if !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if !hasNumber {
		missing = append(missing, "number")
	}
	if !hasSpecial {
		missing = append(missing, "special character")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: must contain at least one %s", ErrWeakPassword, formatMissingRequirements(missing))
	}

	return nil
}

func formatMissingRequirements(missing []string) string {
	if len(missing) == 1 {
		return missing[0]
	}
	if len(missing) == 2 {
		return missing[0] + " and " + missing[1]
	}

	result := ""
	for i, req := range missing {
		if i == len(missing)-1 {
			result += ", and " + req
		} else if i > 0 {
			result += ", " + req
		} else {
			result = req
		}
	}
	return result
}

type AuthService struct {
	store     port.UserStore
	secretKey string
}

func NewAuthService(store port.UserStore, secretKey string) *AuthService {
	return &AuthService{
		store:     store,
		secretKey: secretKey,
	}
}

// Register creates a new account. Usernames are unique; duplicates map
// to ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsername, err)
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUser(ctx, username); err == nil {
		return nil, ErrUserExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.store.CreateUser(ctx, username, string(passwordHash))
}

// Login verifies the credentials and returns the user with a fresh
// token. Unknown usernames and wrong passwords are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}

	token := s.generateToken(user.ID)
	return user, token, nil
}

func (s *AuthService) generateToken(userID int64) string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	id := strconv.FormatInt(userID, 10)
	mac := hmac.New(sha256.New, []byte(s.secretKey))
	mac.Write([]byte(timestamp + ":" + id))
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))

	return timestamp + ":" + id + ":" + signature
}

func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	timestamp, userIDStr, signature := parts[0], parts[1], parts[2]

	mac := hmac.New(sha256.New, []byte(s.secretKey))
	mac.Write([]byte(timestamp + ":" + userIDStr))
	expectedSignature := base64.URLEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, ErrInvalidToken
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(time.Unix(ts, 0).Add(tokenLifetime)) {
		return nil, ErrExpiredToken
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}
