package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/insightreel/internal/adapter/http/ratelimit"
	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user injected by
// AuthMiddleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// AuthMiddleware authenticates the request from its bearer token and
// stores the user in the request context.
func AuthMiddleware(authSvc AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		user, err := authSvc.ValidateToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// AdminOnly rejects authenticated users without the admin role. Must be
// wrapped by AuthMiddleware.
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID                   int64  `json:"id"`
	Username             string `json:"username"`
	Role                 string `json:"role"`
	TranscriptionEnabled bool   `json:"transcription_enabled"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:                   user.ID,
		Username:             user.Username,
		Role:                 string(user.Role),
		TranscriptionEnabled: user.TranscriptionEnabled,
	}
}

func RegisterHandler(authSvc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := authSvc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserExists):
				writeError(w, http.StatusConflict, "username already taken")
			case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrWeakPassword):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "registration failed")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

func LoginHandler(authSvc AuthService, limiter *ratelimit.LoginRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := clientAddr(r)
		if allowed, retryAfter := limiter.Check(clientID); !allowed {
			w.Header().Set("Retry-After", retryAfter.Round(time.Second).String())
			writeError(w, http.StatusTooManyRequests, "too many login attempts")
			return
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, token, err := authSvc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		limiter.Reset(clientID)

		writeJSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  toUserResponse(user),
		})
	}
}

func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(user))
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
