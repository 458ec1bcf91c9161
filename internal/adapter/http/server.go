package http

import (
	"net/http"
	"time"

	"github.com/bnema/insightreel/internal/adapter/http/middleware"
	"github.com/bnema/insightreel/internal/adapter/http/ratelimit"
)

type Server struct {
	mux         *http.ServeMux
	handlers    *Handlers
	authSvc     AuthService
	rateLimiter *ratelimit.LoginRateLimiter
}

func NewServer(authSvc AuthService, videos VideoService, settings SettingsService, maxSizeMB int) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		handlers: NewHandlers(videos, settings, maxSizeMB),
		authSvc:  authSvc,
		rateLimiter: ratelimit.NewLoginRateLimiter(
			5,
			15*time.Minute,
			30*time.Minute,
		),
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/auth/register", RegisterHandler(s.authSvc))
	s.mux.HandleFunc("POST /api/auth/login", LoginHandler(s.authSvc, s.rateLimiter))
	s.mux.HandleFunc("GET /api/auth/me", s.authed(MeHandler()))

	s.mux.HandleFunc("POST /api/videos", s.authed(s.handlers.Upload()))
	s.mux.HandleFunc("POST /api/videos/youtube", s.authed(s.handlers.ImportYouTube()))
	s.mux.HandleFunc("GET /api/videos", s.authed(s.handlers.ListVideos()))
	s.mux.HandleFunc("GET /api/videos/{id}", s.authed(s.handlers.GetVideo()))
	s.mux.HandleFunc("DELETE /api/videos/{id}", s.authed(s.handlers.DeleteVideo()))
	s.mux.HandleFunc("GET /api/videos/{id}/play", s.authed(s.handlers.PlayVideo()))

	s.mux.HandleFunc("GET /api/search", s.authed(s.handlers.SearchVideos()))

	s.mux.HandleFunc("GET /api/settings/transcription", s.authed(s.handlers.UserTranscriptionSetting()))
	s.mux.HandleFunc("PUT /api/settings/transcription", s.authed(s.handlers.SetUserTranscriptionSetting()))

	s.mux.HandleFunc("GET /api/admin/transcription", s.authed(AdminOnly(s.handlers.GlobalTranscriptionSetting())))
	s.mux.HandleFunc("PUT /api/admin/transcription", s.authed(AdminOnly(s.handlers.SetGlobalTranscriptionSetting())))
}

func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return AuthMiddleware(s.authSvc, next)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(s.mux).ServeHTTP(w, r)
}
