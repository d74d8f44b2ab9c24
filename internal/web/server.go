// Package web exposes the JSON API. All /api routes require a Bearer API
// key; /healthz is open.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mkanyika/shamba/internal/domain"
	"github.com/mkanyika/shamba/internal/service"
	"github.com/mkanyika/shamba/internal/weather"
)

// userLookup is the subset of store.UserStore the server needs for auth.
type userLookup interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)
}

// Forecaster is satisfied by weather.Client; stubbed in tests. A nil
// Forecaster disables the weather endpoint.
type Forecaster interface {
	Forecast(ctx context.Context, latitude, longitude float64) (*weather.Report, error)
}

type Server struct {
	service *service.FarmService
	users   userLookup
	weather Forecaster
	mux     *http.ServeMux
	logger  *slog.Logger
}

func NewServer(svc *service.FarmService, users userLookup, wc Forecaster, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		users:   users,
		weather: wc,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("POST /api/farms", s.handleCreateFarm)
	s.mux.HandleFunc("GET /api/farms", s.handleListFarms)
	s.mux.HandleFunc("GET /api/farms/{id}", s.handleGetFarm)
	s.mux.HandleFunc("PUT /api/farms/{id}", s.handleUpdateFarm)

	s.mux.HandleFunc("POST /api/farms/{id}/activities", s.handleCreateActivity)
	s.mux.HandleFunc("GET /api/farms/{id}/activities", s.handleListActivities)
	s.mux.HandleFunc("PUT /api/activities/{id}", s.handleUpdateActivity)
	s.mux.HandleFunc("DELETE /api/activities/{id}", s.handleDeleteActivity)

	s.mux.HandleFunc("POST /api/farms/{id}/expenses", s.handleCreateExpense)
	s.mux.HandleFunc("GET /api/farms/{id}/expenses", s.handleListExpenses)
	s.mux.HandleFunc("POST /api/farms/{id}/sales", s.handleCreateSale)
	s.mux.HandleFunc("GET /api/farms/{id}/sales", s.handleListSales)

	s.mux.HandleFunc("POST /api/farms/{id}/health", s.handleCreateHealthRecord)
	s.mux.HandleFunc("GET /api/farms/{id}/health", s.handleListHealthRecords)
	s.mux.HandleFunc("PATCH /api/health/{id}/status", s.handleUpdateHealthStatus)
	s.mux.HandleFunc("POST /api/farms/{id}/diagnose", s.handleDiagnose)
	s.mux.HandleFunc("GET /api/images/{key}", s.handleGetImage)

	s.mux.HandleFunc("GET /api/farms/{id}/stats", s.handleFarmStats)
	s.mux.HandleFunc("GET /api/farms/{id}/stats/activities", s.handleActivityStats)
	s.mux.HandleFunc("GET /api/farms/{id}/stats/financial", s.handleFinancialSummary)
	s.mux.HandleFunc("GET /api/farms/{id}/stats/health", s.handleHealthStats)

	s.mux.HandleFunc("POST /api/chat", s.handleChat)
	s.mux.HandleFunc("GET /api/weather", s.handleWeather)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type contextKey string

const userContextKey contextKey = "user"

// userFrom returns the authenticated user attached by the auth middleware.
func userFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

// authenticate resolves the Bearer API key to a user and attaches it to the
// request context. /healthz bypasses auth.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		key, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || key == "" {
			errorJSON(w, http.StatusUnauthorized, "missing API key")
			return
		}

		user, err := s.users.GetByAPIKey(r.Context(), key)
		if err != nil {
			s.logger.Error("api key lookup failed", "error", err)
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}
		if user == nil {
			errorJSON(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.authenticate(s.mux))).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}
