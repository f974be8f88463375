package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"snowrent/internal/clock"
	"snowrent/internal/dto"
)

// Mounter is implemented by every module controller.
type Mounter interface {
	Routes(r chi.Router)
}

type Modules struct {
	Auth         Mounter
	Equipment    Mounter
	Reservations Mounter
	Intake       Mounter
	// RequireAuth guards the reservation routes.
	RequireAuth func(http.Handler) http.Handler
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRouter(frontendURL string, modules Modules, clk clock.Clock, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dto.NewErrorResponse(middleware.GetReqID(r.Context()), http.StatusNotFound, "NOT_FOUND", "route not found"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, HealthResponse{
				Status:    "OK",
				Message:   "snow rental API is running",
				Timestamp: clk.Now(),
			})
		})

		r.Route("/auth", modules.Auth.Routes)
		r.Route("/equipment", modules.Equipment.Routes)
		r.Route("/reservations", func(r chi.Router) {
			r.Use(modules.RequireAuth)
			modules.Reservations.Routes(r)
		})
		r.Route("/reservation", modules.Intake.Routes)
	})

	return r
}

// accessLog writes one line per request through zap.
func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
