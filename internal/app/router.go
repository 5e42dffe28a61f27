// Package app assembles the HTTP surface of the platform.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/learnovatex/platform/internal/adapter/httpserver"
	"github.com/learnovatex/platform/internal/config"
	"github.com/learnovatex/platform/internal/observability"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming
// spaces. An empty input means all origins.
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server, checks []Check) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(30 * time.Second))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(api chi.Router) {
		// Public endpoints, rate limited by IP.
		api.Group(func(pub chi.Router) {
			pub.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
			pub.Post("/auth/register", srv.HandleRegister())
			pub.Post("/auth/login", srv.HandleLogin())
		})

		api.Get("/health", srv.HandleHealth())
		api.Get("/status", srv.HandleStatus())
		api.Get("/leaderboard", srv.HandleLeaderboard())

		// Authenticated endpoints.
		api.Group(func(auth chi.Router) {
			auth.Use(httpserver.BearerAuth(srv.Auth))
			auth.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
			auth.Get("/auth/me", srv.HandleMe())
			auth.Post("/tutor/chat", srv.HandleTutorChat())
			auth.Post("/code/evaluate", srv.HandleCodeEvaluate())
			auth.Get("/code/submissions", srv.HandleCodeHistory())
			auth.Post("/resume/analyze", srv.HandleResumeAnalyze())
			auth.Get("/resume/history", srv.HandleResumeHistory())
			auth.Post("/interview/start", srv.HandleInterviewStart())
			auth.Post("/interview/evaluate", srv.HandleInterviewEvaluate())
			auth.Get("/dashboard/stats", srv.HandleDashboardStats())
			auth.Get("/achievements", srv.HandleAchievements())
		})
	})

	// Operational endpoints outside the /api prefix.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", ReadyzHandler(checks))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })

	return httpserver.SecurityHeaders(r)
}
