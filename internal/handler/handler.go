// Package handler exposes the admin panel's API surface over HTTP.
package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"gamehub-admin/internal/auth"
	"gamehub-admin/internal/service"
)

// Handler wires the services to the HTTP routes.
type Handler struct {
	dashboard  *service.DashboardService
	settings   *service.SettingsService
	ingest     *service.IngestService
	provider   auth.Provider
	sessions   *auth.Sessions
	adminEmail string
}

// New creates the handler.
func New(
	dashboard *service.DashboardService,
	settings *service.SettingsService,
	ingest *service.IngestService,
	provider auth.Provider,
	sessions *auth.Sessions,
	adminEmail string,
) *Handler {
	return &Handler{
		dashboard:  dashboard,
		settings:   settings,
		ingest:     ingest,
		provider:   provider,
		sessions:   sessions,
		adminEmail: adminEmail,
	}
}

// Routes builds the router: a public click-ingest endpoint plus the
// authenticated admin API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/api/health", h.handleHealth)
	r.Post("/api/events", h.handleIngest)
	r.Post("/api/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/api/logout", h.handleLogout)

		r.Get("/api/dashboard", h.handleDashboard)
		r.Put("/api/dashboard/window", h.handleSelectWindow)
		r.Get("/api/export", h.handleExportCSV)
		r.Get("/api/audit", h.handleAuditTrail)
		r.Get("/api/games", h.handleGameSearch)

		r.Get("/api/settings", h.handleGetSettings)
		r.Post("/api/settings/toggle", h.handleToggle)
		r.Post("/api/settings/featured", h.handleSetFeatured)
		r.Post("/api/settings/bulk", h.handleBulkSet)
		r.Post("/api/settings/bulk-toggle", h.handleBulkToggle)
		r.Post("/api/settings/popularity", h.handleSetPopularity)
		r.Put("/api/settings/globals", h.handleSetGlobals)
		r.Post("/api/settings/save", h.handleSave)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAdmin gates a route on a valid bearer token bound to the one
// configured admin email.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := h.sessions.Email(bearerToken(r))
		if !ok || email != h.adminEmail {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return token
	}
	return ""
}

// clientIP extracts the originating address, honoring X-Forwarded-For from
// a fronting proxy.
func clientIP(r *http.Request) net.IP {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return net.ParseIP(r.RemoteAddr)
	}
	return net.ParseIP(host)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
