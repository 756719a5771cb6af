package handler

import (
	"net/http"

	"gamehub-admin/internal/model"
	"gamehub-admin/internal/service"
)

// handleDashboard returns the fully derived dashboard snapshot.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Snapshot())
}

type windowRequest struct {
	Days int `json:"days"`
}

// handleSelectWindow changes the trailing window and returns the snapshot
// recomputed over the refreshed buffer.
func (h *Handler) handleSelectWindow(w http.ResponseWriter, r *http.Request) {
	var req windowRequest
	if err := decodeJSON(r, &req); err != nil || req.Days <= 0 {
		writeError(w, http.StatusBadRequest, "days must be a positive number")
		return
	}

	if err := h.dashboard.SelectWindow(r.Context(), req.Days); err != nil {
		writeError(w, http.StatusBadGateway, "failed to refresh events")
		return
	}
	writeJSON(w, http.StatusOK, h.dashboard.Snapshot())
}

// handleExportCSV streams the raw activity log as a CSV download.
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboard.ExportCSV()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="gamehub_activity_logs.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleAuditTrail returns the most recent admin audit entries.
func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	entries, err := h.settings.AuditTrail(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to load audit trail")
		return
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleGameSearch filters the game catalogue by title substring or id.
func (h *Handler) handleGameSearch(w http.ResponseWriter, r *http.Request) {
	games := model.SearchGames(r.URL.Query().Get("search"))
	writeJSON(w, http.StatusOK, games)
}

// handleIngest is the public producer endpoint: the hub site posts one
// click per interaction and the service enriches it with server time,
// device, and location attribution.
func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	var in service.ClickInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.ingest.Record(r.Context(), in, r.UserAgent(), clientIP(r))
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to record event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}
