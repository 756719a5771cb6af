package handler

import (
	"errors"
	"net/http"

	"gamehub-admin/internal/settings"
)

// handleGetSettings returns the current working copy of the hub settings.
func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Current())
}

type toggleRequest struct {
	GameID int    `json:"gameId"`
	Field  string `json:"field"`
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.Toggle(req.GameID, req.Field); err != nil {
		if errors.Is(err, settings.ErrUnknownField) {
			writeError(w, http.StatusBadRequest, "unknown field: "+req.Field)
			return
		}
		writeError(w, http.StatusInternalServerError, "toggle failed")
		return
	}
	writeJSON(w, http.StatusOK, h.settings.Current())
}

type featuredRequest struct {
	GameID int `json:"gameId"`
}

func (h *Handler) handleSetFeatured(w http.ResponseWriter, r *http.Request) {
	var req featuredRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.settings.SetFeatured(req.GameID)
	writeJSON(w, http.StatusOK, h.settings.Current())
}

type bulkRequest struct {
	GameIDs []int  `json:"gameIds"`
	Field   string `json:"field"`
	Value   bool   `json:"value"`
}

func (h *Handler) handleBulkSet(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil || len(req.GameIDs) == 0 {
		writeError(w, http.StatusBadRequest, "gameIds and field are required")
		return
	}

	if err := h.settings.BulkSet(req.GameIDs, req.Field, req.Value); err != nil {
		writeError(w, http.StatusBadRequest, "unknown field: "+req.Field)
		return
	}
	writeJSON(w, http.StatusOK, h.settings.Current())
}

// handleBulkToggle implements the bulk button semantics: if every selected
// game already has the field on, turn it off for all of them; otherwise
// turn it on for all of them.
func (h *Handler) handleBulkToggle(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil || len(req.GameIDs) == 0 {
		writeError(w, http.StatusBadRequest, "gameIds and field are required")
		return
	}

	target := !h.settings.IsBulkActive(req.GameIDs, req.Field)
	if err := h.settings.BulkSet(req.GameIDs, req.Field, target); err != nil {
		writeError(w, http.StatusBadRequest, "unknown field: "+req.Field)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"value":    target,
		"settings": h.settings.Current(),
	})
}

type popularityRequest struct {
	GameID     int `json:"gameId"`
	Popularity int `json:"popularity"`
}

func (h *Handler) handleSetPopularity(w http.ResponseWriter, r *http.Request) {
	var req popularityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.settings.SetPopularity(req.GameID, req.Popularity)
	writeJSON(w, http.StatusOK, h.settings.Current())
}

type globalsRequest struct {
	MaintenanceMode *bool   `json:"maintenanceMode,omitempty"`
	SystemMessage   *string `json:"systemMessage,omitempty"`
}

// handleSetGlobals updates the global settings; absent fields are left
// untouched so the two can be edited independently.
func (h *Handler) handleSetGlobals(w http.ResponseWriter, r *http.Request) {
	var req globalsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.MaintenanceMode != nil {
		h.settings.SetMaintenanceMode(*req.MaintenanceMode)
	}
	if req.SystemMessage != nil {
		h.settings.SetSystemMessage(*req.SystemMessage)
	}
	writeJSON(w, http.StatusOK, h.settings.Current())
}

// handleSave commits the working copy to the store. The response reports
// the audited change lines; an empty list means the write happened but
// nothing had changed.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	diff, err := h.settings.Save(r.Context(), h.adminEmail)
	if err != nil {
		// Local edits are kept; the admin can simply save again.
		writeError(w, http.StatusBadGateway, "save failed")
		return
	}
	if diff == nil {
		diff = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"changes": diff})
}
