// Package settings implements the shared configuration aggregate: the
// in-memory editor for per-game flags and global settings, the flat document
// codec used by the store, and the before/after diff that feeds the audit
// trail. The editor mutates freely in memory; nothing is persisted until an
// explicit save.
package settings

import (
	"errors"

	"gamehub-admin/internal/model"
)

// ErrUnknownField is returned when a toggle or bulk operation names a field
// that is not a boolean flag on the game config.
var ErrUnknownField = errors.New("unknown game config field")

// Editor holds the working copy of the hub settings plus the shadow copy of
// the last-loaded-or-saved state, retained solely to compute the audit diff.
// It is not safe for concurrent use; the service layer serializes access
// (there is a single privileged writer session).
type Editor struct {
	current model.HubSettings
	shadow  model.HubSettings
}

// NewEditor returns an editor with empty state. Load must be called with the
// persisted document before edits are meaningful.
func NewEditor() *Editor {
	return &Editor{
		current: model.HubSettings{Games: map[int]model.GameConfig{}},
		shadow:  model.HubSettings{Games: map[int]model.GameConfig{}},
	}
}

// Load replaces the working copy with a freshly loaded document and
// snapshots it as the shadow state. The copies are structural, so later
// edits never leak into the shadow.
func (e *Editor) Load(doc model.HubSettings) {
	e.current = cloneSettings(doc)
	e.shadow = cloneSettings(doc)
}

// Current returns a structural copy of the working state.
func (e *Editor) Current() model.HubSettings {
	return cloneSettings(e.current)
}

// Shadow returns a structural copy of the last known persisted state.
func (e *Editor) Shadow() model.HubSettings {
	return cloneSettings(e.shadow)
}

// MarkSaved promotes the working copy to the shadow state after a
// successful persist.
func (e *Editor) MarkSaved() {
	e.shadow = cloneSettings(e.current)
}

// game returns the config entry for an id, falling back to the defaults
// (visible, no flags, zero boost) when the document has no entry yet.
func (e *Editor) game(id int) model.GameConfig {
	if cfg, ok := e.current.Games[id]; ok {
		return cfg
	}
	return model.GameConfig{Visible: true}
}

// Toggle flips one boolean field for one game.
func (e *Editor) Toggle(gameID int, field string) error {
	cfg := e.game(gameID)
	val, err := flagValue(&cfg, field)
	if err != nil {
		return err
	}
	if err := setFlag(&cfg, field, !val); err != nil {
		return err
	}
	e.current.Games[gameID] = cfg
	return nil
}

// SetFeatured marks exactly one game as featured and clears the flag on
// every other currently-known game. Mutual exclusivity is enforced here,
// not by the store.
func (e *Editor) SetFeatured(gameID int) {
	for id, cfg := range e.current.Games {
		if cfg.IsFeatured {
			cfg.IsFeatured = false
			e.current.Games[id] = cfg
		}
	}
	cfg := e.game(gameID)
	cfg.IsFeatured = true
	e.current.Games[gameID] = cfg
}

// BulkSet applies one field assignment across a set of game ids.
func (e *Editor) BulkSet(gameIDs []int, field string, value bool) error {
	// Validate before mutating so the bulk application stays atomic.
	var probe model.GameConfig
	if _, err := flagValue(&probe, field); err != nil {
		return err
	}
	for _, id := range gameIDs {
		cfg := e.game(id)
		_ = setFlag(&cfg, field, value)
		e.current.Games[id] = cfg
	}
	return nil
}

// IsBulkActive reports whether every game in the set currently has the field
// truthy. For "visible" an id with no explicit entry counts as visible
// (default-true semantics). An empty set is never active. This AND-reduction
// decides whether a bulk toggle's next action turns the field on or off.
func (e *Editor) IsBulkActive(gameIDs []int, field string) bool {
	if len(gameIDs) == 0 {
		return false
	}
	for _, id := range gameIDs {
		cfg := e.game(id)
		val, err := flagValue(&cfg, field)
		if err != nil || !val {
			return false
		}
	}
	return true
}

// SetPopularity sets the admin-assigned boost value for one game.
// Any sign is accepted.
func (e *Editor) SetPopularity(gameID, popularity int) {
	cfg := e.game(gameID)
	cfg.Popularity = popularity
	e.current.Games[gameID] = cfg
}

// SetMaintenanceMode sets the global maintenance flag.
func (e *Editor) SetMaintenanceMode(on bool) {
	e.current.MaintenanceMode = on
}

// SetSystemMessage sets the global announcement text. Empty hides the banner.
func (e *Editor) SetSystemMessage(msg string) {
	e.current.SystemMessage = msg
}

// PendingDiff describes the unsaved changes against the shadow state.
func (e *Editor) PendingDiff() []string {
	return Diff(e.shadow, e.current)
}

// flagValue reads a boolean flag by its document field name.
func flagValue(cfg *model.GameConfig, field string) (bool, error) {
	switch field {
	case model.FieldVisible:
		return cfg.Visible, nil
	case model.FieldFeatured:
		return cfg.IsFeatured, nil
	case model.FieldNew:
		return cfg.IsNew, nil
	case model.FieldHot:
		return cfg.IsHot, nil
	case model.FieldUpcoming:
		return cfg.IsUpcoming, nil
	case model.FieldMaintenance:
		return cfg.Maintenance, nil
	default:
		return false, ErrUnknownField
	}
}

// setFlag writes a boolean flag by its document field name.
func setFlag(cfg *model.GameConfig, field string, value bool) error {
	switch field {
	case model.FieldVisible:
		cfg.Visible = value
	case model.FieldFeatured:
		cfg.IsFeatured = value
	case model.FieldNew:
		cfg.IsNew = value
	case model.FieldHot:
		cfg.IsHot = value
	case model.FieldUpcoming:
		cfg.IsUpcoming = value
	case model.FieldMaintenance:
		cfg.Maintenance = value
	default:
		return ErrUnknownField
	}
	return nil
}

// cloneSettings makes a structural copy of a settings document.
func cloneSettings(s model.HubSettings) model.HubSettings {
	out := model.HubSettings{
		MaintenanceMode: s.MaintenanceMode,
		SystemMessage:   s.SystemMessage,
		Games:           make(map[int]model.GameConfig, len(s.Games)),
	}
	for id, cfg := range s.Games {
		out.Games[id] = cfg
	}
	return out
}
