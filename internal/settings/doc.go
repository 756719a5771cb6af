package settings

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"gamehub-admin/internal/model"
)

// The persisted document is flat: the two global keys below live alongside
// game-id keys, exactly as the hub site reads it.
const (
	keyMaintenanceMode = "maintenanceMode"
	keySystemMessage   = "systemMessage"
)

// gameConfigDoc is the wire form of one game entry. Visible is a pointer so
// that a key absent from an old document keeps its default-true meaning.
type gameConfigDoc struct {
	Visible     *bool `json:"visible,omitempty"`
	IsFeatured  bool  `json:"isFeatured,omitempty"`
	IsNew       bool  `json:"isNew,omitempty"`
	IsHot       bool  `json:"isHot,omitempty"`
	IsUpcoming  bool  `json:"isUpcoming,omitempty"`
	Maintenance bool  `json:"maintenance,omitempty"`
	Popularity  int   `json:"popularity,omitempty"`
}

// ParseDocument splits the flat persisted record into the typed settings
// aggregate: the two named global keys are extracted and every remaining
// key is treated as a game-id-indexed config entry. A nil or empty document
// yields the zero settings with an empty game map.
func ParseDocument(raw []byte) (model.HubSettings, error) {
	out := model.HubSettings{Games: map[int]model.GameConfig{}}
	if len(raw) == 0 {
		return out, nil
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(raw, &flat); err != nil {
		return out, fmt.Errorf("failed to parse settings document: %w", err)
	}

	for key, val := range flat {
		switch key {
		case keyMaintenanceMode:
			if err := json.Unmarshal(val, &out.MaintenanceMode); err != nil {
				return out, fmt.Errorf("bad %s value: %w", key, err)
			}
		case keySystemMessage:
			if err := json.Unmarshal(val, &out.SystemMessage); err != nil {
				return out, fmt.Errorf("bad %s value: %w", key, err)
			}
		default:
			id, err := strconv.Atoi(key)
			if err != nil {
				// Unknown non-numeric keys are dropped rather than erroring;
				// the document is rewritten wholesale on save anyway.
				continue
			}
			var doc gameConfigDoc
			if err := json.Unmarshal(val, &doc); err != nil {
				return out, fmt.Errorf("bad config for game %d: %w", id, err)
			}
			out.Games[id] = doc.toConfig()
		}
	}

	return out, nil
}

// MergeDocument flattens the typed settings back into the single persisted
// record: all game entries plus the two global keys.
func MergeDocument(s model.HubSettings) ([]byte, error) {
	flat := make(map[string]any, len(s.Games)+2)
	flat[keyMaintenanceMode] = s.MaintenanceMode
	flat[keySystemMessage] = s.SystemMessage
	for id, cfg := range s.Games {
		flat[strconv.Itoa(id)] = fromConfig(cfg)
	}

	raw, err := json.Marshal(flat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings document: %w", err)
	}
	return raw, nil
}

func (d *gameConfigDoc) toConfig() model.GameConfig {
	visible := true
	if d.Visible != nil {
		visible = *d.Visible
	}
	return model.GameConfig{
		Visible:     visible,
		IsFeatured:  d.IsFeatured,
		IsNew:       d.IsNew,
		IsHot:       d.IsHot,
		IsUpcoming:  d.IsUpcoming,
		Maintenance: d.Maintenance,
		Popularity:  d.Popularity,
	}
}

func fromConfig(cfg model.GameConfig) gameConfigDoc {
	visible := cfg.Visible
	return gameConfigDoc{
		Visible:     &visible,
		IsFeatured:  cfg.IsFeatured,
		IsNew:       cfg.IsNew,
		IsHot:       cfg.IsHot,
		IsUpcoming:  cfg.IsUpcoming,
		Maintenance: cfg.Maintenance,
		Popularity:  cfg.Popularity,
	}
}
