package settings

import (
	"fmt"
	"sort"

	"gamehub-admin/internal/model"
)

// diffFlags lists the boolean fields in the order they appear on the panel.
var diffFlags = []string{
	model.FieldVisible,
	model.FieldFeatured,
	model.FieldNew,
	model.FieldHot,
	model.FieldUpcoming,
	model.FieldMaintenance,
}

// Diff produces the human-readable change summary between two settings
// states: one line per changed global setting, one line per flipped boolean
// flag, and one line per numeric popularity change. It returns an empty
// slice when nothing changed, in which case callers must skip the audit
// entry but still persist the document.
func Diff(old, new model.HubSettings) []string {
	var lines []string

	if old.SystemMessage != new.SystemMessage {
		lines = append(lines, fmt.Sprintf("Announcement changed from %q to %q",
			old.SystemMessage, new.SystemMessage))
	}
	if old.MaintenanceMode != new.MaintenanceMode {
		lines = append(lines, "Maintenance mode "+onOff(new.MaintenanceMode))
	}

	for _, id := range unionGameIDs(old, new) {
		oldCfg, hadOld := old.Games[id]
		if !hadOld {
			oldCfg = model.GameConfig{Visible: true}
		}
		newCfg, hadNew := new.Games[id]
		if !hadNew {
			newCfg = model.GameConfig{Visible: true}
		}

		name := gameLabel(id)
		for _, field := range diffFlags {
			oldVal, _ := flagValue(&oldCfg, field)
			newVal, _ := flagValue(&newCfg, field)
			if oldVal != newVal {
				lines = append(lines, fmt.Sprintf("%s: %s %s", name, field, onOff(newVal)))
			}
		}
		if oldCfg.Popularity != newCfg.Popularity {
			lines = append(lines, fmt.Sprintf("%s: popularity changed from %d to %d",
				name, oldCfg.Popularity, newCfg.Popularity))
		}
	}

	return lines
}

// unionGameIDs returns every game id present in either state, ascending.
func unionGameIDs(old, new model.HubSettings) []int {
	seen := make(map[int]struct{}, len(old.Games)+len(new.Games))
	for id := range old.Games {
		seen[id] = struct{}{}
	}
	for id := range new.Games {
		seen[id] = struct{}{}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// gameLabel resolves a game id to its catalogue title for audit lines.
func gameLabel(id int) string {
	if title := model.GameTitle(id); title != "" {
		return title
	}
	return fmt.Sprintf("ID %d", id)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
