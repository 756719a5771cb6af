package settings

import (
	"reflect"
	"testing"

	"gamehub-admin/internal/model"
)

func TestDiffIdenticalStates(t *testing.T) {
	s := model.HubSettings{
		SystemMessage: "hi",
		Games:         map[int]model.GameConfig{1: {Visible: true, Popularity: 5}},
	}
	if got := Diff(s, s); len(got) != 0 {
		t.Errorf("Diff(s, s) = %v, want empty", got)
	}
}

func TestDiffAnnouncement(t *testing.T) {
	old := model.HubSettings{SystemMessage: "A"}
	new := model.HubSettings{SystemMessage: "B"}
	want := []string{`Announcement changed from "A" to "B"`}
	if got := Diff(old, new); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}

func TestDiffMaintenanceMode(t *testing.T) {
	tests := []struct {
		name string
		old  bool
		new  bool
		want []string
	}{
		{"turned on", false, true, []string{"Maintenance mode ON"}},
		{"turned off", true, false, []string{"Maintenance mode OFF"}},
		{"unchanged", true, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(
				model.HubSettings{MaintenanceMode: tt.old},
				model.HubSettings{MaintenanceMode: tt.new},
			)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiffGameFlags(t *testing.T) {
	old := model.HubSettings{Games: map[int]model.GameConfig{
		1: {Visible: true},
	}}
	new := model.HubSettings{Games: map[int]model.GameConfig{
		1: {Visible: true, IsHot: true, Popularity: 30},
	}}

	want := []string{
		"Conspiracy: isHot ON",
		"Conspiracy: popularity changed from 0 to 30",
	}
	if got := Diff(old, new); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}

// A game present only on one side is compared against the defaults, so a
// brand-new entry that just records the defaults produces no lines.
func TestDiffAbsentEntryDefaults(t *testing.T) {
	old := model.HubSettings{Games: map[int]model.GameConfig{}}
	new := model.HubSettings{Games: map[int]model.GameConfig{
		2: {Visible: true},
	}}
	if got := Diff(old, new); len(got) != 0 {
		t.Errorf("Diff() = %v, want empty for a defaults-only new entry", got)
	}

	new.Games[2] = model.GameConfig{Visible: false}
	want := []string{"Investigation: visible OFF"}
	if got := Diff(old, new); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}

func TestDiffUncataloguedGameLabel(t *testing.T) {
	old := model.HubSettings{Games: map[int]model.GameConfig{}}
	new := model.HubSettings{Games: map[int]model.GameConfig{
		99: {Visible: true, IsNew: true},
	}}
	want := []string{"ID 99: isNew ON"}
	if got := Diff(old, new); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}

func TestDiffOrderedByGameID(t *testing.T) {
	old := model.HubSettings{Games: map[int]model.GameConfig{
		5: {Visible: true},
		2: {Visible: true},
	}}
	new := model.HubSettings{Games: map[int]model.GameConfig{
		5: {Visible: true, IsUpcoming: true},
		2: {Visible: true, Maintenance: true},
	}}
	want := []string{
		"Investigation: maintenance ON",
		"Pirates: isUpcoming ON",
	}
	if got := Diff(old, new); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}

func TestDiffGlobalsBeforeGames(t *testing.T) {
	old := model.HubSettings{Games: map[int]model.GameConfig{1: {Visible: true}}}
	new := model.HubSettings{
		SystemMessage:   "maintenance tonight",
		MaintenanceMode: true,
		Games:           map[int]model.GameConfig{1: {Visible: false}},
	}
	want := []string{
		`Announcement changed from "" to "maintenance tonight"`,
		"Maintenance mode ON",
		"Conspiracy: visible OFF",
	}
	if got := Diff(old, new); !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}
}
