// Package model defines the data models for the GameHub admin service.
package model

import (
	"strconv"
	"strings"
	"time"
)

// GuestUserID is the sentinel user id recorded for unauthenticated players.
const GuestUserID = "unknown"

// ClickEvent is one raw interaction record from the game hub.
// Events are immutable once ingested and arrive newest-first from the store.
type ClickEvent struct {
	ID         string     `db:"id" json:"id"`
	Timestamp  *time.Time `db:"timestamp" json:"timestamp"` // nil while the write is pending
	GameID     *int       `db:"game_id" json:"gameId,omitempty"`
	GameTitle  string     `db:"game_title" json:"gameTitle"`
	Category   string     `db:"category" json:"category"`
	UserID     string     `db:"user_id" json:"userId"`
	Country    string     `db:"country" json:"country,omitempty"`
	City       string     `db:"city" json:"city,omitempty"`
	OS         string     `db:"os" json:"os,omitempty"`
	DeviceType string     `db:"device_type" json:"deviceType,omitempty"`
	Browser    string     `db:"browser" json:"browser,omitempty"`
	Device     string     `db:"device" json:"device,omitempty"` // legacy free-text descriptor
}

// DeviceDescriptor returns the best available platform description,
// preferring the parsed os/device fields over the legacy free-text one.
func (e *ClickEvent) DeviceDescriptor() string {
	if e.OS != "" {
		if e.DeviceType != "" {
			return e.OS + " / " + e.DeviceType
		}
		return e.OS
	}
	if e.Device != "" {
		return e.Device
	}
	return "Web"
}

// IsMobile reports whether the event came from a mobile device,
// checking the parsed device type first and the legacy descriptor as fallback.
func (e *ClickEvent) IsMobile() bool {
	if e.DeviceType == "Mobile" {
		return true
	}
	return e.Device != "" && strings.Contains(strings.ToLower(e.Device), "mobile")
}

// Location returns "city-country" for export, or "Unknown" when no geo data exists.
func (e *ClickEvent) Location() string {
	if e.Country == "" {
		return "Unknown"
	}
	return e.City + "-" + e.Country
}

// GameConfig holds the per-game flags edited on the admin panel.
// Absent fields default to zero values; Visible uses default-true semantics
// (only an explicit false hides a game), which the editor layer enforces.
type GameConfig struct {
	Visible     bool `json:"visible"`
	IsFeatured  bool `json:"isFeatured"`
	IsNew       bool `json:"isNew"`
	IsHot       bool `json:"isHot"`
	IsUpcoming  bool `json:"isUpcoming"`
	Maintenance bool `json:"maintenance"`
	Popularity  int  `json:"popularity"` // admin-assigned boost, any sign
}

// Boolean flag names on GameConfig, as used by toggle and bulk operations.
const (
	FieldVisible     = "visible"
	FieldFeatured    = "isFeatured"
	FieldNew         = "isNew"
	FieldHot         = "isHot"
	FieldUpcoming    = "isUpcoming"
	FieldMaintenance = "maintenance"
)

// HubSettings is the shared configuration document: two global settings
// plus the per-game config map, persisted wholesale as one flat document.
type HubSettings struct {
	MaintenanceMode bool               `json:"maintenanceMode"`
	SystemMessage   string             `json:"systemMessage"`
	Games           map[int]GameConfig `json:"games"`
}

// AuditEntry is one record in the append-only admin audit trail.
type AuditEntry struct {
	ID         int64     `db:"id" json:"id"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
	AdminEmail string    `db:"admin_email" json:"adminEmail"`
	Action     string    `db:"action" json:"action"`
	Details    string    `db:"details" json:"details"`
}

// Audit action labels.
const (
	AuditActionConfigUpdate = "Config Update"
)

// KnownGame is one entry of the static game catalogue.
type KnownGame struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// KnownGames is the hub's game catalogue. Ids are not contiguous.
var KnownGames = []KnownGame{
	{ID: 1, Title: "Conspiracy"},
	{ID: 2, Title: "Investigation"},
	{ID: 3, Title: "Police Hunt"},
	{ID: 4, Title: "Emperor"},
	{ID: 5, Title: "Pirates"},
	{ID: 6, Title: "Fruit Seller"},
	{ID: 7, Title: "Ghost Dice"},
	{ID: 8, Title: "Protocol: Sabotage"},
	{ID: 10, Title: "Neon Draft"},
	{ID: 12, Title: "Contraband"},
	{ID: 15, Title: "Guild of Shadows"},
	{ID: 17, Title: "Masquerade Protocol"},
	{ID: 18, Title: "Paper Oceans"},
	{ID: 19, Title: "Royal Menagerie"},
	{ID: 20, Title: "Fructose Fury"},
	{ID: 21, Title: "Angry Virus"},
	{ID: 22, Title: "Last of Us"},
	{ID: 23, Title: "Together"},
	{ID: 24, Title: "Spectrum"},
}

// GameTitle returns the catalogue title for an id, or "" when unknown.
func GameTitle(id int) string {
	for _, g := range KnownGames {
		if g.ID == id {
			return g.Title
		}
	}
	return ""
}

// SearchGames filters the catalogue by case-insensitive title substring
// or by id digits. An empty term returns the full catalogue.
func SearchGames(term string) []KnownGame {
	if term == "" {
		return KnownGames
	}
	lower := strings.ToLower(term)
	var out []KnownGame
	for _, g := range KnownGames {
		if strings.Contains(strings.ToLower(g.Title), lower) ||
			strings.Contains(strconv.Itoa(g.ID), term) {
			out = append(out, g)
		}
	}
	return out
}
