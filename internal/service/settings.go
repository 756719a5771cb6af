package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"gamehub-admin/internal/model"
	"gamehub-admin/internal/repository"
	"gamehub-admin/internal/settings"
)

// SettingsStore persists the shared configuration document.
type SettingsStore interface {
	LoadDocument(ctx context.Context) ([]byte, error)
	SaveDocument(ctx context.Context, raw []byte) error
}

// AuditStore records and lists admin actions.
type AuditStore interface {
	Append(ctx context.Context, adminEmail, action, details string) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// SettingsService owns the configuration editor for the admin session.
// Edits accumulate in memory and are committed wholesale on Save. There is
// a single privileged writer, so a plain mutex serializes access.
type SettingsService struct {
	store      SettingsStore
	audit      AuditStore
	auditLimit int

	mu     sync.Mutex
	editor *settings.Editor
}

// NewSettingsService creates the service with an empty editor; call Load
// before serving edits.
func NewSettingsService(store SettingsStore, audit AuditStore, auditLimit int) *SettingsService {
	if auditLimit <= 0 {
		auditLimit = 100
	}
	return &SettingsService{
		store:      store,
		audit:      audit,
		auditLimit: auditLimit,
		editor:     settings.NewEditor(),
	}
}

// Load reads the persisted document into the editor and snapshots it as the
// shadow state. A store with no document yet yields empty settings.
func (s *SettingsService) Load(ctx context.Context) error {
	raw, err := s.store.LoadDocument(ctx)
	if err != nil && !errors.Is(err, repository.ErrSettingsNotFound) {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	doc, err := settings.ParseDocument(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.editor.Load(doc)
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the working settings state.
func (s *SettingsService) Current() model.HubSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Current()
}

// Toggle flips one boolean field for one game.
func (s *SettingsService) Toggle(gameID int, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Toggle(gameID, field)
}

// SetFeatured makes one game the single featured entry.
func (s *SettingsService) SetFeatured(gameID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetFeatured(gameID)
}

// BulkSet applies one field across a set of games.
func (s *SettingsService) BulkSet(gameIDs []int, field string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.BulkSet(gameIDs, field, value)
}

// IsBulkActive reports whether the field is on for every game in the set.
func (s *SettingsService) IsBulkActive(gameIDs []int, field string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.IsBulkActive(gameIDs, field)
}

// SetPopularity sets a game's boost value.
func (s *SettingsService) SetPopularity(gameID, popularity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetPopularity(gameID, popularity)
}

// SetMaintenanceMode sets the global maintenance flag.
func (s *SettingsService) SetMaintenanceMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetMaintenanceMode(on)
}

// SetSystemMessage sets the global announcement.
func (s *SettingsService) SetSystemMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetSystemMessage(msg)
}

// Save persists the merged document and, only when something actually
// changed, appends one audit entry summarizing the diff. The persist always
// happens - a no-op save must not pollute the audit trail, but it still
// writes the document. On failure the in-memory edits are kept so the admin
// can simply save again.
func (s *SettingsService) Save(ctx context.Context, adminEmail string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	diff := s.editor.PendingDiff()
	raw, err := settings.MergeDocument(s.editor.Current())
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveDocument(ctx, raw); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.editor.MarkSaved()

	if len(diff) == 0 {
		return nil, nil
	}

	details := strings.Join(diff, "; ")
	if err := s.audit.Append(ctx, adminEmail, model.AuditActionConfigUpdate, details); err != nil {
		// The config write itself succeeded; surface the audit failure once.
		return diff, fmt.Errorf("settings saved but audit append failed: %w", err)
	}

	log.Info().
		Str("admin_email", adminEmail).
		Int("changes", len(diff)).
		Msg("Settings saved")
	return diff, nil
}

// AuditTrail lists the most recent audit entries.
func (s *SettingsService) AuditTrail(ctx context.Context) ([]model.AuditEntry, error) {
	return s.audit.ListRecent(ctx, s.auditLimit)
}
