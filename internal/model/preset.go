package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LayoutPreset is a named, reusable layout: grid, gaps, margins, page and card.
type LayoutPreset struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Layout      LayoutParams `json:"layout"`
	PageSize    string       `json:"page_size"`
	CardSize    string       `json:"card_size"`
}

// NewLayoutPreset creates a preset with a fresh ID and timestamps.
func NewLayoutPreset(name, description string, layout LayoutParams, pageSize, cardSize string) LayoutPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return LayoutPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Layout:      layout,
		PageSize:    pageSize,
		CardSize:    cardSize,
	}
}

// ApplyToConfig copies the preset's layout choices into cfg.
// Empty page or card names leave the config value in place.
func (p LayoutPreset) ApplyToConfig(cfg *AppConfig) {
	cfg.Layout = p.Layout
	if p.PageSize != "" {
		cfg.PageSize = p.PageSize
	}
	if p.CardSize != "" {
		cfg.CardSize = p.CardSize
	}
}

// PresetStore holds a collection of layout presets.
type PresetStore struct {
	Presets []LayoutPreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []LayoutPreset{},
	}
}

// Put adds a preset, replacing any existing preset with the same name.
// A replaced preset keeps its ID and creation time.
func (ps *PresetStore) Put(p LayoutPreset) {
	if existing := ps.FindByName(p.Name); existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		*existing = p
		return
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID or name. Returns true if found and removed.
func (ps *PresetStore) Remove(key string) bool {
	for i, p := range ps.Presets {
		if p.ID == key || strings.EqualFold(p.Name, key) {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *LayoutPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given
// case-insensitive name, or nil.
func (ps *PresetStore) FindByName(name string) *LayoutPreset {
	for i := range ps.Presets {
		if strings.EqualFold(ps.Presets[i].Name, name) {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
