package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/ProxySheet/internal/model"
)

// DefaultPresetPath returns the default file path for the preset store.
// This is located at ~/.proxysheet/presets.json.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// PresetPathFor returns the preset store that sits next to a config file.
func PresetPathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "presets.json")
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store model.PresetStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads a preset store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, err
	}
	if store.Presets == nil {
		store.Presets = []model.LayoutPreset{}
	}
	return store, nil
}
