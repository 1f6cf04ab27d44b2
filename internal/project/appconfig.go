// Package project persists ProxySheet configuration, layout presets and
// backups as JSON files under the user's home directory.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/ProxySheet/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.proxysheet/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".proxysheet")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// configSetters maps the keys accepted by SetConfigValue to their parsers.
var configSetters = map[string]func(*model.AppConfig, string) error{
	"cols":        intSetter(func(c *model.AppConfig) *int { return &c.Layout.NumCols }),
	"rows":        intSetter(func(c *model.AppConfig) *int { return &c.Layout.NumRows }),
	"concurrency": intSetter(func(c *model.AppConfig) *int { return &c.Concurrency }),
	"hgap":        floatSetter(func(c *model.AppConfig) *float64 { return &c.Layout.HorizontalGap }),
	"vgap":        floatSetter(func(c *model.AppConfig) *float64 { return &c.Layout.VerticalGap }),
	"hmargin":     floatSetter(func(c *model.AppConfig) *float64 { return &c.Layout.MinHorizontalMargin }),
	"vmargin":     floatSetter(func(c *model.AppConfig) *float64 { return &c.Layout.MinVerticalMargin }),
	"cut_marks":   boolSetter(func(c *model.AppConfig) *bool { return &c.CutMarks }),
	"convert":     boolSetter(func(c *model.AppConfig) *bool { return &c.ConvertImages }),
	"output": func(c *model.AppConfig, v string) error {
		c.OutputPath = v
		return nil
	},
	"page": func(c *model.AppConfig, v string) error {
		page, err := model.FindPage(v)
		if err != nil {
			return err
		}
		c.PageSize = page.Name
		return nil
	},
	"card": func(c *model.AppConfig, v string) error {
		card, err := model.FindCard(v)
		if err != nil {
			return err
		}
		c.CardSize = card.Name
		return nil
	},
}

// ConfigKeys returns the sorted keys accepted by SetConfigValue.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetConfigValue parses value and stores it under key. The config is left
// unchanged if the value does not parse or the result fails validation.
func SetConfigValue(config *model.AppConfig, key, value string) error {
	set, ok := configSetters[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	updated := *config
	if err := set(&updated, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*config = updated
	return nil
}

func intSetter(field func(*model.AppConfig) *int) func(*model.AppConfig, string) error {
	return func(c *model.AppConfig, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(*model.AppConfig) *float64) func(*model.AppConfig, string) error {
	return func(c *model.AppConfig, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func boolSetter(field func(*model.AppConfig) *bool) func(*model.AppConfig, string) error {
	return func(c *model.AppConfig, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}
