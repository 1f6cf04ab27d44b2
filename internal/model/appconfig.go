package model

import "fmt"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default layout applied when no preset or flag overrides it
	Layout   LayoutParams `json:"layout"`
	PageSize string       `json:"page_size"` // "A4", "A3", "Letter", "Legal"
	CardSize string       `json:"card_size"` // name from CardPresets

	// Output preferences
	CutMarks      bool   `json:"cut_marks"`
	OutputPath    string `json:"output_path"`
	ConvertImages bool   `json:"convert_images"` // transcode WebP/BMP/TIFF/GIF instead of skipping
	Concurrency   int    `json:"concurrency"`    // 0 = number of CPUs
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Layout:     DefaultLayoutParams(),
		PageSize:   DefaultPage,
		CardSize:   DefaultCard,
		OutputPath: "proxies.pdf",
	}
}

// Validate checks that the configured names resolve and the layout is usable.
func (c AppConfig) Validate() error {
	if _, err := FindPage(c.PageSize); err != nil {
		return err
	}
	if _, err := FindCard(c.CardSize); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return c.Layout.Validate()
}
