package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared by the importer, engine and export packages.
var (
	// ErrUnsupportedEncoding marks an input image whose encoding is not JPEG or PNG.
	// It is never fatal: the image is skipped and the run continues.
	ErrUnsupportedEncoding = errors.New("unsupported image encoding")

	// ErrInvalidConfiguration marks a grid, gap or margin combination that
	// cannot produce a layout. The whole run is aborted.
	ErrInvalidConfiguration = errors.New("invalid layout configuration")

	// ErrDecodeFailure marks an image the document could not embed.
	ErrDecodeFailure = errors.New("image decode failure")
)

// Encoding identifies the binary format of an input image.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingJPEG
	EncodingPNG
	EncodingWebP // Recognized but not placeable without conversion
	EncodingBMP
	EncodingTIFF
	EncodingGIF
)

func (e Encoding) String() string {
	switch e {
	case EncodingJPEG:
		return "JPEG"
	case EncodingPNG:
		return "PNG"
	case EncodingWebP:
		return "WebP"
	case EncodingBMP:
		return "BMP"
	case EncodingTIFF:
		return "TIFF"
	case EncodingGIF:
		return "GIF"
	default:
		return "Unknown"
	}
}

// Supported reports whether images of this encoding can be embedded directly.
func (e Encoding) Supported() bool {
	return e == EncodingJPEG || e == EncodingPNG
}

// Convertible reports whether the encoding is known and can be transcoded to PNG.
func (e Encoding) Convertible() bool {
	switch e {
	case EncodingWebP, EncodingBMP, EncodingTIFF, EncodingGIF:
		return true
	default:
		return false
	}
}

// ImageRecord is one decoded-ready input image. Index is its ordinal in the
// final placement order.
type ImageRecord struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Encoding Encoding `json:"encoding"`
	Data     []byte   `json:"-"`
}

// CardSize is the reference card rectangle in points.
type CardSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewCardSizeMM builds a card size from millimetre dimensions.
func NewCardSizeMM(name string, widthMM, heightMM float64) CardSize {
	return CardSize{Name: name, Width: MMToPt(widthMM), Height: MMToPt(heightMM)}
}

// Built-in reference cards. The default is the 59x86 mm card.
var CardPresets = []CardSize{
	NewCardSizeMM("standard", 59, 86),
	NewCardSizeMM("poker", 63, 88),
	NewCardSizeMM("bridge", 57, 89),
	NewCardSizeMM("mini", 44, 67),
	NewCardSizeMM("tarot", 70, 120),
}

// DefaultCard is the reference card used when none is configured.
const DefaultCard = "standard"

// FindCard looks up a card preset by case-insensitive name.
func FindCard(name string) (CardSize, error) {
	for _, c := range CardPresets {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return CardSize{}, fmt.Errorf("unknown card size %q (known: %s)", name, strings.Join(CardNames(), ", "))
}

// CardNames returns the names of all card presets.
func CardNames() []string {
	names := make([]string, len(CardPresets))
	for i, c := range CardPresets {
		names[i] = c.Name
	}
	return names
}

// PageSize is a page rectangle in points.
type PageSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Landscape returns the page with the long edge horizontal.
func (p PageSize) Landscape() PageSize {
	if p.Width >= p.Height {
		return p
	}
	return PageSize{Name: p.Name, Width: p.Height, Height: p.Width}
}

// Portrait page bases in points. ISO sizes are exact millimetre conversions.
var pageSizes = map[string]PageSize{
	"A3":     {Name: "A3", Width: MMToPt(297), Height: MMToPt(420)},
	"A4":     {Name: "A4", Width: MMToPt(210), Height: MMToPt(297)},
	"Letter": {Name: "Letter", Width: 612, Height: 792},
	"Legal":  {Name: "Legal", Width: 612, Height: 1008},
}

// DefaultPage is the page size used when none is configured.
const DefaultPage = "A4"

// FindPage returns the landscape page for a case-insensitive page name.
func FindPage(name string) (PageSize, error) {
	for key, p := range pageSizes {
		if strings.EqualFold(key, name) {
			return p.Landscape(), nil
		}
	}
	return PageSize{}, fmt.Errorf("unknown page size %q (known: %s)", name, strings.Join(PageNames(), ", "))
}

// PageNames returns the sorted page size names.
func PageNames() []string {
	names := make([]string, 0, len(pageSizes))
	for k := range pageSizes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LayoutParams holds the user-facing grid settings. Lengths are millimetres
// unless the value came from InPoints.
type LayoutParams struct {
	NumCols             int     `json:"num_cols"`
	NumRows             int     `json:"num_rows"`
	HorizontalGap       float64 `json:"horizontal_gap"`
	VerticalGap         float64 `json:"vertical_gap"`
	MinHorizontalMargin float64 `json:"min_horizontal_margin"`
	MinVerticalMargin   float64 `json:"min_vertical_margin"`
}

// DefaultLayoutParams returns a 4x2 grid with 3 mm gaps and no minimum margin.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		NumCols:       4,
		NumRows:       2,
		HorizontalGap: 3,
		VerticalGap:   3,
	}
}

// PerPage returns the number of cells on one page.
func (p LayoutParams) PerPage() int {
	return p.NumCols * p.NumRows
}

// Validate checks the grid shape and that no length is negative.
func (p LayoutParams) Validate() error {
	if p.NumCols < 1 || p.NumRows < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfiguration, p.NumCols, p.NumRows)
	}
	lengths := []struct {
		name  string
		value float64
	}{
		{"horizontal gap", p.HorizontalGap},
		{"vertical gap", p.VerticalGap},
		{"minimum horizontal margin", p.MinHorizontalMargin},
		{"minimum vertical margin", p.MinVerticalMargin},
	}
	for _, l := range lengths {
		if l.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfiguration, l.name, l.value)
		}
	}
	return nil
}

// InPoints converts every length from millimetres to points.
// The grid shape is copied unchanged.
func (p LayoutParams) InPoints() LayoutParams {
	return LayoutParams{
		NumCols:             p.NumCols,
		NumRows:             p.NumRows,
		HorizontalGap:       MMToPt(p.HorizontalGap),
		VerticalGap:         MMToPt(p.VerticalGap),
		MinHorizontalMargin: MMToPt(p.MinHorizontalMargin),
		MinVerticalMargin:   MMToPt(p.MinVerticalMargin),
	}
}

// Axis names one page direction.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// Geometry is the shared cell size and actual margins for one run, in points.
// HorizontalMargin and VerticalMargin are totals; each side gets half.
type Geometry struct {
	Page             PageSize `json:"page"`
	NumCols          int      `json:"num_cols"`
	NumRows          int      `json:"num_rows"`
	CardWidth        float64  `json:"card_width"`
	CardHeight       float64  `json:"card_height"`
	HorizontalGap    float64  `json:"horizontal_gap"`
	VerticalGap      float64  `json:"vertical_gap"`
	HorizontalMargin float64  `json:"horizontal_margin"`
	VerticalMargin   float64  `json:"vertical_margin"`
	Scale            float64  `json:"scale"`
	Bottleneck       Axis     `json:"bottleneck"`
}

// PerPage returns the number of cells on one page.
func (g Geometry) PerPage() int {
	return g.NumCols * g.NumRows
}

// Placement is one image drawn at one grid slot. Coordinates are points with
// the origin at the bottom-left corner of the page.
type Placement struct {
	Image  ImageRecord `json:"image"`
	Page   int         `json:"page"`
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
}
