// Package export renders laid-out proxy sheets to PDF and related formats.
package export

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/piwi3910/ProxySheet/internal/model"
)

// ImageHandle names an image embedded in a document.
type ImageHandle string

// Sink realizes placements into a finished document.
type Sink interface {
	// Embed registers an image and returns a handle for drawing it.
	Embed(img model.ImageRecord) (ImageHandle, error)
	// Draw draws an embedded image at a placement, creating pages as needed.
	Draw(h ImageHandle, p model.Placement) error
	// Bytes finalizes the document.
	Bytes() ([]byte, error)
}

// PDFOptions controls document rendering.
type PDFOptions struct {
	CutMarks bool   // Draw trim guides in the margins around the grid
	Title    string // Document title metadata
}

// cutMarkGray is the gray level of trim guides.
const cutMarkGray = 160

// PDFDocument is a Sink backed by fpdf. Units are points; placements use a
// bottom-left origin and are flipped to fpdf's top-left origin when drawn.
type PDFDocument struct {
	pdf     *fpdf.Fpdf
	geom    model.Geometry
	opts    PDFOptions
	handles map[[sha256.Size]byte]ImageHandle
	types   map[ImageHandle]string
}

// NewPDF creates an empty document sized for geom's page.
func NewPDF(geom model.Geometry, opts PDFOptions) *PDFDocument {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geom.Page.Width, Ht: geom.Page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("ProxySheet", true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}

	return &PDFDocument{
		pdf:     pdf,
		geom:    geom,
		opts:    opts,
		handles: make(map[[sha256.Size]byte]ImageHandle),
		types:   make(map[ImageHandle]string),
	}
}

// Embed registers img with the document. Records with identical encoding
// and bytes are embedded once, whatever their names.
func (d *PDFDocument) Embed(img model.ImageRecord) (ImageHandle, error) {
	key := contentKey(img)
	if h, ok := d.handles[key]; ok {
		return h, nil
	}

	imageType, err := fpdfImageType(img.Encoding)
	if err != nil {
		return "", fmt.Errorf("%s: %w", img.Name, err)
	}

	h := ImageHandle("img_" + uuid.New().String())
	d.pdf.RegisterImageOptionsReader(string(h), fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(img.Data))
	if d.pdf.Err() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return "", fmt.Errorf("%w: %s: %v", model.ErrDecodeFailure, img.Name, err)
	}

	d.handles[key] = h
	d.types[h] = imageType
	return h, nil
}

// Draw places an embedded image, adding pages until p.Page exists.
func (d *PDFDocument) Draw(h ImageHandle, p model.Placement) error {
	imageType, ok := d.types[h]
	if !ok {
		return fmt.Errorf("image %q was not embedded", h)
	}
	if p.Page < 0 {
		return fmt.Errorf("invalid page index %d", p.Page)
	}

	for d.pdf.PageNo() <= p.Page {
		d.pdf.AddPage()
		if d.opts.CutMarks {
			d.drawCutMarks()
		}
	}

	top := d.geom.Page.Height - p.Y - p.Height
	d.pdf.ImageOptions(string(h), p.X, top, p.Width, p.Height, false, fpdf.ImageOptions{ImageType: imageType}, 0, "")
	if d.pdf.Err() {
		return fmt.Errorf("failed to draw %s: %w", p.Image.Name, d.pdf.Error())
	}
	return nil
}

// Pages returns the number of pages created so far.
func (d *PDFDocument) Pages() int {
	return d.pdf.PageNo()
}

// Bytes serializes the document.
func (d *PDFDocument) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCutMarks draws trim guides on the current page. Each card edge is
// extended into the outer margin so sheets can be trimmed with a ruler
// after printing.
func (d *PDFDocument) drawCutMarks() {
	g := d.geom
	left := g.HorizontalMargin / 2
	bottom := g.VerticalMargin / 2
	right := g.Page.Width - left
	top := g.Page.Height - bottom

	d.pdf.SetDrawColor(cutMarkGray, cutMarkGray, cutMarkGray)
	d.pdf.SetLineWidth(0.25)

	for col := 0; col < g.NumCols; col++ {
		x0 := left + float64(col)*(g.CardWidth+g.HorizontalGap)
		for _, x := range []float64{x0, x0 + g.CardWidth} {
			// fpdf y grows downward: 0 is the top edge.
			d.pdf.Line(x, 0, x, g.Page.Height-top)
			d.pdf.Line(x, g.Page.Height-bottom, x, g.Page.Height)
		}
	}
	for row := 0; row < g.NumRows; row++ {
		y0 := bottom + float64(row)*(g.CardHeight+g.VerticalGap)
		for _, y := range []float64{y0, y0 + g.CardHeight} {
			fy := g.Page.Height - y
			d.pdf.Line(0, fy, left, fy)
			d.pdf.Line(right, fy, g.Page.Width, fy)
		}
	}
}

func contentKey(img model.ImageRecord) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte{byte(img.Encoding)})
	h.Write(img.Data)
	var key [sha256.Size]byte
	h.Sum(key[:0])
	return key
}

// fpdfImageType maps an encoding to the fpdf image type name.
func fpdfImageType(enc model.Encoding) (string, error) {
	switch enc {
	case model.EncodingJPEG:
		return "JPG", nil
	case model.EncodingPNG:
		return "PNG", nil
	default:
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedEncoding, enc)
	}
}
