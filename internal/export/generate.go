package export

import (
	"fmt"
	"iter"
	"slices"

	"github.com/piwi3910/ProxySheet/internal/engine"
	"github.com/piwi3910/ProxySheet/internal/model"
)

// Result is the outcome of a full generation pass.
type Result struct {
	PDF        []byte
	Geometry   model.Geometry
	Placements []model.Placement
}

// Pages returns the number of pages in the document.
func (r Result) Pages() int {
	return engine.PageCount(len(r.Placements), r.Geometry.NumCols, r.Geometry.NumRows)
}

// Generate lays out images on landscape pages and renders them to PDF.
// Invalid parameters fail before any image is embedded, and any failure
// discards the partially built document.
func Generate(images []model.ImageRecord, page model.PageSize, card model.CardSize, params model.LayoutParams, opts PDFOptions) (Result, error) {
	layout := engine.New(page, card)
	geom, placements, err := layout.Place(params, images)
	if err != nil {
		return Result{}, err
	}

	doc := NewPDF(geom, opts)
	if err := Render(doc, images, placements); err != nil {
		return Result{}, err
	}

	data, err := doc.Bytes()
	if err != nil {
		return Result{}, err
	}

	return Result{
		PDF:        data,
		Geometry:   geom,
		Placements: slices.Collect(placements),
	}, nil
}

// Render embeds every image into sink, then draws each placement. Images
// are embedded up front so a decode failure stops the run before drawing.
func Render(sink Sink, images []model.ImageRecord, placements iter.Seq[model.Placement]) error {
	handles := make([]ImageHandle, len(images))
	for i, img := range images {
		h, err := sink.Embed(img)
		if err != nil {
			return err
		}
		handles[i] = h
	}

	i := 0
	for p := range placements {
		if i >= len(handles) {
			return fmt.Errorf("placement %d has no matching image", i)
		}
		if err := sink.Draw(handles[i], p); err != nil {
			return err
		}
		i++
	}
	return nil
}
