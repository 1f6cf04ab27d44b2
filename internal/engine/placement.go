package engine

import (
	"iter"

	"github.com/piwi3910/ProxySheet/internal/model"
)

// Place yields one placement per image in input order. Slots fill row by row
// (column varies fastest) and pages fill before the next one starts. The
// sequence ends with the last image; the final page is never padded.
//
// Row 0 is the bottom row because y grows upward from the page's bottom edge.
func Place(geom model.Geometry, images []model.ImageRecord) iter.Seq[model.Placement] {
	return func(yield func(model.Placement) bool) {
		perPage := geom.PerPage()
		if perPage <= 0 {
			return
		}
		for i, img := range images {
			if !yield(slot(geom, i, img)) {
				return
			}
		}
	}
}

// slot computes the placement of the image at flat index i. geom must have
// at least one cell.
func slot(geom model.Geometry, i int, img model.ImageRecord) model.Placement {
	perPage := geom.PerPage()
	r := i % perPage
	row := r / geom.NumCols
	col := r % geom.NumCols

	return model.Placement{
		Image:  img,
		Page:   i / perPage,
		Row:    row,
		Col:    col,
		X:      geom.HorizontalMargin/2 + float64(col)*(geom.CardWidth+geom.HorizontalGap),
		Y:      geom.VerticalMargin/2 + float64(row)*(geom.CardHeight+geom.VerticalGap),
		Width:  geom.CardWidth,
		Height: geom.CardHeight,
	}
}

// PageCount returns the number of pages n images occupy on a cols x rows grid.
func PageCount(n, cols, rows int) int {
	perPage := cols * rows
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}
