// Package engine computes proxy sheet geometry and assigns images to grid slots.
package engine

import (
	"iter"

	"github.com/piwi3910/ProxySheet/internal/model"
)

// Layout binds the two fixed inputs of a run: the landscape page and the
// reference card.
type Layout struct {
	Page model.PageSize
	Card model.CardSize
}

func New(page model.PageSize, card model.CardSize) *Layout {
	return &Layout{Page: page.Landscape(), Card: card}
}

// Geometry computes the card size and margins for params.
func (l *Layout) Geometry(params model.LayoutParams) (model.Geometry, error) {
	return ComputeGeometry(l.Page, l.Card, params)
}

// Place computes the geometry and returns the placement sequence for images.
// The error is returned before any placement is produced.
func (l *Layout) Place(params model.LayoutParams, images []model.ImageRecord) (model.Geometry, iter.Seq[model.Placement], error) {
	geom, err := l.Geometry(params)
	if err != nil {
		return model.Geometry{}, nil, err
	}
	return geom, Place(geom, images), nil
}

// Plan summarizes how n images would be laid out without placing them.
func (l *Layout) Plan(params model.LayoutParams, n int) (model.Plan, error) {
	geom, err := l.Geometry(params)
	if err != nil {
		return model.Plan{}, err
	}

	perPage := geom.PerPage()
	pages := PageCount(n, geom.NumCols, geom.NumRows)
	last := 0
	if pages > 0 {
		last = n - (pages-1)*perPage
	}

	return model.Plan{
		Geometry:      geom,
		Images:        n,
		Pages:         pages,
		PerPage:       perPage,
		LastPageCount: last,
	}, nil
}
