package engine

import (
	"fmt"

	"github.com/piwi3910/ProxySheet/internal/model"
)

// ComputeGeometry derives the shared card size and actual margins for a run.
//
// params is in millimetres and is converted to points once here. The card
// keeps the reference aspect ratio: a single scale factor is taken from the
// tighter axis, and any space left on the other axis becomes extra margin.
func ComputeGeometry(page model.PageSize, card model.CardSize, params model.LayoutParams) (model.Geometry, error) {
	if err := params.Validate(); err != nil {
		return model.Geometry{}, err
	}
	if page.Width <= 0 || page.Height <= 0 {
		return model.Geometry{}, fmt.Errorf("%w: page must have positive size, got %.2f x %.2f",
			model.ErrInvalidConfiguration, page.Width, page.Height)
	}
	if card.Width <= 0 || card.Height <= 0 {
		return model.Geometry{}, fmt.Errorf("%w: reference card must have positive size, got %.2f x %.2f",
			model.ErrInvalidConfiguration, card.Width, card.Height)
	}

	pt := params.InPoints()

	maxWidth := maxCardExtent(page.Width, pt.MinHorizontalMargin, pt.NumCols, pt.HorizontalGap)
	if maxWidth <= 0 {
		return model.Geometry{}, fmt.Errorf("%w: %d columns with %.1fmm gaps and %.1fmm margin do not fit a %.1fmm wide page",
			model.ErrInvalidConfiguration, params.NumCols, params.HorizontalGap, params.MinHorizontalMargin, model.PtToMM(page.Width))
	}
	maxHeight := maxCardExtent(page.Height, pt.MinVerticalMargin, pt.NumRows, pt.VerticalGap)
	if maxHeight <= 0 {
		return model.Geometry{}, fmt.Errorf("%w: %d rows with %.1fmm gaps and %.1fmm margin do not fit a %.1fmm tall page",
			model.ErrInvalidConfiguration, params.NumRows, params.VerticalGap, params.MinVerticalMargin, model.PtToMM(page.Height))
	}

	widthScale := maxWidth / card.Width
	heightScale := maxHeight / card.Height

	scale := widthScale
	bottleneck := model.AxisHorizontal
	if heightScale < widthScale {
		scale = heightScale
		bottleneck = model.AxisVertical
	}

	cardWidth := card.Width * scale
	cardHeight := card.Height * scale

	return model.Geometry{
		Page:             page,
		NumCols:          pt.NumCols,
		NumRows:          pt.NumRows,
		CardWidth:        cardWidth,
		CardHeight:       cardHeight,
		HorizontalGap:    pt.HorizontalGap,
		VerticalGap:      pt.VerticalGap,
		HorizontalMargin: actualMargin(page.Width, cardWidth, pt.NumCols, pt.HorizontalGap),
		VerticalMargin:   actualMargin(page.Height, cardHeight, pt.NumRows, pt.VerticalGap),
		Scale:            scale,
		Bottleneck:       bottleneck,
	}, nil
}

// maxCardExtent is the card extent that makes count cards, their gaps and
// the minimum margin exactly fill pageExtent.
func maxCardExtent(pageExtent, minMargin float64, count int, gap float64) float64 {
	content := pageExtent - (minMargin + float64(count-1)*gap)
	return content / float64(count)
}

// actualMargin is the total space left on one axis once the cards and gaps are laid out.
func actualMargin(pageExtent, cardExtent float64, count int, gap float64) float64 {
	return pageExtent - (float64(count)*cardExtent + float64(count-1)*gap)
}
