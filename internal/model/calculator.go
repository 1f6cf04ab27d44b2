package model

// Plan summarizes how a number of images will be spread across pages.
type Plan struct {
	Geometry      Geometry `json:"geometry"`
	Images        int      `json:"images"`
	Pages         int      `json:"pages"`           // Pages actually rendered
	PerPage       int      `json:"per_page"`        // Cells on a full page
	LastPageCount int      `json:"last_page_count"` // Cards on the final page (PerPage when full)
}

// EmptySlots returns the number of unused cells on the final page.
func (p Plan) EmptySlots() int {
	if p.Pages == 0 {
		return 0
	}
	return p.PerPage - p.LastPageCount
}

// Coverage returns the percentage of a full page covered by cards.
func (p Plan) Coverage() float64 {
	pageArea := p.Geometry.Page.Width * p.Geometry.Page.Height
	if pageArea <= 0 {
		return 0
	}
	cardArea := p.Geometry.CardWidth * p.Geometry.CardHeight * float64(p.PerPage)
	return cardArea / pageArea * 100
}

// CardSizeMM returns the computed card dimensions in millimetres.
func (p Plan) CardSizeMM() (width, height float64) {
	return PtToMM(p.Geometry.CardWidth), PtToMM(p.Geometry.CardHeight)
}
