package export

import (
	"fmt"

	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// pageSpacingMM separates consecutive pages laid side by side in the drawing.
const pageSpacingMM = 20.0

// CutGuideLayer returns the DXF layer name for a 0-based page index.
func CutGuideLayer(page int) string {
	return fmt.Sprintf("PAGE_%d", page+1)
}

// ExportCutGuide writes a DXF drawing of every card outline, in millimetres.
// Each page gets its own layer holding the sheet border and four lines per
// card; pages are laid out left to right. Placements must be in page order.
func ExportCutGuide(path string, geom model.Geometry, placements []model.Placement) error {
	if len(placements) == 0 {
		return fmt.Errorf("no placements for cut guide")
	}

	d := dxf.NewDrawing()
	pageW := model.PtToMM(geom.Page.Width)
	pageH := model.PtToMM(geom.Page.Height)

	current := -1
	var offset float64
	for _, p := range placements {
		if p.Page != current {
			current = p.Page
			offset = float64(current) * (pageW + pageSpacingMM)
			if _, err := d.AddLayer(CutGuideLayer(current), dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
				return fmt.Errorf("failed to add layer for page %d: %w", current+1, err)
			}
			if err := rectangle(d, offset, 0, pageW, pageH); err != nil {
				return err
			}
		}

		x := offset + model.PtToMM(p.X)
		y := model.PtToMM(p.Y)
		if err := rectangle(d, x, y, model.PtToMM(p.Width), model.PtToMM(p.Height)); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save cut guide: %w", err)
	}
	return nil
}

// rectangle draws an axis-aligned rectangle as four lines on the current layer.
func rectangle(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}
