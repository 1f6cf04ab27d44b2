package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportCutGuide_LinesPerCardAndPage(t *testing.T) {
	geom, placements := placementsFor(t, 10)
	path := filepath.Join(t.TempDir(), "guide.dxf")

	require.NoError(t, ExportCutGuide(path, geom, placements))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	var lines []*entity.Line
	for _, ent := range drawing.Entities() {
		if l, ok := ent.(*entity.Line); ok {
			lines = append(lines, l)
		}
	}
	// Two page borders plus ten cards, four lines each.
	assert.Len(t, lines, 4*(2+10))

	pageW := model.PtToMM(geom.Page.Width)
	maxX := 0.0
	for _, l := range lines {
		maxX = max(maxX, l.Start[0], l.End[0])
	}
	assert.InDelta(t, 2*pageW+pageSpacingMM, maxX, 1e-3)
}

func TestExportCutGuide_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.dxf")
	assert.Error(t, ExportCutGuide(path, model.Geometry{}, nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCutGuideLayer(t *testing.T) {
	assert.Equal(t, "PAGE_1", CutGuideLayer(0))
	assert.Equal(t, "PAGE_12", CutGuideLayer(11))
}
