package export

import (
	"bytes"
	"slices"
	"testing"

	"github.com/piwi3910/ProxySheet/internal/engine"
	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placementsFor(t *testing.T, n int) (model.Geometry, []model.Placement) {
	t.Helper()
	geom, err := engine.ComputeGeometry(a4(), standard(), model.DefaultLayoutParams())
	require.NoError(t, err)

	images := make([]model.ImageRecord, n)
	for i := range images {
		images[i] = model.ImageRecord{Index: i, Name: "cards/" + string(rune('a'+i%26)) + ".png", Encoding: model.EncodingPNG}
	}
	return geom, slices.Collect(engine.Place(geom, images))
}

func TestCollectEntries(t *testing.T) {
	_, placements := placementsFor(t, 10)
	entries := CollectEntries(placements)

	require.Len(t, entries, 10)
	assert.Equal(t, CardEntry{
		File:     "cards/a.png",
		Page:     1,
		Row:      1,
		Col:      1,
		WidthMM:  model.PtToMM(placements[0].Width),
		HeightMM: model.PtToMM(placements[0].Height),
	}, entries[0])

	last := entries[9]
	assert.Equal(t, 2, last.Page)
	assert.Equal(t, 1, last.Row)
	assert.Equal(t, 2, last.Col)
}

func TestExportIndex_WritesPDF(t *testing.T) {
	_, placements := placementsFor(t, 30)

	var buf bytes.Buffer
	require.NoError(t, ExportIndex(&buf, placements))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportIndex_NoPlacements(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ExportIndex(&buf, nil))
	assert.Zero(t, buf.Len())
}
