package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/ProxySheet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-6

func a4Landscape() model.PageSize {
	page, _ := model.FindPage("A4")
	return page
}

func a3Landscape() model.PageSize {
	page, _ := model.FindPage("A3")
	return page
}

func standardCard() model.CardSize {
	return model.NewCardSizeMM("standard", 59, 86)
}

func TestComputeGeometry_A4FourByTwo(t *testing.T) {
	params := model.LayoutParams{NumCols: 4, NumRows: 2, HorizontalGap: 3, VerticalGap: 3}

	geom, err := ComputeGeometry(a4Landscape(), standardCard(), params)
	require.NoError(t, err)

	// Two 86mm-ratio rows are the tighter fit on a 210mm tall page.
	assert.Equal(t, model.AxisVertical, geom.Bottleneck)
	assert.InDelta(t, 0, geom.VerticalMargin, eps)
	assert.Greater(t, geom.HorizontalMargin, 0.0)

	gap := model.MMToPt(3)
	expectedHeight := (a4Landscape().Height - gap) / 2
	assert.InDelta(t, expectedHeight, geom.CardHeight, eps)
	assert.InDelta(t, geom.CardHeight*59.0/86.0, geom.CardWidth, eps)
	assert.Equal(t, 4, geom.NumCols)
	assert.Equal(t, 2, geom.NumRows)
	assert.InDelta(t, gap, geom.HorizontalGap, eps)
}

func TestComputeGeometry_KeepsReferenceAspectRatio(t *testing.T) {
	card := standardCard()
	configs := []model.LayoutParams{
		{NumCols: 4, NumRows: 2, HorizontalGap: 3, VerticalGap: 3},
		{NumCols: 3, NumRows: 3},
		{NumCols: 1, NumRows: 1, MinHorizontalMargin: 20, MinVerticalMargin: 20},
		{NumCols: 6, NumRows: 1, HorizontalGap: 1},
	}
	for _, params := range configs {
		geom, err := ComputeGeometry(a4Landscape(), card, params)
		require.NoError(t, err)
		assert.InDelta(t, card.Width/card.Height, geom.CardWidth/geom.CardHeight, eps, "params %+v", params)
	}
}

func TestComputeGeometry_MarginsRespectMinimum(t *testing.T) {
	configs := []model.LayoutParams{
		{NumCols: 4, NumRows: 2, HorizontalGap: 3, VerticalGap: 3},
		{NumCols: 3, NumRows: 3, HorizontalGap: 2, VerticalGap: 2, MinHorizontalMargin: 10, MinVerticalMargin: 10},
		{NumCols: 3, NumRows: 2, MinHorizontalMargin: 150},
		{NumCols: 2, NumRows: 1, MinVerticalMargin: 100},
		{NumCols: 1, NumRows: 1},
		{NumCols: 10, NumRows: 5, HorizontalGap: 0.5, VerticalGap: 0.5, MinHorizontalMargin: 5, MinVerticalMargin: 5},
	}
	pages := []model.PageSize{a4Landscape(), a3Landscape()}

	for _, page := range pages {
		for _, params := range configs {
			geom, err := ComputeGeometry(page, standardCard(), params)
			require.NoError(t, err, "params %+v", params)

			minH := model.MMToPt(params.MinHorizontalMargin)
			minV := model.MMToPt(params.MinVerticalMargin)
			assert.GreaterOrEqual(t, geom.HorizontalMargin, minH-eps, "params %+v", params)
			assert.GreaterOrEqual(t, geom.VerticalMargin, minV-eps, "params %+v", params)

			if geom.Bottleneck == model.AxisHorizontal {
				assert.InDelta(t, minH, geom.HorizontalMargin, eps, "params %+v", params)
			} else {
				assert.InDelta(t, minV, geom.VerticalMargin, eps, "params %+v", params)
			}
		}
	}
}

func TestComputeGeometry_WideMarginMakesHorizontalBottleneck(t *testing.T) {
	params := model.LayoutParams{NumCols: 3, NumRows: 2, MinHorizontalMargin: 150}

	geom, err := ComputeGeometry(a4Landscape(), standardCard(), params)
	require.NoError(t, err)

	assert.Equal(t, model.AxisHorizontal, geom.Bottleneck)
	assert.InDelta(t, model.MMToPt(150), geom.HorizontalMargin, eps)
	assert.Greater(t, geom.VerticalMargin, 0.0)
}

func TestComputeGeometry_InvalidGrid(t *testing.T) {
	cases := []model.LayoutParams{
		{NumCols: 0, NumRows: 2},
		{NumCols: 4, NumRows: 0},
		{NumCols: -3, NumRows: 2},
	}
	for _, params := range cases {
		_, err := ComputeGeometry(a4Landscape(), standardCard(), params)
		assert.ErrorIs(t, err, model.ErrInvalidConfiguration, "params %+v", params)
	}
}

func TestComputeGeometry_GapsExceedPage(t *testing.T) {
	// 10 gaps of 40mm are wider than a 297mm page.
	params := model.LayoutParams{NumCols: 11, NumRows: 1, HorizontalGap: 40}
	_, err := ComputeGeometry(a4Landscape(), standardCard(), params)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)

	// Margins equal to the full page edge leave no room for a card.
	params = model.LayoutParams{NumCols: 1, NumRows: 1, MinVerticalMargin: 210}
	_, err = ComputeGeometry(a4Landscape(), standardCard(), params)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)

	params = model.LayoutParams{NumCols: 1, NumRows: 1, MinHorizontalMargin: 420}
	_, err = ComputeGeometry(a3Landscape(), standardCard(), params)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestComputeGeometry_NegativeLengths(t *testing.T) {
	params := model.LayoutParams{NumCols: 2, NumRows: 2, HorizontalGap: -1}
	_, err := ComputeGeometry(a4Landscape(), standardCard(), params)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestComputeGeometry_DegeneratePageOrCard(t *testing.T) {
	params := model.DefaultLayoutParams()

	_, err := ComputeGeometry(model.PageSize{}, standardCard(), params)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)

	_, err = ComputeGeometry(a4Landscape(), model.CardSize{Width: 10}, params)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestComputeGeometry_Deterministic(t *testing.T) {
	params := model.LayoutParams{NumCols: 3, NumRows: 3, HorizontalGap: 2.5, VerticalGap: 1.5, MinHorizontalMargin: 4}
	first, err := ComputeGeometry(a3Landscape(), standardCard(), params)
	require.NoError(t, err)
	second, err := ComputeGeometry(a3Landscape(), standardCard(), params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMaxCardExtent(t *testing.T) {
	// 100 wide, 10 margin, 3 cards, 5 gap => (100 - 20) / 3
	got := maxCardExtent(100, 10, 3, 5)
	if math.Abs(got-80.0/3.0) > eps {
		t.Errorf("expected %.4f, got %.4f", 80.0/3.0, got)
	}
	if m := actualMargin(100, got, 3, 5); math.Abs(m-10) > eps {
		t.Errorf("expected margin 10, got %.4f", m)
	}
}
