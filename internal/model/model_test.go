package model

import (
	"errors"
	"math"
	"testing"
)

func TestMMToPtRoundTrip(t *testing.T) {
	if got := MMToPt(25.4); math.Abs(got-72) > 1e-9 {
		t.Errorf("expected 25.4mm = 72pt, got %f", got)
	}
	if got := PtToMM(MMToPt(59)); math.Abs(got-59) > 1e-9 {
		t.Errorf("expected round trip to 59mm, got %f", got)
	}
}

func TestFindPageIsLandscape(t *testing.T) {
	for _, name := range PageNames() {
		p, err := FindPage(name)
		if err != nil {
			t.Fatalf("FindPage(%q) failed: %v", name, err)
		}
		if p.Width < p.Height {
			t.Errorf("%s: expected landscape, got %.2f x %.2f", name, p.Width, p.Height)
		}
	}
}

func TestFindPageCaseInsensitive(t *testing.T) {
	p, err := FindPage("a4")
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if math.Abs(p.Width-841.89) > 0.01 || math.Abs(p.Height-595.28) > 0.01 {
		t.Errorf("expected landscape A4 841.89 x 595.28, got %.2f x %.2f", p.Width, p.Height)
	}
}

func TestISOPagesMatchMillimetres(t *testing.T) {
	tests := []struct {
		name            string
		longMM, shortMM float64
	}{
		{"A4", 297, 210},
		{"A3", 420, 297},
	}
	for _, tt := range tests {
		p, err := FindPage(tt.name)
		if err != nil {
			t.Fatalf("FindPage(%s) failed: %v", tt.name, err)
		}
		if p.Width != MMToPt(tt.longMM) || p.Height != MMToPt(tt.shortMM) {
			t.Errorf("%s: got %v x %v pt, want exactly %v x %v mm", tt.name, p.Width, p.Height, tt.longMM, tt.shortMM)
		}
	}
}

func TestFindPageUnknown(t *testing.T) {
	if _, err := FindPage("B5"); err == nil {
		t.Error("expected error for unknown page size")
	}
}

func TestLandscapeKeepsWidePage(t *testing.T) {
	p := PageSize{Name: "wide", Width: 800, Height: 600}
	if got := p.Landscape(); got != p {
		t.Errorf("expected unchanged page, got %+v", got)
	}
}

func TestFindCardDefault(t *testing.T) {
	c, err := FindCard(DefaultCard)
	if err != nil {
		t.Fatalf("FindCard failed: %v", err)
	}
	if math.Abs(PtToMM(c.Width)-59) > 1e-9 || math.Abs(PtToMM(c.Height)-86) > 1e-9 {
		t.Errorf("expected 59x86mm, got %.3f x %.3f", PtToMM(c.Width), PtToMM(c.Height))
	}
	if _, err := FindCard("huge"); err == nil {
		t.Error("expected error for unknown card")
	}
}

func TestLayoutParamsValidate(t *testing.T) {
	valid := DefaultLayoutParams()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default params should be valid: %v", err)
	}

	cases := []LayoutParams{
		{NumCols: 0, NumRows: 2},
		{NumCols: 3, NumRows: 0},
		{NumCols: -1, NumRows: 2},
		{NumCols: 3, NumRows: 2, HorizontalGap: -1},
		{NumCols: 3, NumRows: 2, VerticalGap: -0.5},
		{NumCols: 3, NumRows: 2, MinHorizontalMargin: -2},
		{NumCols: 3, NumRows: 2, MinVerticalMargin: -2},
	}
	for _, c := range cases {
		err := c.Validate()
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%+v: expected ErrInvalidConfiguration, got %v", c, err)
		}
	}
}

func TestLayoutParamsInPoints(t *testing.T) {
	p := LayoutParams{NumCols: 3, NumRows: 3, HorizontalGap: 25.4, VerticalGap: 0, MinHorizontalMargin: 254, MinVerticalMargin: 2.54}
	pt := p.InPoints()

	if pt.NumCols != 3 || pt.NumRows != 3 {
		t.Errorf("grid shape changed: %dx%d", pt.NumCols, pt.NumRows)
	}
	if math.Abs(pt.HorizontalGap-72) > 1e-9 {
		t.Errorf("expected 72pt gap, got %f", pt.HorizontalGap)
	}
	if math.Abs(pt.MinHorizontalMargin-720) > 1e-9 {
		t.Errorf("expected 720pt margin, got %f", pt.MinHorizontalMargin)
	}
	if math.Abs(pt.MinVerticalMargin-7.2) > 1e-9 {
		t.Errorf("expected 7.2pt margin, got %f", pt.MinVerticalMargin)
	}
}

func TestEncodingClassification(t *testing.T) {
	if !EncodingJPEG.Supported() || !EncodingPNG.Supported() {
		t.Error("JPEG and PNG must be supported")
	}
	for _, e := range []Encoding{EncodingWebP, EncodingBMP, EncodingTIFF, EncodingGIF, EncodingUnknown} {
		if e.Supported() {
			t.Errorf("%s should not be directly supported", e)
		}
	}
	if EncodingUnknown.Convertible() {
		t.Error("unknown encoding should not be convertible")
	}
	if !EncodingWebP.Convertible() {
		t.Error("WebP should be convertible")
	}
	if EncodingPNG.String() != "PNG" {
		t.Errorf("expected PNG, got %s", EncodingPNG.String())
	}
}

func TestExpandDeck(t *testing.T) {
	entries := []DeckEntry{
		{Path: "a.png", Copies: 2},
		{Path: "b.png", Copies: 0},
		{Path: "c.jpg", Copies: 1},
	}
	got := ExpandDeck(entries)
	want := []string{"a.png", "a.png", "c.jpg"}
	if len(got) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
