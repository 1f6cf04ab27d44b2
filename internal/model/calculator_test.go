package model

import (
	"math"
	"testing"
)

func TestPlanEmptySlots(t *testing.T) {
	p := Plan{Images: 10, Pages: 2, PerPage: 8, LastPageCount: 2}
	if got := p.EmptySlots(); got != 6 {
		t.Errorf("expected 6 empty slots, got %d", got)
	}

	full := Plan{Images: 16, Pages: 2, PerPage: 8, LastPageCount: 8}
	if got := full.EmptySlots(); got != 0 {
		t.Errorf("expected 0 empty slots on a full page, got %d", got)
	}

	none := Plan{PerPage: 8}
	if got := none.EmptySlots(); got != 0 {
		t.Errorf("expected 0 empty slots with no pages, got %d", got)
	}
}

func TestPlanCoverage(t *testing.T) {
	p := Plan{
		Geometry: Geometry{
			Page:       PageSize{Width: 100, Height: 100},
			CardWidth:  25,
			CardHeight: 50,
		},
		PerPage: 4,
	}
	if got := p.Coverage(); math.Abs(got-50) > 1e-9 {
		t.Errorf("expected 50%% coverage, got %f", got)
	}

	if got := (Plan{}).Coverage(); got != 0 {
		t.Errorf("expected 0 coverage for zero page, got %f", got)
	}
}

func TestPlanCardSizeMM(t *testing.T) {
	p := Plan{Geometry: Geometry{CardWidth: 72, CardHeight: 144}}
	w, h := p.CardSizeMM()
	if math.Abs(w-25.4) > 1e-9 || math.Abs(h-50.8) > 1e-9 {
		t.Errorf("expected 25.4 x 50.8 mm, got %f x %f", w, h)
	}
}
