package engine

import (
	"fmt"

	"github.com/piwi3910/ProxySheet/internal/model"
)

// ComparisonScenario defines a named set of layout parameters to compare.
type ComparisonScenario struct {
	Name   string
	Params model.LayoutParams
}

// ComparisonResult holds the plan for a single scenario. Err is set when the
// scenario's parameters cannot produce a layout.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Plan     model.Plan
	Err      error
}

// CompareScenarios plans n images under each scenario, in scenario order.
func (l *Layout) CompareScenarios(scenarios []ComparisonScenario, n int) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan, err := l.Plan(scenario.Params, n)
		results = append(results, ComparisonResult{
			Scenario: scenario,
			Plan:     plan,
			Err:      err,
		})
	}

	return results
}

// BuildDefaultScenarios varies the base parameters to show what-if alternatives:
// the transposed grid, one more column, one more row and no gaps.
func BuildDefaultScenarios(base model.LayoutParams) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Settings",
			Params: base,
		},
	}

	if base.NumCols != base.NumRows {
		swapped := base
		swapped.NumCols, swapped.NumRows = base.NumRows, base.NumCols
		swapped.HorizontalGap, swapped.VerticalGap = base.VerticalGap, base.HorizontalGap
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Transposed %dx%d", swapped.NumCols, swapped.NumRows),
			Params: swapped,
		})
	}

	moreCols := base
	moreCols.NumCols++
	scenarios = append(scenarios, ComparisonScenario{
		Name:   fmt.Sprintf("%d Columns", moreCols.NumCols),
		Params: moreCols,
	})

	moreRows := base
	moreRows.NumRows++
	scenarios = append(scenarios, ComparisonScenario{
		Name:   fmt.Sprintf("%d Rows", moreRows.NumRows),
		Params: moreRows,
	})

	if base.HorizontalGap > 0 || base.VerticalGap > 0 {
		noGaps := base
		noGaps.HorizontalGap = 0
		noGaps.VerticalGap = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Gaps",
			Params: noGaps,
		})
	}

	return scenarios
}
