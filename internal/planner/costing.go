package planner

import (
	"fmt"

	"github.com/Knetic/govaluate"
)

// EvaluateCost computes the default cost of an internal step from a
// process's cost formula. The formula is a govaluate expression over three
// parameters: quantity, estimated_time (minutes) and rate (per hour). An
// empty formula falls back to estimated_time / 60 * rate.
func EvaluateCost(formula string, quantity int, estimatedTime, rate float64) (float64, error) {
	if formula == "" {
		return estimatedTime / 60 * rate, nil
	}

	expression, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return 0, fmt.Errorf("invalid cost formula %q: %w", formula, err)
	}

	parameters := map[string]interface{}{
		"quantity":       float64(quantity),
		"estimated_time": estimatedTime,
		"rate":           rate,
	}

	result, err := expression.Evaluate(parameters)
	if err != nil {
		return 0, fmt.Errorf("evaluate cost formula %q: %w", formula, err)
	}

	amount, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("cost formula %q did not produce a number", formula)
	}
	return amount, nil
}

// defaultInternalCost is the defaulter's infallible variant: a broken
// formula degrades to the time-based default instead of failing the whole
// draft.
func defaultInternalCost(entry RoutingEntry, quantity int) float64 {
	cost, err := EvaluateCost(entry.CostFormula, quantity, entry.EstimatedTime, entry.HourlyRate)
	if err != nil {
		cost, _ = EvaluateCost("", quantity, entry.EstimatedTime, entry.HourlyRate)
	}
	return cost
}
