// Package rewards implements the reward-scoring and badge-eligibility
// engine: point computation, badge-unlock rules, rank computation and
// the leaderboard view over the persisted user table.
package rewards

import "math"

// DefaultMultiplier is applied to action types without an explicit entry.
const DefaultMultiplier = 10

// actionMultipliers maps an action type to its points-per-unit value.
var actionMultipliers = map[string]int{
	"carbon_offset":       50, // per ton offset
	"calculator_use":      10,
	"water_calculation":   15,
	"plastic_calculation": 15,
	"ai_tool_use":         20,
	"investment":          30,
	"energy_savings":      25, // per MWh saved
}

// ComputePoints maps an action type and magnitude to a point value.
// Non-positive or non-finite amounts are treated as 1.0. Pure function.
func ComputePoints(actionType string, amount float64) int {
	multiplier, ok := actionMultipliers[actionType]
	if !ok {
		multiplier = DefaultMultiplier
	}
	return int(math.Floor(float64(multiplier) * NormalizeAmount(amount)))
}

// NormalizeAmount substitutes 1.0 for amounts that are not positive
// finite numbers.
func NormalizeAmount(amount float64) float64 {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 1.0
	}
	return amount
}
