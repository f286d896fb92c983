package rewards

import (
	"strings"

	"github.com/AkshitTiwarii/carbonx/internal/models"
)

// EvaluateBadges returns the ids of badges newly earned by the user,
// in catalog order. Already-earned badges are never re-awarded; the
// caller merges the result into user.Badges append-only.
//
// History-based predicates (investment, calculator and AI counts) run
// against user.Actions, which must already include the triggering
// action, so a threshold crossed by the current request unlocks on the
// same call.
func EvaluateBadges(user *models.UserRecord, newEcoPoints int, actionType string) []string {
	var newBadges []string
	for _, badge := range models.BadgeCatalog {
		if user.HasBadge(badge.ID) {
			continue
		}

		eligible := false
		switch badge.ID {
		case models.BadgeCarbonSaver, models.BadgeGreenChampion, models.BadgeSustainabilityHero:
			eligible = newEcoPoints >= badge.PointsRequired
		case models.BadgeEcoInvestor:
			eligible = user.CountActions(func(a models.ActionRecord) bool {
				return a.Type == "investment"
			}) >= 5
		case models.BadgeCalculatorMaster:
			eligible = user.CountActions(func(a models.ActionRecord) bool {
				return strings.Contains(a.Type, "calculator")
			}) >= 10
		case models.BadgeWaterWarrior:
			eligible = actionType == "water_calculation"
		case models.BadgePlasticFighter:
			eligible = actionType == "plastic_calculation"
		case models.BadgeAIExplorer:
			eligible = user.CountActions(func(a models.ActionRecord) bool {
				return strings.Contains(strings.ToLower(a.Type), "ai")
			}) >= 20
		}

		if eligible {
			newBadges = append(newBadges, badge.ID)
		}
	}
	return newBadges
}
