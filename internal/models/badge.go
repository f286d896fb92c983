package models

// BadgeDefinition describes a one-time, non-revocable achievement.
type BadgeDefinition struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
	Icon           string `json:"icon"`
}

// Badge ids. The catalog is iterated in BadgeCatalog order when
// checking eligibility, so first-earned order is deterministic.
const (
	BadgeCarbonSaver        = "carbon_saver"
	BadgeGreenChampion      = "green_champion"
	BadgeEcoInvestor        = "eco_investor"
	BadgeCalculatorMaster   = "calculator_master"
	BadgeWaterWarrior       = "water_warrior"
	BadgePlasticFighter     = "plastic_fighter"
	BadgeAIExplorer         = "ai_explorer"
	BadgeSustainabilityHero = "sustainability_hero"
)

// BadgeCatalog is the static, process-wide badge table.
var BadgeCatalog = []BadgeDefinition{
	{
		ID:             BadgeCarbonSaver,
		Name:           "Carbon Saver",
		Description:    "Offset your first 1 ton of CO2",
		PointsRequired: 100,
		Icon:           "🌱",
	},
	{
		ID:             BadgeGreenChampion,
		Name:           "Green Champion",
		Description:    "Offset 10 tons of CO2",
		PointsRequired: 1000,
		Icon:           "🏆",
	},
	{
		ID:             BadgeEcoInvestor,
		Name:           "Eco Investor",
		Description:    "Invest in 5+ carbon credit projects",
		PointsRequired: 500,
		Icon:           "💚",
	},
	{
		ID:             BadgeCalculatorMaster,
		Name:           "Calculator Master",
		Description:    "Use all calculator tools 10+ times",
		PointsRequired: 200,
		Icon:           "🧮",
	},
	{
		ID:             BadgeWaterWarrior,
		Name:           "Water Warrior",
		Description:    "Calculate and reduce water footprint",
		PointsRequired: 150,
		Icon:           "💧",
	},
	{
		ID:             BadgePlasticFighter,
		Name:           "Plastic Fighter",
		Description:    "Track and reduce plastic usage",
		PointsRequired: 150,
		Icon:           "♻️",
	},
	{
		ID:             BadgeAIExplorer,
		Name:           "AI Explorer",
		Description:    "Use AI tools 20+ times",
		PointsRequired: 300,
		Icon:           "🤖",
	},
	{
		ID:             BadgeSustainabilityHero,
		Name:           "Sustainability Hero",
		Description:    "Reach 5000 EcoPoints",
		PointsRequired: 5000,
		Icon:           "🦸",
	},
}

// BadgeByID looks up a badge definition in the static catalog.
func BadgeByID(id string) (BadgeDefinition, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDefinition{}, false
}
