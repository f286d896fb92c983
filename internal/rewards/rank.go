package rewards

const (
	maxRankPoints = 1_000_000
	pointsPerRank = 100
	minRank       = 1
	maxRank       = 10_000
)

// ComputeRank derives a coarse tier from EcoPoints: one rank level per
// 100 points, clamped to [1, 10000]. Total over all inputs; negative
// points degrade to rank 1.
func ComputeRank(ecoPoints int) int {
	if ecoPoints < 0 {
		ecoPoints = 0
	}
	if ecoPoints > maxRankPoints {
		ecoPoints = maxRankPoints
	}

	rank := ecoPoints / pointsPerRank
	if rank < minRank {
		return minRank
	}
	if rank > maxRank {
		return maxRank
	}
	return rank
}
