package aco

import "math"

// Best is the best tour found so far and its distance.
type Best struct {
	Tour     Tour
	Distance float64
}

// NewBest returns an empty best result with distance +Inf.
func NewBest() Best {
	return Best{Distance: math.Inf(1)}
}

// Offer replaces b when distance is strictly smaller than the current best.
// Ties keep the earlier tour. It reports whether b changed.
func (b *Best) Offer(tour Tour, distance float64) bool {
	if distance < b.Distance {
		b.Tour = tour.Clone()
		b.Distance = distance
		return true
	}
	return false
}

// PassStats summarises one update pass.
type PassStats struct {
	// IterationBest is the shortest tour distance within the batch.
	IterationBest float64
	// Improved reports whether the pass replaced the overall best.
	Improved bool
}

// UpdateParams configures an update pass.
type UpdateParams struct {
	EvaporationRate    float64
	SymmetricDeposit   bool
	IncludeClosingEdge bool
}

// UpdatePass consumes one iteration's batch of tours in batch order. For
// each tour it computes the tour distance (N-1 consecutive edges unless
// IncludeClosingEdge), offers it to best, and then evaporates and deposits
// pheromone along the tour.
//
// Deposits are applied immediately, so later tours in the batch update the
// values left by earlier ones. Callers must pass tours in a fixed order for
// runs to be reproducible.
func UpdatePass(batch []Tour, dist *DistanceMatrix, tau *PheromoneMatrix, best *Best, p UpdateParams) (PassStats, error) {
	stats := PassStats{IterationBest: math.Inf(1)}

	for _, tour := range batch {
		d := dist.PathLength(tour, p.IncludeClosingEdge)
		if d < stats.IterationBest {
			stats.IterationBest = d
		}
		if best.Offer(tour, d) {
			stats.Improved = true
		}

		var err error
		if p.SymmetricDeposit {
			err = tau.EvaporateAndDepositSymmetric(tour, d, p.EvaporationRate)
		} else {
			err = tau.EvaporateAndDeposit(tour, d, p.EvaporationRate)
		}
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}
