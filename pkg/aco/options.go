package aco

import (
	"github.com/matzehuels/acotour/pkg/errors"
)

// Default parameter values. They match the settings the upload form has
// always used.
const (
	DefaultStartNode       = 0
	DefaultNumAnts         = 10
	DefaultNumIterations   = 100
	DefaultEvaporationRate = 0.5
	DefaultAlpha           = 1.0
	DefaultBeta            = 3.0
)

// Options configures a solver run.
type Options struct {
	// StartNode is the index every ant starts from and the tour is closed at.
	StartNode int `json:"start_node" toml:"start_node"`

	// NumAnts is the number of tours built per iteration (>= 1).
	NumAnts int `json:"num_ants" toml:"ants"`

	// NumIterations is the number of construct/update rounds (>= 1).
	NumIterations int `json:"num_iterations" toml:"iterations"`

	// EvaporationRate (rho) is the fraction of pheromone lost per update,
	// in (0, 1].
	EvaporationRate float64 `json:"evaporation_rate" toml:"evaporation_rate"`

	// Alpha weights pheromone influence (>= 0).
	Alpha float64 `json:"alpha" toml:"alpha"`

	// Beta weights inverse-distance influence (>= 0).
	Beta float64 `json:"beta" toml:"beta"`

	// Seed fixes the random stream. 0 draws a fresh seed.
	Seed uint64 `json:"seed,omitempty" toml:"seed"`

	// SymmetricDeposit reinforces v→u together with every traversed u→v.
	SymmetricDeposit bool `json:"symmetric_deposit,omitempty" toml:"symmetric_deposit"`

	// IncludeClosingEdge counts the edge back to the start node when ranking
	// tours, depositing pheromone and reporting the distance.
	IncludeClosingEdge bool `json:"include_closing_edge,omitempty" toml:"include_closing_edge"`

	// OnIteration, if set, is called after every update pass.
	OnIteration func(IterationStats) `json:"-" toml:"-"`
}

// DefaultOptions returns the default solver configuration (unseeded).
func DefaultOptions() Options {
	return Options{
		StartNode:       DefaultStartNode,
		NumAnts:         DefaultNumAnts,
		NumIterations:   DefaultNumIterations,
		EvaporationRate: DefaultEvaporationRate,
		Alpha:           DefaultAlpha,
		Beta:            DefaultBeta,
	}
}

// Validate checks the parameter ranges that do not depend on the input size.
func (o Options) Validate() error {
	if err := errors.ValidatePositive("num_ants", o.NumAnts); err != nil {
		return err
	}
	if err := errors.ValidatePositive("num_iterations", o.NumIterations); err != nil {
		return err
	}
	if err := errors.ValidateUnitInterval("evaporation_rate", o.EvaporationRate); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("alpha", o.Alpha); err != nil {
		return err
	}
	return errors.ValidateNonNegative("beta", o.Beta)
}

func (o Options) updateParams() UpdateParams {
	return UpdateParams{
		EvaporationRate:    o.EvaporationRate,
		SymmetricDeposit:   o.SymmetricDeposit,
		IncludeClosingEdge: o.IncludeClosingEdge,
	}
}
