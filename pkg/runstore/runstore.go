// Package runstore keeps finished solver runs so they can be fetched again
// by ID.
//
// Implementations are provided for different backends:
//   - [MemoryStore]: in-process map for development and tests
//   - [FileStore]: one JSON file per run, for the CLI
//   - [MongoStore]: a MongoDB collection with a TTL index, for the server
//
// # Architecture
//
// A [Run] holds everything needed to redraw a result: the input points, the
// parameters, and the closed best tour with its distance. Solver state such
// as the pheromone matrix is never stored.
//
// Runs expire: Get treats an expired run as missing and Cleanup removes
// expired runs in bulk. A zero ExpiresAt never expires.
//
// # Usage
//
//	run := runstore.NewRun("cities.txt", points, opts, res, runstore.DefaultTTL)
//	if err := store.Set(ctx, run); err != nil {
//	    return err
//	}
//
//	run, err := store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeRunNotFound) {
//	    // unknown or expired
//	}
package runstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
)

// DefaultTTL is how long a run is kept unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// Params are the solver parameters of a run.
type Params struct {
	StartNode          int     `json:"start_node" bson:"start_node"`
	NumAnts            int     `json:"num_ants" bson:"num_ants"`
	NumIterations      int     `json:"num_iterations" bson:"num_iterations"`
	EvaporationRate    float64 `json:"evaporation_rate" bson:"evaporation_rate"`
	Alpha              float64 `json:"alpha" bson:"alpha"`
	Beta               float64 `json:"beta" bson:"beta"`
	Seed               uint64  `json:"seed" bson:"-"`
	SeedBits           int64   `json:"-" bson:"seed"` // Seed as stored in BSON, which has no uint64
	SymmetricDeposit   bool    `json:"symmetric_deposit,omitempty" bson:"symmetric_deposit,omitempty"`
	IncludeClosingEdge bool    `json:"include_closing_edge,omitempty" bson:"include_closing_edge,omitempty"`
}

// ParamsFrom captures the result-relevant fields of opts. seed is the
// effective seed of the run, which differs from opts.Seed for unseeded runs.
func ParamsFrom(opts aco.Options, seed uint64) Params {
	return Params{
		StartNode:          opts.StartNode,
		NumAnts:            opts.NumAnts,
		NumIterations:      opts.NumIterations,
		EvaporationRate:    opts.EvaporationRate,
		Alpha:              opts.Alpha,
		Beta:               opts.Beta,
		Seed:               seed,
		SymmetricDeposit:   opts.SymmetricDeposit,
		IncludeClosingEdge: opts.IncludeClosingEdge,
	}
}

// Options returns solver options that replay the run.
func (p Params) Options() aco.Options {
	return aco.Options{
		StartNode:          p.StartNode,
		NumAnts:            p.NumAnts,
		NumIterations:      p.NumIterations,
		EvaporationRate:    p.EvaporationRate,
		Alpha:              p.Alpha,
		Beta:               p.Beta,
		Seed:               p.Seed,
		SymmetricDeposit:   p.SymmetricDeposit,
		IncludeClosingEdge: p.IncludeClosingEdge,
	}
}

// Run is a stored solver result.
type Run struct {
	ID         string       `json:"id" bson:"_id"`
	Source     string       `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	ExpiresAt  time.Time    `json:"expires_at,omitzero" bson:"expires_at,omitempty"`
	Params     Params       `json:"params" bson:"params"`
	Points     []geom.Point `json:"points" bson:"points"`
	Tour       aco.Tour     `json:"tour" bson:"tour"`
	Distance   float64      `json:"distance" bson:"distance"`
	Iterations int          `json:"iterations" bson:"iterations"`
}

// NewRun builds a Run with a fresh random ID. A ttl of zero never expires.
func NewRun(source string, points []geom.Point, opts aco.Options, res *aco.Result, ttl time.Duration) *Run {
	now := time.Now().UTC()
	run := &Run{
		ID:         uuid.NewString(),
		Source:     source,
		CreatedAt:  now,
		Params:     ParamsFrom(opts, res.Seed),
		Points:     points,
		Tour:       res.Tour,
		Distance:   res.Distance,
		Iterations: res.Iterations,
	}
	if ttl > 0 {
		run.ExpiresAt = now.Add(ttl)
	}
	return run
}

// IsExpired reports whether the run has passed its expiry time.
func (r *Run) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Store is the interface for run storage backends.
type Store interface {
	// Get retrieves a run by ID. Missing and expired runs yield a
	// RUN_NOT_FOUND error; a malformed ID yields INVALID_INPUT.
	Get(ctx context.Context, id string) (*Run, error)

	// Set stores a run, replacing any run with the same ID.
	Set(ctx context.Context, run *Run) error

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit unexpired runs, newest first. limit <= 0
	// returns all of them.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Cleanup removes expired runs and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// ValidateID checks that id is a canonical run ID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid run id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
}
