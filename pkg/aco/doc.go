// Package aco computes approximate shortest round trips over 2D points with
// an Ant Colony Optimization (Ant System) metaheuristic.
//
// # Overview
//
// A run owns two matrices for its whole lifetime:
//
//   - [DistanceMatrix]: pairwise Euclidean distances, built once and never
//     modified.
//   - [PheromoneMatrix]: per directed edge desirability, initialised to 1.0
//     and rewritten by every update pass.
//
// Each iteration has two strictly ordered phases:
//
//  1. Construction: every ant walks a tour from the start node, choosing the
//     next unvisited node j with probability proportional to
//     tau(c,j)^alpha * (1/d(c,j))^beta. All ants of a round read the same
//     pheromone snapshot, taken before the round's first deposit.
//  2. Update: tours are processed in ant order. Each tour's open length
//     (N-1 edges) is compared with the best so far (strict improvement
//     only), then every traversed edge u→v is evaporated and reinforced:
//     tau[u][v] = (1-rho)*tau[u][v] + rho/length. Later ants in the pass
//     build on earlier ants' deposits.
//
// # Usage
//
//	opts := aco.DefaultOptions()
//	opts.Seed = 42
//	res, err := aco.Solve(ctx, points, opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Tour, res.Distance) // [0 3 1 2 0] 12.7
//
// # Reference behaviour
//
// Two properties of the reference algorithm are kept by default:
//
//   - Deposits are directional: only u→v is reinforced, never v→u. Set
//     [Options.SymmetricDeposit] to reinforce both directions.
//   - The reported distance excludes the closing edge back to the start
//     node even though the returned tour is closed. Set
//     [Options.IncludeClosingEdge] to rank and report full cycle lengths.
//
// # Determinism
//
// A non-zero [Options.Seed] makes a run fully reproducible: identical inputs
// yield an identical tour and distance. Seed 0 draws a fresh seed, which is
// reported back in [Result.Seed] so the run can be replayed.
//
// # Errors
//
// Errors carry codes from the acotour errors package: INVALID_INPUT for bad
// parameters or fewer than two points (checked before any iteration runs),
// DEGENERATE_INPUT for zero-length edges, NUMERIC_OVERFLOW when alpha/beta
// push the selection weights out of float64 range, and CANCELED when the
// context ends between iterations.
package aco
