package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/errors"
)

// solverFromValues overlays form or query values on base. Empty values keep
// the base setting.
func solverFromValues(values url.Values, base aco.Options) (aco.Options, error) {
	opts := base
	ints := []struct {
		key string
		dst *int
	}{
		{"start_node", &opts.StartNode},
		{"ants", &opts.NumAnts},
		{"iterations", &opts.NumIterations},
	}
	for _, f := range ints {
		if v := values.Get(f.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not an integer", f.key, v)
			}
			*f.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"evaporation_rate", &opts.EvaporationRate},
		{"alpha", &opts.Alpha},
		{"beta", &opts.Beta},
	}
	for _, f := range floats {
		if v := values.Get(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", f.key, v)
			}
			*f.dst = x
		}
	}

	if v := values.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed: %q is not an unsigned integer", v)
		}
		opts.Seed = seed
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"symmetric_deposit", &opts.SymmetricDeposit},
		{"include_closing_edge", &opts.IncludeClosingEdge},
	}
	for _, f := range bools {
		if v := values.Get(f.key); v == "on" {
			*f.dst = true // checkbox
		} else if v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", f.key, v)
			}
			*f.dst = b
		}
	}

	return opts, opts.Validate()
}
