package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/acotour/pkg/aco"
)

type result struct {
	Tour       []int     `json:"tour"`
	Distance   float64   `json:"distance"`
	Iterations int       `json:"iterations"`
	Seed       uint64    `json:"seed"`
	History    []float64 `json:"history,omitempty"`
}

// FormatTour formats a tour as "[0, 2, 1, 0]".
func FormatTour(t aco.Tour) string {
	return t.String()
}

// FormatDistance formats d as the shortest decimal that round-trips,
// keeping a trailing ".0" on integral values ("8.0", "12.345"). Magnitudes
// of 1e16 and above, or below 1e-4, switch to exponent form ("1e+16",
// "2.5e-05").
func FormatDistance(d float64) string {
	if a := math.Abs(d); a != 0 && !math.IsInf(a, 0) && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(d, 'e', -1, 64)
	}
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// WriteJSON encodes a solver result as indented JSON and writes it to w.
// Elapsed time is omitted so equal seeded runs produce identical output.
func WriteJSON(res *aco.Result, w io.Writer) error {
	out := result{
		Tour:       res.Tour,
		Distance:   res.Distance,
		Iterations: res.Iterations,
		Seed:       res.Seed,
		History:    res.History,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a solver result to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(res *aco.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(res, f)
}
