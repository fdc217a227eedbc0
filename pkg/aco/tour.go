package aco

import (
	"strconv"
	"strings"

	"github.com/matzehuels/acotour/pkg/errors"
)

// Tour is an ordered sequence of node indices. Tours built by ants are open
// permutations that start at the start node; [Result.Tour] is closed
// (first == last).
type Tour []int

// Clone returns an independent copy of t.
func (t Tour) Clone() Tour {
	return append(Tour(nil), t...)
}

// Closed returns a copy of t with its first node appended.
func (t Tour) Closed() Tour {
	if len(t) == 0 {
		return Tour{}
	}
	out := make(Tour, len(t), len(t)+1)
	copy(out, t)
	return append(out, t[0])
}

// String formats the tour as a bracketed, comma-separated index list.
func (t Tour) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range t {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

// ValidatePermutation checks that t visits each of the n nodes exactly once
// and starts at start.
//
// Complexity: O(n) time, O(n) space.
func (t Tour) ValidatePermutation(n, start int) error {
	if len(t) != n {
		return errors.New(errors.ErrCodeInternal, "tour has %d nodes, want %d", len(t), n)
	}
	if n > 0 && t[0] != start {
		return errors.New(errors.ErrCodeInternal, "tour starts at %d, want %d", t[0], start)
	}
	seen := make([]bool, n)
	for _, v := range t {
		if v < 0 || v >= n {
			return errors.New(errors.ErrCodeInternal, "tour node %d out of range [0, %d)", v, n)
		}
		if seen[v] {
			return errors.New(errors.ErrCodeInternal, "tour visits node %d twice", v)
		}
		seen[v] = true
	}
	return nil
}
