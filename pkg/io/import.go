package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
)

// maxLineBytes bounds a single coordinate line.
const maxLineBytes = 64 * 1024

// ReadCoords parses coordinate lines from r.
//
// Each non-blank line must contain an integer label and two finite numbers.
// The returned slice is indexed by line order (blank lines excluded), not by
// label. ReadCoords does not check the node count; the solver rejects inputs
// with fewer than two points.
//
// ReadCoords does not close r.
func ReadCoords(r io.Reader) ([]geom.Point, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var points []geom.Point
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		p, err := parseLine(fields)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidCoordinates, "line %d: %s", line, err)
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCoordinates, err, "line %d", line+1)
	}
	return points, nil
}

func parseLine(fields []string) (geom.Point, error) {
	if len(fields) < 3 {
		return geom.Point{}, fmt.Errorf("want \"<index> <x> <y>\", got %d fields", len(fields))
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return geom.Point{}, fmt.Errorf("index %q is not an integer", fields[0])
	}
	var p geom.Point
	for k, name := range []string{"x", "y"} {
		v, err := strconv.ParseFloat(fields[k+1], 64)
		if err != nil {
			return geom.Point{}, fmt.Errorf("%s coordinate %q is not a number", name, fields[k+1])
		}
		p[k] = v
	}
	if !geom.IsFinite(p) {
		return geom.Point{}, fmt.Errorf("coordinates (%s, %s) are not finite", fields[1], fields[2])
	}
	return p, nil
}

// ImportCoords reads a coordinate file at path.
//
// ImportCoords returns the same validation errors as [ReadCoords]. Failure to
// open the file is reported as a plain wrapped error with the path.
func ImportCoords(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCoords(f)
}
