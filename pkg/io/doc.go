// Package io reads node coordinates and writes solver results.
//
// # Coordinate Format
//
// The input is plain text with one node per line:
//
//	0 565.0 575.0
//	1 25.0 185.0
//	2 345.0 750.0
//
// Each line holds an integer label followed by the x and y coordinates,
// separated by whitespace. The label must parse as an integer but is
// otherwise ignored: node indices are assigned by line order, starting at 0.
// Tokens after the third are ignored. Blank lines are skipped.
//
// Any malformed line rejects the whole input with an INVALID_COORDINATES
// error naming the 1-based line number:
//
//	points, err := io.ImportCoords("cities.txt")
//	if errors.Is(err, errors.ErrCodeInvalidCoordinates) {
//	    // report the bad line
//	}
//
// # Output
//
// [FormatTour] and [FormatDistance] produce the textual result shown to
// users: the closed tour as a bracketed index list and the distance in its
// shortest round-trip decimal form.
//
// [WriteJSON] and [ExportJSON] encode a solver result as indented JSON:
//
//	{
//	  "tour": [0, 2, 1, 0],
//	  "distance": 8,
//	  "iterations": 100,
//	  "seed": 42,
//	  "history": [9, 8, 8]
//	}
//
// # Concurrency
//
// All functions are stateless and safe to call concurrently.
package io
