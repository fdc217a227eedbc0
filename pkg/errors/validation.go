package errors

import (
	"math"
)

// ValidatePositive checks that an integer parameter is at least 1.
func ValidatePositive(name string, v int) error {
	if v < 1 {
		return New(ErrCodeInvalidInput, "%s must be >= 1, got %d", name, v)
	}
	return nil
}

// ValidateIndex checks that i addresses one of n elements.
func ValidateIndex(name string, i, n int) error {
	if i < 0 || i >= n {
		return New(ErrCodeInvalidInput, "%s must be in [0, %d), got %d", name, n, i)
	}
	return nil
}

// ValidateFinite rejects NaN and infinities.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is finite and >= 0.
func ValidateNonNegative(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must be >= 0, got %v", name, v)
	}
	return nil
}

// ValidateUnitInterval checks that v lies in the half-open interval (0, 1].
func ValidateUnitInterval(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 || v > 1 {
		return New(ErrCodeInvalidInput, "%s must be in (0, 1], got %v", name, v)
	}
	return nil
}
