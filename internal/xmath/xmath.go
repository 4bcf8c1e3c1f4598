// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package xmath holds the generic Clamp helper shared across the tracer's
// ordered scalar types (float64 color/scalar clamping in vec, int texel
// coordinate clamping in texture), using golang.org/x/exp/constraints
// already present in the module dependency set.
package xmath

import "golang.org/x/exp/constraints"

// Clamp restricts v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
