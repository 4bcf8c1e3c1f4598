// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package ray defines the ray primitive shared by geometry intersection,
// acceleration structure traversal, and the integrator.
package ray

import "github.com/gazed/pathtrace/vec"

// Ray is a world-space ray with a precomputed inverse direction, so the
// AABB slab test (geom.IntersectAABB) never divides on the hot path.
//
// Dir must be unit length. InvDir may hold ±Inf on axis-aligned rays
// (division by zero); the slab test's min/max composition discards those
// correctly rather than producing NaN comparisons, so callers must never
// special-case InvDir themselves.
type Ray struct {
	Origin V3
	Dir    V3
	InvDir V3
}

// V3 is an alias so callers only need to import vec once; kept local for
// readability of this package's exported signatures.
type V3 = vec.V3

// New builds a ray from an origin and a (not necessarily unit) direction,
// normalizing the direction and precomputing its componentwise inverse.
func New(origin, dir V3) Ray {
	d := dir.Unit()
	return Ray{
		Origin: origin,
		Dir:    d,
		InvDir: V3{X: invComponent(d.X), Y: invComponent(d.Y), Z: invComponent(d.Z)},
	}
}

func invComponent(d float64) float64 {
	return 1 / d // d == 0 correctly produces +Inf/-Inf per IEEE 754.
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) V3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
