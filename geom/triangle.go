// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package geom implements the correctness-critical numerical primitives
// the tracer is built on: ray/triangle and ray/AABB intersection, AABB
// fitting, and the primitive-reference identity used by both accelerators.
package geom

import (
	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/vec"
)

// hitEpsilon rejects self-hits against the originating surface: a bounce
// ray spawned from a triangle must not immediately re-intersect it.
const hitEpsilon = 1e-5

// Triangle holds three world-space vertices.
type Triangle struct {
	A, B, C vec.V3
}

// TriangleProps carries the per-vertex shading data Triangle itself
// doesn't: normals and texture coordinates, interpolated with barycentrics
// at a hit.
type TriangleProps struct {
	NA, NB, NC vec.V3
	UVA, UVB, UVC vec.V2
}

// Hit describes a ray/triangle intersection.
type Hit struct {
	Point      vec.V3
	T          float64
	U, V       float64 // barycentric coordinates of B and C; A's weight is 1-U-V.
}

// IntersectTriangle implements the Möller–Trumbore ray/triangle test with
// culling disabled (front and back faces both hit). Returns ok=false on a
// miss, a grazing/parallel ray, or a hit closer than hitEpsilon (a
// self-intersection).
func IntersectTriangle(r ray.Ray, tri Triangle) (hit Hit, ok bool) {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	h := r.Dir.Cross(e2)
	a := e1.Dot(h)
	if a > -vec.Epsilon && a < vec.Epsilon {
		return Hit{}, false
	}
	f := 1 / a
	s := r.Origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Hit{}, false
	}
	q := s.Cross(e1)
	v := f * r.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}
	t := f * e2.Dot(q)
	if t <= hitEpsilon {
		return Hit{}, false
	}
	return Hit{Point: r.At(t), T: t, U: u, V: v}, true
}

// Interpolate evaluates a barycentric-weighted vertex attribute given the
// (u, v) weights of vertices B and C returned by IntersectTriangle (A's
// weight is 1-u-v).
func Interpolate(a, b, c vec.V3, u, v float64) vec.V3 {
	w := 1 - u - v
	return vec.V3{
		X: w*a.X + u*b.X + v*c.X,
		Y: w*a.Y + u*b.Y + v*c.Y,
		Z: w*a.Z + u*b.Z + v*c.Z,
	}
}

// InterpolateUV evaluates a barycentric-weighted texture coordinate.
func InterpolateUV(a, b, c vec.V2, u, v float64) vec.V2 {
	w := 1 - u - v
	return vec.V2{X: w*a.X + u*b.X + v*c.X, Y: w*a.Y + u*b.Y + v*c.Y}
}
