// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import (
	"math"

	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/vec"
)

// fitEpsilon pads every fitted AABB so that traversal of axis-aligned and
// degenerate (zero-thickness) geometry remains numerically robust.
const fitEpsilon = 1e-4

// AABB is an axis-aligned bounding box. The zero value is not a valid,
// empty box (Min > Max would be required); use Empty() to start a fold.
type AABB struct {
	Min, Max vec.V3
}

// Empty returns an AABB with no volume, suitable as the starting point of
// a union fold (Empty().Union(...).Union(...)).
func Empty() AABB {
	inf := math.MaxFloat64
	return AABB{Min: vec.NewV3(inf), Max: vec.NewV3(-inf)}
}

// FitTriangle returns the padded AABB enclosing a triangle's three
// vertices, satisfying the closure invariant (every vertex lies strictly
// inside the returned box).
func FitTriangle(t Triangle) AABB {
	min := t.A.Min(t.B).Min(t.C)
	max := t.A.Max(t.B).Max(t.C)
	pad := vec.NewV3(fitEpsilon)
	return AABB{Min: min.Sub(pad), Max: max.Add(pad)}
}

// FitAABB unions two AABBs, padding only the max side, matching the
// asymmetric padding convention used for accelerator-node box fitting
// (child boxes are already padded by FitTriangle; the union only needs
// outward slack on the growing side).
func FitAABB(a, b AABB) AABB {
	min := a.Min.Min(b.Min)
	max := a.Max.Max(b.Max).Add(vec.NewV3(fitEpsilon))
	return AABB{Min: min, Max: max}
}

// Union folds box b into a without any padding. The accelerator builders
// do not use it: they fold with FitAABB, which pads the max side on every
// union.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Center returns the box's midpoint.
func (a AABB) Center() vec.V3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Extent returns the box's size along each axis.
func (a AABB) Extent() vec.V3 {
	return a.Max.Sub(a.Min)
}

// LongestAxis returns the index (0=X, 1=Y, 2=Z) of the box's longest side.
func (a AABB) LongestAxis() int {
	return a.Extent().MaxAxis()
}

// SurfaceArea returns the box's total surface area, the cost proxy the SAH
// builders minimize.
func (a AABB) SurfaceArea() float64 {
	e := a.Extent()
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return 0
	}
	return 2 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// IntersectAABB implements the slab test: accumulate tmin/tmax across all
// three axes and report a hit iff tmax > max(tmin, 0).
func IntersectAABB(r ray.Ray, box AABB) (tmin, tmax float64, ok bool) {
	tmin, tmax = math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		invD := r.InvDir.Axis(axis)
		t1 := (box.Min.Axis(axis) - o) * invD
		t2 := (box.Max.Axis(axis) - o) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	return tmin, tmax, tmax > math.Max(tmin, 0)
}
