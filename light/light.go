// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package light derives the emissive-surface light list from a scene's
// objects at scene_end, and implements power-proportional light selection
// plus disk-area sampling toward a shading point.
package light

import (
	"math"
	"sort"

	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/vec"
)

// minLightRadius guards against a degenerate zero-radius light, which
// would make the disk pdf divide by zero.
const minLightRadius = 1e-4

// Light is one emissive object reduced to a bounding sphere and a scalar
// power proxy used for selection weighting.
type Light struct {
	Object uint8
	Center vec.V3
	Radius float64
	Power  float64
}

// Source is the per-object input Derive consumes; scene.go builds one per
// object, and Derive skips those with zero emissive magnitude.
type Source struct {
	Object    uint8
	Triangles []geom.Triangle
	Emissive  vec.V3
}

// List is the immutable, power-weighted light set built once at scene_end.
type List struct {
	Lights []Light
	cum    []float64
	total  float64
}

// Derive builds the bounding sphere and power proxy for every emissive
// source: lights are the subset of objects whose material has nonzero
// emissive magnitude.
func Derive(sources []Source) *List {
	list := &List{}
	for _, s := range sources {
		if s.Emissive.Luminance() <= 0 || len(s.Triangles) == 0 {
			continue
		}
		center, radius := boundingSphere(s.Triangles)
		power := s.Emissive.Luminance() * 4 * math.Pi * radius * radius
		list.Lights = append(list.Lights, Light{Object: s.Object, Center: center, Radius: radius, Power: power})
	}

	list.cum = make([]float64, len(list.Lights))
	running := 0.0
	for i, l := range list.Lights {
		running += l.Power
		list.cum[i] = running
	}
	list.total = running
	return list
}

// boundingSphere computes a cheap enclosing sphere: the centroid of all
// vertices as center, and the farthest vertex distance as radius.
func boundingSphere(tris []geom.Triangle) (vec.V3, float64) {
	var sum vec.V3
	n := 0
	for _, t := range tris {
		sum = sum.Add(t.A).Add(t.B).Add(t.C)
		n += 3
	}
	center := sum.Scale(1 / float64(n))

	radius := 0.0
	for _, t := range tris {
		for _, v := range [3]vec.V3{t.A, t.B, t.C} {
			if d := v.Sub(center).Len(); d > radius {
				radius = d
			}
		}
	}
	if radius <= 0 {
		radius = minLightRadius
	}
	return center, radius
}

// Empty reports whether the scene has no emissive objects to sample.
func (l *List) Empty() bool { return l == nil || len(l.Lights) == 0 }

// Pick selects a light with probability proportional to its power and
// remaps the uniform sample u used for selection back into [0,1], so a
// single random draw can drive both selection and the downstream disk
// sample without correlation.
func (l *List) Pick(u float64) (Light, float64, float64) {
	if l.Empty() {
		return Light{}, u, 0
	}
	target := u * l.total
	i := sort.SearchFloat64s(l.cum, target)
	if i >= len(l.Lights) {
		i = len(l.Lights) - 1
	}
	lo := 0.0
	if i > 0 {
		lo = l.cum[i-1]
	}
	hi := l.cum[i]
	remapped := 0.0
	if hi > lo {
		remapped = (target - lo) / (hi - lo)
	}
	pdfPick := l.Lights[i].Power / l.total
	return l.Lights[i], remapped, pdfPick
}

// SampleDisk samples a point on the disk of the light's bounding sphere as
// seen from viewPoint, returning the direction toward the sample and the
// area-measure pdf 1/(pi*r^2).
func SampleDisk(li Light, viewPoint vec.V3, e1, e2 float64) (dir vec.V3, pdf float64) {
	toward := li.Center.Sub(viewPoint)
	dist := toward.Len()
	if dist <= 0 {
		return vec.V3{Y: 1}, 0
	}
	toward = toward.Scale(1 / dist)
	basis := vec.Basis(toward)

	r := li.Radius * math.Sqrt(e1)
	theta := 2 * math.Pi * e2
	offset := basis.X.Scale(r * math.Cos(theta)).Add(basis.Z.Scale(r * math.Sin(theta)))

	target := li.Center.Add(offset)
	dir = target.Sub(viewPoint).Unit()
	pdf = 1 / (math.Pi * li.Radius * li.Radius)
	return dir, pdf
}
