// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package vec provides the 2/3-element vector and tangent-space basis
// math used throughout the tracer: shading, intersection, and camera
// setup. The tracer never multiplies a general 4x4 transform (camera rays
// are built directly from basis vectors), so there is no M4 type here;
// vec.M3 in matrix.go covers the one rotation the BSDFs need.
//
// Unlike the mutating, pointer-receiver style used elsewhere in this
// module's ancestry (vectors written in place to avoid allocating in a
// rasterizer's per-frame loop), V3 here uses value semantics: the path
// integrator composes many short-lived vector expressions per bounce
// (half-vectors, Fresnel terms, reflected/refracted directions) and reads
// far closer to the governing math when an expression is `a.Add(b).Scale(s)`
// than when every step needs an out-parameter.
package vec

import (
	"math"

	"github.com/gazed/pathtrace/internal/xmath"
)

// Epsilon is used to distinguish when a float is close enough to a number.
const Epsilon float64 = 1e-6

// V2 is a 2 element vector, used for texture coordinates.
type V2 struct {
	X, Y float64
}

// V3 is a 3 element vector: a point, a direction, or an RGB color.
type V3 struct {
	X, Y, Z float64
}

// Aeq (~=) almost-equals returns true if the difference between a and b is
// small enough that it doesn't matter.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Lerp returns the linear interpolation of a to b by the given ratio.
func Lerp(a, b, ratio float64) float64 { return (b-a)*ratio + a }

// Clamp returns s restricted to the range [lb, ub].
func Clamp(s, lb, ub float64) float64 { return xmath.Clamp(s, lb, ub) }

func (v V3) Eq(a V3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

func (v V3) Aeq(a V3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

func (v V3) Add(a V3) V3 { return V3{v.X + a.X, v.Y + a.Y, v.Z + a.Z} }

func (v V3) Sub(a V3) V3 { return V3{v.X - a.X, v.Y - a.Y, v.Z - a.Z} }

// Mult multiplies the vectors componentwise (used for RGB tinting).
func (v V3) Mult(a V3) V3 { return V3{v.X * a.X, v.Y * a.Y, v.Z * a.Z} }

func (v V3) Scale(s float64) V3 { return V3{v.X * s, v.Y * s, v.Z * s} }

func (v V3) Neg() V3 { return V3{-v.X, -v.Y, -v.Z} }

func (v V3) Dot(a V3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

func (v V3) Cross(a V3) V3 {
	return V3{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

func (v V3) Len() float64 { return math.Sqrt(v.Dot(v)) }

func (v V3) LenSqr() float64 { return v.Dot(v) }

// Unit returns v normalized to unit length. The zero vector returns itself.
func (v V3) Unit() V3 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	inv := 1 / l
	return V3{v.X * inv, v.Y * inv, v.Z * inv}
}

func (v V3) Lerp(a V3, ratio float64) V3 {
	return V3{Lerp(v.X, a.X, ratio), Lerp(v.Y, a.Y, ratio), Lerp(v.Z, a.Z, ratio)}
}

// Min returns the componentwise minimum of v and a.
func (v V3) Min(a V3) V3 {
	return V3{math.Min(v.X, a.X), math.Min(v.Y, a.Y), math.Min(v.Z, a.Z)}
}

// Max returns the componentwise maximum of v and a.
func (v V3) Max(a V3) V3 {
	return V3{math.Max(v.X, a.X), math.Max(v.Y, a.Y), math.Max(v.Z, a.Z)}
}

// Axis returns the value of the component indexed 0=X, 1=Y, 2=Z.
func (v V3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// MaxAxis returns the index (0=X, 1=Y, 2=Z) of the largest component.
func (v V3) MaxAxis() int {
	switch {
	case v.X >= v.Y && v.X >= v.Z:
		return 0
	case v.Y >= v.Z:
		return 1
	default:
		return 2
	}
}

// Reflect reflects v (pointing away from the surface, i.e. -incident) about
// the normal n.
func (v V3) Reflect(n V3) V3 {
	return n.Scale(2 * v.Dot(n)).Sub(v)
}

// Pow raises each component of v to the given exponent. Used for gamma
// correction.
func (v V3) Pow(exp float64) V3 {
	return V3{math.Pow(v.X, exp), math.Pow(v.Y, exp), math.Pow(v.Z, exp)}
}

// Luminance returns the perceptual brightness of an RGB color, used by the
// light power-proportional selection.
func (v V3) Luminance() float64 { return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z }

// MaxComponent returns the largest of the three components.
func (v V3) MaxComponent() float64 { return math.Max(v.X, math.Max(v.Y, v.Z)) }

// IsFinite reports whether every component is a finite, non-NaN number.
func (v V3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

// NewV3 constructs a vector with all three components equal to s.
func NewV3(s float64) V3 { return V3{s, s, s} }

// V3S constructs a vector from three explicit values.
func V3S(x, y, z float64) V3 { return V3{x, y, z} }
