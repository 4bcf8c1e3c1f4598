// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

import (
	"math"

	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/rng"
	"github.com/gazed/pathtrace/vec"
)

// Camera is a simple look-at perspective camera: position, aim direction,
// up hint, and vertical field of view in degrees.
type Camera struct {
	Position  vec.V3
	Direction vec.V3
	Up        vec.V3
	Fov       float64 // degrees
}

// basis is the camera's cached look-at rotation, rebuilt once per render
// call rather than once per ray.
type basis struct {
	x, y, z vec.V3
}

func (c Camera) basis() basis {
	x, y, z := vec.LookAt(c.Direction, c.Up)
	return basis{x: x, y: y, z: z}
}

// ray constructs the primary ray for pixel (px, py) of a width×height
// frame, with uniform jitter in [-jitter, +jitter] pixel units applied in
// screen space before the perspective projection. The rotation is passed
// in so a tile render builds it once rather than once per ray.
func (c Camera) ray(px, py, width, height int, jitter float64, b basis, s *rng.Sampler) ray.Ray {
	dx, dy := 0.0, 0.0
	if jitter > 0 {
		dx = -jitter + 2*s.Float64()*jitter
		dy = -jitter + 2*s.Float64()*jitter
	}

	ndcX := (float64(px) + 0.5 + dx) / float64(width)
	ndcY := (float64(py) + 0.5 + dy) / float64(height)

	screenX := 2*ndcX - 1
	screenY := 1 - 2*ndcY

	aspect := float64(width) / float64(height)
	tanHalfFov := math.Tan(c.Fov * math.Pi / 360)

	camX := screenX * aspect * tanHalfFov
	camY := screenY * tanHalfFov

	local := vec.V3{X: camX, Y: camY, Z: 1}
	dir := b.x.Scale(local.X).Add(b.y.Scale(local.Y)).Add(b.z.Scale(local.Z))
	return ray.New(c.Position, dir)
}

// Ray exposes the unjittered primary ray for pixel (px, py), for debugging
// and visualization callers that want a single deterministic ray without
// driving a render.
func (c Camera) Ray(px, py, width, height int) ray.Ray {
	return c.ray(px, py, width, height, 0, c.basis(), nil)
}
