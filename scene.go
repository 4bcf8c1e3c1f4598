// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gazed/pathtrace/accel/bvh"
	"github.com/gazed/pathtrace/accel/kdtree"
	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/integrator"
	"github.com/gazed/pathtrace/light"
	"github.com/gazed/pathtrace/material"
	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/texture"
	"github.com/gazed/pathtrace/vec"
)

// ObjectRef is a scene-local object index, valid only for the Scene that
// issued it. Object indices never change once allocated; a scene is built
// once and torn down, never edited in place.
type ObjectRef uint8

// accelerator is the intersection surface a built Scene queries. Both
// bvh.BVH and kdtree.KDTree satisfy it; Scene picks between them at End
// based on Options.Accelerator.
type accelerator interface {
	Intersect(r ray.Ray) (geom.Hit, geom.PrimRef, bool)
}

// sceneState tracks where a Scene sits in its begin/add/end/destroy
// lifecycle, so calls made out of order fail with a SceneError instead of
// silently operating on half-built data.
type sceneState int

const (
	sceneBuilding sceneState = iota
	sceneBuilt
	sceneDestroyed
)

// object is one scene object's geometry and material, indexed by
// ObjectRef.
type object struct {
	triangles []geom.Triangle
	props     []geom.TriangleProps
	material  *material.Material
}

// Scene holds the objects, lights, and acceleration structure a render
// queries. Objects are added while building; End freezes the scene by
// building the accelerator and light list, after which a Scene is safe
// for concurrent read-only use by any number of render tiles.
type Scene struct {
	opts    Options
	objects []object
	state   sceneState
	accel   accelerator
	lights  *light.List
}

// Begin starts a new scene with room for up to capacity objects.
// Capacity must be positive and no larger than geom.MaxObjects, the limit
// imposed by the 8-bit object index packed into every primitive
// reference. opts must pass the same validation DefaultOptions applies,
// or Begin fails with a ConfigError.
func Begin(capacity int, opts Options) (*Scene, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, &SceneError{Msg: fmt.Sprintf("capacity must be positive, got %d", capacity)}
	}
	if capacity > geom.MaxObjects {
		return nil, &SceneError{Msg: fmt.Sprintf("capacity %d exceeds max %d objects", capacity, geom.MaxObjects)}
	}
	return &Scene{opts: opts, objects: make([]object, 0, capacity), state: sceneBuilding}, nil
}

// AddObject allocates the next object slot and returns its ref. Triangle
// geometry and a material are attached afterward with SetGeometry and
// SetMaterial.
func (s *Scene) AddObject() (ObjectRef, error) {
	if s.state != sceneBuilding {
		return 0, &SceneError{Msg: "AddObject called after End or Destroy"}
	}
	if len(s.objects) >= cap(s.objects) {
		return 0, &SceneError{Msg: fmt.Sprintf("object capacity %d exceeded", cap(s.objects))}
	}
	ref := ObjectRef(len(s.objects))
	s.objects = append(s.objects, object{})
	return ref, nil
}

// SetGeometry attaches an object's triangles and their per-vertex shading
// props. The two slices must be the same length, at most
// geom.MaxTrianglesPerObject, the limit imposed by the 24-bit triangle
// index packed into every primitive reference.
func (s *Scene) SetGeometry(ref ObjectRef, triangles []geom.Triangle, props []geom.TriangleProps) error {
	obj, err := s.object(ref)
	if err != nil {
		return err
	}
	if len(triangles) != len(props) {
		return &SceneError{Msg: fmt.Sprintf("object %d: %d triangles but %d props", ref, len(triangles), len(props))}
	}
	if len(triangles) > geom.MaxTrianglesPerObject {
		return &SceneError{Msg: fmt.Sprintf("object %d: %d triangles exceeds max %d", ref, len(triangles), geom.MaxTrianglesPerObject)}
	}
	obj.triangles = triangles
	obj.props = props
	return nil
}

// SetMaterial attaches a material to an object. Every object must have one
// before End.
func (s *Scene) SetMaterial(ref ObjectRef, mat *material.Material) error {
	obj, err := s.object(ref)
	if err != nil {
		return err
	}
	obj.material = mat
	return nil
}

func (s *Scene) object(ref ObjectRef) (*object, error) {
	if s.state != sceneBuilding {
		return nil, &SceneError{Msg: "scene modified after End or Destroy"}
	}
	if int(ref) >= len(s.objects) {
		return nil, &SceneError{Msg: fmt.Sprintf("unknown object ref %d", ref)}
	}
	return &s.objects[int(ref)], nil
}

// End freezes the scene: it builds the configured acceleration structure
// over every object's triangles, linearizes every sRGB texture bound to a
// material exactly once, and derives the light list from objects with
// nonzero emissive magnitude. The scene is read-only after this call
// returns successfully.
func (s *Scene) End() error {
	if s.state != sceneBuilding {
		return &SceneError{Msg: "End called more than once or after Destroy"}
	}
	var refs []geom.PrimRef
	for oi, obj := range s.objects {
		if obj.material == nil {
			return &SceneError{Msg: fmt.Sprintf("object %d has no material", oi)}
		}
		for ti := range obj.triangles {
			refs = append(refs, geom.PrimRef{Object: uint8(oi), Triangle: uint32(ti)})
		}
		linearizeMaterial(obj.material)
	}

	lookup := func(ref geom.PrimRef) geom.Triangle {
		return s.objects[ref.Object].triangles[ref.Triangle]
	}

	if len(refs) > 0 {
		buildStart := time.Now()
		var accel accelerator
		var nodeCount int
		var err error
		switch s.opts.Accelerator {
		case KDTree:
			var tree *kdtree.KDTree
			tree, err = kdtree.Build(refs, lookup)
			if tree != nil {
				nodeCount = len(tree.Nodes)
			}
			accel = tree
		default:
			var tree *bvh.BVH
			tree, err = bvh.Build(refs, lookup)
			if tree != nil {
				nodeCount = len(tree.Nodes)
			}
			accel = tree
		}
		if err != nil {
			return &SceneError{Msg: fmt.Sprintf("building accelerator: %v", err)}
		}
		s.accel = accel
		slog.Info("scene accelerator built",
			"accelerator", s.opts.Accelerator,
			"objects", len(s.objects),
			"triangles", len(refs),
			"nodes", nodeCount,
			"build_ms", float64(time.Since(buildStart))/float64(time.Millisecond))
	} else {
		slog.Info("scene has no triangles, skipping accelerator build", "objects", len(s.objects))
	}

	sources := make([]light.Source, 0, len(s.objects))
	for oi, obj := range s.objects {
		sources = append(sources, light.Source{
			Object:    uint8(oi),
			Triangles: obj.triangles,
			Emissive:  obj.material.Emissive.Constant,
		})
	}
	s.lights = light.Derive(sources)

	s.state = sceneBuilt
	return nil
}

// linearizeMaterial converts every sRGB texture bound to m's attributes to
// linear space in place. Linearize is idempotent and a texture may be
// bound to more than one attribute or shared across objects, so calling it
// here for each attribute is always safe.
func linearizeMaterial(m *material.Material) {
	linearizeAttr(m.Albedo)
	linearizeAttr(m.Roughness)
	linearizeAttr(m.Metalness)
	linearizeAttr(m.Emissive)
}

func linearizeAttr(a texture.Attribute) {
	if a.Texture != nil {
		a.Texture.Linearize()
	}
}

// Destroy releases the scene's built state. A destroyed scene can neither
// be added to nor rendered; Begin starts a new one.
func (s *Scene) Destroy() {
	s.objects = nil
	s.accel = nil
	s.lights = nil
	s.state = sceneDestroyed
}

// Intersect implements integrator.World by finding the closest triangle
// hit and building its shading data: interpolated, renormalized normal and
// texture coordinates, plus the material and owning object needed for
// next-event-estimation shadow tests.
func (s *Scene) Intersect(r ray.Ray) (integrator.Hit, bool) {
	if s.accel == nil {
		return integrator.Hit{}, false
	}
	h, ref, ok := s.accel.Intersect(r)
	if !ok {
		return integrator.Hit{}, false
	}
	obj := s.objects[ref.Object]
	props := obj.props[ref.Triangle]
	normal := geom.Interpolate(props.NA, props.NB, props.NC, h.U, h.V).Unit()
	uv := geom.InterpolateUV(props.UVA, props.UVB, props.UVC, h.U, h.V)
	return integrator.Hit{
		Point:    h.Point,
		Normal:   normal,
		UV:       uv,
		Object:   ref.Object,
		Material: obj.material,
	}, true
}

// Environment implements integrator.World, sampling the scene's
// environment map (black if none was configured).
func (s *Scene) Environment(dir vec.V3) vec.V3 { return s.opts.Environment.Sample(dir) }

// Lights implements integrator.World.
func (s *Scene) Lights() *light.List { return s.lights }

// DirectLightSampling implements integrator.World.
func (s *Scene) DirectLightSampling() bool { return s.opts.DirectLightSampling }

// Bounces implements integrator.World.
func (s *Scene) Bounces() int { return s.opts.Bounces }
