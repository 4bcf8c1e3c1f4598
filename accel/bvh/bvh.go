// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bvh implements the surface-area-heuristic bounding volume
// hierarchy: an object-median top-down binary build with an iterative work
// stack, and a LIFO stack-based traversal returning the closest hit. This
// mirrors an iterative, non-recursive broad-phase collider build,
// generalized from an O(n²) all-pairs sweep to a hierarchical split.
package bvh

import (
	"fmt"
	"math"
	"sort"

	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/ray"
)

// childType tags one child slot of a Node: internal points at another node,
// leaf references a single primitive by its object buffer index. The zero
// value marks an unused slot (the right slot of a single-primitive root).
type childType int8

const (
	typeInternal childType = -1
	typeLeaf     childType = 1
)

// child is one of a Node's two slots.
type child struct {
	box   geom.AABB
	index uint32 // node index (internal) or object buffer index (leaf)
	kind  childType
}

// Node is a BVH node: a pair of typed, boxed child slots. Root is node 0.
type Node struct {
	Left, Right child
}

// volume is a triangle's AABB plus its object buffer index, consumed
// during build and discarded afterward.
type volume struct {
	box geom.AABB
	idx uint32
	ctr vec3
}

// vec3 avoids importing vec just for Axis/Center use inside this file's
// tiny local helper; geom.AABB.Center already returns vec.V3, so this is
// just a type alias for readability at call sites below.
type vec3 = [3]float64

// BVH is the built, immutable acceleration structure: a flat node array plus
// the triangle data needed to test a leaf hit, both indexed by the same
// object buffer index a leaf child stores.
type BVH struct {
	Nodes []Node
	tris  []geom.Triangle
	refs  []geom.PrimRef
}

// task is one entry of the iterative build work stack, expressed as a
// [lo, hi) range into the shared, build-order volumes slice.
type task struct {
	lo, hi int
	slot   uint32
}

// Build constructs a BVH over the given primitive references and their
// triangle geometry. Node capacity is bounded by
// 2*len(refs); Build returns an error if that bound would be exceeded,
// which cannot happen for a correctly implemented split.
func Build(refs []geom.PrimRef, lookup func(geom.PrimRef) geom.Triangle) (*BVH, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("bvh: build requires at least one primitive")
	}

	vols := make([]volume, len(refs))
	tris := make([]geom.Triangle, len(refs))
	for i, r := range refs {
		tri := lookup(r)
		box := geom.FitTriangle(tri)
		c := box.Center()
		vols[i] = volume{box: box, idx: uint32(i), ctr: vec3{c.X, c.Y, c.Z}}
		tris[i] = tri
	}

	maxNodes := 2 * len(refs)
	nodes := make([]Node, 1, maxNodes)

	stack := []task{{lo: 0, hi: len(vols), slot: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		parent := unionRange(vols, top.lo, top.hi)
		mid := partition(vols, top.lo, top.hi, parent)

		lc, lt := makeChild(vols, top.lo, mid, &nodes)
		rc, rt := makeChild(vols, mid, top.hi, &nodes)

		nodes[top.slot] = Node{Left: lc, Right: rc}
		if lt != nil {
			stack = append(stack, *lt)
		}
		if rt != nil {
			stack = append(stack, *rt)
		}
	}
	if len(nodes) > maxNodes {
		return nil, fmt.Errorf("bvh: node capacity %d exceeded (%d nodes)", maxNodes, len(nodes))
	}
	return &BVH{Nodes: nodes, tris: tris, refs: append([]geom.PrimRef(nil), refs...)}, nil
}

// makeChild turns a build-time volume range into either a leaf child slot
// (single primitive) or a fresh internal node plus a pending work task.
func makeChild(vols []volume, lo, hi int, nodes *[]Node) (child, *task) {
	if hi == lo {
		return child{}, nil
	}
	box := unionRange(vols, lo, hi)
	if hi-lo == 1 {
		return child{box: box, index: vols[lo].idx, kind: typeLeaf}, nil
	}
	slot := uint32(len(*nodes))
	*nodes = append(*nodes, Node{})
	return child{box: box, index: slot, kind: typeInternal}, &task{lo: lo, hi: hi, slot: slot}
}

// unionRange computes the AABB enclosing vols[lo:hi).
func unionRange(vols []volume, lo, hi int) geom.AABB {
	box := geom.Empty()
	for i := lo; i < hi; i++ {
		box = geom.FitAABB(box, vols[i].box)
	}
	return box
}

// partition picks the axis maximizing parent extent, evaluating all three
// axes rather than always splitting on x. It sorts vols[lo:hi) by AABB
// center on that axis, and returns the SAH-minimizing object-median split
// point via a full sweep of prefix/suffix surface areas.
func partition(vols []volume, lo, hi int, parent geom.AABB) int {
	axis := parent.LongestAxis()

	sub := vols[lo:hi]
	sort.Slice(sub, func(i, j int) bool {
		return sub[i].ctr[axis] < sub[j].ctr[axis]
	})

	n := len(sub)
	if n < 2 {
		return lo + n
	}

	leftArea := make([]float64, n)
	rightArea := make([]float64, n)

	box := geom.Empty()
	for i := 0; i < n; i++ {
		box = geom.FitAABB(box, sub[i].box)
		leftArea[i] = box.SurfaceArea()
	}
	box = geom.Empty()
	for i := n - 1; i >= 0; i-- {
		box = geom.FitAABB(box, sub[i].box)
		rightArea[i] = box.SurfaceArea()
	}

	parentArea := parent.SurfaceArea()
	if parentArea <= 0 {
		parentArea = 1
	}

	bestCost := -1.0
	bestSplit := n / 2
	for i := 1; i < n; i++ {
		leftCount := float64(i)
		rightCount := float64(n - i)
		cost := (leftCount*leftArea[i-1] + rightCount*rightArea[i]) / parentArea
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			bestSplit = i
		}
	}
	return lo + bestSplit
}

// traversalStack is a LIFO stack of node indices for Intersect.
type traversalStack struct {
	data []uint32
}

func (s *traversalStack) push(i uint32) { s.data = append(s.data, i) }
func (s *traversalStack) pop() (uint32, bool) {
	if len(s.data) == 0 {
		return 0, false
	}
	i := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return i, true
}

// Intersect walks the BVH with a LIFO node stack and returns the closest
// triangle hit.
func (b *BVH) Intersect(r ray.Ray) (geom.Hit, geom.PrimRef, bool) {
	var stack traversalStack
	stack.push(0)

	var (
		closest  geom.Hit
		best     geom.PrimRef
		found    bool
		closestT = math.MaxFloat64
	)

	for {
		idx, ok := stack.pop()
		if !ok {
			break
		}
		node := b.Nodes[idx]

		for _, c := range [2]child{node.Left, node.Right} {
			if _, _, hit := geom.IntersectAABB(r, c.box); !hit {
				continue
			}
			switch c.kind {
			case typeInternal:
				stack.push(c.index)
			case typeLeaf:
				tri := b.tris[c.index]
				if h, hit := geom.IntersectTriangle(r, tri); hit && h.T < closestT {
					closestT = h.T
					closest = h
					best = b.refs[c.index]
					found = true
				}
			}
		}
	}
	return closest, best, found
}

// Triangle returns the triangle geometry backing a primitive reference
// found by Intersect, so callers can rebuild barycentric properties.
func (b *BVH) Triangle(ref geom.PrimRef) (geom.Triangle, bool) {
	for i, r := range b.refs {
		if r == ref {
			return b.tris[i], true
		}
	}
	return geom.Triangle{}, false
}
