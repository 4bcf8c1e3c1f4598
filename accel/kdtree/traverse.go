// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package kdtree

import (
	"math"

	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/vec"
)

const stackSize = 64

// stackEntry is one traversed ray-parameter interval: the distance along
// the ray where the interval begins, the ray point at that distance, the
// node still pending at the far side of the interval (or -1), and the
// index of the interval it was pushed from.
type stackEntry struct {
	t    float64
	pb   vec.V3
	node int32
	prev int
}

// nextAxis/prevAxis are the cyclic axis permutations the traversal uses to
// fill in the untouched components of a split-plane intersection point.
var nextAxisLUT = [3]int{1, 2, 0}
var prevAxisLUT = [3]int{2, 0, 1}

// Intersect walks the tree using the TA-rec algorithm: a stack of ray
// intervals rather than a recursive node stack, so the first hit found in
// ray order terminates the walk immediately.
func (t *KDTree) Intersect(r ray.Ray) (geom.Hit, geom.PrimRef, bool) {
	a, b, ok := geom.IntersectAABB(r, t.SceneBox)
	if !ok {
		return geom.Hit{}, geom.PrimRef{}, false
	}

	var stack [stackSize]stackEntry
	enpt, expt := 0, 1

	stack[enpt].t = a
	if a >= 0 {
		stack[enpt].pb = r.At(a)
	} else {
		stack[enpt].pb = r.Origin
	}
	stack[expt].t = b
	stack[expt].pb = r.At(b)
	stack[expt].node = -1

	curNode := int32(0)

	for curNode != -1 {
		for !t.Nodes[curNode].IsLeaf {
			node := t.Nodes[curNode]
			axis := int(node.Axis)
			nextAxis, prevAxis := nextAxisLUT[axis], prevAxisLUT[axis]
			split := node.Split

			left := int32(node.Children)
			right := left + 1

			enVal := stack[enpt].pb.Axis(axis)
			exVal := stack[expt].pb.Axis(axis)

			var farChild int32
			if enVal <= split {
				if exVal <= split {
					curNode = left
					continue
				}
				if exVal == split {
					curNode = right
					continue
				}
				farChild, curNode = right, left
			} else {
				if split < exVal {
					curNode = right
					continue
				}
				farChild, curNode = left, right
			}

			tSplit := (split - r.Origin.Axis(axis)) / r.Dir.Axis(axis)

			tmp := expt
			expt++
			if expt == enpt {
				expt++
			}

			pb := stack[tmp].pb
			pb = setAxis(pb, axis, split)
			pb = setAxis(pb, nextAxis, r.Origin.Axis(nextAxis)+tSplit*r.Dir.Axis(nextAxis))
			pb = setAxis(pb, prevAxis, r.Origin.Axis(prevAxis)+tSplit*r.Dir.Axis(prevAxis))

			stack[expt] = stackEntry{t: tSplit, pb: pb, node: farChild, prev: tmp}
		}

		objs := t.buffers[t.Nodes[curNode].Buffer]
		closestT := math.MaxFloat64
		var closest geom.Hit
		var best geom.PrimRef
		found := false

		for _, obj := range objs {
			if h, ok := geom.IntersectTriangle(r, obj.tri); ok {
				if h.T >= stack[enpt].t && h.T <= stack[expt].t && h.T < closestT {
					closestT = h.T
					closest = h
					best = obj.ref
					found = true
				}
			}
		}
		if found {
			return closest, best, true
		}

		enpt = expt
		curNode = stack[expt].node
		expt = stack[enpt].prev
	}

	return geom.Hit{}, geom.PrimRef{}, false
}
