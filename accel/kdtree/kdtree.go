// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package kdtree implements the surface-area-heuristic KD-tree: recursive
// build on axis-aligned triangle AABB split events, and the TA-rec
// traversal that walks ray-parameter intervals instead of recursing,
// terminating at the first leaf hit found in ray order.
package kdtree

import (
	"fmt"
	"math"
	"sort"

	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/vec"
)

// maxDepth bounds KD-tree recursion.
const maxDepth = 20

// leafMinSplitSize is the largest primitive count a node can hold and be
// left as a leaf without any SAH evaluation: buildRec returns at once for
// such a node and never recurses into such a child. Larger nodes are split
// only when the SAH cost does not exceed the leaf cost.
const leafMinSplitSize = 3

// object is one triangle copy plus the primitive reference needed to
// recover its material, stored once per object buffer that references it.
type object struct {
	tri geom.Triangle
	ref geom.PrimRef
}

// Node is a flat KD-tree node: internal nodes store a split axis/position
// and the index of their first child (children are always allocated in
// consecutive pairs); leaf nodes reference one object buffer.
type Node struct {
	IsLeaf   bool
	Axis     int8
	Split    float64
	Children uint32 // left child index; right = Children+1
	Buffer   uint32 // object buffer index, valid only when IsLeaf
}

// KDTree is the built, immutable acceleration structure.
type KDTree struct {
	Nodes    []Node
	buffers  [][]object
	SceneBox geom.AABB
}

// buildScratch holds the build-time scratch arrays owned by a single Build
// invocation rather than process-scoped globals.
type buildScratch struct {
	aabbCache []geom.AABB
}

// Build constructs a KD-tree over the given primitive references.
func Build(refs []geom.PrimRef, lookup func(geom.PrimRef) geom.Triangle) (*KDTree, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("kdtree: build requires at least one primitive")
	}

	root := make([]object, len(refs))
	sceneBox := geom.Empty()
	for i, r := range refs {
		tri := lookup(r)
		root[i] = object{tri: tri, ref: r}
		sceneBox = geom.FitAABB(sceneBox, geom.FitTriangle(tri))
	}

	tree := &KDTree{
		Nodes:    []Node{{IsLeaf: true, Buffer: 0}},
		buffers:  [][]object{root},
		SceneBox: sceneBox,
	}

	scratch := &buildScratch{aabbCache: make([]geom.AABB, 0, len(refs))}
	tree.buildRec(0, sceneBox, maxDepth, scratch)
	return tree, nil
}

// addNodePair appends a new consecutively-indexed pair of leaf nodes and
// returns the index of the first.
func (t *KDTree) addNodePair() uint32 {
	idx := uint32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{IsLeaf: true}, Node{IsLeaf: true})
	return idx
}

// addBuffer appends a new object buffer and returns its index.
func (t *KDTree) addBuffer(objs []object) uint32 {
	idx := uint32(len(t.buffers))
	t.buffers = append(t.buffers, objs)
	return idx
}

// splitEvent accumulates, for one axis offset, how many triangle AABBs
// begin (min boundary) or end (max boundary) there, the coalescing
// offset a split event straddles.
type splitEvent struct {
	offset         float64
	minCount       int
	maxCount       int
}

func (t *KDTree) buildRec(nodeIdx uint32, box geom.AABB, depth int, scratch *buildScratch) {
	if depth <= 0 {
		return
	}
	objs := t.buffers[t.Nodes[nodeIdx].Buffer]
	if len(objs) <= leafMinSplitSize {
		return
	}

	axis := box.LongestAxis()

	cache := scratch.aabbCache[:0]
	events := make(map[float64]*splitEvent, len(objs)*2)
	order := make([]float64, 0, len(objs)*2)
	addEvent := func(offset float64, isMin bool) {
		e, ok := events[offset]
		if !ok {
			e = &splitEvent{offset: offset}
			events[offset] = e
			order = append(order, offset)
		}
		if isMin {
			e.minCount++
		} else {
			e.maxCount++
		}
	}

	for _, obj := range objs {
		triBox := geom.FitTriangle(obj.tri)
		cache = append(cache, triBox)
		addEvent(triBox.Min.Axis(axis), true)
		addEvent(triBox.Max.Axis(axis), false)
	}
	scratch.aabbCache = cache

	sort.Float64s(order)

	parentArea := box.SurfaceArea()
	if parentArea <= 0 {
		return
	}
	sav := 1 / parentArea
	leafCost := float64(len(objs))

	leftCount, rightCount := 0, len(objs)
	bestCost := math.MaxFloat64
	bestSplit := 0.0
	bestLeft, bestRight := 0, len(objs)
	for _, off := range order {
		e := events[off]
		rightCount -= e.maxCount

		left := box
		left.Max = setAxis(left.Max, axis, off)
		right := box
		right.Min = setAxis(right.Min, axis, off)
		cost := 0.32 + sav*(left.SurfaceArea()*float64(leftCount)+right.SurfaceArea()*float64(rightCount))
		if cost < bestCost {
			bestCost = cost
			bestSplit = off
			bestLeft, bestRight = leftCount, rightCount
		}

		leftCount += e.minCount
	}

	if bestCost > leafCost {
		return
	}

	leftObjs := make([]object, 0, bestLeft)
	rightObjs := make([]object, 0, bestRight)
	for i, obj := range objs {
		triLo, triHi := cache[i].Min.Axis(axis), cache[i].Max.Axis(axis)
		if triLo <= bestSplit {
			leftObjs = append(leftObjs, obj)
		}
		if triHi >= bestSplit {
			rightObjs = append(rightObjs, obj)
		}
	}

	children := t.addNodePair()
	node := &t.Nodes[nodeIdx]
	node.IsLeaf = false
	node.Axis = int8(axis)
	node.Split = bestSplit
	node.Children = children

	leftBuf := t.addBuffer(leftObjs)
	rightBuf := t.addBuffer(rightObjs)
	t.Nodes[children].Buffer = leftBuf
	t.Nodes[children+1].Buffer = rightBuf

	leftBox, rightBox := box, box
	leftBox.Max = setAxis(leftBox.Max, axis, bestSplit)
	rightBox.Min = setAxis(rightBox.Min, axis, bestSplit)

	if len(leftObjs) > leafMinSplitSize {
		t.buildRec(children, leftBox, depth-1, scratch)
	}
	if len(rightObjs) > leafMinSplitSize {
		t.buildRec(children+1, rightBox, depth-1, scratch)
	}
}

func setAxis(v vec.V3, axis int, val float64) vec.V3 {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}
