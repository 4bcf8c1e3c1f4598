package kdtree

import (
	"math/rand/v2"
	"testing"

	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/vec"
)

func scatterTriangles(n int) ([]geom.PrimRef, map[uint32]geom.Triangle) {
	refs := make([]geom.PrimRef, 0, n)
	lookup := make(map[uint32]geom.Triangle, n)
	for i := 0; i < n; i++ {
		center := vec.V3{X: rand.Float64()*20 - 10, Y: rand.Float64()*20 - 10, Z: rand.Float64()*20 - 10}
		tri := geom.Triangle{
			A: center,
			B: center.Add(vec.V3{X: 0.1}),
			C: center.Add(vec.V3{Y: 0.1}),
		}
		ref := geom.PrimRef{Object: 0, Triangle: uint32(i)}
		refs = append(refs, ref)
		lookup[ref.Pack()] = tri
	}
	return refs, lookup
}

func TestBuildCompleteness(t *testing.T) {
	refs, lookup := scatterTriangles(300)
	tree, err := Build(refs, func(r geom.PrimRef) geom.Triangle { return lookup[r.Pack()] })
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	seen := map[uint32]bool{}
	var walk func(idx uint32)
	walk = func(idx uint32) {
		n := tree.Nodes[idx]
		if n.IsLeaf {
			for _, obj := range tree.buffers[n.Buffer] {
				seen[obj.ref.Pack()] = true
			}
			return
		}
		walk(n.Children)
		walk(n.Children + 1)
	}
	walk(0)

	for _, r := range refs {
		if !seen[r.Pack()] {
			t.Errorf("triangle %v missing from kd-tree leaves", r)
		}
	}
}

func TestIntersectAgreesWithBruteForce(t *testing.T) {
	refs, lookup := scatterTriangles(300)
	tree, err := Build(refs, func(r geom.PrimRef) geom.Triangle { return lookup[r.Pack()] })
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < 100; i++ {
		origin := vec.V3{X: rand.Float64()*40 - 20, Y: rand.Float64()*40 - 20, Z: -30}
		dir := vec.V3{X: rand.Float64()*0.2 - 0.1, Y: rand.Float64()*0.2 - 0.1, Z: 1}
		r := ray.New(origin, dir)

		_, gotRef, gotHit := tree.Intersect(r)

		bestT := -1.0
		var wantRef geom.PrimRef
		wantHit := false
		for _, ref := range refs {
			if h, ok := geom.IntersectTriangle(r, lookup[ref.Pack()]); ok {
				if !wantHit || h.T < bestT {
					bestT = h.T
					wantRef = ref
					wantHit = true
				}
			}
		}
		if gotHit != wantHit {
			t.Fatalf("ray %d: hit mismatch got=%v want=%v", i, gotHit, wantHit)
		}
		if wantHit && gotRef.Pack() != wantRef.Pack() {
			t.Errorf("ray %d: closest-hit mismatch got=%v want=%v", i, gotRef, wantRef)
		}
	}
}

func TestIntersectMiss(t *testing.T) {
	refs, lookup := scatterTriangles(50)
	tree, _ := Build(refs, func(r geom.PrimRef) geom.Triangle { return lookup[r.Pack()] })
	r := ray.New(vec.V3{X: -1000, Y: -1000, Z: -1000}, vec.V3{X: 1})
	_, _, ok := tree.Intersect(r)
	if ok {
		t.Error("expected a miss far outside the scene box")
	}
}

func TestBuildSmallSceneStaysLeaf(t *testing.T) {
	refs, lookup := scatterTriangles(2)
	tree, err := Build(refs, func(r geom.PrimRef) geom.Triangle { return lookup[r.Pack()] })
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !tree.Nodes[0].IsLeaf {
		t.Error("scene below the leaf threshold should remain a single leaf")
	}
	if len(tree.buffers[tree.Nodes[0].Buffer]) != 2 {
		t.Errorf("root leaf buffer should contain both triangles")
	}
}
