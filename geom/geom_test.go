package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/vec"
)

func TestIntersectTriangleRoundTrip(t *testing.T) {
	tri := Triangle{
		A: vec.V3S(0, 0, 0),
		B: vec.V3S(1, 0, 0),
		C: vec.V3S(0, 1, 0),
	}
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	n := e1.Cross(e2).Unit()

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		u := rnd.Float64() * 0.5
		v := rnd.Float64() * 0.5
		p := tri.A.Add(e1.Scale(u)).Add(e2.Scale(v))
		origin := p.Add(n.Scale(0.01))
		r := ray.New(origin, n.Neg())

		hit, ok := IntersectTriangle(r, tri)
		if !ok {
			t.Fatalf("expected hit for u=%v v=%v", u, v)
		}
		if math.Abs(hit.T-0.01) > 1e-4 {
			t.Errorf("t got %v want ~0.01", hit.T)
		}
		if math.Abs(hit.U-u) > 1e-4 || math.Abs(hit.V-v) > 1e-4 {
			t.Errorf("barycentrics got (%v,%v) want (%v,%v)", hit.U, hit.V, u, v)
		}
	}
}

func TestIntersectTriangleParallelMiss(t *testing.T) {
	tri := Triangle{A: vec.V3S(0, 0, 0), B: vec.V3S(1, 0, 0), C: vec.V3S(0, 1, 0)}
	r := ray.New(vec.V3S(0, 0, 1), vec.V3S(1, 0, 0)) // travels in the triangle's plane
	if _, ok := IntersectTriangle(r, tri); ok {
		t.Errorf("expected miss for ray parallel to triangle plane")
	}
}

func TestIntersectAABBOriginInside(t *testing.T) {
	box := AABB{Min: vec.V3S(-1, -1, -1), Max: vec.V3S(1, 1, 1)}
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		dir := vec.V3S(rnd.Float64()-0.5, rnd.Float64()-0.5, rnd.Float64()-0.5)
		if dir.LenSqr() < 1e-6 {
			continue
		}
		r := ray.New(vec.V3{}, dir)
		tmin, tmax, ok := IntersectAABB(r, box)
		if !ok {
			t.Fatalf("expected hit for dir %v", dir)
		}
		if tmin > 0 || tmax < 0 {
			t.Errorf("expected tmin<=0<=tmax, got tmin=%v tmax=%v", tmin, tmax)
		}
	}
}

func TestFitTriangleContainsVertices(t *testing.T) {
	tri := Triangle{A: vec.V3S(0, 0, 0), B: vec.V3S(5, 0, 0), C: vec.V3S(0, 5, 0)}
	box := FitTriangle(tri)
	for _, v := range []vec.V3{tri.A, tri.B, tri.C} {
		if v.X <= box.Min.X || v.X >= box.Max.X || v.Y <= box.Min.Y || v.Y >= box.Max.Y || v.Z <= box.Min.Z || v.Z >= box.Max.Z {
			t.Errorf("vertex %v not strictly contained in box %+v", v, box)
		}
	}
}

func TestPrimRefPackRoundTrip(t *testing.T) {
	p := PrimRef{Object: 200, Triangle: 1 << 20}
	if got := UnpackPrimRef(p.Pack()); got != p {
		t.Errorf("round trip got %+v want %+v", got, p)
	}
}
