package vec

import (
	"math"
	"testing"
)

func TestAddSubScale(t *testing.T) {
	a := V3S(1, 2, 3)
	b := V3S(4, 5, 6)
	if got := a.Add(b); !got.Eq(V3S(5, 7, 9)) {
		t.Errorf("Add got %v", got)
	}
	if got := b.Sub(a); !got.Eq(V3S(3, 3, 3)) {
		t.Errorf("Sub got %v", got)
	}
	if got := a.Scale(2); !got.Eq(V3S(2, 4, 6)) {
		t.Errorf("Scale got %v", got)
	}
}

func TestDotCross(t *testing.T) {
	x := V3S(1, 0, 0)
	y := V3S(0, 1, 0)
	if got := x.Dot(y); got != 0 {
		t.Errorf("Dot got %v, want 0", got)
	}
	if got := x.Cross(y); !got.Eq(V3S(0, 0, 1)) {
		t.Errorf("Cross got %v, want (0,0,1)", got)
	}
}

func TestUnit(t *testing.T) {
	v := V3S(3, 4, 0)
	u := v.Unit()
	if !Aeq(u.Len(), 1) {
		t.Errorf("Len got %v, want 1", u.Len())
	}
	zero := V3{}
	if got := zero.Unit(); !got.Eq(zero) {
		t.Errorf("Unit of zero vector should stay zero, got %v", got)
	}
}

func TestReflect(t *testing.T) {
	// incident going straight down onto a flat surface reflects straight up.
	incident := V3S(0, -1, 0)
	n := V3S(0, 1, 0)
	r := incident.Neg().Reflect(n)
	if !r.Aeq(V3S(0, 1, 0)) {
		t.Errorf("Reflect got %v, want (0,1,0)", r)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	for _, n := range []V3{V3S(0, 1, 0), V3S(1, 0, 0), V3S(0, 0, 1), V3S(1, 1, 1).Unit()} {
		b := Basis(n)
		if !Aeq(b.X.Len(), 1) || !Aeq(b.Z.Len(), 1) {
			t.Fatalf("basis vectors for %v not unit length: %v %v", n, b.X.Len(), b.Z.Len())
		}
		if math.Abs(b.X.Dot(b.Y)) > 1e-9 || math.Abs(b.Z.Dot(b.Y)) > 1e-9 || math.Abs(b.X.Dot(b.Z)) > 1e-9 {
			t.Fatalf("basis for %v not orthogonal: %+v", n, b)
		}
		// round trip a direction through to-local/to-world.
		d := V3S(0.2, 0.9, 0.1).Unit()
		world := b.ToWorld(d)
		back := b.ToLocal(world)
		if !back.Aeq(d) {
			t.Errorf("round trip mismatch: got %v want %v", back, d)
		}
	}
}

func TestLookAt(t *testing.T) {
	x, y, z := LookAt(V3S(0, 0, -1), V3S(0, 1, 0))
	if !z.Aeq(V3S(0, 0, -1)) {
		t.Errorf("z axis got %v", z)
	}
	if !x.Aeq(V3S(-1, 0, 0)) {
		t.Errorf("x axis got %v", x)
	}
	if !y.Aeq(V3S(0, 1, 0)) {
		t.Errorf("y axis got %v", y)
	}
}

func TestClampLerp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp got %v want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp got %v want 0", got)
	}
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp got %v want 5", got)
	}
}
