package ray

import (
	"math"
	"testing"
)

func TestNewNormalizesDirection(t *testing.T) {
	r := New(V3{}, V3{X: 3, Y: 4})
	if math.Abs(r.Dir.Len()-1) > 1e-9 {
		t.Errorf("direction not unit length: %v", r.Dir.Len())
	}
}

func TestInvDirAxisAligned(t *testing.T) {
	r := New(V3{}, V3{X: 1})
	if !math.IsInf(r.InvDir.Y, 1) && !math.IsInf(r.InvDir.Y, -1) {
		t.Errorf("expected InvDir.Y to be +/-Inf for axis-aligned ray, got %v", r.InvDir.Y)
	}
}

func TestAt(t *testing.T) {
	r := New(V3{X: 1}, V3{X: 1})
	p := r.At(2)
	if p.X != 3 {
		t.Errorf("At(2).X got %v want 3", p.X)
	}
}
