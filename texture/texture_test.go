package texture

import (
	"testing"

	"github.com/gazed/pathtrace/vec"
)

func newTex2x2(filter Filter, addr Address) *LDR {
	// 2x2 RGB texture: (0,0)=black, (1,0)=white, (0,1)=white, (1,1)=black
	pixels := []uint8{
		0, 0, 0, 255, 255, 255,
		255, 255, 255, 0, 0, 0,
	}
	return &LDR{Width: 2, Height: 2, Comps: 3, Pixels: pixels, Filter: filter, AddressU: addr, AddressV: addr}
}

func TestClampAddressingEdgeSample(t *testing.T) {
	tex := newTex2x2(Bilinear, Clamp)
	// uv = (-1, 2.5): Clamp collapses the fetch to the (0,1) texel.
	got := tex.Sample(vec.V2{X: -1, Y: 2.5})
	want := vec.V3{X: 1, Y: 1, Z: 1} // (0,1) texel is white
	if !got.Aeq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestAddressIdempotent(t *testing.T) {
	sizes := []int{1, 3, 8}
	for _, size := range sizes {
		for _, mode := range []Address{Clamp, Wrap, Mirror} {
			for x := -20; x <= 20; x++ {
				a := mode.apply(x, size)
				b := mode.apply(a, size)
				if a != b {
					t.Fatalf("%v not idempotent at size=%d x=%d: %d -> %d", mode, size, x, a, b)
				}
			}
		}
	}
}

func TestWrapPeriodic(t *testing.T) {
	size := 5
	for x := -15; x <= 15; x++ {
		if Wrap.apply(x, size) != Wrap.apply(x+size, size) {
			t.Errorf("Wrap not periodic at x=%d", x)
		}
	}
}

func TestPointFilterTopLeft(t *testing.T) {
	tex := newTex2x2(Point, Clamp)
	got := tex.Sample(vec.V2{X: 0.01, Y: 0.01})
	want := vec.V3{X: 0, Y: 0, Z: 0}
	if !got.Aeq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestLinearizeAtMostOnce(t *testing.T) {
	tex := &LDR{Width: 1, Height: 1, Comps: 3, Pixels: []uint8{128, 128, 128}, SRGB: true}
	tex.Linearize()
	if tex.SRGB {
		t.Fatal("SRGB flag should be cleared after Linearize")
	}
	first := append([]uint8(nil), tex.Pixels...)
	tex.Linearize() // second call must be a no-op
	for i := range first {
		if first[i] != tex.Pixels[i] {
			t.Errorf("second Linearize call changed pixel %d: %d -> %d", i, first[i], tex.Pixels[i])
		}
	}
}

func TestAttributeEval(t *testing.T) {
	c := ConstAttribute(vec.V3S(0.5, 0.5, 0.5))
	if got := c.Eval(vec.V2{}); !got.Eq(vec.V3S(0.5, 0.5, 0.5)) {
		t.Errorf("constant attribute got %v", got)
	}
	tex := newTex2x2(Point, Clamp)
	a := TexAttribute(tex)
	if got := a.Eval(vec.V2{X: 0.9, Y: 0.01}); !got.Aeq(vec.V3S(1, 1, 1)) {
		t.Errorf("texture attribute got %v", got)
	}
}

func TestHDREquirectSample(t *testing.T) {
	// constant white environment.
	pixels := make([]float32, 4*2*3)
	for i := range pixels {
		pixels[i] = 0.5
	}
	h := &HDR{Width: 4, Height: 2, Pixels: pixels}
	got := h.Sample(vec.V3S(0, 1, 0))
	if !got.Aeq(vec.V3S(0.5, 0.5, 0.5)) {
		t.Errorf("got %v want constant 0.5", got)
	}
}

func TestHDREmpty(t *testing.T) {
	var h *HDR
	if !h.Empty() {
		t.Error("nil HDR should be Empty")
	}
	if got := h.Sample(vec.V3S(0, 1, 0)); !got.Eq(vec.V3{}) {
		t.Errorf("empty HDR sample got %v want zero", got)
	}
}
