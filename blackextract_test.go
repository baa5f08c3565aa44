package vecraster

import "testing"

func TestExtractBlack(t *testing.T) {
	pixels := []uint8{0, 0, 0, 255, 255, 255, 255, 255}
	r, _ := NewRasterRGBA(2, 1, pixels)
	mask := extractBlack(r, 0.20)
	if !mask.at(0, 0) {
		t.Errorf("at(0,0) = false, want true (black pixel)")
	}
	if mask.at(1, 0) {
		t.Errorf("at(1,0) = true, want false (white pixel)")
	}
}

func TestBloomDilate3x3(t *testing.T) {
	mask := newBinaryImage(3, 3)
	mask.set(1, 1, true)
	out := bloomDilate3x3(mask)
	for y := range 3 {
		for x := range 3 {
			if !out.at(x, y) {
				t.Errorf("at(%d,%d) = false, want true (within dilation radius)", x, y)
			}
		}
	}
}

func TestBloomDilate3x3LeavesFarPixelsUnset(t *testing.T) {
	mask := newBinaryImage(5, 5)
	mask.set(0, 0, true)
	out := bloomDilate3x3(mask)
	if out.at(4, 4) {
		t.Errorf("at(4,4) = true, want false (outside dilation radius)")
	}
}

func TestSubtractBloomReplacesWithWhite(t *testing.T) {
	pixels := []uint8{0, 0, 0, 255}
	r, _ := NewRasterRGBA(1, 1, pixels)
	bloom := newBinaryImage(1, 1)
	bloom.set(0, 0, true)

	out := subtractBloom(r, bloom)
	if got := out.At(0, 0); got != White {
		t.Errorf("At(0,0) = %+v, want White", got)
	}
	// Original must be untouched.
	if got := r.At(0, 0); got == White {
		t.Errorf("subtractBloom mutated the source raster")
	}
}
