package vecraster

import "testing"

func TestTransitionCount(t *testing.T) {
	tests := []struct {
		name string
		p    [8]bool
		want int
	}{
		{"all false", [8]bool{}, 0},
		{"single run", [8]bool{true, true, true, false, false, false, false, false}, 1},
		{"three runs", [8]bool{true, false, true, false, true, false, false, false}, 3},
		{"all true", [8]bool{true, true, true, true, true, true, true, true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transitionCount(tt.p); got != tt.want {
				t.Errorf("transitionCount(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestWeightedMedianPrepassRemovesIsolatedPixel(t *testing.T) {
	mask := newBinaryImage(5, 5)
	mask.set(2, 2, true) // single isolated foreground pixel
	out := weightedMedianPrepass(mask)
	if out.at(2, 2) {
		t.Errorf("at(2,2) = true, want false (isolated pixel removed)")
	}
}

func TestWeightedMedianPrepassKeepsSolidBlock(t *testing.T) {
	mask := newBinaryImage(5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			mask.set(x, y, true)
		}
	}
	out := weightedMedianPrepass(mask)
	if !out.at(2, 2) {
		t.Errorf("at(2,2) = false, want true (center of solid block kept)")
	}
}

// horizontalLine builds a straight horizontal line mask of the given
// length, thick enough to survive the weighted prepass.
func horizontalLine(width, length int) *BinaryImage {
	mask := newBinaryImage(width, 3)
	for x := 0; x < length; x++ {
		mask.set(x, 0, true)
		mask.set(x, 1, true)
		mask.set(x, 2, true)
	}
	return mask
}

func TestThinReducesThickLineToOnePixelWide(t *testing.T) {
	mask := horizontalLine(10, 10)
	skeleton, converged := thin(mask, 20, nil)
	if !converged {
		t.Errorf("thin() did not converge within 20 iterations")
	}

	for x := range 10 {
		count := 0
		for y := range 3 {
			if skeleton.at(x, y) {
				count++
			}
		}
		if count > 1 {
			t.Errorf("column %d has %d foreground pixels, want at most 1", x, count)
		}
	}
}

func TestThinEmptyMaskStaysEmpty(t *testing.T) {
	mask := newBinaryImage(5, 5)
	skeleton, converged := thin(mask, 20, nil)
	if !converged {
		t.Errorf("thin(empty) should converge immediately")
	}
	for _, v := range skeleton.Bits {
		if v {
			t.Errorf("thin(empty mask) produced a foreground pixel")
			break
		}
	}
}

// clearingAccelerator is a minimal Accelerator whose ThinningStep clears
// every foreground pixel in one pass, used to verify thinStepDispatch
// routes through the accelerator's mutation instead of thinPass when
// CanAccelerate reports support.
type clearingAccelerator struct{ supports AcceleratedOp }

func (a clearingAccelerator) Name() string { return "clearing" }
func (a clearingAccelerator) Init() error  { return nil }
func (a clearingAccelerator) Close()       {}
func (a clearingAccelerator) CanAccelerate(op AcceleratedOp) bool {
	return a.supports&op != 0
}
func (a clearingAccelerator) Palettize(pixels []uint8, width, height int, palette []RGBA, indices []int) error {
	return ErrFallbackToCPU
}
func (a clearingAccelerator) ThinningStep(mask []bool, width, height int, evenPass bool) (bool, error) {
	if a.supports&OpThinning == 0 {
		return false, ErrFallbackToCPU
	}
	changed := false
	for i, v := range mask {
		if v {
			changed = true
		}
		mask[i] = false
	}
	return changed, nil
}

func TestThinStepDispatchUsesAcceleratorWhenSupported(t *testing.T) {
	mask := newBinaryImage(3, 3)
	mask.set(1, 1, true)
	accel := clearingAccelerator{supports: OpThinning}
	changed := thinStepDispatch(mask, false, accel)
	if !changed {
		t.Error("thinStepDispatch() changed = false, want true")
	}
	if mask.at(1, 1) {
		t.Error("thinStepDispatch() left a foreground pixel; accelerator output was not used")
	}
}

func TestThinStepDispatchFallsBackWhenUnsupported(t *testing.T) {
	mask := newBinaryImage(3, 3)
	for x := 0; x < 3; x++ {
		mask.set(x, 1, true)
	}
	accel := clearingAccelerator{supports: 0}
	changed := thinStepDispatch(mask, false, accel)

	// Every pixel of this 3-long row has either fewer than 2 live
	// neighbors (the endpoints) or neighbors that aren't part of a single
	// connected run (the center, whose removal would disconnect the two
	// endpoints), so thinPass deletes nothing here. The accelerator, had
	// it run, would have cleared the whole row instead.
	if changed {
		t.Error("thinStepDispatch() reported a change; the CPU thinPass should have deleted nothing")
	}
	for x := 0; x < 3; x++ {
		if !mask.at(x, 1) {
			t.Errorf("at(%d,1) = false; the accelerator ran instead of the declining CPU path", x)
		}
	}
}
