package vecraster

// neighbor offsets in the standard N,NE,E,SE,S,SW,W,NW order used by both
// the thinning and tracing stages (§4.E, §4.F).
var neighborOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// weightedMedianPrepass smooths a binary mask before thinning (§4.E): a
// weighted 3x3 window (corners weight 1, edges weight 2, center weight 1,
// 13 total samples) keeps the pixel set iff at least 7 weighted samples
// are set. This prevents isolated pixels from surviving thinning and
// suppresses staircase artifacts.
func weightedMedianPrepass(mask *BinaryImage) *BinaryImage {
	out := newBinaryImage(mask.Width, mask.Height)
	weights := [3][3]int{
		{1, 2, 1},
		{2, 1, 2},
		{1, 2, 1},
	}
	for y := range mask.Height {
		for x := range mask.Width {
			sum := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if mask.at(x+dx, y+dy) {
						sum += weights[dy+1][dx+1]
					}
				}
			}
			out.set(x, y, sum >= 7)
		}
	}
	return out
}

// thin reduces mask to a 1-pixel-wide skeleton via Zhang-Suen thinning
// (§4.E), preceded by weightedMedianPrepass. Returns the skeleton and
// whether a fixpoint was reached within maxIterations; false means the
// iteration cap was hit (non-converged, surfaced as a warning per §7). accel may be nil; each
// sub-iteration is offered to it first and only runs on the CPU when the
// accelerator declines or fails.
func thin(mask *BinaryImage, maxIterations int, accel Accelerator) (skeleton *BinaryImage, converged bool) {
	skeleton = weightedMedianPrepass(mask)

	for iter := 0; iter < maxIterations; iter++ {
		deletedPass0 := thinStepDispatch(skeleton, false, accel)
		deletedPass1 := thinStepDispatch(skeleton, true, accel)
		if !deletedPass0 && !deletedPass1 {
			return skeleton, true
		}
	}
	return skeleton, false
}

// thinStepDispatch runs one Zhang-Suen sub-iteration on accel when it
// reports support for OpThinning, falling back to the CPU implementation
// on ErrFallbackToCPU, a nil accel, or any other dispatch error.
func thinStepDispatch(skeleton *BinaryImage, evenPass bool, accel Accelerator) bool {
	if accel != nil && accel.CanAccelerate(OpThinning) {
		changed, err := accel.ThinningStep(skeleton.Bits, skeleton.Width, skeleton.Height, evenPass)
		if err == nil {
			return changed
		}
	}
	return thinPass(skeleton, evenPass)
}

// thinPass applies one Zhang-Suen sub-iteration to skeleton in place,
// returning whether any pixel was deleted. evenPass selects condition set
// (3) from §4.E: pass 0 checks P2*P4*P6=0 and P4*P6*P8=0; pass 1 checks
// P2*P4*P8=0 and P2*P6*P8=0.
func thinPass(skeleton *BinaryImage, evenPass bool) bool {
	type point struct{ x, y int }
	var toDelete []point

	for y := range skeleton.Height {
		for x := range skeleton.Width {
			if !skeleton.at(x, y) {
				continue
			}
			p := [8]bool{}
			for i, off := range neighborOffsets {
				p[i] = skeleton.at(x+off[0], y+off[1])
			}

			b := 0
			for _, v := range p {
				if v {
					b++
				}
			}
			if b < 2 || b > 6 {
				continue
			}

			a := transitionCount(p)
			if a != 1 {
				continue
			}

			// p[0]=P2(N) p[1]=P3(NE) p[2]=P4(E) p[3]=P5(SE) p[4]=P6(S)
			// p[5]=P7(SW) p[6]=P8(W) p[7]=P9(NW)
			var ok bool
			if !evenPass {
				ok = !(p[0] && p[2] && p[4]) && !(p[2] && p[4] && p[6])
			} else {
				ok = !(p[0] && p[2] && p[6]) && !(p[0] && p[4] && p[6])
			}
			if ok {
				toDelete = append(toDelete, point{x, y})
			}
		}
	}

	for _, pt := range toDelete {
		skeleton.set(pt.x, pt.y, false)
	}
	return len(toDelete) > 0
}

// transitionCount counts 0->1 transitions in the cyclic sequence
// P2,P3,...,P9,P2 (§4.E, A(P1)).
func transitionCount(p [8]bool) int {
	count := 0
	for i := range 8 {
		cur := p[i]
		next := p[(i+1)%8]
		if !cur && next {
			count++
		}
	}
	return count
}
