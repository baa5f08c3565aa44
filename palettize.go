package vecraster

// palettizeDispatch runs palettization on accel when it reports support for
// OpPalettize, falling back to the CPU path on ErrFallbackToCPU, a nil
// accel, or any other dispatch error. The near-black-forced-to-background
// rule is still applied to the accelerator's output so GPU and CPU paths
// agree on that edge case regardless of the accelerator's own handling of
// it.
//
// An accelerator's Palettize method commits to nearest-Euclidean
// assignment (its doc comment); if dist is not SquaredEuclideanDistance,
// callers that need a custom metric honored exactly should not register an
// accelerator that claims OpPalettize support, since a Go function value
// cannot be shipped across the dispatch boundary.
func palettizeDispatch(recombined *RasterRGBA, palette *Palette, dist ColorDistance, accel Accelerator) *PalettizedImage {
	if accel == nil || !accel.CanAccelerate(OpPalettize) {
		return palettize(recombined, palette, dist)
	}

	entryColors := make([]RGBA, len(palette.Entries))
	for i, e := range palette.Entries {
		entryColors[i] = e.OutputColor
	}
	indices := make([]int, recombined.Width*recombined.Height)
	if err := accel.Palettize(recombined.Pixels, recombined.Width, recombined.Height, entryColors, indices); err != nil {
		return palettize(recombined, palette, dist)
	}

	out := newPalettizedImage(recombined.Width, recombined.Height, palette)
	for y := range recombined.Height {
		for x := range recombined.Width {
			if luminosity(recombined.At(x, y)) < nearBlackLuminosity {
				out.set(x, y, 0)
				continue
			}
			out.set(x, y, uint8(indices[y*recombined.Width+x]))
		}
	}
	return out
}

// palettize assigns every pixel of the cleanup-recombined image to a
// palette index (§4.C): pixels below nearBlackLuminosity are forced to
// background (index 0); otherwise the nearest eligible palette entry under
// dist is chosen.
func palettize(recombined *RasterRGBA, palette *Palette, dist ColorDistance) *PalettizedImage {
	out := newPalettizedImage(recombined.Width, recombined.Height, palette)
	for y := range recombined.Height {
		for x := range recombined.Width {
			c := recombined.At(x, y)
			if luminosity(c) < nearBlackLuminosity {
				out.set(x, y, 0)
				continue
			}
			out.set(x, y, uint8(palette.nearestIndex(c, dist)))
		}
	}
	return out
}

// medianCleanupPass runs one pass of the non-standard per-color median
// filter (§4.C): isolated islands (center color absent from all 8
// neighbors) and barnacles (a single neighbor color dominates with count
// >= 6 and differs from center) are replaced by the dominant neighbor
// color; pixels near plausible edges are left untouched.
func medianCleanupPass(img *PalettizedImage) *PalettizedImage {
	out := newPalettizedImage(img.Width, img.Height, img.Palette)
	var counts [16]int
	for y := range img.Height {
		for x := range img.Width {
			for i := range counts {
				counts[i] = 0
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= img.Width || ny < 0 || ny >= img.Height {
						continue
					}
					counts[img.at(nx, ny)]++
				}
			}
			center := img.at(x, y)
			dominant, maxCount := dominantColor(counts)

			switch {
			case counts[center] == 0:
				out.set(x, y, dominant)
			case maxCount >= 6 && dominant != center:
				out.set(x, y, dominant)
			default:
				out.set(x, y, center)
			}
		}
	}
	return out
}

func dominantColor(counts [16]int) (idx uint8, count int) {
	best := 0
	bestCount := counts[0]
	for i := 1; i < 16; i++ {
		if counts[i] > bestCount {
			bestCount = counts[i]
			best = i
		}
	}
	return uint8(best), bestCount
}

// runMedianCleanup applies medianCleanupPass passes times (§6 config
// envelope, default 3).
func runMedianCleanup(img *PalettizedImage, passes int) *PalettizedImage {
	for range passes {
		img = medianCleanupPass(img)
	}
	return img
}
