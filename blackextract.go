package vecraster

// extractBlack thresholds luminosity on the original raster into the
// black layer mask (§4.C), independent of and prior to HSV cleanup.
func extractBlack(r *RasterRGBA, luminosityThresholdBlack float64) *BinaryImage {
	mask := newBinaryImage(r.Width, r.Height)
	for y := range r.Height {
		for x := range r.Width {
			if luminosity(r.At(x, y)) < luminosityThresholdBlack {
				mask.set(x, y, true)
			}
		}
	}
	return mask
}

// bloomDilate3x3 performs a 3x3 OR dilation: a pixel is set in the result
// if any of its 9-neighborhood (including itself) is set in mask (§4.C).
// Covers anti-aliased edges around black ink.
func bloomDilate3x3(mask *BinaryImage) *BinaryImage {
	out := newBinaryImage(mask.Width, mask.Height)
	for y := range mask.Height {
		for x := range mask.Width {
			set := false
			for dy := -1; dy <= 1 && !set; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if mask.at(x+dx, y+dy) {
						set = true
						break
					}
				}
			}
			out.set(x, y, set)
		}
	}
	return out
}

// subtractBloom returns a copy of r with every pixel inside bloom replaced
// by opaque white (§4.C), so black ink does not pollute the hue/saturation
// statistics of colored lines during cleanup.
func subtractBloom(r *RasterRGBA, bloom *BinaryImage) *RasterRGBA {
	out := r.clone()
	for y := range r.Height {
		for x := range r.Width {
			if bloom.at(x, y) {
				out.setPixel(x, y, White)
			}
		}
	}
	return out
}
