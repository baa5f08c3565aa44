package vecraster

// thresholdValueMask packs value < threshold into a binary line mask
// (§4.B): 1 = line, 0 = background.
func thresholdValueMask(value *ChannelF32, threshold float64) *BinaryImage {
	mask := newBinaryImage(value.Width, value.Height)
	t := float32(threshold)
	for i, v := range value.Data {
		mask.Bits[i] = v < t
	}
	return mask
}

// medianFilter3x3 runs one 3x3 median pass over ch with replicate boundary
// clamping (§4.B). Used once each on the saturation and hue channels to
// remove single-pixel color noise without eroding strokes.
func medianFilter3x3(ch *ChannelF32) *ChannelF32 {
	out := newChannelF32(ch.Width, ch.Height)
	var window [9]float32
	for y := range ch.Height {
		for x := range ch.Width {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					cx := clampInt(x+dx, 0, ch.Width-1)
					cy := clampInt(y+dy, 0, ch.Height-1)
					window[n] = ch.at(cx, cy)
					n++
				}
			}
			out.set(x, y, median9(window))
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// median9 returns the median of 9 samples via insertion sort (fast and
// allocation-free at this fixed size).
func median9(w [9]float32) float32 {
	for i := 1; i < 9; i++ {
		key := w[i]
		j := i - 1
		for j >= 0 && w[j] > key {
			w[j+1] = w[j]
			j--
		}
		w[j+1] = key
	}
	return w[4]
}

// recombineHSV reconstructs the displayable cleanup output (§4.B): white
// where the value mask is 0, black where the pixel is achromatic (low
// saturation or grayscale-sentinel hue), otherwise HSV-to-RGB with V=1,
// S=1, and the median-filtered hue. This recombined image is the input to
// palettization (§4.C), not the raw channels.
func recombineHSV(mask *BinaryImage, medianSat, medianHue *ChannelF32, saturationDeltaSentinel float64) *RasterRGBA {
	out := &RasterRGBA{Width: mask.Width, Height: mask.Height, Pixels: make([]uint8, mask.Width*mask.Height*4)}
	for y := range mask.Height {
		for x := range mask.Width {
			var c RGBA
			switch {
			case !mask.at(x, y):
				c = White
			case float64(medianSat.at(x, y)) < saturationDeltaSentinel || medianHue.at(x, y) < 0:
				c = Black
			default:
				c = HSVToRGB(float64(medianHue.at(x, y))*360, 1, 1)
			}
			out.setPixel(x, y, c)
		}
	}
	return out
}
