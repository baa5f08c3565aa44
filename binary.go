package vecraster

// extractColorLayers produces one BinaryImage per non-background,
// non-mapped-to-bg palette index that contains at least one pixel (§4.D).
// The returned slice is indexed by palette index; entries for background,
// mapped-to-bg, or empty colors are nil.
func extractColorLayers(img *PalettizedImage) []*BinaryImage {
	layers := make([]*BinaryImage, len(img.Palette.Entries))
	hasPixel := make([]bool, len(img.Palette.Entries))

	for y := range img.Height {
		for x := range img.Width {
			idx := img.at(x, y)
			if int(idx) == img.Palette.backgroundIndex() || img.Palette.Entries[idx].MapToBg {
				continue
			}
			if layers[idx] == nil {
				layers[idx] = newBinaryImage(img.Width, img.Height)
			}
			layers[idx].set(x, y, true)
			hasPixel[idx] = true
		}
	}

	for i, has := range hasPixel {
		if !has {
			layers[i] = nil
		}
	}
	return layers
}
