package vecraster

import "testing"

func TestDecomposeChannelsGrayscaleSentinel(t *testing.T) {
	pixels := []uint8{128, 128, 128, 255}
	r, _ := NewRasterRGBA(1, 1, pixels)
	pool := NewWorkerPool(1)
	defer pool.Close()

	value, saturation, hue := decomposeChannels(r, pool, 0.10)
	if got := value.at(0, 0); absDiff(float64(got), 128.0/255) > 1e-3 {
		t.Errorf("value = %v, want ~0.502", got)
	}
	if got := saturation.at(0, 0); got != 0 {
		t.Errorf("saturation = %v, want 0", got)
	}
	if got := hue.at(0, 0); got != -1 {
		t.Errorf("hue = %v, want -1 (grayscale sentinel)", got)
	}
}

func TestDecomposeChannelsColoredPixel(t *testing.T) {
	pixels := []uint8{255, 0, 0, 255} // pure red
	r, _ := NewRasterRGBA(1, 1, pixels)
	pool := NewWorkerPool(1)
	defer pool.Close()

	value, saturation, hue := decomposeChannels(r, pool, 0.10)
	if got := value.at(0, 0); got != 0 {
		t.Errorf("value = %v, want 0 (min channel of pure red)", got)
	}
	if got := saturation.at(0, 0); absDiff(float64(got), 1) > 1e-3 {
		t.Errorf("saturation = %v, want ~1", got)
	}
	if got := hue.at(0, 0); got != 0 {
		t.Errorf("hue = %v, want 0 (red)", got)
	}
}

func TestMinMaxF64(t *testing.T) {
	if got := minF64(3, 1, 2); got != 1 {
		t.Errorf("minF64() = %v, want 1", got)
	}
	if got := maxF64(3, 1, 2); got != 3 {
		t.Errorf("maxF64() = %v, want 3", got)
	}
}
