package vecraster

import "github.com/gogpu/vecraster/internal/parallel"

// decomposeChannels splits raster into value, saturation, and hue channels
// (§4.A). value is min(r,g,b) — the inverse of traditional HSV "V": high
// value means near-white, low value means dark or saturated. hue uses the
// grayscale sentinel -1 when the max-min RGB delta is at or below
// saturationDeltaSentinel.
//
// Work is dispatched tile-by-tile rather than row-by-row: every pixel
// touches all three destination planes, so keeping a worker's writes
// confined to one TileSize x TileSize region of each plane holds the
// working set in cache for the whole tile instead of sweeping three full
// rows per pixel.
func decomposeChannels(r *RasterRGBA, pool *WorkerPool, saturationDeltaSentinel float64) (value, saturation, hue *ChannelF32) {
	value = newChannelF32(r.Width, r.Height)
	saturation = newChannelF32(r.Width, r.Height)
	hue = newChannelF32(r.Width, r.Height)

	parallel.ParallelizeTiles(pool, r.Width, r.Height, func(t parallel.Tile) {
		t.ForEachPixel(func(x, y int) {
			c := r.At(x, y)
			mn := minF64(c.R, c.G, c.B)
			mx := maxF64(c.R, c.G, c.B)
			delta := mx - mn

			value.set(x, y, float32(mn))
			saturation.set(x, y, float32(delta))

			if delta <= saturationDeltaSentinel {
				hue.set(x, y, -1)
				return
			}
			h, _, _ := RGBToHSV(c)
			hue.set(x, y, float32(h/360))
		})
	})
	return value, saturation, hue
}

func minF64(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxF64(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
