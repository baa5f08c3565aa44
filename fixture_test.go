package vecraster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// downsampleFixture renders a diagonal line at supersample times the
// requested resolution and downsamples it with golang.org/x/image/draw's
// bilinear scaler. The result has the partial-coverage gray edge pixels a
// scanned or rasterized drawing actually has, instead of the hard
// black/white edges a fixture drawn directly at target resolution would
// have — useful for exercising palettization and channel decomposition
// against realistic anti-aliasing.
func downsampleFixture(outWidth, outHeight, supersample int) *RasterRGBA {
	srcW, srcH := outWidth*supersample, outHeight*supersample
	src := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
	for y := range srcH {
		for x := range srcW {
			src.Set(x, y, color.White)
		}
	}

	half := supersample / 2
	for x := range srcW {
		y := x * srcH / srcW
		for dy := -half; dy <= half; dy++ {
			yy := y + dy
			if yy >= 0 && yy < srcH {
				src.Set(x, yy, color.Black)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	pixels := make([]uint8, outWidth*outHeight*4)
	for y := range outHeight {
		for x := range outWidth {
			r, g, b, a := dst.At(x, y).RGBA()
			i := (y*outWidth + x) * 4
			pixels[i+0] = uint8(r >> 8)
			pixels[i+1] = uint8(g >> 8)
			pixels[i+2] = uint8(b >> 8)
			pixels[i+3] = uint8(a >> 8)
		}
	}
	raster, err := NewRasterRGBA(outWidth, outHeight, pixels)
	if err != nil {
		panic(err) // fixture dimensions are caller-controlled constants
	}
	return raster
}
