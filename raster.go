package vecraster

import vcolor "github.com/gogpu/vecraster/internal/color"

// RasterRGBA is the immutable input raster (§3): width W, height H, a
// row-major sequence of 4-byte RGBA pixels. It is produced by the external
// rasterizer collaborator (§6) and never mutated by the pipeline; every
// stage that needs a modified copy allocates a new buffer.
type RasterRGBA struct {
	Width, Height int
	Pixels        []uint8 // len == Width*Height*4, byte order R,G,B,A
}

// NewRasterRGBA validates and wraps a caller-owned pixel buffer. The
// buffer is not copied; the caller must not mutate it afterward.
func NewRasterRGBA(width, height int, pixels []uint8) (*RasterRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pixels) != width*height*4 {
		return nil, ErrPixelBufferSizeMismatch
	}
	return &RasterRGBA{Width: width, Height: height, Pixels: pixels}, nil
}

// At returns the color at pixel (x, y). Out-of-bounds coordinates return
// the zero RGBA.
func (r *RasterRGBA) At(x, y int) RGBA {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return RGBA{}
	}
	i := (y*r.Width + x) * 4
	f := vcolor.U8ToF32(vcolor.ColorU8{R: r.Pixels[i+0], G: r.Pixels[i+1], B: r.Pixels[i+2], A: r.Pixels[i+3]})
	return RGBA{R: float64(f.R), G: float64(f.G), B: float64(f.B), A: float64(f.A)}
}

// clone returns a copy of the raster with its own pixel buffer. Used by the
// black-extraction bloom subtraction (§4.C), which needs a modified copy
// of the original raster without disturbing it.
func (r *RasterRGBA) clone() *RasterRGBA {
	cp := make([]uint8, len(r.Pixels))
	copy(cp, r.Pixels)
	return &RasterRGBA{Width: r.Width, Height: r.Height, Pixels: cp}
}

func (r *RasterRGBA) setPixel(x, y int, c RGBA) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return
	}
	i := (y*r.Width + x) * 4
	u := vcolor.F32ToU8(vcolor.ColorF32{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)})
	r.Pixels[i+0] = u.R
	r.Pixels[i+1] = u.G
	r.Pixels[i+2] = u.B
	r.Pixels[i+3] = u.A
}

// ChannelF32 is a single-channel float32-per-pixel buffer (§3), used for
// the value, saturation, and hue channels produced by channel
// decomposition. Hue uses -1 as the grayscale sentinel.
type ChannelF32 struct {
	Width, Height int
	Data          []float32
}

func newChannelF32(width, height int) *ChannelF32 {
	return &ChannelF32{Width: width, Height: height, Data: make([]float32, width*height)}
}

func (c *ChannelF32) at(x, y int) float32 {
	return c.Data[y*c.Width+x]
}

func (c *ChannelF32) set(x, y int, v float32) {
	c.Data[y*c.Width+x] = v
}

// BinaryImage is a 1-bit-per-pixel mask (§3), stored one bool per pixel for
// simplicity; the pipeline's images are small enough that packed bits
// would only complicate the thinning and tracing logic for no measurable
// benefit at these sizes.
type BinaryImage struct {
	Width, Height int
	Bits          []bool
}

func newBinaryImage(width, height int) *BinaryImage {
	return &BinaryImage{Width: width, Height: height, Bits: make([]bool, width*height)}
}

func (b *BinaryImage) at(x, y int) bool {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return false
	}
	return b.Bits[y*b.Width+x]
}

func (b *BinaryImage) set(x, y int, v bool) {
	b.Bits[y*b.Width+x] = v
}

func (b *BinaryImage) clone() *BinaryImage {
	cp := make([]bool, len(b.Bits))
	copy(cp, b.Bits)
	return &BinaryImage{Width: b.Width, Height: b.Height, Bits: cp}
}
