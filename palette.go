package vecraster

// PaletteEntry is one recognized color in the target palette (§6):
// inputColor is unused by the core (it's the UI's reverse-lookup key),
// outputColor is the snapped color emitted in VectorizedLayer, and
// mapToBg marks entries that palettize like background despite not being
// index 0 (e.g. "light gray construction lines, discard").
type PaletteEntry struct {
	InputColor  RGBA
	OutputColor RGBA
	MapToBg     bool
}

// nearBlackLuminosity is the luminosity cutoff below which a palette entry
// is forbidden as a nearest-color assignment target (§3, §4.C), and below
// which a source pixel is forced to background regardless of its nearest
// palette entry.
const nearBlackLuminosity = 0.10

// Palette is the ordered, immutable set of recognized colors for one page
// (§3). Entry 0 is always background by convention.
type Palette struct {
	Entries []PaletteEntry
}

// NewPalette validates and wraps entries. Entry 0 must be the background
// (the pipeline does not infer background; the caller's UI owns that
// convention).
func NewPalette(entries []PaletteEntry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPalette
	}
	if len(entries) > 16 {
		return nil, ErrPaletteTooLarge
	}
	return &Palette{Entries: entries}, nil
}

func (p *Palette) backgroundIndex() int { return 0 }

func luminosity(c RGBA) float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// ColorDistance scores the dissimilarity of two colors for nearest-palette
// assignment (§4.C, §9 "color quantization stability"). Lower is closer;
// the only contract is that distance(c, c) == 0.
type ColorDistance func(a, b RGBA) float64

// SquaredEuclideanDistance is the default ColorDistance: squared Euclidean
// distance over the R, G, B components as stored (no linearization).
func SquaredEuclideanDistance(a, b RGBA) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return dr*dr + dg*dg + db*db
}

// WeightedColorDistance is a perceptual alternative: squared Euclidean
// distance weighted by the same ITU-R BT.601 luma coefficients used by
// luminosity, so channels the eye is more sensitive to (green) dominate
// the comparison over channels it is less sensitive to (blue).
func WeightedColorDistance(a, b RGBA) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return 0.299*dr*dr + 0.587*dg*dg + 0.114*db*db
}

// nearestIndex returns the palette index minimizing dist to c, skipping
// entries whose own luminosity is below nearBlackLuminosity (§4.C).
// Background (index 0) is always eligible.
func (p *Palette) nearestIndex(c RGBA, dist ColorDistance) int {
	best := 0
	bestDist := -1.0
	for i, e := range p.Entries {
		if i != 0 && luminosity(e.OutputColor) < nearBlackLuminosity {
			continue
		}
		d := dist(c, e.OutputColor)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// PalettizedImage is a 4-bit-per-pixel palette index buffer (§3), carrying
// the Palette it was produced against.
type PalettizedImage struct {
	Width, Height int
	Indices       []uint8 // one palette index per pixel, 0-15
	Palette       *Palette
}

func newPalettizedImage(width, height int, palette *Palette) *PalettizedImage {
	return &PalettizedImage{Width: width, Height: height, Indices: make([]uint8, width*height), Palette: palette}
}

func (p *PalettizedImage) at(x, y int) uint8 {
	return p.Indices[y*p.Width+x]
}

func (p *PalettizedImage) set(x, y int, idx uint8) {
	p.Indices[y*p.Width+x] = idx
}
