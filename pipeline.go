package vecraster

import (
	"fmt"
	"math"
)

// Diagnostics carries non-fatal warnings from a successful Process call
// (§7): a page with warnings still produced output, but callers may want
// to surface them (e.g. to flag a drawing for manual review).
type Diagnostics struct {
	// NonConvergedLayers lists the palette indices (plus -1 for the
	// extracted black layer) whose thinning stage hit
	// Config.ThinningMaxIterations without reaching a fixpoint (§4.E, §7).
	NonConvergedLayers []int
}

// blackLayerIndex is the synthetic ColorIndex used for the layer produced
// by direct black extraction, which bypasses palettization entirely
// (§4.C).
const blackLayerIndex = -1

// Process runs the full vectorization pipeline over raster against
// palette: channel decomposition and HSV cleanup (§4.A-B), black
// extraction and bloom subtraction (§4.C), palettization and median
// cleanup (§4.C), per-color binary layer extraction (§4.D), thinning
// (§4.E), graph tracing (§4.F), cut-point optimization and junction
// snapping (§4.G), and output assembly (§4.H).
//
// Process is a pure function of its inputs: identical raster, palette,
// and cfg always produce identical output.
func Process(raster *RasterRGBA, palette *Palette, cfg Config) ([]VectorizedLayer, Diagnostics, error) {
	if raster.Width <= 0 || raster.Height <= 0 {
		return nil, Diagnostics{}, newStageError(StageChannelDecompose, ErrInvalidDimensions, "")
	}
	if int64(raster.Width)*int64(raster.Height) > math.MaxInt32 {
		return nil, Diagnostics{}, newStageError(StageChannelDecompose, ErrResourceExhausted, fmt.Sprintf("%dx%d pixels", raster.Width, raster.Height))
	}
	if len(raster.Pixels) != raster.Width*raster.Height*4 {
		return nil, Diagnostics{}, newStageError(StageChannelDecompose, ErrPixelBufferSizeMismatch, "")
	}
	if palette == nil || len(palette.Entries) == 0 {
		return nil, Diagnostics{}, newStageError(StagePalettize, ErrEmptyPalette, "")
	}
	if len(palette.Entries) > 16 {
		return nil, Diagnostics{}, newStageError(StagePalettize, ErrPaletteTooLarge, "")
	}

	pool := cfg.Pool
	if pool == nil {
		pool = NewWorkerPool(0)
		defer pool.Close()
	}

	var diag Diagnostics
	var diagIdx []int

	// (§4.C) Black extraction runs on the original raster, independent of
	// HSV cleanup, and its bloom is subtracted before cleanup runs so black
	// ink never pollutes colored-line hue/saturation statistics.
	blackMask := extractBlack(raster, cfg.LuminosityThresholdBlack)
	bloom := bloomDilate3x3(blackMask)
	cleaned := subtractBloom(raster, bloom)

	// (§4.A) Channel decomposition, (§4.B) HSV cleanup.
	value, saturation, hue := decomposeChannels(cleaned, pool, cfg.SaturationDeltaSentinel)
	lineMask := thresholdValueMask(value, cfg.ValueThreshold)
	medianSat := medianFilter3x3(saturation)
	medianHue := medianFilter3x3(hue)
	recombined := recombineHSV(lineMask, medianSat, medianHue, cfg.SaturationDeltaSentinel)

	// (§4.C) Palettization and per-color median cleanup.
	dist := cfg.ColorDistance
	if dist == nil {
		dist = SquaredEuclideanDistance
	}
	palettized := palettizeDispatch(recombined, palette, dist, cfg.Accelerator)
	palettized = runMedianCleanup(palettized, cfg.MedianPasses)

	// (§4.D) Per-color binary layer extraction.
	colorLayers := extractColorLayers(palettized)

	type job struct {
		colorIndex int
		mask       *BinaryImage
	}
	jobs := make([]job, 0, len(colorLayers)+1)
	jobs = append(jobs, job{colorIndex: blackLayerIndex, mask: blackMask})
	for idx, mask := range colorLayers {
		if mask == nil {
			continue
		}
		jobs = append(jobs, job{colorIndex: idx, mask: mask})
	}

	layers := make([]VectorizedLayer, len(jobs))
	converged := make([]bool, len(jobs))
	work := make([]func(), len(jobs))
	for i, j := range jobs {
		i, j := i, j
		work[i] = func() {
			// (§4.E) Thinning.
			skeleton, ok := thin(j.mask, cfg.ThinningMaxIterations, cfg.Accelerator)
			converged[i] = ok

			// (§4.F) Graph tracing.
			g := traceGraph(skeleton)

			// (§4.G) Cut-point optimization + junction snapping,
			// (§4.H) output assembly.
			layers[i] = buildVectorizedLayer(g, j.mask.Width, j.mask.Height, j.colorIndex, cfg)
		}
	}
	pool.ExecuteAll(work)

	for i, j := range jobs {
		if !converged[i] {
			diagIdx = append(diagIdx, j.colorIndex)
		}
	}
	diag.NonConvergedLayers = diagIdx

	return layers, diag, nil
}
