package vecraster

// Option configures a Config during pipeline construction.
// Use functional options to customize pipeline behavior.
//
// Example:
//
//	// Default operating point
//	cfg := vecraster.DefaultConfig()
//
//	// Tune the cut-point optimizer's segmentation trade-off
//	cfg := vecraster.DefaultConfig(
//		vecraster.WithSegmentPenalty(2.0),
//		vecraster.WithMaxSegmentError(1.0),
//	)
type Option func(*Config)

// Config is the recognized configuration envelope (spec §6). All fields have
// validated defaults; the zero Config is not valid on its own — use
// DefaultConfig to obtain a populated instance.
type Config struct {
	// LuminosityThresholdBlack is the luminosity cutoff below which a pixel
	// is classified as black ink during black extraction (§4.C).
	LuminosityThresholdBlack float64

	// ValueThreshold is the cutoff applied to the value channel (min(r,g,b))
	// to produce the HSV-cleanup line mask (§4.B).
	ValueThreshold float64

	// SaturationDeltaSentinel is the max-min RGB delta below which hue is
	// treated as the grayscale sentinel, -1 (§4.A).
	SaturationDeltaSentinel float64

	// MedianPasses is the number of per-color median cleanup passes run
	// after palettization (§4.C).
	MedianPasses int

	// ThinningMaxIterations caps Zhang-Suen thinning iterations (§4.E).
	ThinningMaxIterations int

	// SegmentPenalty is the per-segment cost added by the cut-point
	// optimizer to discourage over-segmentation (§4.G.2).
	SegmentPenalty float64

	// MaxSegmentError is the per-pixel squared-error threshold used to
	// decide whether a pixel range is acceptable as one segment (§4.G.2).
	MaxSegmentError float64

	// MinSegmentLength is the minimum pixel span of any fitted segment
	// (§4.G.2).
	MinSegmentLength int

	// RefinementWindow is the one-dimensional neighborhood radius used
	// during breakpoint positional refinement (§4.G.2).
	RefinementWindow int

	// MaxRefinementIterations caps the breakpoint-refinement sweep count
	// (§4.G.2, "maxIterations").
	MaxRefinementIterations int

	// Pool is the worker pool used for stage-level and pixel-level
	// parallelism (§5). If nil, the pipeline creates and owns a private
	// pool sized to GOMAXPROCS.
	Pool *WorkerPool

	// Accelerator is the optional GPU compute collaborator (§6). If nil,
	// every stage runs on the CPU fallback path.
	Accelerator Accelerator

	// ColorDistance scores nearest-palette assignment during palettization
	// (§4.C, §9). Defaults to SquaredEuclideanDistance; WeightedColorDistance
	// trades a small cost for a perceptually closer quantization.
	ColorDistance ColorDistance
}

// DefaultConfig returns the validated operating point from spec §6, with
// any supplied options applied on top.
func DefaultConfig(opts ...Option) Config {
	cfg := Config{
		LuminosityThresholdBlack: 0.20,
		ValueThreshold:           0.50,
		SaturationDeltaSentinel:  0.10,
		MedianPasses:             3,
		ThinningMaxIterations:    20,
		SegmentPenalty:           1.0,
		MaxSegmentError:          2.0,
		MinSegmentLength:         3,
		RefinementWindow:         5,
		MaxRefinementIterations:  10,
		ColorDistance:            SquaredEuclideanDistance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLuminosityThresholdBlack overrides the black-extraction luminosity
// cutoff.
func WithLuminosityThresholdBlack(v float64) Option {
	return func(c *Config) { c.LuminosityThresholdBlack = v }
}

// WithValueThreshold overrides the HSV-cleanup value-channel threshold.
func WithValueThreshold(v float64) Option {
	return func(c *Config) { c.ValueThreshold = v }
}

// WithSaturationDeltaSentinel overrides the grayscale-hue sentinel cutoff.
func WithSaturationDeltaSentinel(v float64) Option {
	return func(c *Config) { c.SaturationDeltaSentinel = v }
}

// WithMedianPasses overrides the number of per-color median cleanup passes.
func WithMedianPasses(n int) Option {
	return func(c *Config) { c.MedianPasses = n }
}

// WithThinningMaxIterations overrides the Zhang-Suen iteration cap.
func WithThinningMaxIterations(n int) Option {
	return func(c *Config) { c.ThinningMaxIterations = n }
}

// WithSegmentPenalty overrides the cut-point optimizer's per-segment
// penalty.
func WithSegmentPenalty(v float64) Option {
	return func(c *Config) { c.SegmentPenalty = v }
}

// WithMaxSegmentError overrides the per-pixel squared-error acceptance
// threshold.
func WithMaxSegmentError(v float64) Option {
	return func(c *Config) { c.MaxSegmentError = v }
}

// WithMinSegmentLength overrides the minimum fitted-segment pixel span.
func WithMinSegmentLength(n int) Option {
	return func(c *Config) { c.MinSegmentLength = n }
}

// WithRefinementWindow overrides the breakpoint-refinement search radius.
func WithRefinementWindow(n int) Option {
	return func(c *Config) { c.RefinementWindow = n }
}

// WithMaxRefinementIterations overrides the refinement sweep cap.
func WithMaxRefinementIterations(n int) Option {
	return func(c *Config) { c.MaxRefinementIterations = n }
}

// WithWorkerPool supplies a pool the pipeline should use instead of
// creating a private one. The caller retains ownership and must Close it.
func WithWorkerPool(p *WorkerPool) Option {
	return func(c *Config) { c.Pool = p }
}

// WithAccelerator registers the GPU compute collaborator used for the
// pixel-parallel stages (§6). A nil accelerator (the default) runs every
// stage on the CPU.
func WithAccelerator(a Accelerator) Option {
	return func(c *Config) { c.Accelerator = a }
}

// WithColorDistance overrides the nearest-palette color distance metric.
func WithColorDistance(d ColorDistance) Option {
	return func(c *Config) { c.ColorDistance = d }
}
