package vecraster

import (
	"errors"
	"fmt"
)

// Sentinel errors for the InvalidInput and ResourceExhausted error classes
// (§7). These are checked once at pipeline entry and fail the page without
// retry; the pipeline is deterministic, so a failing input always fails the
// same way.
var (
	// ErrInvalidDimensions is returned when a RasterRGBA's width or height
	// is not positive.
	ErrInvalidDimensions = errors.New("vecraster: width and height must be positive")

	// ErrEmptyPalette is returned when Process is called with zero colors.
	ErrEmptyPalette = errors.New("vecraster: palette must not be empty")

	// ErrPaletteTooLarge is returned when the palette exceeds the
	// supported size of 16 colors.
	ErrPaletteTooLarge = errors.New("vecraster: palette must not exceed 16 colors")

	// ErrPixelBufferSizeMismatch is returned when a RasterRGBA's pixel
	// buffer length doesn't match width*height*4.
	ErrPixelBufferSizeMismatch = errors.New("vecraster: pixel buffer size does not match width*height*4")

	// ErrResourceExhausted is returned when a per-color mask would exceed
	// the pipeline's 32-bit pixel-indexing limit. An Accelerator error is
	// not reported this way: the stage runs on the CPU instead.
	ErrResourceExhausted = errors.New("vecraster: resource exhausted")
)

// Stage identifies which pipeline stage produced a StageError (§4).
type Stage string

const (
	StageChannelDecompose Stage = "channel_decompose"
	StageHSVCleanup       Stage = "hsv_cleanup"
	StagePalettize        Stage = "palettize"
	StageBlackExtract     Stage = "black_extract"
	StageThinning         Stage = "thinning"
	StageTracing          Stage = "tracing"
	StageSegmentation     Stage = "segmentation"
)

// StageError is the single diagnostic record a failed page yields (§7):
// { stage, reason, detail }. A successful page never returns one; warnings
// (e.g. non-converged thinning) are reported separately via Diagnostics,
// not as an error.
type StageError struct {
	Stage  Stage
	Reason error
	Detail string
}

func (e *StageError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("vecraster: %s: %v", e.Stage, e.Reason)
	}
	return fmt.Sprintf("vecraster: %s: %v (%s)", e.Stage, e.Reason, e.Detail)
}

func (e *StageError) Unwrap() error { return e.Reason }

// newStageError wraps reason with the stage that raised it and an optional
// human-readable detail (e.g. the limiting dimension for ErrResourceExhausted).
func newStageError(stage Stage, reason error, detail string) *StageError {
	return &StageError{Stage: stage, Reason: reason, Detail: detail}
}
