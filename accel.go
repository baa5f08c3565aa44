package vecraster

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrFallbackToCPU indicates the accelerator cannot handle this operation.
// The caller should transparently fall back to the CPU implementation of
// the same stage.
var ErrFallbackToCPU = errors.New("vecraster: falling back to CPU")

// AcceleratedOp identifies a pixel-parallel pipeline stage that an
// Accelerator may offer a GPU-backed implementation for (§6).
type AcceleratedOp uint32

const (
	// OpChannelDecompose covers the RGB-to-HSV-like channel split and the
	// value-threshold cleanup (§4.A, §4.B).
	OpChannelDecompose AcceleratedOp = 1 << iota

	// OpPalettize covers nearest-color classification of every pixel
	// against the user-supplied palette (§4.C).
	OpPalettize

	// OpThinning covers one Zhang-Suen thinning sub-iteration over a
	// binary mask (§4.E).
	OpThinning
)

// Accelerator is the optional GPU compute collaborator for the
// pixel-parallel pipeline stages. A pipeline without a registered or
// configured Accelerator runs every stage on the CPU; an Accelerator only
// ever provides a faster path for the operations it reports supporting via
// CanAccelerate.
//
// Implementations should live in a separate backend package and register
// themselves via RegisterAccelerator, typically from an init function
// behind a blank import:
//
//	import _ "github.com/gogpu/vecraster/gpuaccel" // enables GPU acceleration
//
// Every method must be safe to return ErrFallbackToCPU at any time; the
// pipeline always has a CPU implementation of the same stage ready to run.
type Accelerator interface {
	// Name identifies the accelerator for logging (e.g. "wgpu").
	Name() string

	// Init acquires GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether this accelerator offers a GPU path for
	// op. The pipeline consults this before attempting the operation so it
	// can skip the GPU call entirely for unsupported stages.
	CanAccelerate(op AcceleratedOp) bool

	// Palettize classifies every pixel of an interleaved RGBA8 buffer
	// against palette by nearest Euclidean color distance, writing one
	// palette index per pixel into indices (len(indices) == width*height).
	// Returns ErrFallbackToCPU if the palette or buffer size is
	// unsupported by this accelerator.
	Palettize(pixels []uint8, width, height int, palette []RGBA, indices []int) error

	// ThinningStep applies one Zhang-Suen sub-iteration (the odd or even
	// pass) to mask in place, reporting whether any pixel was removed.
	// Returns ErrFallbackToCPU if the mask dimensions are unsupported.
	ThinningStep(mask []bool, width, height int, evenPass bool) (changed bool, err error)
}

// loggerSetter is implemented by accelerators that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator installs the process-wide default accelerator used by
// pipelines that don't supply their own via WithAccelerator. Only one
// accelerator can be registered at a time; a later call replaces the
// earlier one and closes it after the new one is installed.
//
// Init is called during registration; if it fails, the previous accelerator
// (if any) remains registered and the error is returned.
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("vecraster: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if ls, ok := a.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
	if old != nil {
		old.Close()
	}
	return nil
}

// DefaultAccelerator returns the process-wide registered accelerator, or
// nil if none has been registered.
func DefaultAccelerator() Accelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// CloseDefaultAccelerator releases the process-wide accelerator registered
// via RegisterAccelerator, if any. Safe to call when none is registered.
func CloseDefaultAccelerator() {
	accelMu.Lock()
	a := accel
	accel = nil
	accelMu.Unlock()
	if a != nil {
		a.Close()
	}
}
