// Package gpuaccel registers a github.com/gogpu/wgpu-backed
// vecraster.Accelerator.
//
// If GPU initialization fails (no Vulkan/Metal/DX12 adapter available),
// registration is silently skipped and the pipeline runs entirely on the
// CPU.
//
// Usage:
//
//	import _ "github.com/gogpu/vecraster/gpuaccel" // enables GPU acceleration
package gpuaccel

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/vecraster"
	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"
)

// ErrNoGPU is returned by Init when no GPU adapter is available.
var ErrNoGPU = errors.New("gpuaccel: no GPU adapter available")

// thinningPrepassWGSL is the weighted-median prepass kernel (the stencil
// vecraster runs before Zhang-Suen thinning): a 3x3 weighted window with
// corner weight 1, edge weight 2, center weight 1, kept when the weighted
// sum is at least 7. It is compiled during Init to catch shader and driver
// incompatibilities at registration time, not at first use.
const thinningPrepassWGSL = `
@group(0) @binding(0) var<storage, read> mask_in: array<u32>;
@group(0) @binding(1) var<storage, read_write> mask_out: array<u32>;

struct Dims {
    width: u32,
    height: u32,
}

@group(0) @binding(2) var<uniform> dims: Dims;

fn sample(x: i32, y: i32) -> u32 {
    if (x < 0 || y < 0 || x >= i32(dims.width) || y >= i32(dims.height)) {
        return 0u;
    }
    return mask_in[u32(y) * dims.width + u32(x)];
}

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x >= dims.width || gid.y >= dims.height) {
        return;
    }
    let x = i32(gid.x);
    let y = i32(gid.y);

    var sum: u32 = 0u;
    sum += sample(x - 1, y - 1) + sample(x, y - 1) * 2u + sample(x + 1, y - 1);
    sum += sample(x - 1, y) * 2u + sample(x, y) + sample(x + 1, y) * 2u;
    sum += sample(x - 1, y + 1) + sample(x, y + 1) * 2u + sample(x + 1, y + 1);

    let idx = u32(y) * dims.width + u32(x);
    mask_out[idx] = select(0u, 1u, sum >= 7u);
}
`

// Accelerator acquires a GPU instance, adapter, and device via
// github.com/gogpu/wgpu and compiles thinningPrepassWGSL through
// github.com/gogpu/naga during Init, validating the kernel and the device
// connection eagerly rather than on first dispatch.
//
// Compute dispatch — bind group and pipeline creation, storage buffer
// upload, and readback — is not implemented yet, so CanAccelerate reports
// no supported operations and every stage method returns
// vecraster.ErrFallbackToCPU; the CPU implementation always runs.
// Finishing this accelerator means building a compute pipeline from
// prepassSPIRV, the three storage/uniform buffers the kernel above
// expects, and a dispatch-plus-readback path, the same stage
// core.CreateComputePipeline and core.CreateBindGroupLayout already reach
// elsewhere in this dependency's call graph.
type Accelerator struct {
	mu sync.Mutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	prepassSPIRV []uint32

	logger      *slog.Logger
	initialized bool
}

var _ vecraster.Accelerator = (*Accelerator)(nil)

// New creates an uninitialized Accelerator. Register it with
// vecraster.RegisterAccelerator to acquire GPU resources.
func New() *Accelerator {
	return &Accelerator{logger: slog.New(slog.DiscardHandler)}
}

// Name identifies the accelerator for logging.
func (a *Accelerator) Name() string { return "wgpu" }

// SetLogger installs l as this accelerator's logger. Called automatically
// by vecraster.RegisterAccelerator.
func (a *Accelerator) SetLogger(l *slog.Logger) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if l != nil {
		a.logger = l
	}
}

// Init acquires a GPU instance, adapter, device, and queue, then compiles
// the thinning prepass kernel. Returns ErrNoGPU if no adapter is
// available.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}

	a.instance = core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
	})

	adapterID, err := a.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	a.adapter = adapterID

	deviceID, err := core.RequestDevice(adapterID, &types.DeviceDescriptor{
		Label:            "vecraster-gpuaccel-device",
		RequiredFeatures: nil,
		RequiredLimits:   types.DefaultLimits(),
	})
	if err != nil {
		_ = core.AdapterDrop(adapterID)
		return fmt.Errorf("gpuaccel: device creation failed: %w", err)
	}
	a.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = core.DeviceDrop(deviceID)
		_ = core.AdapterDrop(adapterID)
		return fmt.Errorf("gpuaccel: queue retrieval failed: %w", err)
	}
	a.queue = queueID

	spirv, err := compileToSPIRV(thinningPrepassWGSL)
	if err != nil {
		_ = core.DeviceDrop(deviceID)
		_ = core.AdapterDrop(adapterID)
		return fmt.Errorf("gpuaccel: shader compile failed: %w", err)
	}
	a.prepassSPIRV = spirv

	a.initialized = true
	a.logger.Info("gpuaccel: initialized")
	return nil
}

// Close releases the device and adapter acquired by Init.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return
	}
	if !a.device.IsZero() {
		_ = core.DeviceDrop(a.device)
		a.device = core.DeviceID{}
	}
	if !a.adapter.IsZero() {
		_ = core.AdapterDrop(a.adapter)
		a.adapter = core.AdapterID{}
	}
	a.queue = core.QueueID{}
	a.prepassSPIRV = nil
	a.initialized = false
}

// CanAccelerate always reports no supported operations; see the
// Accelerator doc comment for why.
func (a *Accelerator) CanAccelerate(vecraster.AcceleratedOp) bool { return false }

// Palettize always falls back to CPU; dispatch is not implemented.
func (a *Accelerator) Palettize(pixels []uint8, width, height int, palette []vecraster.RGBA, indices []int) error {
	return vecraster.ErrFallbackToCPU
}

// ThinningStep always falls back to CPU; dispatch is not implemented.
func (a *Accelerator) ThinningStep(mask []bool, width, height int, evenPass bool) (bool, error) {
	return false, vecraster.ErrFallbackToCPU
}

// compileToSPIRV compiles wgsl source to a little-endian SPIR-V word
// slice via naga.
func compileToSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	return bytesToSPIRVWords(spirvBytes), nil
}

// bytesToSPIRVWords packs a SPIR-V byte stream into little-endian 32-bit
// words. Trailing bytes that don't fill a full word are dropped.
func bytesToSPIRVWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

// Register creates an Accelerator and registers it as the process-wide
// default, returning an error instead of panicking if no GPU is available.
// The package's init calls it and logs that error as a warning, so callers
// can enable GPU support via blank import without checking an error return.
func Register() error {
	return vecraster.RegisterAccelerator(New())
}

func init() {
	if err := Register(); err != nil {
		vecraster.Logger().Warn("gpuaccel: GPU accelerator not available", "err", err)
	}
}
