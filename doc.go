// Package vecraster converts a rasterized engineering or architectural
// drawing into vector primitives — straight line segments and circular
// arcs — organized per color layer.
//
// # Overview
//
// The package implements the per-page vectorization core: a pipeline that
// (1) separates ink from background in HSV space, (2) snaps each pixel to a
// user-supplied color palette, (3) thins each color layer to a one-pixel
// skeleton, (4) traces the skeleton into a planar graph of junctions and
// edges, and (5) fits each edge with a minimum-cost sequence of lines and
// arcs, snapping junctions via analytic intersection.
//
// # Quick Start
//
//	import "github.com/gogpu/vecraster"
//
//	raster, err := vecraster.NewRasterRGBA(width, height, pixels)
//	cfg := vecraster.DefaultConfig()
//	layers, diag, err := vecraster.Process(raster, palette, cfg)
//
// # Scope
//
// The core is a pure function from a raster plus palette to vector layers.
// Page rasterization, file persistence, the palette editor UI, and GPU
// kernel compilation are external collaborators; this package only defines
// the interfaces it expects from them (see Accelerator).
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right, Y increases down
//   - A raster pixel at integer (x,y) is centered at (x+0.5, y+0.5);
//     segment coordinates are raw integer pixel positions
//
// # Concurrency
//
// A page is processed by one goroutine tree: independent color layers run
// thinning, tracing, and optimization concurrently on a shared WorkerPool
// (see WithWorkerPool). Stage transitions inside a single layer are
// sequential; the tracer and optimizer are inherently so.
package vecraster
