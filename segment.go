package vecraster

// SegmentKind discriminates the Segment variants (§3).
type SegmentKind int

const (
	SegmentLine SegmentKind = iota
	SegmentArc
	SegmentCircle
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "line"
	case SegmentArc:
		return "arc"
	case SegmentCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Segment is a typed geometric primitive fit from a range of an edge's
// pixel chain (§3). Fields not meaningful to Kind are zero.
//
//   - SegmentLine:   Start, End, LinePoint, LineDirection (unit vector)
//   - SegmentArc:    Start, End, Center, Radius, StartAngle, EndAngle, Clockwise
//   - SegmentCircle: Center, Radius (a full 2*pi closed arc)
type Segment struct {
	Kind SegmentKind

	Start, End Point

	// Line fields.
	LinePoint     Point
	LineDirection Point

	// Arc / Circle fields.
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Clockwise  bool

	// SourcePixels references the skeleton pixels this segment was fit
	// from, for rendering and diagnostics only (§3).
	SourcePixels []PixelPoint
}

// SimplifiedEdge is the optimizer's output for one graph edge (§3):
// consecutive segments share an endpoint after junction-snapping.
type SimplifiedEdge struct {
	Original *Edge
	Segments []Segment
}

// Path is one traced-and-fit contour within a VectorizedLayer (§4.H).
type Path struct {
	// Points is the concatenation of each segment's original skeleton
	// pixels.
	Points []PixelPoint

	// Closed is true iff the first and last segment endpoints coincide to
	// within 1e-4.
	Closed bool

	Segments []Segment
}

// VectorizedLayer is the per-color output of the pipeline (§3): one per
// non-background, non-mapped-to-bg palette entry, plus one for the
// extracted black channel.
type VectorizedLayer struct {
	Width, Height int
	ColorIndex    int
	Paths         []Path
}
