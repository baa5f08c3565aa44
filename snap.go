package vecraster

import "math"

// snapMargin is how far (in fit source pixels) each segment's endpoint
// range is shrunk before computing an analytic intersection with its
// neighbor, so the snapped point is interpolated rather than extrapolated
// from noisy endpoint pixels (§4.G.3).
const snapMargin = 2

// snapJunctions replaces each pair of consecutive segment endpoints within
// edge with their analytic intersection, so adjacent segments share an
// exact point instead of two nearby fitted endpoints (§4.G.3). Closed
// edges also snap the last segment to the first. Segments with no valid
// intersection keep their original (unsnapped) shared endpoint.
func snapJunctions(edge *SimplifiedEdge, closed bool) {
	n := len(edge.Segments)
	if n < 2 {
		return
	}

	pairs := n - 1
	if closed {
		pairs = n
	}
	for i := 0; i < pairs; i++ {
		j := (i + 1) % n
		a := &edge.Segments[i]
		b := &edge.Segments[j]

		pt, ok := intersectSegments(*a, *b)
		if !ok {
			continue
		}
		a.End = pt
		b.Start = pt
	}
}

// intersectSegments computes the analytic intersection point shared by
// consecutive segments a and b. Circle participants are never snapped
// (a Circle has no adjacent segment by construction; §3).
func intersectSegments(a, b Segment) (Point, bool) {
	if a.Kind == SegmentCircle || b.Kind == SegmentCircle {
		return Point{}, false
	}

	switch {
	case a.Kind == SegmentLine && b.Kind == SegmentLine:
		return intersectLineLine(a, b)
	case a.Kind == SegmentLine && b.Kind == SegmentArc:
		return intersectLineArc(a, b, true)
	case a.Kind == SegmentArc && b.Kind == SegmentLine:
		return intersectLineArc(b, a, false)
	case a.Kind == SegmentArc && b.Kind == SegmentArc:
		return intersectArcArc(a, b)
	default:
		return Point{}, false
	}
}

// intersectLineLine solves for the intersection of two infinite lines
// through a.LinePoint/a.LineDirection and b.LinePoint/b.LineDirection.
// When the lines are nearly parallel it reports no intersection, leaving
// the shared endpoint unsnapped.
func intersectLineLine(a, b Segment) (Point, bool) {
	cross := a.LineDirection.Cross(b.LineDirection)
	if math.Abs(cross) < 1e-6 {
		return Point{}, false
	}
	diff := b.LinePoint.Sub(a.LinePoint)
	t := diff.Cross(b.LineDirection) / cross
	return a.LinePoint.Add(a.LineDirection.Mul(t)), true
}

// intersectLineArc intersects a line with a circle by substituting the
// line's parametric form into the circle equation and solving the
// resulting quadratic, picking the root nearest the shared endpoint.
// lineFirst indicates whether line is the first (a) or second (b) segment
// in the pair, which decides which endpoint anchors the "nearest root"
// choice.
func intersectLineArc(line, arc Segment, lineFirst bool) (Point, bool) {
	anchor := line.End
	if !lineFirst {
		anchor = line.Start
	}

	d := line.LineDirection
	f := line.LinePoint.Sub(arc.Center)

	aCoef := d.Dot(d)
	bCoef := 2 * f.Dot(d)
	cCoef := f.Dot(f) - arc.Radius*arc.Radius

	roots := SolveQuadratic(aCoef, bCoef, cCoef)
	if len(roots) == 0 {
		return Point{}, false
	}

	best := line.LinePoint.Add(d.Mul(roots[0]))
	bestDist := best.Distance(anchor)
	for _, t := range roots[1:] {
		p := line.LinePoint.Add(d.Mul(t))
		if dist := p.Distance(anchor); dist < bestDist {
			best, bestDist = p, dist
		}
	}
	return best, true
}

// intersectArcArc intersects two circles via the standard radical-line
// construction, picking whichever of the (up to two) intersection points
// lies nearest the segments' shared (unsnapped) endpoint.
func intersectArcArc(a, b Segment) (Point, bool) {
	d := a.Center.Distance(b.Center)
	if d < 1e-9 || d > a.Radius+b.Radius || d < math.Abs(a.Radius-b.Radius) {
		return Point{}, false
	}

	aDist := (a.Radius*a.Radius - b.Radius*b.Radius + d*d) / (2 * d)
	hSq := a.Radius*a.Radius - aDist*aDist
	if hSq < 0 {
		hSq = 0
	}
	h := math.Sqrt(hSq)

	dir := b.Center.Sub(a.Center).Div(d)
	mid := a.Center.Add(dir.Mul(aDist))
	perp := Point{X: -dir.Y, Y: dir.X}

	p1 := mid.Add(perp.Mul(h))
	p2 := mid.Sub(perp.Mul(h))

	anchor := a.End
	if p2.Distance(anchor) < p1.Distance(anchor) {
		return p2, true
	}
	return p1, true
}
