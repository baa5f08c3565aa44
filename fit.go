package vecraster

import "math"

// rangeFit is the best primitive fit for one contiguous pixel range
// (§4.G.1), before junction snapping.
type rangeFit struct {
	segment  Segment
	sumSqErr float64
	maxSqErr float64
}

// fitRange fits the pixel range pts with the best of a line (total-least-
// squares) and, for 3+ pixels, an arc (algebraic Pratt-style circle fit),
// choosing the smaller-error model subject to the near-straight rejection
// rule (§4.G.1).
func fitRange(pts []PixelPoint) rangeFit {
	if len(pts) == 0 {
		return rangeFit{}
	}
	if len(pts) == 1 {
		p := pixelToPoint(pts[0])
		return rangeFit{segment: Segment{Kind: SegmentLine, Start: p, End: p, LinePoint: p, SourcePixels: pts}}
	}

	line, lineErr, lineMaxErr, lineOK := fitLine(pts)
	if len(pts) < 3 {
		if !lineOK {
			return chordFallback(pts)
		}
		return rangeFit{segment: line, sumSqErr: lineErr, maxSqErr: lineMaxErr}
	}

	arc, arcErr, arcMaxErr, arcOK := fitArc(pts)
	if !lineOK && !arcOK {
		return chordFallback(pts)
	}
	if !arcOK || (lineOK && lineErr <= arcErr) {
		return rangeFit{segment: line, sumSqErr: lineErr, maxSqErr: lineMaxErr}
	}
	if rejectArcAsNearlyStraight(pts[0], pts[len(pts)-1], arc) {
		if lineOK {
			return rangeFit{segment: line, sumSqErr: lineErr, maxSqErr: lineMaxErr}
		}
		return chordFallback(pts)
	}
	return rangeFit{segment: arc, sumSqErr: arcErr, maxSqErr: arcMaxErr}
}

func pixelToPoint(p PixelPoint) Point { return Point{X: float64(p.X), Y: float64(p.Y)} }

// finalizeRangeFit recomputes a segment's boundary Start/End against the
// full [start,end] pixel range after its geometry was regressed on a
// junction-margin-shrunk sub-range (§4.G.3): the regression avoids noise
// from the neighboring segment's pixels near the junction, but the
// segment's reported pixels and endpoints still span the whole range so
// the assembled path has no gaps.
func finalizeRangeFit(pts []PixelPoint, start, end int, fit rangeFit) Segment {
	seg := fit.segment
	full := pts[start : end+1]
	seg.SourcePixels = full
	startPt := pixelToPoint(full[0])
	endPt := pixelToPoint(full[len(full)-1])

	switch seg.Kind {
	case SegmentLine:
		dir := seg.LineDirection
		centroid := seg.LinePoint
		seg.Start = centroid.Add(dir.Mul(startPt.Sub(centroid).Dot(dir)))
		seg.End = centroid.Add(dir.Mul(endPt.Sub(centroid).Dot(dir)))
	case SegmentArc:
		seg.Start = startPt
		seg.End = endPt
		seg.StartAngle = math.Atan2(startPt.Y-seg.Center.Y, startPt.X-seg.Center.X)
		endAngle := math.Atan2(endPt.Y-seg.Center.Y, endPt.X-seg.Center.X)
		seg.EndAngle = seg.StartAngle + normalizeSweep(endAngle-seg.StartAngle, seg.Clockwise)
	}
	return seg
}

// fullSweepTolerance is how close an arc's sweep must be to a full 2*pi
// turn for a closed single-range edge to be reported as a Circle instead
// of an Arc (§4.G.4).
const fullSweepTolerance = 0.15

// asCircle converts fit's segment into a Circle when it is an arc with
// near-2*pi sweep and error within cfg's segment threshold (§4.G.4: "a
// closed-loop edge whose single-range arc fit succeeds with small error
// and full 2*pi sweep"). ok is false otherwise, and the caller keeps
// fit's original segment.
func asCircle(fit rangeFit, cfg Config) (Segment, bool) {
	seg := fit.segment
	if seg.Kind != SegmentArc {
		return Segment{}, false
	}
	sweep := math.Abs(seg.EndAngle - seg.StartAngle)
	if math.Abs(sweep-2*math.Pi) > fullSweepTolerance {
		return Segment{}, false
	}
	if fit.maxSqErr > cfg.MaxSegmentError {
		return Segment{}, false
	}
	return Segment{Kind: SegmentCircle, Center: seg.Center, Radius: seg.Radius, SourcePixels: seg.SourcePixels}, true
}

// chordFallback emits a line between the range endpoints when both fits
// are degenerate (§4.G.4: "NoFitPossible" is internal-only and never
// surfaces).
func chordFallback(pts []PixelPoint) rangeFit {
	start := pixelToPoint(pts[0])
	end := pixelToPoint(pts[len(pts)-1])
	dir := end.Sub(start).Normalize()
	return rangeFit{
		segment: Segment{
			Kind: SegmentLine, Start: start, End: end,
			LinePoint: start, LineDirection: dir, SourcePixels: pts,
		},
	}
}

// fitLine fits pts via total-least-squares (principal component) line
// fitting: the centroid and covariance matrix's larger eigenvector give
// the line direction; residual is perpendicular distance (§4.G.1).
func fitLine(pts []PixelPoint) (seg Segment, sumSqErr, maxSqErr float64, ok bool) {
	n := float64(len(pts))
	var cx, cy float64
	for _, p := range pts {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= n
	cy /= n

	var sxx, sxy, syy float64
	for _, p := range pts {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	// Eigenvector of the 2x2 covariance matrix [[sxx,sxy],[sxy,syy]] for
	// the larger eigenvalue.
	trace := sxx + syy
	det := sxx*syy - sxy*sxy
	disc := trace*trace/4 - det
	if disc < 0 {
		disc = 0
	}
	lambda1 := trace/2 + math.Sqrt(disc)

	var dir Point
	if sxy != 0 {
		dir = Point{X: sxy, Y: lambda1 - sxx}
	} else if sxx >= syy {
		dir = Point{X: 1, Y: 0}
	} else {
		dir = Point{X: 0, Y: 1}
	}
	dir = dir.Normalize()
	if dir.LengthSquared() == 0 {
		return Segment{}, 0, 0, false
	}

	centroid := Point{X: cx, Y: cy}
	normal := Point{X: -dir.Y, Y: dir.X}

	start := pixelToPoint(pts[0])
	end := pixelToPoint(pts[len(pts)-1])
	// Project endpoints onto the fitted line so Start/End lie exactly on it.
	startProj := centroid.Add(dir.Mul(start.Sub(centroid).Dot(dir)))
	endProj := centroid.Add(dir.Mul(end.Sub(centroid).Dot(dir)))

	for _, p := range pts {
		d := pixelToPoint(p).Sub(centroid).Dot(normal)
		sq := d * d
		sumSqErr += sq
		if sq > maxSqErr {
			maxSqErr = sq
		}
	}

	return Segment{
		Kind: SegmentLine, Start: startProj, End: endProj,
		LinePoint: centroid, LineDirection: dir, SourcePixels: pts,
	}, sumSqErr, maxSqErr, true
}

// fitArc fits pts via an algebraic (Pratt-style) circle fit: solve the
// 3x3 linear system for center and radius-squared, then derive start/end
// angles and orientation from the sampled pixel ordering (§4.G.1).
func fitArc(pts []PixelPoint) (seg Segment, sumSqErr, maxSqErr float64, ok bool) {
	n := float64(len(pts))
	var mx, my float64
	for _, p := range pts {
		mx += float64(p.X)
		my += float64(p.Y)
	}
	mx /= n
	my /= n

	// Normal equations for x^2+y^2 + D*x + E*y + F = 0, centered at (mx,my)
	// for numerical stability.
	var suu, suv, svv, suuu, svvv, suvv, svuu float64
	for _, p := range pts {
		u := float64(p.X) - mx
		v := float64(p.Y) - my
		suu += u * u
		suv += u * v
		svv += v * v
		suuu += u * u * u
		svvv += v * v * v
		suvv += u * v * v
		svuu += v * u * u
	}

	det := suu*svv - suv*suv
	if math.Abs(det) < 1e-9 {
		return Segment{}, 0, 0, false
	}

	rhsU := 0.5 * (suuu + suvv)
	rhsV := 0.5 * (svvv + svuu)

	uc := (rhsU*svv - rhsV*suv) / det
	vc := (suu*rhsV - suv*rhsU) / det

	cx := uc + mx
	cy := vc + my
	radiusSq := uc*uc + vc*vc + (suu+svv)/n

	if radiusSq <= 0 {
		return Segment{}, 0, 0, false
	}
	radius := math.Sqrt(radiusSq)
	center := Point{X: cx, Y: cy}

	for _, p := range pts {
		d := pixelToPoint(p).Sub(center).Length() - radius
		sq := d * d
		sumSqErr += sq
		if sq > maxSqErr {
			maxSqErr = sq
		}
	}

	start := pixelToPoint(pts[0])
	end := pixelToPoint(pts[len(pts)-1])
	mid := pixelToPoint(pts[len(pts)/2])

	startAngle := math.Atan2(start.Y-cy, start.X-cx)
	endAngle := math.Atan2(end.Y-cy, end.X-cx)

	clockwise := (mid.Sub(start)).Cross(end.Sub(mid)) < 0
	sweep := normalizeSweep(endAngle-startAngle, clockwise)

	// Ensure mid lies on the chosen short arc; otherwise flip to the long
	// arc by a +-2*pi adjustment (§4.G.1).
	midAngle := math.Atan2(mid.Y-cy, mid.X-cx)
	if !angleOnSweep(startAngle, sweep, midAngle) {
		if sweep > 0 {
			sweep -= 2 * math.Pi
		} else {
			sweep += 2 * math.Pi
		}
	}
	endAngle = startAngle + sweep

	return Segment{
		Kind: SegmentArc, Start: start, End: end, Center: center, Radius: radius,
		StartAngle: startAngle, EndAngle: endAngle, Clockwise: clockwise, SourcePixels: pts,
	}, sumSqErr, maxSqErr, true
}

// normalizeSweep returns endAngle-startAngle wrapped into (-2*pi, 2*pi)
// with sign matching clockwise (positive sweep is counter-clockwise in a
// y-down system per §3).
func normalizeSweep(raw float64, clockwise bool) float64 {
	sweep := math.Mod(raw, 2*math.Pi)
	wantPositive := !clockwise
	if wantPositive && sweep < 0 {
		sweep += 2 * math.Pi
	}
	if !wantPositive && sweep > 0 {
		sweep -= 2 * math.Pi
	}
	return sweep
}

// angleOnSweep reports whether angle lies within [start, start+sweep]
// (direction determined by sweep's sign).
func angleOnSweep(start, sweep, angle float64) bool {
	diff := math.Mod(angle-start, 2*math.Pi)
	if sweep >= 0 {
		if diff < 0 {
			diff += 2 * math.Pi
		}
		return diff <= sweep+1e-9
	}
	if diff > 0 {
		diff -= 2 * math.Pi
	}
	return diff >= sweep-1e-9
}

// rejectArcAsNearlyStraight implements the §4.G.1 exception: an arc with
// sweep < 1 rad and radius > 1000*chordLength should not be chosen over a
// nearly-straight line fit.
func rejectArcAsNearlyStraight(start, end PixelPoint, arc Segment) bool {
	chordLength := pixelToPoint(start).Distance(pixelToPoint(end))
	sweep := math.Abs(arc.EndAngle - arc.StartAngle)
	return sweep < 1 && arc.Radius > 1000*chordLength
}
