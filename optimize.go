package vecraster

import "github.com/gogpu/vecraster/internal/cache"

// breakRange is the cache key for a memoized fitRange call (§4.G.2:
// "Fits for evaluated ranges are memoized in a cache keyed by (start,
// end)").
type breakRange struct{ start, end int }

// fitCache memoizes fitRange across the optimizer's three phases. A single
// instance is scoped to one edge's optimization run.
type fitCache struct {
	pts   []PixelPoint
	cache *cache.Cache[breakRange, rangeFit]
}

func newFitCache(pts []PixelPoint) *fitCache {
	return &fitCache{pts: pts, cache: cache.New[breakRange, rangeFit](256)}
}

func (c *fitCache) fit(start, end int) rangeFit {
	key := breakRange{start, end}
	return c.cache.GetOrCreate(key, func() rangeFit {
		return fitRange(c.pts[start : end+1])
	})
}

// segmentCost is the optimizer's objective for one candidate range: a
// per-pixel error term plus the fixed per-segment penalty (§4.G.2).
func segmentCost(fit rangeFit, penalty float64) float64 {
	return fit.sumSqErr + penalty
}

// optimizeEdge runs the three-phase cut-point optimizer over one edge's
// ordered pixel chain, producing a SimplifiedEdge whose segments share
// endpoints (junction-snapping happens separately, in snap.go) (§4.G.2).
// closed marks a pure-loop edge (no junction nodes), which is eligible for
// the single-range Circle variant of §4.G.4.
func optimizeEdge(edge *Edge, cfg Config, closed bool) SimplifiedEdge {
	pts := edge.OrderedPoints
	if len(pts) == 0 {
		return SimplifiedEdge{Original: edge}
	}
	if len(pts) == 1 {
		fc := newFitCache(pts)
		fit := fc.fit(0, 0)
		return SimplifiedEdge{Original: edge, Segments: []Segment{fit.segment}}
	}

	fc := newFitCache(pts)
	breaks := splitRecursive(fc, 0, len(pts)-1, cfg)
	breaks = refineBreakpoints(fc, breaks, cfg)
	breaks = mergeBreakpoints(fc, breaks, cfg)
	breaks = refineBreakpoints(fc, breaks, cfg)

	if closed && len(breaks) == 2 {
		if circle, ok := asCircle(fc.fit(breaks[0], breaks[1]), cfg); ok {
			return SimplifiedEdge{Original: edge, Segments: []Segment{circle}}
		}
	}

	// Final segment fits use junction-margin-shrunk ranges (§4.G.3): the
	// edge's true endpoints (the first segment's start, the last segment's
	// end) are kept as-is, but every interior breakpoint shrinks both of
	// its adjacent ranges by snapMargin pixels before the regression, so
	// the fit isn't pulled by the other segment's pixels near the corner.
	segments := make([]Segment, 0, len(breaks)-1)
	lastSegment := len(breaks) - 2
	for i := 0; i < len(breaks)-1; i++ {
		start, end := breaks[i], breaks[i+1]
		fitStart, fitEnd := start, end
		if i > 0 {
			fitStart = start + snapMargin
		}
		if i < lastSegment {
			fitEnd = end - snapMargin
		}
		if fitEnd-fitStart < 1 {
			fitStart, fitEnd = start, end
		}
		fit := fc.fit(fitStart, fitEnd)
		segments = append(segments, finalizeRangeFit(pts, start, end, fit))
	}
	return SimplifiedEdge{Original: edge, Segments: segments}
}

// splitRecursive is phase 1: Douglas-Peucker-style recursive breakpoint
// discovery. A range is accepted as a single segment if its fit's maximum
// squared error is within MaxSegmentError; otherwise it is split at the
// pixel of maximum residual, provided both halves meet MinSegmentLength
// (§4.G.2).
func splitRecursive(fc *fitCache, start, end int, cfg Config) []int {
	fit := fc.fit(start, end)
	if fit.maxSqErr <= cfg.MaxSegmentError || end-start+1 <= cfg.MinSegmentLength {
		return []int{start, end}
	}

	splitAt := worstPixel(fc.pts[start:end+1], fit.segment)
	splitAt += start
	if splitAt <= start || splitAt >= end ||
		splitAt-start < cfg.MinSegmentLength || end-splitAt < cfg.MinSegmentLength {
		return []int{start, end}
	}

	left := splitRecursive(fc, start, splitAt, cfg)
	right := splitRecursive(fc, splitAt, end, cfg)
	return append(left[:len(left)-1], right...)
}

// worstPixel returns the index (relative to pts) of the pixel with the
// largest residual against seg.
func worstPixel(pts []PixelPoint, seg Segment) int {
	worst := 0
	worstSqErr := -1.0
	for i, p := range pts {
		var residual float64
		if seg.Kind == SegmentArc || seg.Kind == SegmentCircle {
			residual = pixelToPoint(p).Distance(seg.Center) - seg.Radius
		} else {
			normal := Point{X: -seg.LineDirection.Y, Y: seg.LineDirection.X}
			residual = pixelToPoint(p).Sub(seg.LinePoint).Dot(normal)
		}
		sq := residual * residual
		if sq > worstSqErr {
			worstSqErr = sq
			worst = i
		}
	}
	return worst
}

// refineBreakpoints is phase 2: each interior breakpoint is nudged within
// +-RefinementWindow pixels along the chain to the position minimizing the
// combined cost of its two adjacent segments (§4.G.2).
func refineBreakpoints(fc *fitCache, breaks []int, cfg Config) []int {
	if len(breaks) <= 2 {
		return breaks
	}
	out := append([]int(nil), breaks...)

	for iter := 0; iter < cfg.MaxRefinementIterations; iter++ {
		moved := false
		for i := 1; i < len(out)-1; i++ {
			prevBreak, curBreak, nextBreak := out[i-1], out[i], out[i+1]
			bestPos := curBreak
			bestCost := segmentCost(fc.fit(prevBreak, curBreak), cfg.SegmentPenalty) +
				segmentCost(fc.fit(curBreak, nextBreak), cfg.SegmentPenalty)

			lo := curBreak - cfg.RefinementWindow
			if lo < prevBreak+cfg.MinSegmentLength {
				lo = prevBreak + cfg.MinSegmentLength
			}
			hi := curBreak + cfg.RefinementWindow
			if hi > nextBreak-cfg.MinSegmentLength {
				hi = nextBreak - cfg.MinSegmentLength
			}
			for pos := lo; pos <= hi; pos++ {
				if pos == curBreak || pos <= prevBreak || pos >= nextBreak {
					continue
				}
				cost := segmentCost(fc.fit(prevBreak, pos), cfg.SegmentPenalty) +
					segmentCost(fc.fit(pos, nextBreak), cfg.SegmentPenalty)
				if cost < bestCost {
					bestCost = cost
					bestPos = pos
				}
			}
			if bestPos != curBreak {
				out[i] = bestPos
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return out
}

// mergeBreakpoints is phase 3: an interior breakpoint is removed whenever
// fitting its two neighboring ranges as one costs no more than keeping the
// split and the merged fit's max squared error stays within
// cfg.MaxSegmentError, eliminating over-segmentation left by phase 1's local splitting
// decisions (§4.G.2).
func mergeBreakpoints(fc *fitCache, breaks []int, cfg Config) []int {
	if len(breaks) <= 2 {
		return breaks
	}
	out := append([]int(nil), breaks...)

	changed := true
	for changed {
		changed = false
		for i := 1; i < len(out)-1; i++ {
			prevBreak, curBreak, nextBreak := out[i-1], out[i], out[i+1]
			splitCost := segmentCost(fc.fit(prevBreak, curBreak), cfg.SegmentPenalty) +
				segmentCost(fc.fit(curBreak, nextBreak), cfg.SegmentPenalty)
			mergedFit := fc.fit(prevBreak, nextBreak)
			mergedCost := segmentCost(mergedFit, cfg.SegmentPenalty)

			if mergedCost <= splitCost && mergedFit.maxSqErr <= cfg.MaxSegmentError {
				out = append(out[:i], out[i+1:]...)
				changed = true
				break
			}
		}
	}
	return out
}
