package vecraster

// buildPath assembles the optimizer's output for one traced edge into a
// Path: Points is the concatenation of each segment's source pixels (with
// the shared pixel at segment boundaries deduplicated), and Closed
// reports whether the first and last segment endpoints coincide to
// within 1e-4 (§4.H).
func buildPath(edge SimplifiedEdge) Path {
	p := Path{Segments: edge.Segments}
	for i, seg := range edge.Segments {
		pts := seg.SourcePixels
		if i > 0 && len(pts) > 0 {
			pts = pts[1:]
		}
		p.Points = append(p.Points, pts...)
	}
	if len(edge.Segments) > 0 {
		first := edge.Segments[0].Start
		last := edge.Segments[len(edge.Segments)-1].End
		p.Closed = first.Distance(last) < 1e-4
	}
	return p
}

// buildVectorizedLayer runs the optimizer and junction-snapping over every
// edge of a color layer's traced graph, producing the paths that make up
// the final output layer (§4.H). width/height describe the source raster;
// colorIndex identifies the layer's palette entry for callers assembling
// a full multi-layer result.
func buildVectorizedLayer(g *Graph, width, height, colorIndex int, cfg Config) VectorizedLayer {
	layer := VectorizedLayer{Width: width, Height: height, ColorIndex: colorIndex}

	for _, edge := range g.Edges {
		closed := edge.NodeA == -1 && edge.NodeB == -1
		simplified := optimizeEdge(edge, cfg, closed)
		if len(simplified.Segments) == 0 {
			continue
		}
		snapJunctions(&simplified, closed)
		layer.Paths = append(layer.Paths, buildPath(simplified))
	}
	return layer
}
