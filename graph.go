package vecraster

// PixelPoint is an integer pixel coordinate, used throughout the tracer and
// optimizer where sub-pixel precision isn't yet relevant.
type PixelPoint struct{ X, Y int }

func (p PixelPoint) id(width int) int { return p.Y*width + p.X }

// Node is a skeleton pixel whose valid-neighbor count is not exactly 2:
// an endpoint (degree 1), a singleton (degree 0), or a junction (degree
// >= 3) (§3).
type Node struct {
	ID            int
	Point         PixelPoint
	IncidentEdges []int
}

// Edge is an ordered pixel chain between two nodes, or a closed loop with
// no junctions (NodeA == NodeB == -1, OrderedPoints[0] == OrderedPoints[last])
// (§3).
type Edge struct {
	ID            int
	OrderedPoints []PixelPoint
	NodeA, NodeB  int
}

// Graph is the tracer's output: every node keyed by its pixel id, plus the
// ordered sequence of edges (§3).
type Graph struct {
	Nodes map[int]*Node
	Edges []*Edge
}

// diagonalFlanks maps each of the 4 diagonal neighbor offsets to the two
// cardinal offsets that flank it (§4.F neighbor-suppression rule).
var diagonalFlanks = map[[2]int][2][2]int{
	{1, -1}:  {{0, -1}, {1, 0}},  // NE flanked by N, E
	{1, 1}:   {{1, 0}, {0, 1}},   // SE flanked by E, S
	{-1, 1}:  {{0, 1}, {-1, 0}},  // SW flanked by S, W
	{-1, -1}: {{-1, 0}, {0, -1}}, // NW flanked by W, N
}

func isDiagonal(dx, dy int) bool { return dx != 0 && dy != 0 }

// validNeighbors returns the foreground neighbors of (x, y) under the
// tracer's connectivity rule (§4.F): cardinal neighbors count whenever
// foreground; a diagonal neighbor counts only if it is foreground and
// both of its flanking cardinal neighbors are background (so a thick 2x2
// stroke corner is not seen as both a diagonal and a two-step cardinal
// path).
func validNeighbors(skel *BinaryImage, x, y int) []PixelPoint {
	var out []PixelPoint
	for _, off := range neighborOffsets {
		dx, dy := off[0], off[1]
		nx, ny := x+dx, y+dy
		if !skel.at(nx, ny) {
			continue
		}
		if isDiagonal(dx, dy) {
			flanks := diagonalFlanks[[2]int{dx, dy}]
			f1 := skel.at(x+flanks[0][0], y+flanks[0][1])
			f2 := skel.at(x+flanks[1][0], y+flanks[1][1])
			if f1 || f2 {
				continue
			}
		}
		out = append(out, PixelPoint{nx, ny})
	}
	return out
}

// traceGraph walks skeleton producing a Graph of junction/endpoint nodes
// and pixel-chain edges (§4.F). The tracer never fails: pathological
// inputs (empty mask, isolated pixels) produce an empty or degenerate
// graph.
func traceGraph(skel *BinaryImage) *Graph {
	g := &Graph{Nodes: make(map[int]*Node)}
	w, h := skel.Width, skel.Height

	for y := range h {
		for x := range w {
			if !skel.at(x, y) {
				continue
			}
			deg := len(validNeighbors(skel, x, y))
			if deg != 2 {
				p := PixelPoint{x, y}
				id := p.id(w)
				g.Nodes[id] = &Node{ID: id, Point: p}
			}
		}
	}

	visited := newBinaryImage(w, h)
	startConsumed := make(map[[2]int]bool)
	edgeID := 0

	for _, node := range g.Nodes {
		for _, nb := range validNeighbors(skel, node.Point.X, node.Point.Y) {
			key := [2]int{node.ID, nb.id(w)}
			if startConsumed[key] {
				continue
			}
			startConsumed[key] = true

			path := []PixelPoint{node.Point, nb}
			prev := node.Point
			cur := nb

			for {
				curID := cur.id(w)
				if curNode, ok := g.Nodes[curID]; ok {
					startConsumed[[2]int{curNode.ID, prev.id(w)}] = true
					edge := &Edge{ID: edgeID, OrderedPoints: path, NodeA: node.ID, NodeB: curNode.ID}
					g.Edges = append(g.Edges, edge)
					node.IncidentEdges = append(node.IncidentEdges, edge.ID)
					curNode.IncidentEdges = append(curNode.IncidentEdges, edge.ID)
					edgeID++
					break
				}

				visited.set(cur.X, cur.Y, true)
				next, ok := otherValidNeighbor(skel, cur, prev)
				if !ok {
					edge := &Edge{ID: edgeID, OrderedPoints: path, NodeA: node.ID, NodeB: -1}
					g.Edges = append(g.Edges, edge)
					node.IncidentEdges = append(node.IncidentEdges, edge.ID)
					edgeID++
					break
				}
				prev = cur
				cur = next
				path = append(path, cur)
			}
		}
	}

	// Pure loops: foreground pixels never reached from any node, each
	// necessarily degree 2 everywhere along the loop.
	for y := range h {
		for x := range w {
			seed := PixelPoint{x, y}
			if !skel.at(x, y) || visited.at(x, y) {
				continue
			}
			if _, isNode := g.Nodes[seed.id(w)]; isNode {
				continue
			}

			neighbors := validNeighbors(skel, x, y)
			if len(neighbors) == 0 {
				continue
			}
			path := []PixelPoint{seed}
			prev := seed
			cur := neighbors[0]
			path = append(path, cur)
			visited.set(x, y, true)

			for cur != seed {
				visited.set(cur.X, cur.Y, true)
				next, ok := otherValidNeighbor(skel, cur, prev)
				if !ok {
					break
				}
				prev = cur
				cur = next
				path = append(path, cur)
			}

			edge := &Edge{ID: edgeID, OrderedPoints: path, NodeA: -1, NodeB: -1}
			g.Edges = append(g.Edges, edge)
			edgeID++
		}
	}

	return g
}

// otherValidNeighbor returns the valid neighbor of cur that is not prev,
// for walking an edge interior (degree-2 pixels have exactly one such
// neighbor). ok is false if none exists (walk ran into already-consumed
// pixels).
func otherValidNeighbor(skel *BinaryImage, cur, prev PixelPoint) (PixelPoint, bool) {
	for _, nb := range validNeighbors(skel, cur.X, cur.Y) {
		if nb != prev {
			return nb, true
		}
	}
	return PixelPoint{}, false
}
