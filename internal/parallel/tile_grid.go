package parallel

// TileSize is the edge length of a square work tile in pixels. 64x64
// keeps a tile's working set (channel planes, binary masks) well inside
// L1 cache during the per-pixel kernels that dominate the pipeline's
// running time.
const TileSize = 64

// Tile is a rectangular region of a raster, in canvas pixel coordinates.
// Edge tiles are clipped to the raster bounds and may be smaller than
// TileSize on their right and bottom edges.
type Tile struct {
	X, Y, Width, Height int
}

// TileGrid partitions a width x height raster into a row-major sequence
// of Tiles for coarse-grained parallel dispatch. Unlike a per-row split,
// tiling keeps each worker's memory accesses confined to a small
// contiguous region of every plane it touches, which matters once a
// stage reads more than one channel per pixel (value, saturation, hue).
type TileGrid struct {
	tiles          []Tile
	tilesX, tilesY int
	width, height  int
}

// NewTileGrid computes the tile partition for a width x height raster.
// A non-positive width or height yields an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	if width <= 0 || height <= 0 {
		return &TileGrid{}
	}

	tilesX := (width + TileSize - 1) / TileSize
	tilesY := (height + TileSize - 1) / TileSize

	g := &TileGrid{
		tiles:  make([]Tile, 0, tilesX*tilesY),
		tilesX: tilesX,
		tilesY: tilesY,
		width:  width,
		height: height,
	}
	for ty := range tilesY {
		for tx := range tilesX {
			w := TileSize
			if (tx+1)*TileSize > width {
				w = width - tx*TileSize
			}
			h := TileSize
			if (ty+1)*TileSize > height {
				h = height - ty*TileSize
			}
			g.tiles = append(g.tiles, Tile{X: tx * TileSize, Y: ty * TileSize, Width: w, Height: h})
		}
	}
	return g
}

// Tiles returns the grid's tiles in row-major order. The returned slice
// must not be modified.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// TileCount returns the number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// Dims returns the tile grid's column and row counts.
func (g *TileGrid) Dims() (tilesX, tilesY int) {
	return g.tilesX, g.tilesY
}

// ForEachPixel calls fn once for every pixel coordinate within t, in
// row-major order. It is a convenience for stages whose per-tile work is
// itself a per-pixel loop.
func (t Tile) ForEachPixel(fn func(x, y int)) {
	for y := t.Y; y < t.Y+t.Height; y++ {
		for x := t.X; x < t.X+t.Width; x++ {
			fn(x, y)
		}
	}
}

// ParallelizeTiles submits one work item per tile of a width x height
// grid to pool, blocking until every tile has been processed by fn. This
// is the tile-grid analogue of a per-row ExecuteAll dispatch, used by
// stages whose working set spans multiple same-shaped planes.
func ParallelizeTiles(pool *WorkerPool, width, height int, fn func(t Tile)) {
	grid := NewTileGrid(width, height)
	tiles := grid.Tiles()
	work := make([]func(), len(tiles))
	for i, t := range tiles {
		t := t
		work[i] = func() { fn(t) }
	}
	pool.ExecuteAll(work)
}
