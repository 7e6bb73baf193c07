package starfield

import (
	"math"
	"sort"
)

const (
	// CellSize is the spatial hash bucket width in field units.
	CellSize = 200.0

	// Margin expands the viewport on every side before culling so dots do not
	// pop in at the edges mid-scroll.
	Margin = 1000.0
)

// Viewport is the visible rectangle: scroll offset plus container dimensions.
type Viewport struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type cellKey struct {
	x, y int
}

// Grid is a spatial hash over a dot field. Build once per generation, then
// query per scroll event; queries touch only buckets intersecting the
// expanded viewport instead of scanning the whole field.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]int
	dots     []Dot
}

// NewGrid creates an empty grid. cellSize <= 0 falls back to CellSize.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = CellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// Build indexes the dot slice, replacing any previous index. The grid keeps
// the slice; callers must treat it as immutable afterwards.
func (g *Grid) Build(dots []Dot) {
	g.dots = dots
	g.cells = make(map[cellKey][]int, len(dots)/4+1)
	for i, d := range dots {
		key := g.keyFor(d.X, d.Y)
		g.cells[key] = append(g.cells[key], i)
	}
}

// Len reports how many dots are indexed.
func (g *Grid) Len() int {
	return len(g.dots)
}

// Visible returns the dots inside the viewport expanded by Margin. Unknown
// container dimensions (zero or negative) yield an empty result: the caller
// has not laid out yet and there is nothing sensible to cull against.
func (g *Grid) Visible(vp Viewport) []Dot {
	if vp.Width <= 0 || vp.Height <= 0 || len(g.dots) == 0 {
		return nil
	}

	left := vp.Left - Margin
	right := vp.Left + vp.Width + Margin
	top := vp.Top - Margin
	bottom := vp.Top + vp.Height + Margin

	minCell := g.keyFor(left, top)
	maxCell := g.keyFor(right, bottom)

	var indices []int
	for cx := minCell.x; cx <= maxCell.x; cx++ {
		for cy := minCell.y; cy <= maxCell.y; cy++ {
			for _, i := range g.cells[cellKey{cx, cy}] {
				d := g.dots[i]
				if d.X >= left && d.X <= right && d.Y >= top && d.Y <= bottom {
					indices = append(indices, i)
				}
			}
		}
	}

	// bucket iteration order is map order; keep output stable
	sort.Ints(indices)

	visible := make([]Dot, len(indices))
	for n, i := range indices {
		visible[n] = g.dots[i]
	}
	return visible
}

// visibleScan is the reference linear filter over the whole field. Kept for
// equivalence testing against the bucketed query.
func (g *Grid) visibleScan(vp Viewport) []Dot {
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}

	left := vp.Left - Margin
	right := vp.Left + vp.Width + Margin
	top := vp.Top - Margin
	bottom := vp.Top + vp.Height + Margin

	var visible []Dot
	for _, d := range g.dots {
		if d.X >= left && d.X <= right && d.Y >= top && d.Y <= bottom {
			visible = append(visible, d)
		}
	}
	return visible
}

func (g *Grid) keyFor(x, y float64) cellKey {
	return cellKey{
		x: int(math.Floor(x / g.cellSize)),
		y: int(math.Floor(y / g.cellSize)),
	}
}
