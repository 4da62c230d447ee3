package game

import "sync"

// Cell addresses one board square.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Index flattens the cell to row*width+col, the addressing the transport
// layer uses.
func (c Cell) Index(width int) int { return c.Row*width + c.Col }

// CellFromIndex is the inverse of Index.
func CellFromIndex(idx, width int) Cell {
	return Cell{Row: idx / width, Col: idx % width}
}

// edge is the outgoing connection of a cell on a color's path. Most cells
// have a single successor; the decision cell additionally offers a detour
// into enemy territory.
type edge struct {
	next      Cell
	branch    bool
	territory Cell // only meaningful when branch is true
}

// Graph is the fixed movement path of one color on a board of the given
// width. Movement is strictly forward; no predecessor edges exist.
type Graph struct {
	color Color
	width int
	edges map[Cell]edge
}

type graphKey struct {
	color Color
	width int
}

var (
	graphMu    sync.Mutex
	graphCache = map[graphKey]*Graph{}
)

// BuildGraph returns the movement graph for a color and board width.
// The result is deterministic and cached.
func BuildGraph(c Color, width int) *Graph {
	key := graphKey{c, width}
	graphMu.Lock()
	defer graphMu.Unlock()
	if g, ok := graphCache[key]; ok {
		return g
	}
	g := buildGraph(c, width)
	graphCache[key] = g
	return g
}

func buildGraph(c Color, width int) *Graph {
	g := &Graph{color: c, width: width, edges: make(map[Cell]edge, 4*width)}
	last := width - 1

	if c == Red {
		// Row 0: right to left, then down to row 1.
		for col := last; col >= 1; col-- {
			g.edges[Cell{0, col}] = edge{next: Cell{0, col - 1}}
		}
		g.edges[Cell{0, 0}] = edge{next: Cell{1, 0}}

		// Row 1: left to right, then down to row 2.
		for col := 0; col < last; col++ {
			g.edges[Cell{1, col}] = edge{next: Cell{1, col + 1}}
		}
		g.edges[Cell{1, last}] = edge{next: Cell{2, last}}

		// Row 2: right to left. The last cell is the decision point:
		// loop back to row 1 or detour into blue's home row.
		for col := last; col >= 1; col-- {
			g.edges[Cell{2, col}] = edge{next: Cell{2, col - 1}}
		}
		g.edges[Cell{2, 0}] = edge{next: Cell{1, 0}, branch: true, territory: Cell{3, 0}}

		// Row 3 (enemy territory): left to right, then back onto the loop.
		for col := 0; col < last; col++ {
			g.edges[Cell{3, col}] = edge{next: Cell{3, col + 1}}
		}
		g.edges[Cell{3, last}] = edge{next: Cell{2, last}}
		return g
	}

	// Blue mirrors red: row 3 left to right, row 2 right to left,
	// row 1 left to right with the detour into red's home row.
	for col := 0; col < last; col++ {
		g.edges[Cell{3, col}] = edge{next: Cell{3, col + 1}}
	}
	g.edges[Cell{3, last}] = edge{next: Cell{2, last}}

	for col := last; col >= 1; col-- {
		g.edges[Cell{2, col}] = edge{next: Cell{2, col - 1}}
	}
	g.edges[Cell{2, 0}] = edge{next: Cell{1, 0}}

	for col := 0; col < last; col++ {
		g.edges[Cell{1, col}] = edge{next: Cell{1, col + 1}}
	}
	g.edges[Cell{1, last}] = edge{next: Cell{2, last}, branch: true, territory: Cell{0, last}}

	for col := last; col >= 1; col-- {
		g.edges[Cell{0, col}] = edge{next: Cell{0, col - 1}}
	}
	g.edges[Cell{0, 0}] = edge{next: Cell{1, 0}}
	return g
}
