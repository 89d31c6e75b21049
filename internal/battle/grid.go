package battle

// Grid is the single source of truth for which cell holds which unit.
// Every claim on a cell goes through Occupy, Vacate or Move; a rejected
// operation returns false and mutates nothing, and callers treat that as
// "try the next candidate".
type Grid struct {
	width  int
	height int
	cells  []string // row*width+col -> unit id, "" when free
}

func NewGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, cells: make([]string, width*height)}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// UnitAt returns the occupant id at p, or "" if the cell is free or out
// of bounds.
func (g *Grid) UnitAt(p Position) string {
	if !g.InBounds(p) {
		return ""
	}
	return g.cells[p.Row*g.width+p.Col]
}

// Occupy claims p for unitID. Fails if out of bounds or already taken.
func (g *Grid) Occupy(p Position, unitID string) bool {
	if !g.InBounds(p) || unitID == "" {
		return false
	}
	idx := p.Row*g.width + p.Col
	if g.cells[idx] != "" {
		return false
	}
	g.cells[idx] = unitID
	return true
}

// Vacate frees p regardless of occupant. A no-op out of bounds.
func (g *Grid) Vacate(p Position) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.Row*g.width+p.Col] = ""
}

// Move atomically relocates unitID from one cell to another. It fails,
// with no mutation, unless to is a free in-bounds cell and from is
// currently held by unitID.
func (g *Grid) Move(unitID string, from, to Position) bool {
	if !g.InBounds(from) || !g.InBounds(to) {
		return false
	}
	fromIdx := from.Row*g.width + from.Col
	toIdx := to.Row*g.width + to.Col
	if g.cells[fromIdx] != unitID || g.cells[toIdx] != "" {
		return false
	}
	g.cells[fromIdx] = ""
	g.cells[toIdx] = unitID
	return true
}

// Locate scans for the cell registered to unitID. Used only by the
// consistency check; normal flow tracks positions on the units.
func (g *Grid) Locate(unitID string) (Position, bool) {
	for i, id := range g.cells {
		if id == unitID {
			return Position{Row: i / g.width, Col: i % g.width}, true
		}
	}
	return Position{}, false
}

// FindNearestFree scans growing Chebyshev rings around center and returns
// the first free in-bounds cell, or false if none exists within maxRadius.
// Ring cells are visited top-to-bottom, left-to-right, so the result is
// deterministic for a given occupancy.
func (g *Grid) FindNearestFree(center Position, maxRadius int) (Position, bool) {
	for r := 0; r <= maxRadius; r++ {
		for row := center.Row - r; row <= center.Row+r; row++ {
			for col := center.Col - r; col <= center.Col+r; col++ {
				p := Position{Row: row, Col: col}
				if Chebyshev(center, p) != r {
					continue
				}
				if g.InBounds(p) && g.cells[row*g.width+col] == "" {
					return p, true
				}
			}
		}
	}
	return Position{}, false
}
