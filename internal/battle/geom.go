package battle

// Position is an integer grid cell. Row 0 is the top edge, Col 0 is the
// hero-side edge. The value Col == grid width is reserved for units that
// have not yet slid onto the board during a wave spawn.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Chebyshev returns the board distance between two cells. A diagonal
// neighbour is distance 1.
func Chebyshev(a, b Position) int {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// Clamp pulls p back into [0,height-1] x [0,width-1].
func (p Position) Clamp(height, width int) Position {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= height {
		p.Row = height - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col >= width {
		p.Col = width - 1
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
