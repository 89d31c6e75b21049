package battle

import (
	"math"
	"sort"
)

var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (e *Engine) opponentsOf(u *Unit) []*Unit {
	if u.Hero {
		return e.state.Enemies
	}
	return e.state.Heroes
}

func (e *Engine) alliesOf(u *Unit) []*Unit {
	if u.Hero {
		return e.state.Heroes
	}
	return e.state.Enemies
}

// nearestEnemy picks the living opponent at minimum Chebyshev distance.
// Strict less-than: the first candidate in roster order wins ties.
func (e *Engine) nearestEnemy(u *Unit) *Unit {
	var best *Unit
	bestD := 0
	for _, c := range e.opponentsOf(u) {
		if !c.Alive {
			continue
		}
		d := Chebyshev(u.Pos, c.Pos)
		if best == nil || d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

// woundedAlly returns the first living ally below the given fraction of
// max hp, or nil.
func (e *Engine) woundedAlly(u *Unit, frac float64) *Unit {
	for _, a := range e.alliesOf(u) {
		if a.Alive && a.Stats.HP < a.Stats.MaxHP*frac {
			return a
		}
	}
	return nil
}

// moveToward takes at most one step toward the target. Candidate cells
// are the eight neighbours, scored so that lower is better:
//
//	dist*100 - 50 (if the step closes distance) - 10*alignment
//
// where alignment is the dot product of the unit vectors toward the
// target and along the step, so a straight step outranks a forward
// diagonal on a straight-line approach. A step that would increase the
// distance by more than one is discarded, which still allows lateral
// slides around blockers. Cells claimed by earlier movers this tick are
// skipped, and a unit with no acceptable cell simply stays put; the
// attempt still counts as its action.
func (e *Engine) moveToward(u *Unit, target *Unit) {
	cur := Chebyshev(u.Pos, target.Pos)

	type candidate struct {
		pos   Position
		score float64
	}
	var cands []candidate
	for _, off := range neighborOffsets {
		p := Position{Row: u.Pos.Row + off[0], Col: u.Pos.Col + off[1]}
		if !e.grid.InBounds(p) {
			continue
		}
		d := Chebyshev(p, target.Pos)
		if d > cur+1 {
			continue
		}
		score := float64(d * 100)
		if d < cur {
			score -= 50
		}
		score -= 10 * alignment(u.Pos, target.Pos, off)
		cands = append(cands, candidate{pos: p, score: score})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score < cands[j].score })

	for _, c := range cands {
		if e.claimed[c.pos] {
			continue
		}
		if !e.grid.Move(u.ID, u.Pos, c.pos) {
			continue
		}
		from := u.Pos
		u.Pos = c.pos
		e.claimed[c.pos] = true
		e.emit(EvMove, map[string]any{
			"id": u.ID, "from": posPayload(from), "to": posPayload(c.pos),
		})
		return
	}
}

// alignment is the cosine between the direction to the target and the
// candidate step direction, in [-1, 1].
func alignment(from, to Position, off [2]int) float64 {
	dr := float64(to.Row - from.Row)
	dc := float64(to.Col - from.Col)
	n := math.Hypot(dr, dc)
	if n == 0 {
		return 0
	}
	sr := float64(off[0])
	sc := float64(off[1])
	return (dr*sr + dc*sc) / (n * math.Hypot(sr, sc))
}
