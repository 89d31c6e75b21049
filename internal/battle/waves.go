package battle

// advanceWave rolls the next enemy wave in after a wipe. Surviving
// heroes scroll toward the hero-side edge, remnant occupancy is cleared,
// and the new wave takes its fixed slots while the event payload keeps
// the off-board origin for presentation-side slide-in.
func (e *Engine) advanceWave() {
	cleared := e.state.CurrentWave
	next := cleared + 1

	// pause point for the caller: every third wave, and right before the
	// final wave
	if cleared%waveCompleteCadence == 0 || next == e.state.TotalWaves {
		e.state.TransitionInProgress = true
		e.emit(EvWaveComplete, map[string]any{"wave": cleared})
	}

	for _, en := range e.state.Enemies {
		if pos, ok := e.grid.Locate(en.ID); ok {
			e.grid.Vacate(pos)
		}
	}

	shift := e.scroll + 1
	var shifts []map[string]any
	for _, h := range e.state.Heroes {
		if !h.Alive {
			continue
		}
		from := h.Pos
		to := Position{Row: from.Row, Col: from.Col - shift}.Clamp(e.grid.Height(), e.grid.Width())
		e.grid.Vacate(from)
		if !e.grid.Occupy(to, h.ID) {
			if free, ok := e.grid.FindNearestFree(to, e.maxDim()); ok {
				e.grid.Occupy(free, h.ID)
				to = free
			} else {
				e.grid.Occupy(from, h.ID)
				to = from
			}
		}
		h.Pos = to
		if to != from {
			shifts = append(shifts, map[string]any{
				"id": h.ID, "from": posPayload(from), "to": posPayload(to),
			})
		}
	}

	units := e.pending[0]
	e.pending = e.pending[1:]
	spawns := e.placeWave(units, next)

	e.state.CurrentWave = next
	e.state.RemainingWaves = len(e.pending)

	e.emit(EvWaveTransition, map[string]any{
		"cleared": cleared, "wave": next, "shifts": shifts, "spawns": spawns,
	})
	e.emit(EvWaveStart, map[string]any{
		"wave": next, "enemies": unitIDs(units), "spawns": spawns,
	})
	e.state.TransitionInProgress = false
}

// placeWave assigns fixed right-side slots to a wave group and registers
// the units on the board and in the roster. The returned spawn records
// carry both the off-board origin and the landed cell.
func (e *Engine) placeWave(units []*Unit, wave int) []map[string]any {
	slots := e.spawnSlots(len(units))
	spawns := make([]map[string]any, 0, len(units))
	for i, en := range units {
		en.Wave = wave
		slot := slots[i]
		pos := slot
		if !e.grid.Occupy(pos, en.ID) {
			if free, ok := e.grid.FindNearestFree(slot, e.maxDim()); ok {
				e.grid.Occupy(free, en.ID)
				pos = free
			}
		}
		en.Pos = pos
		e.state.Enemies = append(e.state.Enemies, en)
		e.state.Meta.Enemies = append(e.state.Meta.Enemies, UnitMeta{
			ID: en.ID, Name: en.Name, MaxHP: en.Stats.MaxHP, Speed: en.Stats.Speed, Wave: wave,
		})
		spawns = append(spawns, map[string]any{
			"id":   en.ID,
			"from": posPayload(Position{Row: slot.Row, Col: e.grid.Width()}), // off-board
			"to":   posPayload(pos),
		})
	}
	return spawns
}

// spawnSlots spreads n slots down the right-most column, spilling into
// the next column inward when a column fills.
func (e *Engine) spawnSlots(n int) []Position {
	slots := make([]Position, 0, n)
	col := e.grid.Width() - 1
	row := 0
	for len(slots) < n {
		slots = append(slots, Position{Row: row, Col: col})
		row++
		if row >= e.grid.Height() {
			row = 0
			col--
			if col < 0 {
				col = e.grid.Width() - 1
			}
		}
	}
	return slots
}
