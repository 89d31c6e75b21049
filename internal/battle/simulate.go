package battle

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

const (
	GaugeMax        = 100.0
	CooldownDivisor = 10.0

	DefaultGridWidth     = 10
	DefaultGridHeight    = 6
	DefaultScrollDist    = 2
	DefaultTickCeiling   = 2000
	minTickCeiling       = 100
	maxTickCeiling       = 10000
	healTriggerFraction  = 0.99
	waveCompleteCadence  = 3
)

type Winner string

const (
	WinnerNone    Winner = ""
	WinnerHeroes  Winner = "heroes"
	WinnerEnemies Winner = "enemies"
)

// Input is everything a battle needs. Units are consumed by the run and
// mutated in place; build a fresh Input per simulation.
type Input struct {
	Heroes []*Unit
	Waves  [][]*Unit // wave-indexed enemy groups; entries past the first spawn on wave clear

	GridWidth      int
	GridHeight     int
	ScrollDistance int
	TickCeiling    int

	Rng    *rand.Rand // injectable for replayable runs; defaults to seed 1
	Record bool       // keep the full event log (off for batch runs)
}

type UnitMeta struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	MaxHP float64 `json:"max_hp"`
	Speed float64 `json:"speed"`
	Wave  int     `json:"wave,omitempty"`
}

type Meta struct {
	Heroes  []UnitMeta `json:"heroes"`
	Enemies []UnitMeta `json:"enemies"`
}

// State is the complete battle record: final rosters, the ordered event
// log, and aggregate attribution. Downstream consumers treat it read-only.
type State struct {
	BattleID             string             `json:"battle_id"`
	Tick                 int                `json:"tick"`
	Heroes               []*Unit            `json:"heroes"`
	Enemies              []*Unit            `json:"enemies"`
	Events               []Event            `json:"events,omitempty"`
	Winner               Winner             `json:"winner"`
	CurrentWave          int                `json:"current_wave"`
	TotalWaves           int                `json:"total_waves"`
	RemainingWaves       int                `json:"remaining_waves"`
	TransitionInProgress bool               `json:"transition_in_progress"`
	DamageByUnit         map[string]float64 `json:"damage_by_unit,omitempty"`
	DamageByAbility      map[string]float64 `json:"damage_by_ability,omitempty"`
	Meta                 Meta               `json:"meta"`
}

type Engine struct {
	grid    *Grid
	state   *State
	log     Log
	rng     *rand.Rand
	record  bool
	scroll  int
	ceiling int
	pending [][]*Unit

	claimed   map[Position]bool // cells taken by moves within the current tick
	statusSeq int
	done      bool
}

// Run simulates a whole battle synchronously and returns its record.
// Malformed input fails here, before the first tick; nothing fails
// mid-simulation.
func Run(in Input) (*State, error) {
	e, err := newEngine(in)
	if err != nil {
		return nil, err
	}
	for !e.done && e.state.Tick < e.ceiling {
		e.runTick()
	}
	if !e.done {
		e.resolveStalemate()
	}
	e.state.Events = e.log.Events()
	return e.state, nil
}

func newEngine(in Input) (*Engine, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	applyDefaults(&in)

	e := &Engine{
		grid:    NewGrid(in.GridWidth, in.GridHeight),
		rng:     in.Rng,
		record:  in.Record,
		scroll:  in.ScrollDistance,
		ceiling: in.TickCeiling,
		pending: in.Waves[1:],
		claimed: map[Position]bool{},
	}
	e.state = &State{
		BattleID:        uuid.NewString(),
		Heroes:          in.Heroes,
		Winner:          WinnerNone,
		CurrentWave:     1,
		TotalWaves:      len(in.Waves),
		RemainingWaves:  len(in.Waves) - 1,
		DamageByUnit:    map[string]float64{},
		DamageByAbility: map[string]float64{},
	}

	e.placeHeroes()
	e.placeWave(in.Waves[0], 1)

	e.emit(EvBattleStart, map[string]any{
		"grid":        []int{in.GridHeight, in.GridWidth},
		"total_waves": e.state.TotalWaves,
		"heroes":      unitIDs(e.state.Heroes),
		"enemies":     unitIDs(e.state.Enemies),
	})
	return e, nil
}

func applyDefaults(in *Input) {
	if in.GridWidth <= 0 {
		in.GridWidth = DefaultGridWidth
	}
	if in.GridHeight <= 0 {
		in.GridHeight = DefaultGridHeight
	}
	if in.ScrollDistance <= 0 {
		in.ScrollDistance = DefaultScrollDist
	}
	if in.TickCeiling <= 0 {
		in.TickCeiling = DefaultTickCeiling
	}
	if in.TickCeiling < minTickCeiling {
		in.TickCeiling = minTickCeiling
	}
	if in.TickCeiling > maxTickCeiling {
		in.TickCeiling = maxTickCeiling
	}
	if in.Rng == nil {
		in.Rng = rand.New(rand.NewSource(1))
	}
}

func (e *Engine) placeHeroes() {
	for i, h := range e.state.Heroes {
		want := h.Pos
		if !e.grid.InBounds(want) {
			want = Position{Row: i % e.grid.Height(), Col: 1}
		}
		if !e.grid.Occupy(want, h.ID) {
			if free, ok := e.grid.FindNearestFree(want, e.maxDim()); ok {
				e.grid.Occupy(free, h.ID)
				want = free
			}
		}
		h.Pos = want
		e.state.Meta.Heroes = append(e.state.Meta.Heroes, UnitMeta{
			ID: h.ID, Name: h.Name, MaxHP: h.Stats.MaxHP, Speed: h.Stats.Speed,
		})
	}
}

func (e *Engine) maxDim() int {
	if e.grid.Width() > e.grid.Height() {
		return e.grid.Width()
	}
	return e.grid.Height()
}

func (e *Engine) emit(t EventType, payload map[string]any) {
	if !e.record {
		return
	}
	e.log.Append(Event{Tick: e.state.Tick, Type: t, Payload: payload})
}

func (e *Engine) logLine(text string) {
	e.emit(EvLogLine, map[string]any{"text": text})
}

// allUnits returns heroes then enemies, in roster order. Iteration order
// matters: ties in targeting and scheduling break on this ordering.
func (e *Engine) allUnits() []*Unit {
	out := make([]*Unit, 0, len(e.state.Heroes)+len(e.state.Enemies))
	out = append(out, e.state.Heroes...)
	out = append(out, e.state.Enemies...)
	return out
}

func anyAlive(units []*Unit) bool {
	for _, u := range units {
		if u.Alive {
			return true
		}
	}
	return false
}

func unitIDs(units []*Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.ID
	}
	return out
}

// checkOutcome ends the battle on a side wipe or rolls the next wave in.
// Returns true when the battle is over. A hero wipe wins immediately and
// overrides any pending wave logic.
func (e *Engine) checkOutcome() bool {
	if e.done {
		return true
	}
	if !anyAlive(e.state.Heroes) {
		e.state.Winner = WinnerEnemies
		e.emit(EvDefeat, map[string]any{"winner": string(WinnerEnemies)})
		e.done = true
		return true
	}
	if !anyAlive(e.state.Enemies) {
		if len(e.pending) > 0 {
			e.advanceWave()
			return false
		}
		e.state.Winner = WinnerHeroes
		e.emit(EvVictory, map[string]any{"winner": string(WinnerHeroes)})
		e.done = true
		return true
	}
	return false
}

func (e *Engine) resolveStalemate() {
	heroHP, enemyHP := 0.0, 0.0
	for _, u := range e.state.Heroes {
		if u.Alive {
			heroHP += u.Stats.HP
		}
	}
	for _, u := range e.state.Enemies {
		if u.Alive {
			enemyHP += u.Stats.HP
		}
	}
	if heroHP >= enemyHP {
		e.state.Winner = WinnerHeroes
		e.emit(EvVictory, map[string]any{"winner": string(WinnerHeroes), "reason": "tick_ceiling"})
	} else {
		e.state.Winner = WinnerEnemies
		e.emit(EvDefeat, map[string]any{"winner": string(WinnerEnemies), "reason": "tick_ceiling"})
	}
	e.done = true
}

// reconcilePositions is the per-tick consistency check: every living
// unit's recorded position is clamped and the occupancy store is forced
// to agree with it. Mismatches are healed, never fatal.
func (e *Engine) reconcilePositions() {
	for _, u := range e.allUnits() {
		if !u.Alive {
			continue
		}
		p := u.Pos.Clamp(e.grid.Height(), e.grid.Width())
		if p == u.Pos && e.grid.UnitAt(p) == u.ID {
			continue
		}
		if cur, ok := e.grid.Locate(u.ID); ok {
			e.grid.Vacate(cur)
		}
		if !e.grid.Occupy(p, u.ID) {
			if free, ok := e.grid.FindNearestFree(p, e.maxDim()); ok {
				e.grid.Occupy(free, u.ID)
				p = free
			}
		}
		u.Pos = p
		e.logLine("occupancy reconciled for " + u.ID)
	}
}

func (e *Engine) nextStatusID(t StatusType) string {
	e.statusSeq++
	return string(t) + "#" + strconv.Itoa(e.statusSeq)
}

// readyUnits collects everyone at full gauge, most overdue first. Ties
// keep roster order so replays are stable.
func (e *Engine) readyUnits() []*Unit {
	var ready []*Unit
	for _, u := range e.allUnits() {
		if u.Alive && u.Gauge >= GaugeMax {
			ready = append(ready, u)
		}
	}
	sort.SliceStable(ready, func(i, j int) bool { return ready[i].Gauge > ready[j].Gauge })
	return ready
}
