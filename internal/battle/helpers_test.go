package battle

import (
	"math/rand"
	"testing"
)

// fixedSource drives rand.Rand so every Float64 comes out at roughly the
// same value, which lets tests force evasion and crit rolls.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

func fixedRand(f float64) *rand.Rand {
	return rand.New(fixedSource{v: int64(f * (1 << 63))})
}

func testStats(hp, damage, speed float64) Stats {
	return Stats{
		HP: hp, MaxHP: hp,
		Damage: damage, Speed: speed,
		CritDamage: 1.5, Accuracy: 1,
	}
}

func testUnit(id string, hero bool, pos Position, st Stats, abilities ...Ability) *Unit {
	u := NewUnit(id, id, hero, st, abilities)
	u.Pos = pos
	return u
}

func newTestEngine(t *testing.T, width, height int, heroes, enemies []*Unit) *Engine {
	t.Helper()
	e := &Engine{
		grid:    NewGrid(width, height),
		rng:     rand.New(rand.NewSource(1)),
		record:  true,
		scroll:  DefaultScrollDist,
		ceiling: DefaultTickCeiling,
		claimed: map[Position]bool{},
	}
	e.state = &State{
		Heroes:          heroes,
		Enemies:         enemies,
		CurrentWave:     1,
		TotalWaves:      1,
		DamageByUnit:    map[string]float64{},
		DamageByAbility: map[string]float64{},
	}
	for _, u := range e.allUnits() {
		if !u.Alive {
			continue
		}
		if !e.grid.Occupy(u.Pos, u.ID) {
			t.Fatalf("setup: cannot place %s at %v", u.ID, u.Pos)
		}
	}
	return e
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func countEvents(events []Event, t EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func eventsOf(events []Event, t EventType) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
