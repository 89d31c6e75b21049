package battle

import (
	"math/rand"
	"reflect"
	"testing"
)

func duelInput() Input {
	hero := testUnit("hero", true, Position{0, 0}, testStats(1, 1, 1000))
	foe := testUnit("foe", false, Position{}, testStats(1, 1, 500))
	return Input{
		Heroes:     []*Unit{hero},
		Waves:      [][]*Unit{{foe}},
		GridWidth:  2,
		GridHeight: 1,
		Record:     true,
	}
}

func TestDuelEventSequence(t *testing.T) {
	state, err := Run(duelInput())
	if err != nil {
		t.Fatal(err)
	}
	want := []EventType{EvBattleStart, EvTick, EvAttack, EvDamage, EvDeath, EvVictory}
	got := eventTypes(state.Events)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("event sequence:\n got %v\nwant %v", got, want)
	}
	if state.Tick != 1 {
		t.Fatalf("duel should end on tick 1, got %d", state.Tick)
	}
	if state.Winner != WinnerHeroes {
		t.Fatalf("faster unit wins, got %s", state.Winner)
	}
	if state.Heroes[0].Alive != true || state.Enemies[0].Alive != false {
		t.Fatal("rosters must carry final alive flags")
	}
	if state.BattleID == "" {
		t.Fatal("battle id must be set")
	}
}

func TestDeterministicReplay(t *testing.T) {
	build := func() Input {
		st := testStats(300, 35, 60)
		st.CritChance = 0.4
		st.Evasion = 0.25
		st.Accuracy = 0.9
		hero := testUnit("hero", true, Position{1, 0}, st)
		est := testStats(280, 30, 55)
		est.CritChance = 0.3
		est.Evasion = 0.2
		est.Accuracy = 0.9
		foe := testUnit("foe", false, Position{}, est)
		return Input{
			Heroes: []*Unit{hero},
			Waves:  [][]*Unit{{foe}},
			Record: true,
		}
	}

	runOnce := func() *State {
		in := build()
		in.Rng = rand.New(rand.NewSource(42))
		state, err := Run(in)
		if err != nil {
			t.Fatal(err)
		}
		return state
	}

	a, b := runOnce(), runOnce()
	if !reflect.DeepEqual(a.Events, b.Events) {
		t.Fatal("same seed must replay the exact event stream")
	}
	if a.Winner != b.Winner || a.Tick != b.Tick {
		t.Fatal("same seed must reach the same outcome")
	}
	if !reflect.DeepEqual(a.DamageByUnit, b.DamageByUnit) {
		t.Fatal("damage attribution must replay identically")
	}
}

func TestOccupancyExclusiveEveryTick(t *testing.T) {
	var heroes, foes []*Unit
	for i := 0; i < 4; i++ {
		heroes = append(heroes, testUnit("h"+string(rune('0'+i)), true,
			Position{Row: i, Col: 0}, testStats(200, 25, 50+float64(i)*7)))
		foes = append(foes, testUnit("e"+string(rune('0'+i)), false,
			Position{Row: i, Col: 7}, testStats(200, 25, 45+float64(i)*5)))
	}
	e := newTestEngine(t, 8, 4, heroes, foes)
	e.rng = rand.New(rand.NewSource(7))

	for !e.done && e.state.Tick < DefaultTickCeiling {
		e.runTick()
		seen := map[Position]string{}
		for _, u := range e.allUnits() {
			if !u.Alive {
				continue
			}
			if other, dup := seen[u.Pos]; dup {
				t.Fatalf("tick %d: %s and %s share %v", e.state.Tick, other, u.ID, u.Pos)
			}
			seen[u.Pos] = u.ID
			if e.grid.UnitAt(u.Pos) != u.ID {
				t.Fatalf("tick %d: grid out of sync for %s at %v", e.state.Tick, u.ID, u.Pos)
			}
		}
	}
	if !e.done {
		t.Fatal("battle must terminate before the ceiling")
	}
}

func TestStalemateResolvedAtCeiling(t *testing.T) {
	// both sides only ever land the 1-damage floor; nobody dies in time
	hst := testStats(100000, 1, 50)
	hst.Defense = 1000
	est := testStats(90000, 1, 50)
	est.Defense = 1000
	hero := testUnit("hero", true, Position{0, 0}, hst)
	foe := testUnit("foe", false, Position{}, est)

	state, err := Run(Input{
		Heroes:      []*Unit{hero},
		Waves:       [][]*Unit{{foe}},
		GridWidth:   3,
		GridHeight:  1,
		TickCeiling: 100,
		Record:      true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if state.Tick != 100 {
		t.Fatalf("should run to the ceiling, stopped at %d", state.Tick)
	}
	if state.Winner != WinnerHeroes {
		t.Fatalf("higher remaining hp wins the stalemate, got %s", state.Winner)
	}
	last := state.Events[len(state.Events)-1]
	if last.Type != EvVictory || last.Payload["reason"] != "tick_ceiling" {
		t.Fatalf("want a tick_ceiling Victory, got %v", last)
	}
}

func TestMalformedInputFailsBeforeSimulation(t *testing.T) {
	bad := Ability{ID: "hex", Type: Offensive, Range: 2, Cooldown: 1,
		Effects: []AbilityEffect{{Kind: EffectStatus, Target: TargetEnemy,
			Status: StatusType("confuzzle"), Duration: 2}}}
	hero := testUnit("hero", true, Position{}, testStats(10, 1, 10), bad)
	foe := testUnit("foe", false, Position{}, testStats(10, 1, 10))

	if _, err := Run(Input{Heroes: []*Unit{hero}, Waves: [][]*Unit{{foe}}}); err == nil {
		t.Fatal("unknown status type must fail fast")
	}

	if _, err := Run(Input{Waves: [][]*Unit{{foe}}}); err == nil {
		t.Fatal("empty hero roster must fail")
	}

	dup := testUnit("hero", false, Position{}, testStats(10, 1, 10))
	if _, err := Run(Input{Heroes: []*Unit{testUnit("hero", true, Position{}, testStats(10, 1, 10))},
		Waves: [][]*Unit{{dup}}}); err == nil {
		t.Fatal("duplicate unit ids must fail")
	}
}
