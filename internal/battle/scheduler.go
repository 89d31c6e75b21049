package battle

// runTick advances the battle by one discrete step:
//
//  1. status effects (DoT, duration expiry)
//  2. win/loss and wave-clear check
//  3. position/occupancy consistency pass
//  4. gauge advance for every living unit, one Tick event
//  5. every unit at full gauge acts, most overdue first; win/loss is
//     re-checked after every action so a mid-tick wipe ends the tick
func (e *Engine) runTick() {
	e.state.Tick++
	e.claimed = map[Position]bool{}

	e.tickStatusEffects()
	if e.checkOutcome() {
		return
	}
	e.reconcilePositions()

	gauges := map[string]any{}
	for _, u := range e.allUnits() {
		if !u.Alive {
			continue
		}
		u.Gauge += u.GaugeRate
		if u.Gauge > GaugeMax {
			u.Gauge = GaugeMax
		}
		if u.Gauge < 0 { // a >100% speed debuff can drive the rate negative
			u.Gauge = 0
		}
		gauges[u.ID] = u.Gauge
	}
	e.emit(EvTick, map[string]any{"cooldowns": gauges})

	for _, u := range e.readyUnits() {
		if e.done {
			return
		}
		if !u.Alive { // killed earlier this tick
			continue
		}
		if u.Controlled() {
			e.logLine(u.ID + " is disabled and skips its action")
			e.finishAction(u, nil)
			continue
		}
		e.act(u)
		if e.checkOutcome() {
			return
		}
	}
}

// finishAction closes out a unit's turn: the gauge drops to zero and
// every pending ability cooldown ticks down one use. The cooldown of an
// ability consumed this very action is set afterwards, so it waits its
// full count.
func (e *Engine) finishAction(u *Unit, used *Ability) {
	u.Gauge = 0
	for id, cd := range u.AbilityCD {
		if cd > 0 {
			u.AbilityCD[id] = cd - 1
		}
	}
	if used != nil && used.Cooldown > 0 {
		u.AbilityCD[used.ID] = used.Cooldown
	}
}
