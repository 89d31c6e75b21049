package battle

import "encoding/json"

type EventType string

const (
	EvBattleStart    EventType = "BattleStart"
	EvTick           EventType = "Tick"
	EvMove           EventType = "Move"
	EvAttack         EventType = "Attack"
	EvAbilityUsed    EventType = "AbilityUsed"
	EvDamage         EventType = "Damage"
	EvHeal           EventType = "Heal"
	EvEvaded         EventType = "Evaded"
	EvCriticalHit    EventType = "CriticalHit"
	EvStatusApplied  EventType = "StatusApplied"
	EvStatusExpired  EventType = "StatusExpired"
	EvDeath          EventType = "Death"
	EvWaveStart      EventType = "WaveStart"
	EvWaveComplete   EventType = "WaveComplete"
	EvWaveTransition EventType = "WaveTransition"
	EvVictory        EventType = "Victory"
	EvDefeat         EventType = "Defeat"
	EvLogLine        EventType = "LogLine" // human-readable diagnostics
)

type Event struct {
	Tick    int            `json:"tick"`
	Type    EventType      `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Log is the append-only record of a battle. Downstream consumers replay
// it read-only; nothing in the engine ever rewrites an appended event.
type Log struct {
	events []Event
}

func (l *Log) Append(ev Event) {
	l.events = append(l.events, ev)
}

func (l *Log) Events() []Event { return l.events }
func (l *Log) Len() int        { return len(l.events) }

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}

func posPayload(p Position) []int { return []int{p.Row, p.Col} }
