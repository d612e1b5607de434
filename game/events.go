package game

// Cue is a sound cue emitted by the simulation. Playing it is up to the
// surrounding application.
type Cue uint8

const (
	CueMove Cue = iota
	CuePellet
	CuePowerPellet
	CueElimination
)

func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CuePellet:
		return "pellet"
	case CuePowerPellet:
		return "powerPellet"
	case CueElimination:
		return "elimination"
	}
	return "unknown"
}

// Events receives the side effects of a tick. Implementations are called from
// the simulation loop and must not block.
type Events interface {
	Cue(c Cue)
	ScoreChanged(score int)
	RosterChanged(players []Player)
	PowerUpCollected(pu PowerUp)
}

// NopEvents discards every event.
type NopEvents struct{}

func (NopEvents) Cue(Cue)                  {}
func (NopEvents) ScoreChanged(int)         {}
func (NopEvents) RosterChanged([]Player)   {}
func (NopEvents) PowerUpCollected(PowerUp) {}
