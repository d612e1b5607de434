package game

import "time"

// Engine runs one simulation tick over a Store.
type Engine struct {
	store     *Store
	lifecycle *Lifecycle
	events    Events
	tick      int
}

// NewEngine wires a store, its power-up lifecycle and the event sink.
func NewEngine(store *Store, lifecycle *Lifecycle, events Events) *Engine {
	if events == nil {
		events = NopEvents{}
	}
	return &Engine{store: store, lifecycle: lifecycle, events: events}
}

// Store returns the store the engine mutates.
func (e *Engine) Store() *Store { return e.store }

// Tick is the number of steps run so far.
func (e *Engine) Tick() int { return e.tick }

// Step moves the current player, applies pickups, eliminations and power-up
// expiry, ages out power-ups and finally drops eliminated players from the
// roster, in that order.
func (e *Engine) Step(keys KeySet, now time.Time) {
	e.tick++
	s := e.store

	if p := s.Current(); p != nil {
		if _, turned := ResolveMove(s.Grid, p, keys); turned {
			e.events.Cue(CueMove)
		}
	}

	ApplyRules(s, now, e.lifecycle.TTL, e.events)
	e.lifecycle.Tick(s, now)

	if s.removeEliminated() {
		e.events.RosterChanged(append([]Player(nil), s.Players...))
	}
}

// ApplyRoster installs a merged roster and notifies listeners.
func (e *Engine) ApplyRoster(players []Player) {
	e.store.SetRoster(players)
	e.events.RosterChanged(append([]Player(nil), e.store.Players...))
}
