package game

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store-related errors.
var (
	ErrNoCurrentPlayer  = errors.New("current player has no id")
	ErrInvalidPosition  = errors.New("player is out of the maze")
	ErrUnknownDirection = errors.New("unknown direction")
)

// Direction is the facing of a player.
type Direction uint8

const (
	Right Direction = iota
	Up
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Right, ErrUnknownDirection
}

// delta is the unit step for the direction in pixel space.
func (d Direction) delta() (dx, dy float64) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// Player is one entry of the roster.
type Player struct {
	ID             string    // Opaque id, stable per wallet account.
	X, Y           float64   // Pixel position.
	Direction      Direction // Facing.
	Username       string    // Display name.
	Color          string    // Current color.
	OriginalColor  string    // Color restored when a power-up ends.
	Score          int       // Never decremented.
	IsPoweredUp    bool      // Can eliminate other players on contact.
	PowerUpEndTime time.Time // Meaningful only while IsPoweredUp.
}

// PoweredAt reports whether the power-up is still running at now.
func (p *Player) PoweredAt(now time.Time) bool {
	return p.IsPoweredUp && !now.After(p.PowerUpEndTime)
}

// Pellet is a pellet or a power pellet. Collected only goes from false to true.
type Pellet struct {
	X, Y      float64
	Collected bool
}

// PowerUp is a transient elimination power-up.
type PowerUp struct {
	ID        uuid.UUID
	X, Y      float64
	Collected bool
	SpawnTime time.Time
}

// Age is the time since the power-up spawned.
func (p *PowerUp) Age(now time.Time) time.Duration {
	return now.Sub(p.SpawnTime)
}

// Remaining is the time left before the power-up expires, never negative.
func (p *PowerUp) Remaining(now time.Time, ttl time.Duration) time.Duration {
	left := ttl - p.Age(now)
	if left < 0 {
		return 0
	}
	return left
}

// Live reports whether the power-up can still be collected.
func (p *PowerUp) Live(now time.Time, ttl time.Duration) bool {
	return !p.Collected && p.Age(now) < ttl
}

// Store holds the entities of one simulation session. It is owned by a
// single loop and is not safe for concurrent use.
type Store struct {
	Grid         *Grid
	Players      []Player
	Pellets      []Pellet
	PowerPellets []Pellet
	PowerUps     []PowerUp

	currentID  string
	eliminated map[string]struct{}
}

// NewStore seeds a store with the grid's pellets and the current player.
func NewStore(grid *Grid, current Player) (*Store, error) {
	if current.ID == "" {
		return nil, ErrNoCurrentPlayer
	}
	row, col := CellOf(current.X, current.Y)
	if grid.Blocked(row, col) {
		return nil, ErrInvalidPosition
	}
	if current.OriginalColor == "" {
		current.OriginalColor = current.Color
	}

	pellets, powerPellets := grid.Pellets()
	return &Store{
		Grid:         grid,
		Players:      []Player{current},
		Pellets:      pellets,
		PowerPellets: powerPellets,
		currentID:    current.ID,
		eliminated:   make(map[string]struct{}),
	}, nil
}

// CurrentID is the id of the locally authoritative player.
func (s *Store) CurrentID() string {
	return s.currentID
}

// Current returns the locally authoritative player. It is nil only if the
// roster was replaced with one that lost it, which SetRoster prevents.
func (s *Store) Current() *Player {
	for i := range s.Players {
		if s.Players[i].ID == s.currentID {
			return &s.Players[i]
		}
	}
	return nil
}

// Eliminate adds id to the eliminated set. It returns false for the current
// player and for ids already eliminated.
func (s *Store) Eliminate(id string) bool {
	if id == s.currentID {
		return false
	}
	if _, ok := s.eliminated[id]; ok {
		return false
	}
	s.eliminated[id] = struct{}{}
	return true
}

// IsEliminated reports whether id was eliminated earlier in this session.
func (s *Store) IsEliminated(id string) bool {
	_, ok := s.eliminated[id]
	return ok
}

// Eliminated returns the ids of the eliminated set in no particular order.
func (s *Store) Eliminated() []string {
	ids := make([]string, 0, len(s.eliminated))
	for id := range s.eliminated {
		ids = append(ids, id)
	}
	return ids
}

// SetRoster replaces the roster. Eliminated ids are filtered out and the
// current player is kept if the new roster does not carry it.
func (s *Store) SetRoster(players []Player) {
	roster := make([]Player, 0, len(players)+1)
	hasCurrent := false
	for _, p := range players {
		if s.IsEliminated(p.ID) {
			continue
		}
		if p.ID == s.currentID {
			hasCurrent = true
		}
		roster = append(roster, p)
	}
	if !hasCurrent {
		if cur := s.Current(); cur != nil {
			roster = append(roster, *cur)
		}
	}
	s.Players = roster
}

// removeEliminated drops eliminated players from the roster and reports
// whether anything was removed.
func (s *Store) removeEliminated() bool {
	kept := s.Players[:0]
	for _, p := range s.Players {
		if !s.IsEliminated(p.ID) {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(s.Players)
	s.Players = kept
	return removed
}

// Snapshot is a copy of the store for rendering and notifications.
type Snapshot struct {
	Grid         *Grid
	CurrentID    string
	Players      []Player
	Pellets      []Pellet
	PowerPellets []Pellet
	PowerUps     []PowerUp
}

// Snapshot copies the mutable parts of the store. The grid is shared since
// it never changes.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Grid:         s.Grid,
		CurrentID:    s.currentID,
		Players:      append([]Player(nil), s.Players...),
		Pellets:      append([]Pellet(nil), s.Pellets...),
		PowerPellets: append([]Pellet(nil), s.PowerPellets...),
		PowerUps:     append([]PowerUp(nil), s.PowerUps...),
	}
}
