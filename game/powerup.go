package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Lifecycle spawns elimination power-ups on a fixed cadence and prunes the
// ones that were collected or outlived their TTL.
type Lifecycle struct {
	Interval time.Duration // Time between spawn attempts.
	TTL      time.Duration // Maximum age of an uncollected power-up.
	Attempts int           // Retry budget when looking for an open cell.

	rng       *rand.Rand
	lastSpawn time.Time
}

// NewLifecycle returns a lifecycle using the default cadence. The first spawn
// happens one interval after start.
func NewLifecycle(rng *rand.Rand, start time.Time) *Lifecycle {
	return &Lifecycle{
		Interval:  PowerUpSpawnInterval,
		TTL:       PowerUpTTL,
		Attempts:  PowerUpSpawnAttempts,
		rng:       rng,
		lastSpawn: start,
	}
}

// Spawn places one power-up on a random open cell. A cycle that finds no
// open cell within the retry budget is skipped.
func (l *Lifecycle) Spawn(s *Store, now time.Time) bool {
	row, col, ok := s.Grid.RandomOpenCell(l.rng, l.Attempts)
	if !ok {
		return false
	}
	x, y := CellCenter(row, col)
	s.PowerUps = append(s.PowerUps, PowerUp{
		ID:        uuid.New(),
		X:         x,
		Y:         y,
		SpawnTime: now,
	})
	return true
}

// Prune removes collected power-ups and those whose age reached the TTL.
func (l *Lifecycle) Prune(s *Store, now time.Time) int {
	kept := s.PowerUps[:0]
	for _, pu := range s.PowerUps {
		if pu.Live(now, l.TTL) {
			kept = append(kept, pu)
		}
	}
	pruned := len(s.PowerUps) - len(kept)
	clear(s.PowerUps[len(kept):])
	s.PowerUps = kept
	return pruned
}

// Tick spawns a power-up when the cadence is due and prunes the active set.
func (l *Lifecycle) Tick(s *Store, now time.Time) {
	if now.Sub(l.lastSpawn) >= l.Interval {
		l.lastSpawn = now
		l.Spawn(s, now)
	}
	l.Prune(s, now)
}
