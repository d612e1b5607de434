package game

import (
	"math"
	"time"
)

func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// award adds points to p and reports the new score.
func award(p *Player, points int, cue Cue, ev Events) {
	p.Score += points
	ev.Cue(cue)
	ev.ScoreChanged(p.Score)
}

// collectPickups marks every item within its pickup radius of p as collected
// and awards its points. Collecting an elimination power-up powers p up.
func collectPickups(s *Store, p *Player, now time.Time, ttl time.Duration, ev Events) {
	for i := range s.Pellets {
		pl := &s.Pellets[i]
		if pl.Collected || distance(p.X, p.Y, pl.X, pl.Y) >= PelletRadius {
			continue
		}
		pl.Collected = true
		award(p, PelletPoints, CuePellet, ev)
	}

	for i := range s.PowerPellets {
		pp := &s.PowerPellets[i]
		if pp.Collected || distance(p.X, p.Y, pp.X, pp.Y) >= PowerPelletRadius {
			continue
		}
		pp.Collected = true
		award(p, PowerPelletPoints, CuePowerPellet, ev)
	}

	for i := range s.PowerUps {
		pu := &s.PowerUps[i]
		if !pu.Live(now, ttl) || distance(p.X, p.Y, pu.X, pu.Y) >= PowerUpRadius {
			continue
		}
		pu.Collected = true
		award(p, PowerUpPoints, CueElimination, ev)
		p.IsPoweredUp = true
		p.PowerUpEndTime = now.Add(PowerUpDuration)
		p.Color = PowerColor
		ev.PowerUpCollected(*pu)
	}
}

// eliminateNearby eliminates every other player within the elimination radius
// of a powered-up p. It reports whether anyone was eliminated.
func eliminateNearby(s *Store, p *Player, now time.Time, ev Events) bool {
	if !p.PoweredAt(now) {
		return false
	}

	eliminated := false
	for i := range s.Players {
		other := &s.Players[i]
		if other.ID == p.ID || s.IsEliminated(other.ID) {
			continue
		}
		if distance(p.X, p.Y, other.X, other.Y) >= EliminationRadius {
			continue
		}
		if s.Eliminate(other.ID) {
			award(p, EliminationPoints, CueElimination, ev)
			eliminated = true
		}
	}
	return eliminated
}

// expirePowerUp clears p's power-up once now is past its end time and
// restores the original color.
func expirePowerUp(p *Player, now time.Time) bool {
	if !p.IsPoweredUp || !now.After(p.PowerUpEndTime) {
		return false
	}
	p.IsPoweredUp = false
	p.PowerUpEndTime = time.Time{}
	p.Color = p.OriginalColor
	return true
}

// ApplyRules runs pickups, eliminations and power-up expiry for the current
// player. Other players are remote-authoritative and are not scored here.
// It reports whether the roster lost players to elimination.
func ApplyRules(s *Store, now time.Time, ttl time.Duration, ev Events) bool {
	p := s.Current()
	if p == nil {
		return false
	}

	collectPickups(s, p, now, ttl, ev)
	eliminated := eliminateNearby(s, p, now, ev)
	expirePowerUp(p, now)
	return eliminated
}
