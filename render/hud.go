package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/beka-birhanu/pacmon-arena/game"
)

// fadeWindow is how long before expiry a power-up starts fading out.
const fadeWindow = 2 * time.Second

var shortUnits = mustUnits("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func mustUnits(spec string) durafmt.Units {
	units, err := durafmt.DefaultUnitsCoder.Decode(spec)
	if err != nil {
		panic(fmt.Sprintf("decoding duration units %q: %v", spec, err))
	}
	return units
}

// Counters summarizes a snapshot for the HUD.
type Counters struct {
	Pellets      int // Uncollected pellets.
	PowerPellets int // Uncollected power pellets.
	PowerUps     int // Live elimination power-ups.
	Players      int
}

// Count tallies what is still in play at now.
func Count(snap game.Snapshot, now time.Time, ttl time.Duration) Counters {
	var c Counters
	for _, p := range snap.Pellets {
		if !p.Collected {
			c.Pellets++
		}
	}
	for _, p := range snap.PowerPellets {
		if !p.Collected {
			c.PowerPellets++
		}
	}
	for i := range snap.PowerUps {
		if snap.PowerUps[i].Live(now, ttl) {
			c.PowerUps++
		}
	}
	c.Players = len(snap.Players)
	return c
}

func (c Counters) String() string {
	return fmt.Sprintf("pellets %d  power %d  eliminators %d  players %d",
		c.Pellets, c.PowerPellets, c.PowerUps, c.Players)
}

// scoreLabel is the score line under a player.
func scoreLabel(score int) string {
	return "Score: " + humanize.Comma(int64(score))
}

// countdownLabel renders d rounded up to whole seconds, e.g. "3 s".
func countdownLabel(d time.Duration) string {
	if d <= 0 {
		return "0 s"
	}
	d = (d + time.Second - 1).Truncate(time.Second)
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

// fadeAlpha is the opacity of a power-up with remaining time left.
func fadeAlpha(remaining time.Duration) float64 {
	if remaining >= fadeWindow {
		return 1
	}
	if remaining <= 0 {
		return 0
	}
	return float64(remaining) / float64(fadeWindow)
}
