package service

import (
	"fmt"
	"strings"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"

	"github.com/beka-birhanu/pacmon-arena/game"
)

// LogEvents reports simulation events to a logger. Move cues fire on every
// turn and are not logged.
type LogEvents struct {
	Logger general_i.Logger
}

func (e *LogEvents) Cue(c game.Cue) {
	if c == game.CueMove {
		return
	}
	e.Logger.Info(fmt.Sprintf("cue: %s", c))
}

func (e *LogEvents) ScoreChanged(score int) {
	e.Logger.Info(fmt.Sprintf("score: %d", score))
}

func (e *LogEvents) PowerUpCollected(pu game.PowerUp) {
	e.Logger.Info(fmt.Sprintf("collected power-up %s at (%.0f, %.0f)", pu.ID, pu.X, pu.Y))
}

func (e *LogEvents) RosterChanged(players []game.Player) {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Username)
	}
	e.Logger.Info(fmt.Sprintf("roster (%d): %s", len(players), strings.Join(names, ", ")))
}
