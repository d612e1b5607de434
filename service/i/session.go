package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/pacmon-arena/game"
)

// Session defines the interface for one running simulation session.
type Session interface {
	// Start launches the pull and push tasks.
	Start(ctx context.Context)

	// Tick runs one frame: merge pending remote state, step the simulation and
	// decide whether to push.
	Tick(keys game.KeySet, now time.Time)

	// Run drives Tick on a fixed frame cadence until ctx is done or the
	// session stops.
	Run(ctx context.Context, keys func() game.KeySet)

	// Snapshot returns a copy of the entity store for rendering.
	Snapshot() game.Snapshot

	// Stop tears down every task of the session and waits for them.
	Stop()
}
