package i

import (
	"context"

	"github.com/beka-birhanu/pacmon-arena/registry"
)

// GameSessionManager manages the registration hand-off and game sessions.
type GameSessionManager interface {
	// Enroll resolves the identity of address, registering desired as its
	// username when it has none yet.
	Enroll(ctx context.Context, address, desired string) (registry.Identity, error)

	// NewSession creates and starts a session for the identity.
	NewSession(ctx context.Context, id registry.Identity) (Session, error)

	// EndSession stops the session of the player, if any.
	EndSession(playerID string)

	StopAll()
}
