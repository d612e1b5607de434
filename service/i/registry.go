package i

import "context"

// Registry is the registration collaborator that owns usernames per wallet
// address.
type Registry interface {
	// Username returns the username registered for address, or "" if none.
	Username(ctx context.Context, address string) (string, error)

	// IsUsernameAvailable reports whether username can still be registered.
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)

	// Register binds username to address against the given payment.
	Register(ctx context.Context, address, username string, payment float64) error

	// StartGame records that address started a game.
	StartGame(ctx context.Context, address string) error
}
