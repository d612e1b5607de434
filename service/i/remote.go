package i

import (
	"context"

	"github.com/beka-birhanu/pacmon-arena/remote"
)

// Remote is the sync collaborator. Both calls report failures through the
// response envelope and never panic.
type Remote interface {
	GetGameState(ctx context.Context) remote.Response
	UpdatePlayerState(ctx context.Context, p remote.PlayerState) remote.Response
}
