package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/beka-birhanu/pacmon-arena/game"
	"github.com/beka-birhanu/pacmon-arena/registry"
	"github.com/beka-birhanu/pacmon-arena/remote"
	"github.com/beka-birhanu/pacmon-arena/service/i"
)

// Session-related errors.
var (
	ErrMissingRemote = errors.New("session needs a remote collaborator")
	ErrMissingLogger = errors.New("session needs a logger")
)

// Session constants for cadences.
const (
	defaultPullInterval  = 2 * time.Second
	defaultPushInterval  = time.Second
	defaultFrameInterval = time.Second / 60
)

// SessionConfig configures a Session.
type SessionConfig struct {
	Identity registry.Identity // Seeds the current player.
	Color    string            // Original color of the current player.
	Seed     int64             // Maze and spawn seed, 0 picks a random one.
	Remote   i.Remote          // Sync collaborator.
	Events   game.Events       // Cues and notifications, may be nil.
	Logger   general_i.Logger  // Session logger.

	PullInterval  time.Duration
	PushInterval  time.Duration
	FrameInterval time.Duration // Cadence of Run.

	Now time.Time // Session start, defaults to time.Now().
}

// Session is one game from start to teardown. The entity store is only
// touched by the goroutine calling Tick; the pull and push tasks exchange
// data with it through channels.
type Session struct {
	id            uuid.UUID               // Session id for logs.
	engine        *game.Engine            // Owns the entity store.
	remote        i.Remote                // Sync collaborator.
	logger        general_i.Logger        // Session logger.
	pushLimiter   *rate.Limiter           // At most one push per push interval.
	pullInterval  time.Duration           // Cadence of roster pulls.
	frameInterval time.Duration           // Cadence of Run.
	pulled        chan []game.Player      // Latest validated roster, not yet merged.
	pushes        chan remote.PlayerState // Latest state waiting to be pushed.
	done          chan struct{}           // Closed on Stop.
	cancel        context.CancelFunc      // Cancels the pull and push tasks.
	started       atomic.Bool             // Start was called.
	stopped       atomic.Bool             // Stop was called.
	stopOnce      sync.Once               // Guards teardown.
	Wg            sync.WaitGroup          // Tracks the pull and push tasks.
}

// NewSession generates a fresh maze, seeds the current player at the spawn
// cell and prepares the tasks. Nothing runs until Start.
func NewSession(c *SessionConfig) (*Session, error) {
	if c.Remote == nil {
		return nil, ErrMissingRemote
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}

	rng := newRand(c.Seed)
	grid, err := game.GenerateMaze(game.Rows, game.Cols, rng)
	if err != nil {
		return nil, fmt.Errorf("generating maze: %w", err)
	}

	color := c.Color
	if color == "" {
		color = game.DefaultColor
	}
	x, y := game.CellCenter(game.SpawnRow, game.SpawnCol)
	store, err := game.NewStore(grid, game.Player{
		ID:            c.Identity.ID,
		X:             x,
		Y:             y,
		Direction:     game.Right,
		Username:      c.Identity.Username,
		Color:         color,
		OriginalColor: color,
	})
	if err != nil {
		return nil, fmt.Errorf("seeding store: %w", err)
	}

	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}

	return &Session{
		id:            uuid.New(),
		engine:        game.NewEngine(store, game.NewLifecycle(rng, now), c.Events),
		remote:        c.Remote,
		logger:        c.Logger,
		pushLimiter:   rate.NewLimiter(rate.Every(orDefault(c.PushInterval, defaultPushInterval)), 1),
		pullInterval:  orDefault(c.PullInterval, defaultPullInterval),
		frameInterval: orDefault(c.FrameInterval, defaultFrameInterval),
		pulled:        make(chan []game.Player, 1),
		pushes:        make(chan remote.PlayerState, 1),
		done:          make(chan struct{}),
	}, nil
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// Start launches the pull and push tasks. Calling it twice has no effect.
func (s *Session) Start(ctx context.Context) {
	if s.stopped.Load() || !s.started.CompareAndSwap(false, true) {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.Wg.Add(2)
	go s.pullLoop(ctx)
	go s.pushLoop(ctx)
	s.logger.Info(fmt.Sprintf("session %s started for player %s", s.id, s.engine.Store().CurrentID()))
}

// Run drives Tick on the frame cadence until ctx is done or the session
// stops. keys is polled once per frame.
func (s *Session) Run(ctx context.Context, keys func() game.KeySet) {
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case now := <-ticker.C:
			s.Tick(keys(), now)
		}
	}
}

// Tick applies a pending remote roster, steps the simulation and queues a
// push when the push interval allows one.
func (s *Session) Tick(keys game.KeySet, now time.Time) {
	if s.stopped.Load() {
		return
	}

	select {
	case roster := <-s.pulled:
		if cur := s.engine.Store().Current(); cur != nil {
			s.engine.ApplyRoster(remote.Merge(*cur, roster))
		}
	default:
	}

	s.engine.Step(keys, now)

	if !s.pushLimiter.AllowN(now, 1) {
		return
	}
	store := s.engine.Store()
	cur := store.Current()
	if cur == nil {
		return
	}
	eliminated := store.Eliminated()
	slices.Sort(eliminated)
	offerLatest(s.pushes, remote.StateOf(*cur, eliminated))
}

// Snapshot returns a copy of the entity store.
func (s *Session) Snapshot() game.Snapshot {
	return s.engine.Store().Snapshot()
}

// Stop cancels every task and waits for in-flight calls to return. Ticks
// after Stop are ignored.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		close(s.done)
		if s.cancel != nil {
			s.cancel()
		}
		s.Wg.Wait()
		s.logger.Info(fmt.Sprintf("session %s stopped after %d ticks", s.id, s.engine.Tick()))
	})
}

// pullLoop fetches the shared roster on the pull cadence. A failed or
// malformed pull is logged and skipped.
func (s *Session) pullLoop(ctx context.Context) {
	defer s.Wg.Done()
	ticker := time.NewTicker(s.pullInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp := s.remote.GetGameState(ctx)
			if ctx.Err() != nil {
				return
			}
			roster, err := remote.DecodeRoster(resp)
			if err != nil {
				s.logger.Warning(fmt.Sprintf("skipping roster pull: %s", err))
				continue
			}
			offerLatest(s.pulled, roster)
		}
	}
}

// pushLoop sends queued player states. A failed push is logged and not
// retried; the next tick that passes the limiter queues a fresh state.
func (s *Session) pushLoop(ctx context.Context) {
	defer s.Wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case st := <-s.pushes:
			resp := s.remote.UpdatePlayerState(ctx, st)
			if ctx.Err() != nil {
				return
			}
			if !resp.Success {
				s.logger.Warning(fmt.Sprintf("failed to update player state: %v", resp.Err))
			}
		}
	}
}

// offerLatest puts v on a one-slot channel, replacing any value still
// waiting there. It never blocks.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
