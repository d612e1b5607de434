package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/google/uuid"

	"github.com/beka-birhanu/pacmon-arena/game"
	"github.com/beka-birhanu/pacmon-arena/registry"
	"github.com/beka-birhanu/pacmon-arena/service/i"
)

// Enrollment and session errors.
var (
	ErrInvalidUsername = errors.New("username must be 1 to 20 characters")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrSessionRunning  = errors.New("player already has a running session")
	ErrMissingRegistry = errors.New("session manager needs a registry")
)

const maxUsernameLength = 20

type GameSessionManager struct {
	registry        i.Registry
	remote          i.Remote
	events          game.Events
	logger          general_i.Logger
	sessionLogger   general_i.Logger
	color           string
	seed            int64
	fee             float64
	pullInterval    time.Duration
	pushInterval    time.Duration
	frameInterval   time.Duration
	sessions        map[uuid.UUID]*Session
	playerToSession map[string]uuid.UUID
	sync.RWMutex
}

type Config struct {
	Registry        i.Registry
	Remote          i.Remote
	Events          game.Events
	Logger          general_i.Logger
	SessionLogger   general_i.Logger // Defaults to Logger.
	PlayerColor     string
	Seed            int64
	RegistrationFee float64
	PullInterval    time.Duration
	PushInterval    time.Duration
	FrameInterval   time.Duration
}

func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.Registry == nil {
		return nil, ErrMissingRegistry
	}
	if c.Remote == nil {
		return nil, ErrMissingRemote
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}
	sessionLogger := c.SessionLogger
	if sessionLogger == nil {
		sessionLogger = c.Logger
	}

	return &GameSessionManager{
		registry:        c.Registry,
		remote:          c.Remote,
		events:          c.Events,
		logger:          c.Logger,
		sessionLogger:   sessionLogger,
		color:           c.PlayerColor,
		seed:            c.Seed,
		fee:             c.RegistrationFee,
		pullInterval:    c.PullInterval,
		pushInterval:    c.PushInterval,
		frameInterval:   c.FrameInterval,
		sessions:        make(map[uuid.UUID]*Session),
		playerToSession: make(map[string]uuid.UUID),
	}, nil
}

// Enroll returns the identity registered for address. An address without a
// username registers desired first, paying the registration fee.
func (g *GameSessionManager) Enroll(ctx context.Context, address, desired string) (registry.Identity, error) {
	existing, err := g.registry.Username(ctx, address)
	if err != nil {
		return registry.Identity{}, fmt.Errorf("looking up username: %w", err)
	}
	if existing != "" {
		g.logger.Info(fmt.Sprintf("resuming registered player %s as %q", address, existing))
		return registry.Identity{ID: address, Username: existing}, nil
	}

	username := strings.TrimSpace(desired)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		return registry.Identity{}, ErrInvalidUsername
	}

	available, err := g.registry.IsUsernameAvailable(ctx, username)
	if err != nil {
		return registry.Identity{}, fmt.Errorf("checking username availability: %w", err)
	}
	if !available {
		return registry.Identity{}, ErrUsernameTaken
	}

	if err := g.registry.Register(ctx, address, username, g.fee); err != nil {
		return registry.Identity{}, fmt.Errorf("registering %q: %w", username, err)
	}
	g.logger.Info(fmt.Sprintf("registered player %s as %q", address, username))
	return registry.Identity{ID: address, Username: username}, nil
}

// NewSession starts a game for the identity with a freshly generated maze.
// The registry is told about the game only once the session exists.
func (g *GameSessionManager) NewSession(ctx context.Context, id registry.Identity) (i.Session, error) {
	g.RLock()
	_, running := g.playerToSession[id.ID]
	g.RUnlock()
	if running {
		return nil, ErrSessionRunning
	}

	session, err := NewSession(&SessionConfig{
		Identity:      id,
		Color:         g.color,
		Seed:          g.seed,
		Remote:        g.remote,
		Events:        g.events,
		Logger:        g.sessionLogger,
		PullInterval:  g.pullInterval,
		PushInterval:  g.pushInterval,
		FrameInterval: g.frameInterval,
	})
	if err != nil {
		g.logger.Error(fmt.Sprintf("creating session for %s: %s", id.ID, err))
		return nil, err
	}

	g.Lock()
	if _, ok := g.playerToSession[id.ID]; ok {
		g.Unlock()
		return nil, ErrSessionRunning
	}
	g.saveSession(id.ID, session)
	g.Unlock()

	if err := g.registry.StartGame(ctx, id.ID); err != nil {
		g.Lock()
		g.clean(session.ID(), id.ID)
		g.Unlock()
		return nil, fmt.Errorf("starting game: %w", err)
	}

	session.Start(ctx)
	g.logger.Info(fmt.Sprintf("started new game for player: %s", id.ID))
	return session, nil
}

// EndSession stops the session of playerID and forgets it.
func (g *GameSessionManager) EndSession(playerID string) {
	g.Lock()
	sessionID, ok := g.playerToSession[playerID]
	if !ok {
		g.Unlock()
		return
	}
	session := g.sessions[sessionID]
	g.clean(sessionID, playerID)
	g.Unlock()

	session.Stop()
}

func (g *GameSessionManager) saveSession(playerID string, s *Session) {
	g.sessions[s.ID()] = s
	g.playerToSession[playerID] = s.ID()
}

func (g *GameSessionManager) clean(sessionID uuid.UUID, playerID string) {
	delete(g.sessions, sessionID)
	delete(g.playerToSession, playerID)
}

func (g *GameSessionManager) StopAll() {
	g.Lock()
	sessions := make([]*Session, 0, len(g.sessions))
	for _, session := range g.sessions {
		sessions = append(sessions, session)
	}
	clear(g.sessions)
	clear(g.playerToSession)
	g.Unlock()

	for _, session := range sessions {
		session.Stop()
	}
}
