package registry

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Registry errors.
var (
	ErrAlreadyRegistered   = errors.New("address already registered")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrInsufficientPayment = errors.New("insufficient registration payment")
	ErrNotRegistered       = errors.New("address is not registered")
)

const notificationBuffer = 16

// Identity is what a session needs to seed the current player.
type Identity struct {
	ID       string // Wallet address.
	Username string
}

// NotificationKind distinguishes registry notifications.
type NotificationKind uint8

const (
	Registered NotificationKind = iota
	GameStarted
)

func (k NotificationKind) String() string {
	if k == GameStarted {
		return "GameStarted"
	}
	return "Registered"
}

// Notification mirrors the events the registration contract emits.
type Notification struct {
	Kind      NotificationKind
	Address   string
	Username  string
	Timestamp time.Time
}

// Memory is an in-process registry. Usernames are unique case-insensitively.
type Memory struct {
	fee           float64
	usernames     map[string]string   // address -> username
	taken         map[string]struct{} // lower-cased usernames
	notifications chan Notification
	now           func() time.Time
	sync.RWMutex
}

// NewMemory returns an empty registry that requires fee per registration.
func NewMemory(fee float64) *Memory {
	return &Memory{
		fee:           fee,
		usernames:     make(map[string]string),
		taken:         make(map[string]struct{}),
		notifications: make(chan Notification, notificationBuffer),
		now:           time.Now,
	}
}

// Notifications delivers Registered and GameStarted events. Events are
// dropped when nobody drains the channel.
func (m *Memory) Notifications() <-chan Notification {
	return m.notifications
}

func (m *Memory) Username(_ context.Context, address string) (string, error) {
	m.RLock()
	defer m.RUnlock()
	return m.usernames[normalizeAddress(address)], nil
}

func (m *Memory) IsUsernameAvailable(_ context.Context, username string) (bool, error) {
	m.RLock()
	defer m.RUnlock()
	_, taken := m.taken[strings.ToLower(username)]
	return !taken, nil
}

func (m *Memory) Register(_ context.Context, address, username string, payment float64) error {
	m.Lock()
	defer m.Unlock()

	addr := normalizeAddress(address)
	if _, ok := m.usernames[addr]; ok {
		return ErrAlreadyRegistered
	}
	key := strings.ToLower(username)
	if _, ok := m.taken[key]; ok {
		return ErrUsernameTaken
	}
	if payment < m.fee {
		return ErrInsufficientPayment
	}

	m.usernames[addr] = username
	m.taken[key] = struct{}{}
	m.notify(Notification{Kind: Registered, Address: addr, Username: username, Timestamp: m.now()})
	return nil
}

func (m *Memory) StartGame(_ context.Context, address string) error {
	m.RLock()
	defer m.RUnlock()

	addr := normalizeAddress(address)
	name, ok := m.usernames[addr]
	if !ok {
		return ErrNotRegistered
	}
	m.notify(Notification{Kind: GameStarted, Address: addr, Username: name, Timestamp: m.now()})
	return nil
}

func (m *Memory) notify(n Notification) {
	select {
	case m.notifications <- n:
	default:
	}
}

// normalizeAddress lower-cases hex wallet addresses so checksummed and
// plain forms map to the same account.
func normalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
