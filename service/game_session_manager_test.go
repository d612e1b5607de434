package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/beka-birhanu/pacmon-arena/game"
	"github.com/beka-birhanu/pacmon-arena/registry"
	"github.com/beka-birhanu/pacmon-arena/remote"
)

const testFee = 0.25

func newTestManager(t *testing.T) (*GameSessionManager, *registry.Memory) {
	t.Helper()
	reg := registry.NewMemory(testFee)
	m, err := NewGameSessionManager(&Config{
		Registry:        reg,
		Remote:          newFakeRemote(remote.Response{}),
		Logger:          testLogger(t),
		Seed:            7,
		RegistrationFee: testFee,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	t.Cleanup(m.StopAll)
	return m, reg
}

func TestEnrollRegistersNewPlayer(t *testing.T) {
	m, reg := newTestManager(t)
	ctx := context.Background()

	id, err := m.Enroll(ctx, "0xabc", "  pac  ")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if id.ID != "0xabc" || id.Username != "pac" {
		t.Fatalf("identity = %+v", id)
	}
	if got, _ := reg.Username(ctx, "0xabc"); got != "pac" {
		t.Fatalf("registry username = %q", got)
	}
}

func TestEnrollResumesExistingPlayer(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Enroll(ctx, "0xabc", "pac"); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	id, err := m.Enroll(ctx, "0xabc", "ignored")
	if err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if id.Username != "pac" {
		t.Fatalf("username = %q, want pac", id.Username)
	}
}

func TestEnrollRejectsBadUsernames(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Enroll(ctx, "0xabc", "pac"); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	tests := []struct {
		name     string
		username string
		want     error
	}{
		{name: "empty", username: "   ", want: ErrInvalidUsername},
		{name: "too long", username: strings.Repeat("a", 21), want: ErrInvalidUsername},
		{name: "taken", username: "PAC", want: ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Enroll(ctx, "0xdef", tt.username); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := m.Enroll(ctx, "0xdef", strings.Repeat("a", 20)); err != nil {
		t.Fatalf("20 character username: %v", err)
	}
}

func TestEnrollReportsUnderpayment(t *testing.T) {
	reg := registry.NewMemory(testFee)
	m, err := NewGameSessionManager(&Config{
		Registry:        reg,
		Remote:          newFakeRemote(remote.Response{}),
		Logger:          testLogger(t),
		RegistrationFee: 0.1,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, err := m.Enroll(context.Background(), "0xabc", "pac"); !errors.Is(err, registry.ErrInsufficientPayment) {
		t.Fatalf("err = %v, want ErrInsufficientPayment", err)
	}
}

func TestNewSessionLifecycle(t *testing.T) {
	m, reg := newTestManager(t)
	ctx := context.Background()

	id, err := m.Enroll(ctx, "0xabc", "pac")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	s, err := m.NewSession(ctx, id)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if got := s.Snapshot().CurrentID; got != "0xabc" {
		t.Fatalf("current id = %q", got)
	}

	if _, err := m.NewSession(ctx, id); !errors.Is(err, ErrSessionRunning) {
		t.Fatalf("second session err = %v, want ErrSessionRunning", err)
	}

	m.EndSession(id.ID)
	if _, err := m.NewSession(ctx, id); err != nil {
		t.Fatalf("session after end: %v", err)
	}

	var kinds []registry.NotificationKind
	for len(reg.Notifications()) > 0 {
		kinds = append(kinds, (<-reg.Notifications()).Kind)
	}
	want := []registry.NotificationKind{registry.Registered, registry.GameStarted, registry.GameStarted}
	if len(kinds) != len(want) {
		t.Fatalf("notifications = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("notifications = %v, want %v", kinds, want)
		}
	}
}

func TestNewSessionRequiresRegistration(t *testing.T) {
	m, reg := newTestManager(t)
	ctx := context.Background()
	id := registry.Identity{ID: "0xnobody", Username: "x"}

	if _, err := m.NewSession(ctx, id); !errors.Is(err, registry.ErrNotRegistered) {
		t.Fatalf("err = %v, want ErrNotRegistered", err)
	}

	if err := reg.Register(ctx, id.ID, id.Username, testFee); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := m.NewSession(ctx, id); err != nil {
		t.Fatalf("session after registering: %v", err)
	}
}

// countingRegistry counts StartGame calls on top of an in-memory registry.
type countingRegistry struct {
	*registry.Memory
	started int
}

func (r *countingRegistry) StartGame(ctx context.Context, address string) error {
	r.started++
	return r.Memory.StartGame(ctx, address)
}

func TestFailedSessionDoesNotStartGame(t *testing.T) {
	reg := &countingRegistry{Memory: registry.NewMemory(0)}
	m, err := NewGameSessionManager(&Config{
		Registry: reg,
		Remote:   newFakeRemote(remote.Response{}),
		Logger:   testLogger(t),
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	t.Cleanup(m.StopAll)

	if _, err := m.NewSession(context.Background(), registry.Identity{}); !errors.Is(err, game.ErrNoCurrentPlayer) {
		t.Fatalf("err = %v, want ErrNoCurrentPlayer", err)
	}
	if reg.started != 0 {
		t.Fatalf("StartGame called %d times for a session that was never created", reg.started)
	}
	if n := len(reg.Notifications()); n != 0 {
		t.Fatalf("%d notifications, want none", n)
	}
}

func TestNewGameSessionManagerValidatesConfig(t *testing.T) {
	if _, err := NewGameSessionManager(&Config{}); err != ErrMissingRegistry {
		t.Fatalf("err = %v, want ErrMissingRegistry", err)
	}
	if _, err := NewGameSessionManager(&Config{Registry: registry.NewMemory(0)}); err != ErrMissingRemote {
		t.Fatalf("err = %v, want ErrMissingRemote", err)
	}
}
