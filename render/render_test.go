package render

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/beka-birhanu/pacmon-arena/game"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{in: "#ffff00", want: color.RGBA{0xff, 0xff, 0x00, 0xff}},
		{in: "#a855f7", want: color.RGBA{0xa8, 0x55, 0xf7, 0xff}},
		{in: "#fff", want: color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{in: "ffff00", err: true},
		{in: "#ffff0", err: true},
		{in: "#gggggg", err: true},
		{in: "0ffff00", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.err {
				if !errors.Is(err, ErrBadColor) {
					t.Fatalf("err = %v, want ErrBadColor", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseHex(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestPlayerColor(t *testing.T) {
	if got := playerColor(""); got != fallbackPlayer {
		t.Fatalf("playerColor(\"\") = %v", got)
	}
	if got := playerColor("purple"); got != fallbackPlayer {
		t.Fatalf("playerColor(\"purple\") = %v", got)
	}
	if got, want := playerColor(game.PowerColor), (color.RGBA{0xa8, 0x55, 0xf7, 0xff}); got != want {
		t.Fatalf("playerColor(%q) = %v, want %v", game.PowerColor, got, want)
	}
}

func TestPollKeys(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyW: true, ebiten.KeyArrowLeft: true}
	keys := PollKeys(func(k ebiten.Key) bool { return held[k] })

	if !keys.Has(game.KeyW) || !keys.Has(game.KeyArrowLeft) {
		t.Fatalf("keys = %08b, want W and left", keys)
	}
	if keys.Has(game.KeyS) || keys.Has(game.KeyArrowRight) {
		t.Fatalf("keys = %08b has unheld keys", keys)
	}
	if d, ok := keys.Direction(); !ok || d != game.Up {
		t.Fatalf("direction = %v, %v, want up", d, ok)
	}
}

func TestCountdownLabel(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 10 * time.Second, want: "10 s"},
		{in: 2100 * time.Millisecond, want: "3 s"},
		{in: time.Millisecond, want: "1 s"},
		{in: 0, want: "0 s"},
		{in: -time.Second, want: "0 s"},
	}
	for _, tt := range tests {
		if got := countdownLabel(tt.in); got != tt.want {
			t.Errorf("countdownLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMustUnitsPanicsOnBadSpec(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("mustUnits accepted a malformed unit list")
		}
	}()
	mustUnits("s")
}

func TestFadeAlpha(t *testing.T) {
	if a := fadeAlpha(5 * time.Second); a != 1 {
		t.Fatalf("alpha at 5s = %v, want 1", a)
	}
	if a := fadeAlpha(time.Second); a != 0.5 {
		t.Fatalf("alpha at 1s = %v, want 0.5", a)
	}
	if a := fadeAlpha(0); a != 0 {
		t.Fatalf("alpha at 0 = %v, want 0", a)
	}
}

func TestScoreLabel(t *testing.T) {
	if got := scoreLabel(12500); got != "Score: 12,500" {
		t.Fatalf("scoreLabel = %q", got)
	}
}

func TestCount(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := game.Snapshot{
		Players:      []game.Player{{ID: "a"}, {ID: "b"}},
		Pellets:      []game.Pellet{{Collected: true}, {}, {}},
		PowerPellets: []game.Pellet{{}, {Collected: true}},
		PowerUps: []game.PowerUp{
			{SpawnTime: now.Add(-time.Second)},
			{SpawnTime: now.Add(-11 * time.Second)},
			{SpawnTime: now, Collected: true},
		},
	}
	got := Count(snap, now, game.PowerUpTTL)
	want := Counters{Pellets: 2, PowerPellets: 1, PowerUps: 1, Players: 2}
	if got != want {
		t.Fatalf("Count = %+v, want %+v", got, want)
	}
}

type tickRecorder struct {
	keys []game.KeySet
}

func (r *tickRecorder) Start(context.Context)                   {}
func (r *tickRecorder) Tick(keys game.KeySet, _ time.Time)      { r.keys = append(r.keys, keys) }
func (r *tickRecorder) Run(context.Context, func() game.KeySet) {}
func (r *tickRecorder) Snapshot() game.Snapshot                 { return game.Snapshot{} }
func (r *tickRecorder) Stop()                                   {}

func TestUpdateTicksUntilCancelled(t *testing.T) {
	rec := &tickRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	g, err := NewGame(ctx, &Config{
		Session: rec,
		Pressed: func(k ebiten.Key) bool { return k == ebiten.KeyD },
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(rec.keys) != 1 || !rec.keys[0].Has(game.KeyD) {
		t.Fatalf("ticks = %v", rec.keys)
	}

	cancel()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("update after cancel = %v, want Termination", err)
	}
	if len(rec.keys) != 1 {
		t.Fatalf("ticked after cancel: %v", rec.keys)
	}

	if w, h := g.Layout(1, 1); w != game.CanvasWidth || h != game.CanvasHeight {
		t.Fatalf("layout = %dx%d", w, h)
	}
}
