package game

import "testing"

func TestKeySetDirectionPriority(t *testing.T) {
	tests := []struct {
		name string
		keys []Key
		want Direction
		ok   bool
	}{
		{"none", nil, Right, false},
		{"arrow up", []Key{KeyArrowUp}, Up, true},
		{"w alias", []Key{KeyW}, Up, true},
		{"s alias", []Key{KeyS}, Down, true},
		{"a alias", []Key{KeyA}, Left, true},
		{"d alias", []Key{KeyD}, Right, true},
		{"up beats down", []Key{KeyArrowDown, KeyW}, Up, true},
		{"down beats left", []Key{KeyA, KeyArrowDown}, Down, true},
		{"left beats right", []Key{KeyD, KeyArrowLeft}, Left, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ks KeySet
			for _, k := range tt.keys {
				ks = ks.Press(k)
			}
			got, ok := ks.Direction()
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Direction() = %s,%v want %s,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKeySetRelease(t *testing.T) {
	ks := KeySet(0).Press(KeyW).Press(KeyD).Release(KeyW)
	if ks.Has(KeyW) || !ks.Has(KeyD) {
		t.Fatalf("unexpected key set %08b", ks)
	}
}

func TestResolveMoveBlockedByWall(t *testing.T) {
	g, err := NewGrid([][]CellKind{
		{Wall, Wall, Wall, Wall},
		{Wall, Path, Wall, Wall},
		{Wall, Path, Path, Wall},
		{Wall, Wall, Wall, Wall},
	})
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	p := playerAt("me", 1, 1)
	p.Direction = Down

	moved, turned := ResolveMove(g, &p, KeySet(0).Press(KeyArrowRight))
	if moved || turned {
		t.Fatalf("move into wall accepted: moved=%v turned=%v", moved, turned)
	}
	if p.X != 30 || p.Y != 30 {
		t.Fatalf("position changed to (%v,%v)", p.X, p.Y)
	}
	if p.Direction != Down {
		t.Fatalf("direction = %s, want down", p.Direction)
	}
}

func TestResolveMoveAcceptsOpenCell(t *testing.T) {
	g := openGrid(t, 5, 5)
	p := playerAt("me", 2, 2)
	p.Direction = Up

	moved, turned := ResolveMove(g, &p, KeySet(0).Press(KeyD))
	if !moved || !turned {
		t.Fatalf("moved=%v turned=%v, want true,true", moved, turned)
	}
	if p.X != 50+Speed || p.Y != 50 {
		t.Fatalf("position = (%v,%v), want (%v,50)", p.X, p.Y, 50+Speed)
	}
	if p.Direction != Right {
		t.Fatalf("direction = %s, want right", p.Direction)
	}

	moved, turned = ResolveMove(g, &p, KeySet(0).Press(KeyD))
	if !moved || turned {
		t.Fatalf("second step moved=%v turned=%v, want true,false", moved, turned)
	}
}

func TestResolveMoveKeepsFacingWithoutKeys(t *testing.T) {
	g := openGrid(t, 5, 5)
	p := playerAt("me", 2, 2)
	p.Direction = Left

	if moved, _ := ResolveMove(g, &p, 0); !moved {
		t.Fatal("expected the player to keep moving left")
	}
	if p.X != 50-Speed {
		t.Fatalf("x = %v, want %v", p.X, 50-Speed)
	}
}

func TestResolveMoveRejectsOutOfBounds(t *testing.T) {
	g, err := NewGrid([][]CellKind{
		{Path, Path, Path},
		{Path, Path, Path},
		{Path, Path, Path},
	})
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	p := playerAt("me", 0, 0)
	p.Direction = Up
	if moved, _ := ResolveMove(g, &p, 0); moved {
		t.Fatal("move off the grid accepted")
	}
	if p.Y != 10 {
		t.Fatalf("y = %v, want 10", p.Y)
	}
}

func TestResolveMoveStopsAtCellCenterBeforeWall(t *testing.T) {
	g := openGrid(t, 3, 6) // interior row 1, cols 1..4
	p := playerAt("me", 1, 1)
	p.Direction = Right
	for range 200 {
		ResolveMove(g, &p, 0)
	}
	wantX, _ := CellCenter(1, 4)
	if p.X != wantX {
		t.Fatalf("x = %v, want %v", p.X, wantX)
	}
}
