package game

import (
	"testing"
	"time"
)

// openGrid returns a rows x cols grid with a wall border and empty interior.
func openGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	cells := make([][]CellKind, rows)
	for r := range rows {
		cells[r] = make([]CellKind, cols)
		for c := range cols {
			if r == 0 || r == rows-1 || c == 0 || c == cols-1 {
				cells[r][c] = Wall
			}
		}
	}
	g, err := NewGrid(cells)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return g
}

func playerAt(id string, row, col int) Player {
	x, y := CellCenter(row, col)
	return Player{ID: id, X: x, Y: y, Username: id, Color: DefaultColor, OriginalColor: DefaultColor}
}

type recordingEvents struct {
	cues     []Cue
	scores   []int
	rosters  [][]Player
	powerUps []PowerUp
}

func (r *recordingEvents) Cue(c Cue)                      { r.cues = append(r.cues, c) }
func (r *recordingEvents) ScoreChanged(score int)         { r.scores = append(r.scores, score) }
func (r *recordingEvents) RosterChanged(players []Player) { r.rosters = append(r.rosters, players) }
func (r *recordingEvents) PowerUpCollected(pu PowerUp)    { r.powerUps = append(r.powerUps, pu) }

func (r *recordingEvents) count(c Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
