package game

import (
	"errors"
	"math"
	"math/rand/v2"
)

// Maze-related errors.
var (
	ErrNotBigEnoughDimension = errors.New("dimension is not big enough")
)

const minDimension = 3 // Minimum maze dimension (rows or cols).

// CellKind is the content of one grid cell.
type CellKind uint8

const (
	Path CellKind = iota
	Wall
	PelletCell
	PowerPelletCell
)

func (k CellKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case PelletCell:
		return "pellet"
	case PowerPelletCell:
		return "power-pellet"
	default:
		return "path"
	}
}

// Grid is the collidable maze of one session. It is not mutated after
// generation; collected pellets are tracked in the Store.
type Grid struct {
	rows  int
	cols  int
	cells [][]CellKind
}

// NewGrid builds a grid from explicit rows of cells. All rows must have the
// same length.
func NewGrid(cells [][]CellKind) (*Grid, error) {
	if len(cells) < minDimension || len(cells[0]) < minDimension {
		return nil, ErrNotBigEnoughDimension
	}
	cols := len(cells[0])
	cp := make([][]CellKind, len(cells))
	for r, row := range cells {
		if len(row) != cols {
			return nil, errors.New("grid rows have different lengths")
		}
		cp[r] = append([]CellKind(nil), row...)
	}
	return &Grid{rows: len(cells), cols: cols, cells: cp}, nil
}

// GenerateMaze lays out a rows x cols grid. Border cells are walls, interior
// cells on the lattice are walls, and the rest are rolled as power pellet,
// pellet or empty path in that order.
func GenerateMaze(rows, cols int, rng *rand.Rand) (*Grid, error) {
	if rows < minDimension || cols < minDimension {
		return nil, ErrNotBigEnoughDimension
	}

	cells := make([][]CellKind, rows)
	for r := range rows {
		cells[r] = make([]CellKind, cols)
		for c := range cols {
			switch {
			case r == 0 || r == rows-1 || c == 0 || c == cols-1:
				cells[r][c] = Wall
			case latticeWall(r, c):
				cells[r][c] = Wall
			case rng.Float64() < PowerPelletChance:
				cells[r][c] = PowerPelletCell
			case rng.Float64() < PelletChance:
				cells[r][c] = PelletCell
			default:
				cells[r][c] = Path
			}
		}
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

func latticeWall(r, c int) bool {
	return (r%4 == 0 && c%6 == 0) || (r%6 == 0 && c%4 == 0)
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBound reports whether (row, col) lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the kind of the cell at (row, col). ok is false outside the grid.
func (g *Grid) At(row, col int) (kind CellKind, ok bool) {
	if !g.InBound(row, col) {
		return Wall, false
	}
	return g.cells[row][col], true
}

// Blocked reports whether (row, col) cannot be entered. Cells outside the
// grid are blocked.
func (g *Grid) Blocked(row, col int) bool {
	kind, ok := g.At(row, col)
	return !ok || kind == Wall
}

// Pellets returns fresh pellet and power pellet lists at the pixel centers of
// their cells, in row-major order.
func (g *Grid) Pellets() (pellets, powerPellets []Pellet) {
	for r := range g.rows {
		for c := range g.cols {
			x, y := CellCenter(r, c)
			switch g.cells[r][c] {
			case PelletCell:
				pellets = append(pellets, Pellet{X: x, Y: y})
			case PowerPelletCell:
				powerPellets = append(powerPellets, Pellet{X: x, Y: y})
			}
		}
	}
	return pellets, powerPellets
}

// RandomOpenCell picks a random interior cell that is not a wall. It gives up
// after attempts tries.
func (g *Grid) RandomOpenCell(rng *rand.Rand, attempts int) (row, col int, ok bool) {
	if g.rows < minDimension || g.cols < minDimension {
		return 0, 0, false
	}
	for range attempts {
		col = rng.IntN(g.cols-2) + 1
		row = rng.IntN(g.rows-2) + 1
		if !g.Blocked(row, col) {
			return row, col, true
		}
	}
	return 0, 0, false
}

// CellCenter converts grid coordinates to the pixel center of the cell.
func CellCenter(row, col int) (x, y float64) {
	return float64(col*CellSize) + CellSize/2, float64(row*CellSize) + CellSize/2
}

// CellOf converts a pixel position to grid coordinates.
func CellOf(x, y float64) (row, col int) {
	return int(math.Floor(y / CellSize)), int(math.Floor(x / CellSize))
}
