package game

// Key is one of the movement keys the client listens to.
type Key uint8

const (
	KeyArrowUp Key = iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyW
	KeyS
	KeyA
	KeyD
)

// KeySet is the set of currently held movement keys.
type KeySet uint8

// Press returns the set with k held.
func (ks KeySet) Press(k Key) KeySet { return ks | 1<<k }

// Release returns the set with k released.
func (ks KeySet) Release(k Key) KeySet { return ks &^ (1 << k) }

// Has reports whether k is held.
func (ks KeySet) Has(k Key) bool { return ks&(1<<k) != 0 }

// directionKeys lists the aliases per direction in priority order.
var directionKeys = []struct {
	dir  Direction
	keys [2]Key
}{
	{Up, [2]Key{KeyArrowUp, KeyW}},
	{Down, [2]Key{KeyArrowDown, KeyS}},
	{Left, [2]Key{KeyArrowLeft, KeyA}},
	{Right, [2]Key{KeyArrowRight, KeyD}},
}

// Direction picks at most one direction from the held keys, preferring up,
// then down, left and right.
func (ks KeySet) Direction() (Direction, bool) {
	for _, dk := range directionKeys {
		if ks.Has(dk.keys[0]) || ks.Has(dk.keys[1]) {
			return dk.dir, true
		}
	}
	return Right, false
}

// probeReach is how far ahead of the candidate position the leading edge of
// the player is checked against the grid. It stops one pixel short of the
// next cell so a player can still settle on a cell center next to a wall.
const probeReach = CellSize/2 - 1

// ResolveMove advances p one tick. The requested direction comes from keys,
// falling back to p's facing when nothing is held. The move is applied only if
// the cell under the leading edge of the candidate position can be entered;
// a blocked move leaves position and direction untouched. It reports whether
// p moved and whether its direction changed.
func ResolveMove(g *Grid, p *Player, keys KeySet) (moved, turned bool) {
	dir := p.Direction
	if d, ok := keys.Direction(); ok {
		dir = d
	}

	dx, dy := dir.delta()
	nx := p.X + dx*Speed
	ny := p.Y + dy*Speed

	row, col := CellOf(nx+dx*probeReach, ny+dy*probeReach)
	if g.Blocked(row, col) {
		return false, false
	}

	turned = dir != p.Direction
	p.X, p.Y = nx, ny
	p.Direction = dir
	return true, turned
}
