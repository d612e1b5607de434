package remote

import "github.com/beka-birhanu/pacmon-arena/game"

// Merge combines a pulled roster with the local current player. The result
// keeps the order and id set of the remote roster, one entry per id with the
// first occurrence winning. The current player's entry is always the local
// copy, appended when the remote roster lacks it. Every other entry is the
// remote copy as is.
func Merge(current game.Player, roster []game.Player) []game.Player {
	merged := make([]game.Player, 0, len(roster)+1)
	seen := make(map[string]struct{}, len(roster)+1)
	for _, p := range roster {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if p.ID == current.ID {
			p = current
		}
		merged = append(merged, p)
	}
	if _, ok := seen[current.ID]; !ok {
		merged = append(merged, current)
	}
	return merged
}
