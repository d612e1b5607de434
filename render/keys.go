package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/beka-birhanu/pacmon-arena/game"
)

var keyBindings = []struct {
	ebiten ebiten.Key
	game   game.Key
}{
	{ebiten.KeyArrowUp, game.KeyArrowUp},
	{ebiten.KeyArrowDown, game.KeyArrowDown},
	{ebiten.KeyArrowLeft, game.KeyArrowLeft},
	{ebiten.KeyArrowRight, game.KeyArrowRight},
	{ebiten.KeyW, game.KeyW},
	{ebiten.KeyS, game.KeyS},
	{ebiten.KeyA, game.KeyA},
	{ebiten.KeyD, game.KeyD},
}

// PollKeys builds the held key set from pressed, usually ebiten.IsKeyPressed.
func PollKeys(pressed func(ebiten.Key) bool) game.KeySet {
	var keys game.KeySet
	for _, b := range keyBindings {
		if pressed(b.ebiten) {
			keys = keys.Press(b.game)
		}
	}
	return keys
}
