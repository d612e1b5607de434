package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/beka-birhanu/pacmon-arena/game"
	"github.com/beka-birhanu/pacmon-arena/service/i"
)

// Renderer errors.
var (
	ErrMissingSession = errors.New("renderer needs a session")
)

const (
	labelSize     = 12
	pelletRadius  = 3
	playerRadius  = 15
	poweredRadius = 18
)

// Config configures a Game.
type Config struct {
	Session    i.Session
	PowerUpTTL time.Duration         // Defaults to game.PowerUpTTL.
	Now        func() time.Time      // Defaults to time.Now.
	Pressed    func(ebiten.Key) bool // Defaults to ebiten.IsKeyPressed.
}

// Game adapts a session to ebiten. Update advances the session one frame;
// Draw only reads a snapshot.
type Game struct {
	ctx     context.Context
	session i.Session
	ttl     time.Duration
	now     func() time.Time
	pressed func(ebiten.Key) bool
	face    *text.GoTextFace
}

// NewGame creates the ebiten adapter. Update returns ebiten.Termination once
// ctx is done.
func NewGame(ctx context.Context, c *Config) (*Game, error) {
	if c.Session == nil {
		return nil, ErrMissingSession
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	g := &Game{
		ctx:     ctx,
		session: c.Session,
		ttl:     c.PowerUpTTL,
		now:     c.Now,
		pressed: c.Pressed,
		face:    &text.GoTextFace{Source: src, Size: labelSize},
	}
	if g.ttl <= 0 {
		g.ttl = game.PowerUpTTL
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.pressed == nil {
		g.pressed = ebiten.IsKeyPressed
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.session.Tick(PollKeys(g.pressed), g.now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	now := g.now()

	screen.Fill(backgroundColor)
	g.drawMaze(screen, snap.Grid)
	g.drawPellets(screen, snap, now)
	g.drawPowerUps(screen, snap.PowerUps, now)
	for _, p := range snap.Players {
		g.drawPlayer(screen, p, now)
	}
	g.label(screen, Count(snap, now, g.ttl).String(), 8, 4, labelColor, text.AlignStart)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return game.CanvasWidth, game.CanvasHeight
}

func (g *Game) drawMaze(screen *ebiten.Image, grid *game.Grid) {
	if grid == nil {
		return
	}
	const size = float32(game.CellSize)
	for row := range grid.Rows() {
		for col := range grid.Cols() {
			if kind, _ := grid.At(row, col); kind != game.Wall {
				continue
			}
			x, y := float32(col)*size, float32(row)*size
			vector.DrawFilledRect(screen, x, y, size, size, wallFill, false)
			vector.StrokeRect(screen, x, y, size, size, 2, wallStroke, false)
		}
	}
}

func (g *Game) drawPellets(screen *ebiten.Image, snap game.Snapshot, now time.Time) {
	for _, p := range snap.Pellets {
		if p.Collected {
			continue
		}
		vector.FillCircle(screen, float32(p.X), float32(p.Y), pelletRadius, pelletColor, true)
	}

	pulse := float32(10 + math.Sin(float64(now.UnixMilli())*0.005))
	for _, p := range snap.PowerPellets {
		if p.Collected {
			continue
		}
		drawDiamond(screen, float32(p.X), float32(p.Y), pulse+4, powerPellet)
		drawDiamond(screen, float32(p.X), float32(p.Y), pulse-2, labelColor)
	}
}

func (g *Game) drawPowerUps(screen *ebiten.Image, powerUps []game.PowerUp, now time.Time) {
	pulse := float32(15 + 3*math.Sin(float64(now.UnixMilli())*0.01))
	for i := range powerUps {
		pu := &powerUps[i]
		if !pu.Live(now, g.ttl) {
			continue
		}
		left := pu.Remaining(now, g.ttl)
		alpha := fadeAlpha(left)
		x, y := float32(pu.X), float32(pu.Y)
		drawDiamond(screen, x, y, pulse+5, faded(powerUpColor, alpha))
		drawDiamond(screen, x, y, pulse-3, faded(labelColor, alpha))
		g.label(screen, countdownLabel(left), pu.X, pu.Y-35, labelColor, text.AlignCenter)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, p game.Player, now time.Time) {
	radius := float32(playerRadius)
	if p.IsPoweredUp {
		radius = poweredRadius
	}
	x, y := float32(p.X), float32(p.Y)

	facing := map[game.Direction]float64{
		game.Right: 0,
		game.Down:  math.Pi / 2,
		game.Left:  math.Pi,
		game.Up:    -math.Pi / 2,
	}[p.Direction]
	mouth := math.Abs(math.Sin(float64(now.UnixMilli())*0.01)) * 0.5

	var path vector.Path
	path.MoveTo(x, y)
	path.Arc(x, y, radius, float32(facing+mouth), float32(facing-mouth+2*math.Pi), vector.Clockwise)
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(playerColor(p.Color))
	vector.FillPath(screen, &path, nil, op)

	if p.PoweredAt(now) {
		vector.StrokeCircle(screen, x, y, radius+8, 4, powerUpColor, true)
		g.label(screen, countdownLabel(p.PowerUpEndTime.Sub(now)), p.X, p.Y-35, labelColor, text.AlignCenter)
	}
	g.label(screen, p.Username, p.X, p.Y-25-labelSize, labelColor, text.AlignCenter)
	g.label(screen, scoreLabel(p.Score), p.X, p.Y+25, labelColor, text.AlignCenter)
}

func (g *Game) label(screen *ebiten.Image, s string, x, y float64, c color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(screen, s, g.face, op)
}

// drawDiamond fills a square of half-size r rotated by 45 degrees.
func drawDiamond(screen *ebiten.Image, x, y, r float32, c color.Color) {
	if r <= 0 {
		return
	}
	var path vector.Path
	path.MoveTo(x, y-r)
	path.LineTo(x+r, y)
	path.LineTo(x, y+r)
	path.LineTo(x-r, y)
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(screen, &path, nil, op)
}
