package runner

import (
	"fmt"
	"math"
	"sort"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

// Visual characters for rendering
const (
	FloorChar    = '·'
	StripeChar   = ' '
	DividerChar  = ':'
	EdgeChar     = '│'
	PlayerChar   = '█'
	SlideChar    = '▄'
	CoffeeChar   = 'c'
	ShardChar    = '◆'
	CandleChar   = '┃'
	SignChar     = '▒'
	RubbleChar   = '▪'
	nearClipping = 0.5
)

var obstacleGlyphs = [numObstacleKinds]struct {
	r rune
	c core.Color
}{
	ObstaclePlain:         {'▓', core.ColorRed},
	ObstacleRequiresJump:  {'▀', core.ColorOrange},
	ObstacleSlowZone:      {'░', core.ColorBlue},
	ObstacleRequiresSlide: {'▬', core.ColorMagenta},
}

// projector maps world points onto the character grid through the camera.
type projector struct {
	cam     Camera
	w, h    int
	horizon int
	focal   float64
}

func newProjector(cam Camera, w, h int) projector {
	horizon := max(h/4, 2)
	// Put the floor under the player near the bottom row.
	focal := float64(h-3-horizon) * cameraBack / math.Max(cam.Pos.Y, 1)
	return projector{cam: cam, w: w, h: h, horizon: horizon, focal: focal}
}

func (p projector) depth(z float64) float64 {
	return p.cam.Pos.Z - z
}

// project returns the cell for a world point; ok is false behind the camera.
func (p projector) project(v core.Vec3) (col, row int, ok bool) {
	d := p.depth(v.Z)
	if d < nearClipping {
		return 0, 0, false
	}
	col = p.w/2 + int(math.Round((v.X-p.cam.Pos.X)*p.focal*2/d))
	row = p.horizon + int(math.Round((p.cam.Pos.Y-v.Y)*p.focal/d))
	return col, row, true
}

// Render draws the track, entities and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.player == nil {
		return
	}
	pr := newProjector(g.camera, dst.Width(), dst.Height())

	g.drawFloor(dst, pr)
	g.drawProps(dst, pr)
	g.drawObstacles(dst, pr)
	g.drawCollectibles(dst, pr)
	g.drawPlayer(dst, pr)
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver && g.summary != nil {
		title := "RUGGED"
		if g.summary.NewBest {
			title = "NEW BEST!"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  Shards: %d  |  R to restart", g.summary.Score, g.summary.Shards))
	}
}

func (g *Game) drawFloor(dst *core.Screen, pr projector) {
	half := g.cfg.World.FloorWidth / 2
	var dividers []float64
	if chunks := g.world.Chunks(); len(chunks) > 0 {
		dividers = chunks[0].Dividers
	}

	for row := pr.horizon + 1; row < pr.h; row++ {
		d := pr.cam.Pos.Y * pr.focal / float64(row-pr.horizon)
		z := pr.cam.Pos.Z - d
		left, _, okL := pr.project(core.Vec3{X: -half, Z: z})
		right, _, okR := pr.project(core.Vec3{X: half, Z: z})
		if !okL || !okR {
			continue
		}
		fill := FloorChar
		if int(math.Floor(z/4))%2 == 0 {
			fill = StripeChar
		}
		for col := max(left, 0); col <= min(right, pr.w-1); col++ {
			dst.SetColor(col, row, fill, core.ColorSlate)
		}
		for _, x := range dividers {
			col, _, _ := pr.project(core.Vec3{X: x, Z: z})
			dst.SetColor(col, row, DividerChar, core.ColorGray)
		}
		dst.SetColor(left, row, EdgeChar, core.ColorCyan)
		dst.SetColor(right, row, EdgeChar, core.ColorCyan)
	}
}

func (g *Game) drawProps(dst *core.Screen, pr projector) {
	for _, c := range g.world.Chunks() {
		for _, p := range c.Props {
			col, base, ok := pr.project(p.Pos)
			if !ok || base <= pr.horizon {
				continue
			}
			_, top, _ := pr.project(core.Vec3{X: p.Pos.X, Y: p.Height, Z: p.Pos.Z})
			switch p.Kind {
			case PropCandle:
				color := core.ColorGreen
				if int(p.Height*10)%2 == 0 {
					color = core.ColorDarkRed
				}
				dst.DrawVLine(col, top, base-top+1, CandleChar, color)
			case PropSign:
				dst.DrawVLine(col, top, base-top+1, SignChar, core.ColorYellow)
			case PropRubble:
				dst.SetColor(col, base, RubbleChar, core.ColorGray)
			}
		}
	}
}

// drawBox fills the projected front face of a box at its centre depth.
func drawBox(dst *core.Screen, pr projector, b core.AABB, glyph rune, color core.Color) {
	z := (b.Min.Z + b.Max.Z) / 2
	x0, y1, ok0 := pr.project(core.Vec3{X: b.Min.X, Y: b.Min.Y, Z: z})
	x1, y0, ok1 := pr.project(core.Vec3{X: b.Max.X, Y: b.Max.Y, Z: z})
	if !ok0 || !ok1 {
		return
	}
	w := max(x1-x0, 1)
	h := max(y1-y0, 1)
	dst.DrawRect(core.NewRect(x0, y0, w, h), glyph, color)
}

func (g *Game) drawObstacles(dst *core.Screen, pr projector) {
	live := append([]Handle(nil), g.obstacles.Live()...)
	// Far to near so closer obstacles overdraw.
	sort.Slice(live, func(i, j int) bool {
		return g.obstacles.Get(live[i]).Pos.Z < g.obstacles.Get(live[j]).Pos.Z
	})
	for _, h := range live {
		o := g.obstacles.Get(h)
		gl := obstacleGlyphs[o.Kind]
		drawBox(dst, pr, g.obstacles.Bounds(o), gl.r, gl.c)
	}
}

func (g *Game) drawCollectibles(dst *core.Screen, pr projector) {
	for _, h := range g.collectibles.Live() {
		c := g.collectibles.Get(h)
		col, row, ok := pr.project(c.Pos)
		if !ok {
			continue
		}
		switch c.Kind {
		case CollectibleCoffee:
			dst.SetColor(col, row, CoffeeChar, core.ColorOrange)
		case CollectibleShard:
			color := core.ColorBrightCyan
			if math.Sin(c.Spin) < 0 {
				color = core.ColorCyan
			}
			dst.SetColor(col, row, ShardChar, color)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, pr projector) {
	glyph := PlayerChar
	if g.player.Sliding() {
		glyph = SlideChar
	}
	color := core.ColorWhite
	switch {
	case g.player.Flashing():
		color = core.ColorBrightRed
	case g.player.SlowFactor() < 1:
		color = core.ColorBlue
	}
	drawBox(dst, pr, g.player.Bounds(), glyph, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf(" Score: %d  x%d  ◆ %d ", g.score.Score(), g.score.Multiplier(), g.score.Shards())
	dst.DrawTextColor(1, 0, left, core.ColorBrightYellow)

	right := fmt.Sprintf(" Spd: %.1f  Best: %d ", g.speed, g.best)
	if g.practice {
		right = " PRACTICE " + right
	}
	dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, core.ColorGray)

	if g.lastQuip != "" && !g.gameOver {
		dst.DrawTextCentered(1, g.lastQuip, core.ColorMagenta)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorCyan)
	dst.DrawTextCentered(r.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(r.Y+3, subtitle, core.ColorWhite)
}
