package starfield

import (
	"fmt"
	"math"

	"github.com/vovakirdan/starcatcher/internal/core"
)

// Visual characters for rendering
var (
	// ShipGlyphs by heading sector, starting at 0 rad (east) and turning
	// clockwise on screen.
	ShipGlyphs = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	// StarFrames are cycled to animate stars.
	StarFrames = []rune{'*', '+', '·', '+'}
)

const (
	minScreenW = 20
	minScreenH = 6
	frameMs    = 100 // Star animation frame length
)

// starView is what the renderer needs to know about a star.
type starView struct {
	id    uint64
	pos   core.Vec2
	color core.Color
}

// scene is a frame-independent description of what to draw.
type scene struct {
	width, height float64 // World size
	shipPos       core.Vec2
	heading       float64
	stars         []starView
	score         int
	tick          int
	tickRate      int
	remaining     int // Seconds left, -1 when unlimited
	paused        bool
	over          bool
}

// ShipGlyph returns the arrow closest to heading.
func ShipGlyph(heading float64) rune {
	a := math.Mod(heading, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	sector := int(math.Floor(a/(math.Pi/4)+0.5)) % len(ShipGlyphs)
	return ShipGlyphs[sector]
}

// StarFrame returns the star glyph for a tick. IDs offset the cycle so stars
// do not blink in lockstep.
func StarFrame(id uint64, tick, tickRate int) rune {
	if tickRate <= 0 {
		tickRate = 60
	}
	ms := tick * 1000 / tickRate
	return StarFrames[(uint64(ms/frameMs)+id)%uint64(len(StarFrames))]
}

// project maps a world position to a screen cell. Row 0 is the HUD.
func (sc *scene) project(dst *core.Screen, p core.Vec2) (int, int) {
	w, h := dst.Width(), dst.Height()-1
	x := int(p.X / sc.width * float64(w))
	y := int(p.Y / sc.height * float64(h))
	return core.Clamp(x, 0, w-1), 1 + core.Clamp(y, 0, h-1)
}

func (sc *scene) render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	for _, s := range sc.stars {
		x, y := sc.project(dst, s.pos)
		dst.SetColored(x, y, StarFrame(s.id, sc.tick, sc.tickRate), s.color)
	}

	x, y := sc.project(dst, sc.shipPos)
	dst.SetColored(x, y, ShipGlyph(sc.heading), core.ColorBrightWhite)

	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", sc.score), core.ColorYellow)
	if sc.remaining >= 0 {
		text := fmt.Sprintf("Time: %d", sc.remaining)
		dst.DrawText(dst.Width()-len(text)-1, 0, text)
	}

	switch {
	case sc.over:
		drawCenteredMessage(dst, "SESSION OVER", fmt.Sprintf("Score: %d  |  Press R to restart", sc.score))
	case sc.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a centered message box.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
