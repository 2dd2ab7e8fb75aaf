// Package render draws a debug PNG snapshot of a GameState: the 26x15
// pitch, both endzones, every player as a coloured disc, and the ball.
// Adapted from the teacher's frame renderer (internal/streaming/
// stream.go drawBackground/drawGrid/drawPlayer) which drew a real-time
// arena via fogleman/gg — here there is no video stream, only an
// on-demand debug image (Frame, or SavePNG to write it to a file), so
// the per-frame optimizations (reusable buffers, snapshot fast paths) are
// dropped in favour of one gg.Context built fresh per call.
package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fogleman/gg"

	"gridbowl/internal/geometry"
	"gridbowl/internal/state"
)

const squarePx = 32

// Width and Height are the canvas dimensions in pixels for the full 26x15
// pitch at squarePx-per-square resolution.
var (
	Width  = geometry.PitchWidth * squarePx
	Height = geometry.PitchHeight * squarePx
)

var sideColor = map[state.Side]color.RGBA{
	state.Home: {83, 255, 69, 255},
	state.Away: {255, 98, 98, 255},
}

// Frame renders g to an image.Image; SavePNG encodes it as PNG.
func Frame(g *state.GameState) image.Image {
	dc := gg.NewContext(Width, Height)

	drawBackground(dc)
	drawGrid(dc)
	drawEndzones(dc)

	for _, p := range g.Players {
		if !p.OnPitch {
			continue
		}
		drawPlayer(dc, p)
	}

	if g.Ball.Status != state.BallOffPitch {
		drawBall(dc, g.Ball)
	}

	return dc.Image()
}

// SavePNG renders g and writes it to path.
func SavePNG(g *state.GameState, path string) error {
	return gg.SavePNG(path, Frame(g))
}

func drawBackground(dc *gg.Context) {
	dc.SetColor(color.RGBA{12, 40, 12, 255})
	dc.DrawRectangle(0, 0, float64(Width), float64(Height))
	dc.Fill()
}

func drawGrid(dc *gg.Context) {
	dc.SetColor(color.RGBA{30, 70, 30, 255})
	dc.SetLineWidth(1)
	for x := 0; x <= geometry.PitchWidth; x++ {
		px := float64(x * squarePx)
		dc.DrawLine(px, 0, px, float64(Height))
		dc.Stroke()
	}
	for y := 0; y <= geometry.PitchHeight; y++ {
		py := float64(y * squarePx)
		dc.DrawLine(0, py, float64(Width), py)
		dc.Stroke()
	}
}

func drawEndzones(dc *gg.Context) {
	dc.SetColor(color.RGBA{60, 20, 20, 160})
	dc.DrawRectangle(float64(geometry.HomeEndzoneX*squarePx), 0, squarePx, float64(Height))
	dc.Fill()
	dc.DrawRectangle(float64(geometry.AwayEndzoneX*squarePx), 0, squarePx, float64(Height))
	dc.Fill()
}

func drawPlayer(dc *gg.Context, p *state.Player) {
	cx := float64(p.Pos.X*squarePx) + squarePx/2
	cy := float64(p.Pos.Y*squarePx) + squarePx/2
	radius := float64(squarePx/2 - 3)

	dc.SetColor(color.RGBA{0, 0, 0, 100})
	dc.DrawCircle(cx, cy+2, radius)
	dc.Fill()

	fill := sideColor[p.Side]
	if p.State == state.Prone || p.State == state.Stunned {
		fill.A = 140
	}
	dc.SetColor(fill)
	dc.DrawCircle(cx, cy, radius)
	dc.Fill()

	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()

	dc.SetColor(color.RGBA{20, 20, 20, 255})
	if err := dc.LoadFontFace(fontPath(), 12); err == nil {
		dc.DrawStringAnchored(strconv.Itoa(p.ID), cx, cy, 0.5, 0.5)
	}
}

func drawBall(dc *gg.Context, b state.Ball) {
	cx := float64(b.Pos.X*squarePx) + squarePx/2
	cy := float64(b.Pos.Y*squarePx) + squarePx/2
	dc.SetColor(color.RGBA{222, 184, 135, 255})
	dc.DrawCircle(cx, cy, 6)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawCircle(cx, cy, 6)
	dc.Stroke()
}

// fontPath probes common system font locations, same fallback ladder the
// teacher's getFontPath used — drawPlayer skips DrawStringAnchored when
// LoadFontFace fails, so a missing font degrades to unlabeled discs
// instead of an error.
func fontPath() string {
	candidates := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"C:\\Windows\\Fonts\\arial.ttf",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	matches, _ := filepath.Glob("*.ttf")
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}
