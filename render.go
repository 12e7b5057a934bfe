package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"surfacewave/water"
)

// Each quad takes four vertices; uint16 indices cap one batch.
const maxQuadsPerBatch = math.MaxUint16 / 4

var (
	skyColor     = color.RGBA{16, 20, 32, 255}
	surfaceColor = color.RGBA{170, 220, 255, 255}
	bodyColor    = color.RGBA{240, 190, 90, 255}
	waterTop     = [4]float32{0.25, 0.55, 0.85, 0.9}
	waterBottom  = [4]float32{0.02, 0.10, 0.25, 0.95}

	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// viewport maps world units onto the logical screen, y up.
type viewport struct {
	originX  float64
	surfaceY float64
	scale    float64
}

// viewFor fits the strip's width and depth inside the screen margins.
func viewFor(cfg water.Config) viewport {
	usableW := screenW * (1 - 2*viewMargin)
	scale := math.Min(usableW/cfg.Width, screenH*depthFraction/cfg.Height)
	return viewport{
		originX:  screenW*viewMargin + (usableW-cfg.Width*scale)/2 - cfg.Left*scale,
		surfaceY: screenH * surfaceLine,
		scale:    scale,
	}
}

func (v viewport) toScreen(x, y float64) (float32, float32) {
	return float32(v.originX + x*v.scale), float32(v.surfaceY - y*v.scale)
}

func (v viewport) toWorld(sx, sy int) (float64, float64) {
	return (float64(sx) - v.originX) / v.scale, (v.surfaceY - float64(sy)) / v.scale
}

// Draw renders the strip, bodies, splash markers and the optional overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	f := g.scene.Field()
	v := viewFor(f.Config())
	g.nodes = f.Nodes(g.nodes)

	g.drawWater(screen, v, -f.Config().Height)
	g.drawSurface(screen, v)
	g.drawSplashes(screen, v)
	g.drawBodies(screen, v)

	ebitenutil.DebugPrintAt(screen, "click drop  P pause  N step  R rebuild  [/] width  +/- mass", 8, screenH-20)
	if *debugFlag {
		g.drawDebug(screen, f)
	}
}

// drawWater submits one quad per edge: top corners on the node heights,
// bottom corners on the strip floor.
func (g *Game) drawWater(screen *ebiten.Image, v viewport, floor float64) {
	edges := len(g.nodes) - 1
	for start := 0; start < edges; start += maxQuadsPerBatch {
		end := min(start+maxQuadsPerBatch, edges)
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
		for i := start; i < end; i++ {
			a, b := g.nodes[i], g.nodes[i+1]
			base := uint16(len(g.vertices))
			g.vertices = append(g.vertices,
				waterVertex(v, a.X, a.Y, waterTop),
				waterVertex(v, b.X, b.Y, waterTop),
				waterVertex(v, a.X, floor, waterBottom),
				waterVertex(v, b.X, floor, waterBottom),
			)
			g.indices = append(g.indices, base, base+1, base+2, base+1, base+3, base+2)
		}
		op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
		screen.DrawTriangles(g.vertices, g.indices, whiteSubImage, op)
	}
}

func waterVertex(v viewport, x, y float64, c [4]float32) ebiten.Vertex {
	sx, sy := v.toScreen(x, y)
	return ebiten.Vertex{
		DstX:   sx,
		DstY:   sy,
		SrcX:   1,
		SrcY:   1,
		ColorR: c[0],
		ColorG: c[1],
		ColorB: c[2],
		ColorA: c[3],
	}
}

func (g *Game) drawSurface(screen *ebiten.Image, v viewport) {
	for i := 0; i+1 < len(g.nodes); i++ {
		x0, y0 := v.toScreen(g.nodes[i].X, g.nodes[i].Y)
		x1, y1 := v.toScreen(g.nodes[i+1].X, g.nodes[i+1].Y)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, surfaceColor, true)
	}
}

func (g *Game) drawBodies(screen *ebiten.Image, v viewport) {
	for _, b := range g.scene.Bodies() {
		cx, cy := v.toScreen(b.Pos.X, b.Pos.Y)
		r := float32(b.Radius * v.scale)
		vector.DrawFilledCircle(screen, cx, cy, r, bodyColor, true)
	}
}

// drawSplashes draws a ring per live splash that widens and fades with age.
func (g *Game) drawSplashes(screen *ebiten.Image, v viewport) {
	life := float64(max(g.scene.Settings().SplashTicks, 1))
	for _, m := range g.scene.Splashes() {
		t := float64(m.Age) / life
		cx, cy := v.toScreen(m.X, 0)
		r := float32((0.2 + t*(0.3+splashVolume(m.Momentum))) * v.scale)
		alpha := uint8(255 * (1 - t))
		clr := color.RGBA{alpha, alpha, alpha, alpha}
		vector.StrokeCircle(screen, cx, cy, r, 2, clr, true)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image, f *water.Field) {
	solver := "cpu"
	if g.gpuSolver != nil {
		solver = g.gpuSolver.DeviceName()
	}
	state := "running"
	if g.paused {
		state = "paused"
	}
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f (%s)\nTick: %d  Edges: %d  Solver: %s\nBodies: %d  Splashes: %d  Drop mass: %.2f\nEnergy: %.4f  Max |y|: %.4f\nSim: %.3f ms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), state,
		f.Tick(), f.EdgeCount(), solver,
		len(g.scene.Bodies()), g.splashCount, g.dropMass,
		f.Energy(), f.MaxDisplacement(),
		g.lastSimDuration.Seconds()*1000)
	ebitenutil.DebugPrint(screen, msg)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenW, screenH }
