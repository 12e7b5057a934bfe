package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput maps mouse and keyboard onto scene actions.
func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		x, y := viewFor(g.scene.Field().Config()).toWorld(cx, cy)
		g.scene.Drop(x, y, g.dropMass)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rebuild(g.scene.Settings().Water)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.resize(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.resize(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustDropMass(-bodyMassStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustDropMass(bodyMassStep)
	}
}

// resize rebuilds the strip one world unit wider or narrower.
func (g *Game) resize(delta float64) {
	cfg := g.scene.Settings().Water
	cfg.Width += delta
	g.rebuild(cfg)
}
