package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"surfacewave/console"
)

func main() {
	flag.Parse()
	if err := physicsFlags.ApplyEnv(*envFileFlag); err != nil {
		log.Fatalf("Environment configuration failed: %v", err)
	}
	cfg := physicsFlags.Scene()
	if err := cfg.Water.Validate(); err != nil {
		log.Fatalf("Invalid strip configuration: %v", err)
	}

	switch {
	case *sweepFlag:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := console.RunSweepReport(ctx, cfg.Water, *sweepTicksFlag, os.Stdout)
		stop()
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		return
	case *tuiFlag:
		if err := console.RunTUI(cfg); err != nil {
			log.Fatalf("Terminal frontend failed: %v", err)
		}
		return
	}

	g, err := newGame(cfg)
	if err != nil {
		log.Fatalf("Game initialization failed: %v", err)
	}
	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording("default.pgo")
		if err != nil {
			g.Close()
			log.Fatalf("PGO recording failed: %v", err)
		}
		g.stopPGO = stop
		g.autoDrop.Enable(time.Now(), pgoRecordDuration)
	}

	ebiten.SetWindowSize(screenW*windowScale, screenH*windowScale)
	ebiten.SetWindowTitle("Surface Wave")
	ebiten.SetTPS(cfg.TPS)
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
