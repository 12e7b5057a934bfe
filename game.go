package main

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"surfacewave/pond"
	"surfacewave/trace"
	"surfacewave/water"
)

// Game drives one scene at a fixed tick rate and presents it in a window.
type Game struct {
	scene *pond.Scene

	paused   bool
	stepOnce bool
	dropMass float64

	lastSimDuration time.Duration
	splashCount     int

	autoDrop *pond.AutoDropper
	stopPGO  func()

	gpuSolver *water.OpenCLSolver
	recorder  *trace.Recorder

	audioCtx    *audio.Context
	audioStream *centerAudioStream
	audioPlayer *audio.Player
	splash      *splashSound

	nodes    []water.Node
	vertices []ebiten.Vertex
	indices  []uint16
}

// newGame builds the scene and the optional device solver, recorder and audio.
func newGame(s pond.Settings) (*Game, error) {
	scene, err := pond.NewScene(s)
	if err != nil {
		return nil, err
	}
	g := &Game{
		scene:    scene,
		dropMass: s.BodyMass,
		autoDrop: pond.NewAutoDropper(time.Now().UnixNano()),
	}
	g.autoDrop.Height = dropHeight
	scene.OnSplash = g.onSplash

	if *openCLFlag {
		g.attachOpenCL()
	}
	if *recordWavFlag != "" {
		f := scene.Field()
		rec, err := trace.NewRecorder(*recordWavFlag, f.Len()/2, *recordGainFlag, s.TPS)
		if err != nil {
			return nil, err
		}
		g.recorder = rec
		log.Printf("Recording centre node to %s", *recordWavFlag)
	}
	if *enableAudioFlag || *splashWavFlag != "" {
		g.audioCtx = audio.NewContext(audioSampleRate)
	}
	if *enableAudioFlag {
		stream := newCenterAudioStream(centerAudioGain)
		g.audioStream = stream
		if player, err := g.audioCtx.NewPlayer(stream); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioPlayerBufferLatency)
			g.audioPlayer.Play()
		}
	}
	if *splashWavFlag != "" {
		snd, err := loadSplashSound(g.audioCtx, *splashWavFlag)
		if err != nil {
			log.Printf("Splash sample disabled: %v", err)
		} else {
			g.splash = snd
		}
	}
	return g, nil
}

// attachOpenCL moves stepping onto the device, keeping the CPU step when no
// device is usable.
func (g *Game) attachOpenCL() {
	if g.gpuSolver != nil {
		g.gpuSolver.Close()
		g.gpuSolver = nil
		g.scene.SetStepper(nil)
	}
	solver, err := water.NewOpenCLSolver(g.scene.Field().Len())
	if err != nil {
		log.Printf("OpenCL unavailable, stepping on the CPU: %v", err)
		return
	}
	log.Printf("OpenCL solver enabled (device: %s)", solver.DeviceName())
	g.gpuSolver = solver
	g.scene.SetStepper(func(f *water.Field) error { return solver.Step(f, 1) })
}

// Update runs at most one scene tick, honouring pause and single-step.
func (g *Game) Update() error {
	now := time.Now()
	if g.stopPGO != nil && !g.autoDrop.Active(now) {
		g.stopPGO()
		g.stopPGO = nil
		log.Printf("Finished recording default.pgo")
		return ebiten.Termination
	}

	g.handleInput()

	if g.paused && !g.stepOnce {
		return nil
	}
	g.stepOnce = false

	g.autoDrop.Update(now, g.scene)
	simStart := time.Now()
	if err := g.scene.Update(); err != nil {
		return err
	}
	g.lastSimDuration = time.Since(simStart)

	f := g.scene.Field()
	if g.audioStream != nil {
		g.audioStream.Push(f.HeightAt(f.Len() / 2))
	}
	if g.recorder != nil {
		g.recorder.Sample(f)
	}
	return nil
}

func (g *Game) onSplash(s water.Splash) {
	g.splashCount++
	if g.splash != nil {
		g.splash.Play(s)
	}
}

// rebuild rebuilds the strip from cfg; a rejected config keeps the old strip.
func (g *Game) rebuild(cfg water.Config) {
	if err := g.scene.Rebuild(cfg); err != nil {
		log.Printf("Rebuild rejected: %v", err)
		return
	}
	f := g.scene.Field()
	if g.gpuSolver != nil {
		g.attachOpenCL()
	}
	if g.recorder != nil {
		g.recorder.SetNode(f.Len() / 2)
	}
	log.Printf("Rebuilt strip: %d edges over %.1f units", f.EdgeCount(), cfg.Width)
}

// adjustDropMass clamps the mass given to new bodies.
func (g *Game) adjustDropMass(delta float64) {
	g.dropMass = math.Max(minBodyMass, math.Min(maxBodyMass, g.dropMass+delta))
}

// Close flushes the recorder and releases device and audio resources.
func (g *Game) Close() {
	if g.stopPGO != nil {
		g.stopPGO()
		g.stopPGO = nil
	}
	if g.recorder != nil {
		if err := g.recorder.Close(); err != nil {
			log.Printf("Writing %s failed: %v", *recordWavFlag, err)
		} else {
			log.Printf("Wrote %d samples to %s", g.recorder.Len(), *recordWavFlag)
		}
		g.recorder = nil
	}
	if g.gpuSolver != nil {
		g.gpuSolver.Close()
		g.gpuSolver = nil
	}
	if g.splash != nil {
		g.splash.Close()
	}
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
}
