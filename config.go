package main

import "time"

// Window, timing and audio constants for the strip demo. The physics defaults
// live in the water package; these only shape how the strip is shown and heard.
const (
	screenW, screenH         = 960, 540
	windowScale              = 1
	viewMargin               = 0.05
	surfaceLine              = 0.35
	depthFraction            = 0.6
	dropHeight               = 4.0
	bodyMassStep             = 0.5
	minBodyMass              = 0.25
	maxBodyMass              = 50.0
	pgoRecordDuration        = 15 * time.Second
	audioSampleRate          = 48000
	audioPlayerBufferLatency = 80 * time.Millisecond
	centerAudioGain          = 4.0
	splashVoices             = 8
	fullVolumeMomentum       = 40.0
	defaultSweepTicks        = 3000
	pcm16MaxValue            = 32767
)
