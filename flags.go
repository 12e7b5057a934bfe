package main

import (
	"flag"

	"surfacewave/settings"
)

// Command-line flags. Physics flags live in the settings package and may be
// seeded from SURFACEWAVE_* environment variables.
var (
	physicsFlags = settings.Register(flag.CommandLine)

	envFileFlag = flag.String("env-file", ".env", "optional dotenv file with SURFACEWAVE_* defaults")

	// tuiFlag runs the terminal frontend instead of opening a window.
	tuiFlag = flag.Bool("tui", false, "run in the terminal instead of a window")

	// sweepFlag prints a stability table around the configured parameters and exits.
	sweepFlag      = flag.Bool("sweep", false, "sweep spring/damping/spread around the configuration and print a report")
	sweepTicksFlag = flag.Int("sweep-ticks", defaultSweepTicks, "ticks simulated per sweep case")

	// recordWavFlag traces the centre node into a WAV file at the tick rate.
	recordWavFlag  = flag.String("record-wav", "", "write the centre node height to this WAV file on exit")
	recordGainFlag = flag.Float64("record-gain", 1, "gain applied to recorded heights")

	// enableAudioFlag sonifies the centre node height.
	enableAudioFlag = flag.Bool("enable-audio", false, "play the centre node height as audio")

	// splashWavFlag plays a sample on every splash.
	splashWavFlag = flag.String("splash-wav", "", "WAV sample played on each splash")

	// openCLFlag steps the strip on an OpenCL device when built with -tags opencl.
	openCLFlag = flag.Bool("opencl", false, "step the strip with the OpenCL solver")

	// recordDefaultPGO drops bodies automatically while capturing default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "drop bodies randomly for 15s while capturing default.pgo")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")
)
