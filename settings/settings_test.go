package settings

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"surfacewave/pond"
)

func newFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestDefaultsMatchReferenceScene(t *testing.T) {
	if got, want := newFlags(t).Scene(), pond.DefaultSettings(); got != want {
		t.Fatalf("scene = %+v, want %+v", got, want)
	}
}

func TestFlagsReachScene(t *testing.T) {
	s := newFlags(t, "-spring=0.5", "-node-density=2", "-defer-impulses", "-tps=30").Scene()
	if s.Water.SpringConstant != 0.5 || s.Water.NodeDensity != 2 || !s.Water.DeferImpulses || s.TPS != 30 {
		t.Fatalf("scene = %+v", s)
	}
}

func TestEnvFillsUnsetFlagsOnly(t *testing.T) {
	t.Setenv("SURFACEWAVE_SPRING", "0.5")
	t.Setenv("SURFACEWAVE_DAMPING", "0.3")
	f := newFlags(t, "-damping=0.7")
	if err := f.ApplyEnv(""); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	s := f.Scene()
	if s.Water.SpringConstant != 0.5 {
		t.Fatalf("spring = %v, want env value 0.5", s.Water.SpringConstant)
	}
	if s.Water.Damping != 0.7 {
		t.Fatalf("damping = %v, want flag value 0.7", s.Water.Damping)
	}
}

func TestEnvFileSeedsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	body := "SURFACEWAVE_WIDTH=12\nSURFACEWAVE_NODE_DENSITY=2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("SURFACEWAVE_WIDTH")
		os.Unsetenv("SURFACEWAVE_NODE_DENSITY")
	})
	f := newFlags(t)
	if err := f.ApplyEnv(path); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	s := f.Scene()
	if s.Water.Width != 12 || s.Water.NodeDensity != 2 {
		t.Fatalf("width=%v density=%d, want 12 and 2", s.Water.Width, s.Water.NodeDensity)
	}
	if s.Water.EdgeCount() != 24 {
		t.Fatalf("edge count = %d, want 24", s.Water.EdgeCount())
	}
}

func TestMissingEnvFileIgnored(t *testing.T) {
	f := newFlags(t)
	if err := f.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
}

func TestBadEnvValueNamesVariable(t *testing.T) {
	t.Setenv("SURFACEWAVE_NODE_DENSITY", "dense")
	err := newFlags(t).ApplyEnv("")
	if err == nil || !strings.Contains(err.Error(), "SURFACEWAVE_NODE_DENSITY") {
		t.Fatalf("error = %v, want one naming SURFACEWAVE_NODE_DENSITY", err)
	}
}
