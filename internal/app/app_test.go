package app

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"falling-sand/internal/sims/sand"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-scale", "2", "-w", "40", "-h", "30", "-scene", "floor", "-seed", "7"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Scale != 2 || cfg.Width != 40 || cfg.Height != 30 || cfg.Scene != "floor" || cfg.Seed != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	got := cfg.Overrides()
	want := map[string]string{"w": "40", "h": "30", "scene": "floor", "seed": "7"}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("override %s = %q, want %q", k, got[k], v)
		}
	}
	if len(NewConfig().Overrides()) != 0 {
		t.Fatal("defaults should not override anything")
	}
}

func TestBuildSimFromFlags(t *testing.T) {
	cfg := NewConfig()
	cfg.Width, cfg.Height, cfg.Scene = 24, 16, sand.SceneFloor
	sim, err := BuildSim(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := sim.(*sand.Sim)
	if !ok {
		t.Fatalf("got %T", sim)
	}
	if s.Matrix().Width() != 24 || s.Matrix().Grid().Len() != 24 {
		t.Fatalf("floor scene not built: %d cells", s.Matrix().Grid().Len())
	}
}

func TestBuildSimFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sand.yaml")
	doc := "width: 50\nheight: 20\nscene: empty\nparams:\n  gravity: 1\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfig()
	cfg.ConfigPath = path
	cfg.Height = 25
	sim, err := BuildSim(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := sim.(*sand.Sim)
	if s.Matrix().Width() != 50 || s.Matrix().Height() != 25 {
		t.Fatalf("size = %dx%d", s.Matrix().Width(), s.Matrix().Height())
	}
	if s.Matrix().Params().Gravity != 1 {
		t.Fatalf("gravity = %v", s.Matrix().Params().Gravity)
	}
}

func TestBuildSimErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = "nope"
	if _, err := BuildSim(cfg); err == nil {
		t.Fatal("unknown sim accepted")
	}

	cfg = NewConfig()
	cfg.Scene = "volcano"
	if _, err := BuildSim(cfg); err == nil {
		t.Fatal("unknown scene accepted")
	}

	cfg = NewConfig()
	cfg.Textures = filepath.Join(t.TempDir(), "missing")
	if _, err := BuildSim(cfg); err == nil {
		t.Fatal("missing texture dir accepted")
	}
}

func TestSetupLogging(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetFlags(log.LstdFlags)

	f, err := SetupLogging(false, "")
	if err != nil || f != nil {
		t.Fatalf("disabled logging returned %v, %v", f, err)
	}

	dir := filepath.Join(t.TempDir(), "logs")
	f, err = SetupLogging(true, dir)
	if err != nil {
		t.Fatal(err)
	}
	log.Printf("hello from the test")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from the test") {
		t.Fatalf("log file missing message: %q", data)
	}
}
