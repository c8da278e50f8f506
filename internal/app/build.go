package app

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"falling-sand/internal/assets"
	"falling-sand/internal/core"
	"falling-sand/internal/sims/sand"
)

// BuildSim constructs the simulation selected by c. The sand sim reads its
// engine settings from c.ConfigPath when set and paints with the texture
// palette; other registered sims only see the flag overrides.
func BuildSim(c *Config) (core.Sim, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %s)", c.Sim, strings.Join(core.Names(), ", "))
	}
	if c.Sim != "sand" {
		sim := factory(c.Overrides())
		sim.Reset(c.Seed)
		return sim, nil
	}

	cfg := sand.FromMap(c.Overrides())
	if c.ConfigPath != "" {
		loaded, err := sand.LoadConfig(c.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = applyOverrides(loaded, c)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := LoadPalette(c)
	if err != nil {
		return nil, err
	}
	return sand.NewSim(cfg, palette), nil
}

// LoadPalette builds the color source for c. Unreadable textures are logged
// and skipped; a missing directory is an error.
func LoadPalette(c *Config) (*assets.Palette, error) {
	if c.Textures == "" {
		return assets.NewPalette(c.Jitter), nil
	}
	if info, err := os.Stat(c.Textures); err != nil {
		return nil, fmt.Errorf("load textures: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("load textures: %s is not a directory", c.Textures)
	}
	p, err := assets.LoadDir(c.Textures, c.Jitter)
	if err != nil {
		log.Printf("textures: %v", err)
	}
	return p, nil
}

func applyOverrides(cfg sand.Config, c *Config) sand.Config {
	if c.Width > 0 {
		cfg.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Height = c.Height
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if c.Scene != "" {
		cfg.Scene = c.Scene
	}
	return cfg
}

func itoa(v int) string     { return strconv.Itoa(v) }
func itoa64(v int64) string { return strconv.FormatInt(v, 10) }
