package app

import "flag"

// Config represents the command-line parameters for the front ends.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64

	Width  int
	Height int
	Scene  string

	// ConfigPath points at an optional YAML file of engine settings.
	ConfigPath string
	// Textures is a directory of per-material images.
	Textures string
	Jitter   float64

	Debug  bool
	LogDir string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 3, TPS: 60, Jitter: 0.06, LogDir: "logs"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the configured seed)")
	fs.IntVar(&c.Width, "w", c.Width, "grid width override")
	fs.IntVar(&c.Height, "h", c.Height, "grid height override")
	fs.StringVar(&c.Scene, "scene", c.Scene, "initial scene: empty, floor or demo")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML engine configuration")
	fs.StringVar(&c.Textures, "textures", c.Textures, "directory of material textures")
	fs.Float64Var(&c.Jitter, "jitter", c.Jitter, "lightness jitter for untextured materials")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write a debug log")
	fs.StringVar(&c.LogDir, "logdir", c.LogDir, "directory for the debug log")
}

// Overrides returns the flag values that replace configured engine settings,
// keyed the way the sim registry expects.
func (c *Config) Overrides() map[string]string {
	out := map[string]string{}
	if c.Width > 0 {
		out["w"] = itoa(c.Width)
	}
	if c.Height > 0 {
		out["h"] = itoa(c.Height)
	}
	if c.Seed != 0 {
		out["seed"] = itoa64(c.Seed)
	}
	if c.Scene != "" {
		out["scene"] = c.Scene
	}
	return out
}
