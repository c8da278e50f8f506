package sand

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tuning constants of the transition rules.
type Params struct {
	Gravity      float32 `yaml:"gravity"`
	MaxFallSpeed float32 `yaml:"max_fall_speed"`
	// BounceDamping scales the vertical velocity after a landing: vy *= -BounceDamping.
	BounceDamping float32 `yaml:"bounce_damping"`
	// SlideFactor converts vertical speed into sideways speed on landing.
	SlideFactor float32 `yaml:"slide_factor"`

	FireSpreadRadius     int     `yaml:"fire_spread_radius"`
	FireProtectionRadius int     `yaml:"fire_protection_radius"`
	SmokeEmitChance      float64 `yaml:"smoke_emit_chance"`
}

// Config controls the sand simulation.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	ChunkSize     int `yaml:"chunk_size"`
	ClusterMargin int `yaml:"cluster_margin"`
	MaxIdleFrames int `yaml:"max_idle_frames"`

	// Workers bounds the goroutines used by the per-frame bookkeeping passes.
	Workers int `yaml:"workers"`
	// ParallelThreshold is the live cell count from which bookkeeping fans out.
	ParallelThreshold int `yaml:"parallel_threshold"`

	BrushSize int    `yaml:"brush_size"`
	Scene     string `yaml:"scene"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:             256,
		Height:            192,
		Seed:              1337,
		ChunkSize:         16,
		ClusterMargin:     5,
		MaxIdleFrames:     200,
		Workers:           4,
		ParallelThreshold: 1 << 15,
		BrushSize:         5,
		Scene:             SceneDemo,
		Params: Params{
			Gravity:              0.5,
			MaxFallSpeed:         8,
			BounceDamping:        0.1,
			SlideFactor:          0.25,
			FireSpreadRadius:     2,
			FireProtectionRadius: 5,
			SmokeEmitChance:      0.05,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt := func(key string, dst *int, min int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
				*dst = parsed
			}
		}
	}
	setFloat := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	setFloat32 := func(key string, dst *float32) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 {
				*dst = float32(parsed)
			}
		}
	}

	setInt("w", &c.Width, 1)
	setInt("h", &c.Height, 1)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setInt("chunk_size", &c.ChunkSize, 1)
	setInt("cluster_margin", &c.ClusterMargin, 0)
	setInt("max_idle_frames", &c.MaxIdleFrames, 0)
	setInt("workers", &c.Workers, 1)
	setInt("parallel_threshold", &c.ParallelThreshold, 0)
	setInt("brush_size", &c.BrushSize, 1)
	if v, ok := cfg["scene"]; ok && v != "" {
		c.Scene = v
	}
	setFloat32("gravity", &c.Params.Gravity)
	setFloat32("max_fall_speed", &c.Params.MaxFallSpeed)
	setFloat32("bounce_damping", &c.Params.BounceDamping)
	setFloat32("slide_factor", &c.Params.SlideFactor)
	setInt("fire_spread_radius", &c.Params.FireSpreadRadius, 1)
	setInt("fire_protection_radius", &c.Params.FireProtectionRadius, 0)
	setFloat("smoke_emit_chance", &c.Params.SmokeEmitChance)
	return c
}

// LoadConfig reads a YAML document over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every field that would make the simulation unusable.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, errors.New("chunk_size must be positive"))
	}
	if c.ClusterMargin < 0 {
		errs = append(errs, errors.New("cluster_margin must not be negative"))
	}
	if c.MaxIdleFrames < 0 {
		errs = append(errs, errors.New("max_idle_frames must not be negative"))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("workers must be positive"))
	}
	if c.BrushSize <= 0 || c.BrushSize > maxBrushSize {
		errs = append(errs, fmt.Errorf("brush_size must be within [1,%d]", maxBrushSize))
	}
	if !knownScene(c.Scene) {
		errs = append(errs, fmt.Errorf("unknown scene %q", c.Scene))
	}
	p := c.Params
	if p.Gravity <= 0 {
		errs = append(errs, errors.New("params.gravity must be positive"))
	}
	if p.MaxFallSpeed < 1 {
		errs = append(errs, errors.New("params.max_fall_speed must be at least 1"))
	}
	if p.BounceDamping < 0 || p.BounceDamping > 1 {
		errs = append(errs, errors.New("params.bounce_damping must be within [0,1]"))
	}
	if p.FireSpreadRadius <= 0 {
		errs = append(errs, errors.New("params.fire_spread_radius must be positive"))
	}
	if p.FireProtectionRadius < 0 {
		errs = append(errs, errors.New("params.fire_protection_radius must not be negative"))
	}
	if p.SmokeEmitChance < 0 || p.SmokeEmitChance > 1 {
		errs = append(errs, errors.New("params.smoke_emit_chance must be within [0,1]"))
	}
	return errors.Join(errs...)
}
