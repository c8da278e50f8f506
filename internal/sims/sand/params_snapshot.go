package sand

import (
	"strconv"

	"falling-sand/internal/core"
)

func (s *Sim) Parameters() core.ParameterSnapshot {
	m := s.matrix
	p := m.cfg.Params
	st := m.Stats()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", m.Width()),
				intParam("h", "Height", m.Height()),
				int64Param("seed", "Seed", s.cfg.Seed),
				stringParam("scene", "Scene", s.cfg.Scene),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				stringParam("material", "Material", m.Brush.Material().String()),
				intParam("brush_size", "Brush size", m.Brush.Size),
				boolParam("place_fire", "Place fire", m.Brush.PlaceFire),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				float32Param("gravity", "Gravity", p.Gravity),
				float32Param("max_fall_speed", "Max fall speed", p.MaxFallSpeed),
				float32Param("bounce_damping", "Bounce damping", p.BounceDamping),
				float32Param("slide_factor", "Slide factor", p.SlideFactor),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				intParam("fire_spread_radius", "Fire spread radius", p.FireSpreadRadius),
				intParam("fire_protection_radius", "Fire protection radius", p.FireProtectionRadius),
				floatParam("smoke_emit_chance", "Smoke emit chance", p.SmokeEmitChance),
			},
		},
		{
			Name: "Chunks",
			Params: []core.Parameter{
				intParam("chunk_size", "Chunk size", m.chunks.Size()),
				intParam("cluster_margin", "Cluster margin", m.cfg.ClusterMargin),
				intParam("max_idle_frames", "Max idle frames", m.cfg.MaxIdleFrames),
				boolParam("debug_chunks", "Debug chunks", m.DebugChunks),
			},
			Summary: strconv.Itoa(st.ActiveChunks) + "/" + strconv.Itoa(st.Chunks) + " active, " +
				strconv.Itoa(st.Cells) + " cells",
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable from the HUD.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "brush_size", Label: "Brush size", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxBrushSize, HasMin: true, HasMax: true},
		{Key: "place_fire", Label: "Place fire", Type: core.ParamTypeBool},
		{Key: "gravity", Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 4, HasMin: true, HasMax: true},
		{Key: "max_fall_speed", Label: "Max fall speed", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 32, HasMin: true, HasMax: true},
		{Key: "fire_spread_radius", Label: "Fire spread radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 8, HasMin: true, HasMax: true},
		{Key: "fire_protection_radius", Label: "Fire protection radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 12, HasMin: true, HasMax: true},
		{Key: "smoke_emit_chance", Label: "Smoke emit chance", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "cluster_margin", Label: "Cluster margin", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 32, HasMin: true, HasMax: true},
		{Key: "max_idle_frames", Label: "Max idle frames", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 2000, HasMin: true, HasMax: true},
		{Key: "debug_chunks", Label: "Debug chunks", Type: core.ParamTypeBool},
	}
}

// SetIntParameter updates an integer tunable. It reports false for unknown
// keys and out-of-range values.
func (s *Sim) SetIntParameter(key string, value int) bool {
	m := s.matrix
	switch key {
	case "brush_size":
		if value < 1 || value > maxBrushSize {
			return false
		}
		m.Brush.Size = value
	case "fire_spread_radius":
		if value < 1 {
			return false
		}
		m.cfg.Params.FireSpreadRadius = value
	case "fire_protection_radius":
		if value < 0 {
			return false
		}
		m.cfg.Params.FireProtectionRadius = value
	case "cluster_margin":
		if value < 0 {
			return false
		}
		m.SetClusterMargin(value)
	case "max_idle_frames":
		if value < 0 {
			return false
		}
		m.SetMaxIdleFrames(value)
	default:
		return false
	}
	s.cfg = m.cfg
	return true
}

// SetFloatParameter updates a floating point tunable.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	p := &s.matrix.cfg.Params
	switch key {
	case "gravity":
		if value <= 0 {
			return false
		}
		p.Gravity = float32(value)
	case "max_fall_speed":
		if value < 1 {
			return false
		}
		p.MaxFallSpeed = float32(value)
	case "bounce_damping":
		if value < 0 || value > 1 {
			return false
		}
		p.BounceDamping = float32(value)
	case "slide_factor":
		if value < 0 {
			return false
		}
		p.SlideFactor = float32(value)
	case "smoke_emit_chance":
		if value < 0 || value > 1 {
			return false
		}
		p.SmokeEmitChance = value
	default:
		return false
	}
	s.cfg.Params = *p
	return true
}

// SetBoolParameter toggles the brush fire mode or the chunk highlight.
func (s *Sim) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "place_fire":
		s.matrix.Brush.PlaceFire = value
	case "debug_chunks":
		s.matrix.DebugChunks = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func float32Param(key, label string, value float32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(float64(value), 'f', -1, 32),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
