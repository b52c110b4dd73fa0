package fire

import (
	"strconv"

	"fire-ca/internal/core"
)

// Parameters exposes the configuration grouped for display.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	s.mu.Lock()
	cfg, seed := s.cfg, s.seed
	s.mu.Unlock()

	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", cfg.CountX),
				intParam("h", "Height", cfg.CountZ),
				int64Param("seed", "Seed", seed),
				intParam("workers", "Workers", cfg.WorkerCount()),
			},
		},
		{
			Name: "Ignition",
			Params: []core.Parameter{
				intParam("min_fires", "Min initial fires", cfg.MinInitialFires),
				intParam("max_fires", "Max initial fires", cfg.MaxInitialFires),
				floatParam("start_amount", "Start fire amount", cfg.StartFireAmount),
				floatParam("start_velocity", "Start fire velocity", cfg.StartFireVelocity),
			},
		},
		{
			Name: "Render",
			Params: []core.Parameter{
				floatParam("cell_size", "Cell size", cfg.CellSize),
				floatParam("cell_height", "Cell height", cfg.CellHeight),
				floatParam("origin_x", "Origin X", cfg.Origin.X()),
				floatParam("origin_y", "Origin Y", cfg.Origin.Y()),
				floatParam("origin_z", "Origin Z", cfg.Origin.Z()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the ignition settings the HUD may adjust. Changes
// take effect on the next reset.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "min_fires", Label: "Min fires", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "max_fires", Label: "Max fires", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "start_amount", Label: "Start amount", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "start_velocity", Label: "Start velocity", Type: core.ParamTypeFloat, Step: 0.05, Min: -1, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer ignition setting, keeping the fire
// bounds ordered.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value < 0 {
		value = 0
	}
	switch key {
	case "min_fires":
		s.cfg.MinInitialFires = value
		if s.cfg.MaxInitialFires < value {
			s.cfg.MaxInitialFires = value
		}
	case "max_fires":
		s.cfg.MaxInitialFires = value
		if s.cfg.MinInitialFires > value {
			s.cfg.MinInitialFires = value
		}
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a floating point ignition setting.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case "start_amount":
		s.cfg.StartFireAmount = clamp01(value)
	case "start_velocity":
		s.cfg.StartFireVelocity = value
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
