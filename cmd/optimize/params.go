// Package main provides CMA-ES optimization of simulation parameters.
package main

import (
	"github.com/pthm-cable/quadrisrah/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Food
			{Name: "spawn_probability", Path: "food.spawn_probability", Min: 0.2, Max: 1.0, Default: 0.8},
			{Name: "spawn_amount", Path: "food.spawn_amount", Min: 20, Max: 200, Default: 80},
			{Name: "conversion", Path: "food.conversion", Min: 0.5, Max: 3.0, Default: 1.5},
			// Metabolism
			{Name: "base_cost", Path: "metabolism.base_cost", Min: 0.02, Max: 0.3, Default: 0.1},
			{Name: "vision_cost", Path: "metabolism.vision_cost", Min: 0.001, Max: 0.02, Default: 0.006},
			{Name: "speed_cost", Path: "metabolism.speed_cost", Min: 0.1, Max: 1.0, Default: 0.45},
			// Reproduction
			{Name: "mate_threshold", Path: "reproduction.threshold", Min: 60, Max: 150, Default: 90},
			{Name: "mate_cooldown", Path: "reproduction.cooldown", Min: 30, Max: 400, Default: 150},
			{Name: "mate_cost", Path: "reproduction.energy_cost", Min: 10, Max: 80, Default: 50},
			{Name: "offspring_energy", Path: "reproduction.offspring_energy", Min: 20, Max: 100, Default: 60},
			// Behavior
			{Name: "flee_speed_factor", Path: "behavior.flee_speed_factor", Min: 1.0, Max: 2.0, Default: 1.3},
			{Name: "desert_penalty", Path: "behavior.desert_penalty", Min: 1.0, Max: 6.0, Default: 3.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = config.Range{Min: spec.Min, Max: spec.Max}.Clamp(v[i])
	}
	return clamped
}

// fields returns pointers to the config fields in Specs order.
func (pv *ParamVector) fields(cfg *config.Config) []*float64 {
	return []*float64{
		&cfg.Food.SpawnProbability,
		&cfg.Food.SpawnAmount,
		&cfg.Food.Conversion,
		&cfg.Metabolism.BaseCost,
		&cfg.Metabolism.VisionCost,
		&cfg.Metabolism.SpeedCost,
		&cfg.Reproduction.Threshold,
		&cfg.Reproduction.Cooldown,
		&cfg.Reproduction.EnergyCost,
		&cfg.Reproduction.OffspringEnergy,
		&cfg.Behavior.FleeSpeedFactor,
		&cfg.Behavior.DesertPenalty,
	}
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, f := range pv.fields(cfg) {
		*f = clamped[i]
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	fields := pv.fields(cfg)
	v := make([]float64, len(fields))
	for i, f := range fields {
		v[i] = *f
	}
	return v
}
