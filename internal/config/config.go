package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/kestrel-analytics/transition-engine/internal/errors"
)

// Weights is a named weight vector over the six transition signals. A
// valid vector sums to 1.0 within WeightSumTolerance.
type Weights struct {
	AgencyContinuity float64 `yaml:"agency_continuity" json:"agency_continuity"`
	TimingProximity  float64 `yaml:"timing_proximity" json:"timing_proximity"`
	CompetitionType  float64 `yaml:"competition_type" json:"competition_type"`
	PatentSignal     float64 `yaml:"patent_signal" json:"patent_signal"`
	TechAlignment    float64 `yaml:"tech_alignment" json:"tech_alignment"`
	VendorMatch      float64 `yaml:"vendor_match" json:"vendor_match"`
}

// WeightSumTolerance is the permitted deviation of a weight vector's sum
// from 1.0.
const WeightSumTolerance = 1e-6

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.AgencyContinuity + w.TimingProximity + w.CompetitionType +
		w.PatentSignal + w.TechAlignment + w.VendorMatch
}

// ByName returns the weight assigned to a signal name.
func (w Weights) ByName(name string) float64 {
	switch name {
	case "agency_continuity":
		return w.AgencyContinuity
	case "timing_proximity":
		return w.TimingProximity
	case "competition_type":
		return w.CompetitionType
	case "patent_signal":
		return w.PatentSignal
	case "tech_alignment":
		return w.TechAlignment
	case "vendor_match":
		return w.VendorMatch
	}
	return 0
}

// Thresholds define the confidence tier bands over the composite score.
// Each band is inclusive on its lower bound.
type Thresholds struct {
	High           float64 `yaml:"high" json:"high"`
	Likely         float64 `yaml:"likely" json:"likely"`
	ReportingFloor float64 `yaml:"reporting_floor" json:"reporting_floor"`
}

// Timing controls the timing-proximity signal window.
type Timing struct {
	WindowMonths int    `yaml:"window_months" json:"window_months"`
	GraceDays    int    `yaml:"grace_days" json:"grace_days"`
	Decay        string `yaml:"decay" json:"decay"` // linear or stepwise
}

// Resolver controls the fuzzy step of the vendor resolution cascade.
type Resolver struct {
	MinSimilarity float64 `yaml:"min_similarity" json:"min_similarity"`
}

// Patent controls how long after award completion a vendor's patent
// filing can still count toward the patent signal.
type Patent struct {
	WindowMonths int `yaml:"window_months" json:"window_months"`
}

// Engine controls run parallelism.
type Engine struct {
	Workers int `yaml:"workers" json:"workers"`
}

// Config is the full externally supplied engine configuration. The zero
// value is unusable; start from Default and merge a YAML file over it.
type Config struct {
	Preset      string             `yaml:"preset" json:"preset"`
	Presets     map[string]Weights `yaml:"presets" json:"presets"`
	Thresholds  Thresholds         `yaml:"thresholds" json:"thresholds"`
	Timing      Timing             `yaml:"timing" json:"timing"`
	Resolver    Resolver           `yaml:"resolver" json:"resolver"`
	Patent      Patent             `yaml:"patent" json:"patent"`
	Engine      Engine             `yaml:"engine" json:"engine"`
	Competition map[string]float64 `yaml:"competition" json:"competition"`
}

// Default returns the built-in configuration with all named presets.
func Default() *Config {
	return &Config{
		Preset: "balanced",
		Presets: map[string]Weights{
			"balanced": {
				AgencyContinuity: 0.15,
				TimingProximity:  0.20,
				CompetitionType:  0.15,
				PatentSignal:     0.10,
				TechAlignment:    0.15,
				VendorMatch:      0.25,
			},
			"high-precision": {
				AgencyContinuity: 0.15,
				TimingProximity:  0.15,
				CompetitionType:  0.10,
				PatentSignal:     0.10,
				TechAlignment:    0.20,
				VendorMatch:      0.30,
			},
			"broad-discovery": {
				AgencyContinuity: 0.10,
				TimingProximity:  0.25,
				CompetitionType:  0.15,
				PatentSignal:     0.10,
				TechAlignment:    0.20,
				VendorMatch:      0.20,
			},
			"technology-focused": {
				AgencyContinuity: 0.10,
				TimingProximity:  0.15,
				CompetitionType:  0.10,
				PatentSignal:     0.15,
				TechAlignment:    0.30,
				VendorMatch:      0.20,
			},
		},
		Thresholds: Thresholds{
			High:           0.85,
			Likely:         0.65,
			ReportingFloor: 0.40,
		},
		Timing: Timing{
			WindowMonths: 24,
			GraceDays:    90,
			Decay:        "linear",
		},
		Resolver: Resolver{
			MinSimilarity: 0.65,
		},
		Patent: Patent{
			WindowMonths: 36,
		},
		Engine: Engine{
			Workers: 4,
		},
		Competition: map[string]float64{
			"sole_source":   1.0,
			"not_competed":  1.0,
			"limited":       0.8,
			"set_aside":     0.6,
			"full_and_open": 0.2,
		},
	}
}

// Load reads a YAML configuration file over the built-in defaults and
// validates the result. A missing path returns validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewConfigurationError("config_file", err.Error())
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewConfigurationError("config_file", fmt.Sprintf("invalid YAML: %v", err))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ActiveWeights returns the weight vector selected by Preset.
func (c *Config) ActiveWeights() (Weights, error) {
	w, ok := c.Presets[c.Preset]
	if !ok {
		return Weights{}, apperrors.NewConfigurationError("preset", fmt.Sprintf("unknown preset %q", c.Preset))
	}
	return w, nil
}
