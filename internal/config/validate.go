package config

import (
	"fmt"
	"math"

	apperrors "github.com/kestrel-analytics/transition-engine/internal/errors"
)

// Validate checks the full configuration. Any failure here is fatal: the
// engine must not start a run against an invalid configuration.
func (c *Config) Validate() error {
	if len(c.Presets) == 0 {
		return apperrors.NewConfigurationError("presets", "at least one weight preset is required")
	}
	if _, ok := c.Presets[c.Preset]; !ok {
		return apperrors.NewConfigurationError("preset", fmt.Sprintf("active preset %q is not defined", c.Preset))
	}

	for name, w := range c.Presets {
		if err := validateWeights(name, w); err != nil {
			return err
		}
	}

	if err := c.validateThresholds(); err != nil {
		return err
	}

	if c.Timing.WindowMonths <= 0 {
		return apperrors.NewConfigurationError("timing.window_months", "must be positive")
	}
	if c.Timing.GraceDays < 0 {
		return apperrors.NewConfigurationError("timing.grace_days", "must not be negative")
	}
	if c.Timing.Decay != "linear" && c.Timing.Decay != "stepwise" {
		return apperrors.NewConfigurationError("timing.decay", fmt.Sprintf("unknown decay shape %q", c.Timing.Decay))
	}

	if c.Resolver.MinSimilarity < 0 || c.Resolver.MinSimilarity >= 1 {
		return apperrors.NewConfigurationError("resolver.min_similarity", "must be in [0, 1)")
	}

	if c.Patent.WindowMonths <= 0 {
		return apperrors.NewConfigurationError("patent.window_months", "must be positive")
	}

	if c.Engine.Workers <= 0 {
		return apperrors.NewConfigurationError("engine.workers", "must be positive")
	}

	for category, score := range c.Competition {
		if score < 0 || score > 1 {
			return apperrors.NewConfigurationError(
				"competition."+category, fmt.Sprintf("score %v outside [0, 1]", score))
		}
	}

	return nil
}

func validateWeights(preset string, w Weights) error {
	for _, entry := range []struct {
		name  string
		value float64
	}{
		{"agency_continuity", w.AgencyContinuity},
		{"timing_proximity", w.TimingProximity},
		{"competition_type", w.CompetitionType},
		{"patent_signal", w.PatentSignal},
		{"tech_alignment", w.TechAlignment},
		{"vendor_match", w.VendorMatch},
	} {
		if entry.value < 0 || entry.value > 1 {
			return apperrors.NewConfigurationError(
				fmt.Sprintf("presets.%s.%s", preset, entry.name),
				fmt.Sprintf("weight %v outside [0, 1]", entry.value))
		}
	}

	if sum := w.Sum(); math.Abs(sum-1.0) > WeightSumTolerance {
		return apperrors.NewConfigurationError(
			"presets."+preset, fmt.Sprintf("weights sum to %v, expected 1.0", sum))
	}
	return nil
}

func (c *Config) validateThresholds() error {
	t := c.Thresholds
	for _, entry := range []struct {
		name  string
		value float64
	}{
		{"thresholds.high", t.High},
		{"thresholds.likely", t.Likely},
		{"thresholds.reporting_floor", t.ReportingFloor},
	} {
		if entry.value < 0 || entry.value > 1 {
			return apperrors.NewConfigurationError(entry.name, fmt.Sprintf("value %v outside [0, 1]", entry.value))
		}
	}
	if !(t.ReportingFloor < t.Likely && t.Likely < t.High) {
		return apperrors.NewConfigurationError(
			"thresholds", fmt.Sprintf("must be ordered reporting_floor < likely < high, got %v < %v < %v",
				t.ReportingFloor, t.Likely, t.High))
	}
	return nil
}
