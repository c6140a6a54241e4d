package signals

import (
	"fmt"
	"math"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// daysPerMonth is the fixed month length used for window arithmetic so
// that scores do not depend on calendar irregularities.
const daysPerMonth = 30

// TimingProximity scores how soon after the award's completion the
// contract action occurred. Maximum at or near completion, decaying to 0
// at the configured window bound. A contract dated before completion
// beyond the grace period scores 0: it cannot result from unfinished
// work.
func TimingProximity(award *types.Award, contract *types.Contract, ctx *Context) Value {
	raw := fmt.Sprintf("completion=%s action=%s",
		award.CompletionDate.Format("2006-01-02"), contract.ActionDate.Format("2006-01-02"))

	if award.CompletionDate.IsZero() || contract.ActionDate.IsZero() {
		return defaulted(NameTimingProximity, raw, 0, "completion or action date missing")
	}

	deltaDays := contract.ActionDate.Sub(award.CompletionDate).Hours() / 24
	raw = fmt.Sprintf("%s delta=%.0fd", raw, deltaDays)

	grace := float64(ctx.Timing.GraceDays)
	if deltaDays < -grace {
		return computed(NameTimingProximity, raw, 0)
	}
	if deltaDays <= 0 {
		// inside the grace period counts as at-completion
		return computed(NameTimingProximity, raw, 1.0)
	}

	windowDays := float64(ctx.Timing.WindowMonths) * daysPerMonth
	if windowDays <= 0 || deltaDays >= windowDays {
		return computed(NameTimingProximity, raw, 0)
	}

	frac := deltaDays / windowDays
	switch ctx.Timing.Decay {
	case "stepwise":
		return computed(NameTimingProximity, raw, stepwiseDecay(frac))
	default:
		return computed(NameTimingProximity, raw, 1.0-frac)
	}
}

// stepwiseDecay drops in quarter-window plateaus instead of a slope.
func stepwiseDecay(frac float64) float64 {
	step := math.Floor(frac * 4)
	return 1.0 - 0.25*step
}
