package signals

import (
	"fmt"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

const patentInWindowNoTag = 0.4

// PatentSignal boosts a pair when the resolved vendor filed a patent
// within the configured window after award completion whose technology
// tag matches the award's. Absence of any patent record is neutral,
// never a penalty.
func PatentSignal(award *types.Award, _ *types.Contract, ctx *Context) Value {
	if len(ctx.Patents) == 0 {
		return defaulted(NamePatentSignal, "patents=0", 0, "no patent records for vendor")
	}
	if award.CompletionDate.IsZero() {
		return defaulted(NamePatentSignal, fmt.Sprintf("patents=%d", len(ctx.Patents)), 0,
			"award completion date missing")
	}

	windowEnd := award.CompletionDate.AddDate(0, ctx.PatentCfg.WindowMonths, 0)
	inWindow := 0
	tagMatched := false
	for _, p := range ctx.Patents {
		if p.FilingDate.Before(award.CompletionDate) || p.FilingDate.After(windowEnd) {
			continue
		}
		inWindow++
		if cetMatches(p.CETLabel, award.CETLabels) {
			tagMatched = true
		}
	}

	raw := fmt.Sprintf("patents=%d in_window=%d tag_match=%t", len(ctx.Patents), inWindow, tagMatched)
	switch {
	case tagMatched:
		return computed(NamePatentSignal, raw, 1.0)
	case inWindow > 0:
		return computed(NamePatentSignal, raw, patentInWindowNoTag)
	default:
		return computed(NamePatentSignal, raw, 0)
	}
}

func cetMatches(label string, awardLabels []string) bool {
	if label == "" {
		return false
	}
	for _, al := range awardLabels {
		if normalizeCET(label) == normalizeCET(al) {
			return true
		}
	}
	return false
}
