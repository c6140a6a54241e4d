package resolver

import (
	"strings"

	"github.com/xrash/smetrics"
)

// Similarity scores the resemblance of two normalized entity names in
// [0,1]. Implementations must be deterministic.
type Similarity interface {
	Compare(a, b string) float64
}

// HybridSimilarity blends token-set overlap with Jaro-Winkler so that
// reordered words ("Dynamics Applied" vs "Applied Dynamics") and small
// spelling drift both register.
type HybridSimilarity struct {
	// TokenWeight is the share given to token-set Jaccard overlap; the
	// remainder goes to Jaro-Winkler. Default 0.5.
	TokenWeight float64
}

// NewHybridSimilarity returns the default equally-weighted blend.
func NewHybridSimilarity() *HybridSimilarity {
	return &HybridSimilarity{TokenWeight: 0.5}
}

// Compare returns the blended similarity of two names.
func (h *HybridSimilarity) Compare(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	tw := h.TokenWeight
	if tw < 0 {
		tw = 0
	}
	if tw > 1 {
		tw = 1
	}

	jaccard := tokenJaccard(a, b)
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	return tw*jaccard + (1-tw)*jw
}

// tokenJaccard is set Jaccard over whitespace tokens; repeated tokens
// within a name collapse to one.
func tokenJaccard(a, b string) float64 {
	sa := tokenSet(a)
	sb := tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	inter := 0
	for t := range sa {
		if sb[t] {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(s)
	set := make(map[string]bool, len(fields))
	for _, t := range fields {
		set[t] = true
	}
	return set
}
