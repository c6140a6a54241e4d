package resolver

import "strings"

// legalSuffixes are corporate designators stripped during normalization so
// "Acme Robotics, Inc." and "ACME ROBOTICS LLC" index to the same name.
var legalSuffixes = map[string]bool{
	"inc":          true,
	"incorporated": true,
	"llc":          true,
	"llp":          true,
	"lp":           true,
	"ltd":          true,
	"limited":      true,
	"corp":         true,
	"corporation":  true,
	"co":           true,
	"company":      true,
	"plc":          true,
	"gmbh":         true,
}

// NormalizeName folds an entity name to a canonical form: lowercase,
// punctuation removed, whitespace collapsed, trailing legal suffixes
// stripped.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 1 && legalSuffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}
