package signals

import (
	"fmt"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// VendorMatch passes the resolver's match confidence through as a signal,
// so weaker identity evidence proportionally discounts the pair.
func VendorMatch(_ *types.Award, _ *types.Contract, ctx *Context) Value {
	res := ctx.Resolution
	if res.VendorID == "" {
		return defaulted(NameVendorMatch, "no resolution", 0, "vendor resolution missing")
	}
	raw := fmt.Sprintf("method=%s confidence=%.2f", res.Method, res.Confidence)
	return computed(NameVendorMatch, raw, res.Confidence)
}
