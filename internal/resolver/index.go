package resolver

import (
	"sort"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// vendorEntry is one distinct vendor discovered while indexing contracts.
type vendorEntry struct {
	ID             string
	NormalizedName string
}

// ContractIndex holds read-only lookup structures over the contract
// corpus. It is built once before the award loop begins and shared by
// reference across workers; nothing mutates it after Build returns.
type ContractIndex struct {
	byUEI  map[string][]string
	byCAGE map[string][]string
	byDUNS map[string][]string
	byName map[string][]string

	vendors           []vendorEntry
	vendorNames       map[string]string
	contractsByVendor map[string][]*types.Contract

	skipped int
}

// BuildIndex constructs the index from the contract corpus. Contracts
// lacking any vendor identity or a usable action date are skipped and
// counted, never aborting the build.
func BuildIndex(contracts []types.Contract) *ContractIndex {
	idx := &ContractIndex{
		byUEI:             make(map[string][]string),
		byCAGE:            make(map[string][]string),
		byDUNS:            make(map[string][]string),
		byName:            make(map[string][]string),
		contractsByVendor: make(map[string][]*types.Contract),
	}

	// identifiers are indexed from every contract row, deduped per
	// (key, vendor): a CAGE or name that first appears on a vendor's
	// later contract must still resolve exactly
	seen := make(map[string]bool)
	appendOnce := func(m map[string][]string, class, key, vendorID string) {
		if key == "" {
			return
		}
		dedupeKey := class + "\x00" + key + "\x00" + vendorID
		if seen[dedupeKey] {
			return
		}
		seen[dedupeKey] = true
		m[key] = append(m[key], vendorID)
	}

	names := make(map[string]string) // vendorID -> normalized name
	for i := range contracts {
		c := &contracts[i]
		vendorID := vendorIdentity(c)
		if vendorID == "" || c.ActionDate.IsZero() {
			idx.skipped++
			continue
		}

		appendOnce(idx.byUEI, "uei", c.VendorUEI, vendorID)
		appendOnce(idx.byCAGE, "cage", c.VendorCAGE, vendorID)
		appendOnce(idx.byDUNS, "duns", c.VendorDUNS, vendorID)
		if norm := NormalizeName(c.VendorName); norm != "" {
			appendOnce(idx.byName, "name", norm, vendorID)
			if _, ok := names[vendorID]; !ok {
				names[vendorID] = norm
			}
		}
		idx.contractsByVendor[vendorID] = append(idx.contractsByVendor[vendorID], c)
	}

	// stable vendor ordering keeps fuzzy candidate ranking deterministic
	idx.vendors = make([]vendorEntry, 0, len(idx.contractsByVendor))
	for id := range idx.contractsByVendor {
		idx.vendors = append(idx.vendors, vendorEntry{ID: id, NormalizedName: names[id]})
	}
	sort.Slice(idx.vendors, func(i, j int) bool { return idx.vendors[i].ID < idx.vendors[j].ID })

	for _, c := range idx.contractsByVendor {
		sort.Slice(c, func(i, j int) bool { return c[i].ID < c[j].ID })
	}

	idx.vendorNames = names
	return idx
}

// VendorName returns the normalized name recorded for a vendor, if any.
func (idx *ContractIndex) VendorName(vendorID string) string {
	return idx.vendorNames[vendorID]
}

// vendorIdentity derives a stable vendor key for a contract. The explicit
// vendor ID wins; identifier classes and normalized name are fallbacks.
func vendorIdentity(c *types.Contract) string {
	switch {
	case c.VendorID != "":
		return c.VendorID
	case c.VendorUEI != "":
		return "uei:" + c.VendorUEI
	case c.VendorCAGE != "":
		return "cage:" + c.VendorCAGE
	case c.VendorDUNS != "":
		return "duns:" + c.VendorDUNS
	}
	if norm := NormalizeName(c.VendorName); norm != "" {
		return "name:" + norm
	}
	return ""
}

// Contracts returns the contracts attributed to a vendor, ordered by ID.
func (idx *ContractIndex) Contracts(vendorID string) []*types.Contract {
	return idx.contractsByVendor[vendorID]
}

// VendorCount returns the number of distinct vendors indexed.
func (idx *ContractIndex) VendorCount() int { return len(idx.vendors) }

// ContractCount returns the number of contracts indexed.
func (idx *ContractIndex) ContractCount() int {
	n := 0
	for _, c := range idx.contractsByVendor {
		n += len(c)
	}
	return n
}

// Skipped returns the number of contracts rejected during the build.
func (idx *ContractIndex) Skipped() int { return idx.skipped }
