package service

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/shard-legends/loadout-service/internal/loadout"
)

// totalsFingerprint identifies everything totals depend on: the catalog
// version, every occupant's item, quantity and tier, and the decomposed set.
func totalsFingerprint(catalogVersion string, store *loadout.Store, decomposed DecomposedSet) string {
	d := xxhash.New()
	_, _ = d.WriteString(catalogVersion)
	_, _ = d.WriteString("|")

	for _, occupant := range store.Occupants() {
		tier := 0
		if occupant.Tier != nil {
			tier = *occupant.Tier
		}
		_, _ = d.WriteString(occupant.ItemID)
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(strconv.Itoa(occupant.Quantity))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(strconv.Itoa(tier))
		_, _ = d.WriteString(";")
	}

	_, _ = d.WriteString("|")
	for _, id := range decomposed.IDs() {
		_, _ = d.WriteString(id)
		_, _ = d.WriteString(";")
	}

	return strconv.FormatUint(d.Sum64(), 16)
}

// CatalogVersion hashes the catalog contents so cached totals never outlive a
// catalog change.
func CatalogVersion(c CatalogReader) string {
	d := xxhash.New()
	items, _ := json.Marshal(c.Items())
	resources, _ := json.Marshal(c.Resources())
	_, _ = d.Write(items)
	_, _ = d.Write(resources)
	return strconv.FormatUint(d.Sum64(), 16)
}
