package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shard-legends/loadout-service/internal/models"
)

// Suggest returns up to limit items whose names are within a small edit distance
// of the query. It is the fallback for searches that match nothing by substring.
// Queries shorter than three characters produce no suggestions.
func (c *Catalog) Suggest(query string, limit int) []models.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 3 || limit <= 0 {
		return nil
	}

	type candidate struct {
		item models.Item
		dist int
	}

	var cands []candidate
	for _, item := range c.items {
		dist := nameDistance(query, strings.ToLower(item.Name))
		if dist > levenshteinLimit(len(query)) {
			continue
		}
		cands = append(cands, candidate{item: item, dist: dist})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].item.Name < cands[j].item.Name
		}
		return cands[i].dist < cands[j].dist
	})

	if len(cands) > limit {
		cands = cands[:limit]
	}

	out := make([]models.Item, 0, len(cands))
	for _, cand := range cands {
		out = append(out, cand.item)
	}
	return out
}

// nameDistance compares the query with the full name and with each word of it.
func nameDistance(query, name string) int {
	best := levenshtein.ComputeDistance(query, name)
	for _, word := range strings.Fields(name) {
		if dist := levenshtein.ComputeDistance(query, word); dist < best {
			best = dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
