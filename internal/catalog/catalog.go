package catalog

import (
	"sort"
	"strings"

	"github.com/shard-legends/loadout-service/internal/models"
)

// Catalog is the immutable item and resource reference data loaded at startup.
// All accessors return copies or read-only pointers; nothing mutates a Catalog
// after New returns.
type Catalog struct {
	items         []models.Item
	itemsByID     map[string]*models.Item
	resources     []models.Resource
	resourcesByID map[string]*models.Resource
}

// New builds a catalog from the given tables. It indexes but does not validate;
// use Validate (or Load, which calls it) for consistency checks.
func New(items []models.Item, resources []models.Resource) *Catalog {
	c := &Catalog{
		items:         make([]models.Item, len(items)),
		itemsByID:     make(map[string]*models.Item, len(items)),
		resources:     make([]models.Resource, len(resources)),
		resourcesByID: make(map[string]*models.Resource, len(resources)),
	}

	copy(c.items, items)
	for i := range c.items {
		if _, exists := c.itemsByID[c.items[i].ID]; !exists {
			c.itemsByID[c.items[i].ID] = &c.items[i]
		}
	}

	copy(c.resources, resources)
	for i := range c.resources {
		if _, exists := c.resourcesByID[c.resources[i].ID]; !exists {
			c.resourcesByID[c.resources[i].ID] = &c.resources[i]
		}
	}

	return c
}

// Item returns the item with the given id.
func (c *Catalog) Item(id string) (*models.Item, bool) {
	item, ok := c.itemsByID[id]
	return item, ok
}

// Resource returns the resource with the given id.
func (c *Catalog) Resource(id string) (*models.Resource, bool) {
	resource, ok := c.resourcesByID[id]
	return resource, ok
}

// Items returns all items in catalog order.
func (c *Catalog) Items() []models.Item {
	out := make([]models.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Resources returns all resources in catalog order.
func (c *Catalog) Resources() []models.Resource {
	out := make([]models.Resource, len(c.resources))
	copy(out, c.resources)
	return out
}

// ItemCount returns the number of items.
func (c *Catalog) ItemCount() int {
	return len(c.items)
}

// ResourceCount returns the number of resources.
func (c *Catalog) ResourceCount() int {
	return len(c.resources)
}

// ResourceName returns the display name of a resource, or the id itself when unknown.
func (c *Catalog) ResourceName(id string) string {
	if resource, ok := c.resourcesByID[id]; ok {
		return resource.Name
	}
	return id
}

// WeaponTierResources returns the incremental cost of a single weapon tier.
// Non-weapons and unknown ids yield nil.
func (c *Catalog) WeaponTierResources(itemID string, tier int) []models.ResourceCost {
	item, ok := c.itemsByID[itemID]
	if !ok || !item.IsWeapon() {
		return nil
	}
	costs := item.TierResources[tier]
	out := make([]models.ResourceCost, len(costs))
	copy(out, costs)
	return out
}

// Filter returns items matching the category filter and the case-insensitive
// substring query. An empty category or "All" matches every category; a blank
// query matches every name.
func (c *Catalog) Filter(category string, query string) []models.Item {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Item, 0, len(c.items))
	for _, item := range c.items {
		if category != "" && category != models.CategoryAll && string(item.Category) != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortResourceDisplays orders entries by rarity (highest first, unknown last),
// then by name.
func SortResourceDisplays(entries []models.ResourceDisplay) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Rarity.DisplayRank(), entries[j].Rarity.DisplayRank()
		if ri != rj {
			return ri < rj
		}
		return entries[i].Name < entries[j].Name
	})
}
