package service

import (
	"sort"

	"github.com/shard-legends/loadout-service/internal/catalog"
	"github.com/shard-legends/loadout-service/internal/loadout"
	"github.com/shard-legends/loadout-service/internal/models"
	"go.uber.org/zap"
)

// CatalogReader определяет доступ сервиса к каталогу
type CatalogReader interface {
	Item(id string) (*models.Item, bool)
	Resource(id string) (*models.Resource, bool)
	Items() []models.Item
	Resources() []models.Resource
	Filter(category string, query string) []models.Item
	Suggest(query string, limit int) []models.Item
	WeaponTierResources(itemID string, tier int) []models.ResourceCost
}

// DecomposedSet содержит ресурсы, отмеченные для разложения
type DecomposedSet map[string]bool

// Has reports whether id is flagged.
func (s DecomposedSet) Has(id string) bool {
	return s[id]
}

// IDs returns the flagged ids in ascending order.
func (s DecomposedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id, flagged := range s {
		if flagged {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (s DecomposedSet) Clone() DecomposedSet {
	out := make(DecomposedSet, len(s))
	for id, flagged := range s {
		if flagged {
			out[id] = true
		}
	}
	return out
}

// ResourceAggregator считает итоговую стоимость снаряжения в ресурсах
type ResourceAggregator struct {
	catalog CatalogReader
	logger  *zap.Logger
}

// NewResourceAggregator создает новый экземпляр ResourceAggregator
func NewResourceAggregator(catalog CatalogReader, logger *zap.Logger) *ResourceAggregator {
	return &ResourceAggregator{
		catalog: catalog,
		logger:  logger,
	}
}

// ItemCost возвращает стоимость одной записи слота без разложения.
// Оружие стоит сумму ярусов с первого по tier включительно.
func (a *ResourceAggregator) ItemCost(item *models.Item, quantity int, tier *int) []models.ResourceCost {
	base := item.Resources
	if item.IsWeapon() {
		t := models.DefaultWeaponTier
		if tier != nil {
			t = *tier
		}
		base = item.CumulativeTierCost(t)
	}

	costs := make([]models.ResourceCost, 0, len(base))
	for _, cost := range base {
		costs = append(costs, models.ResourceCost{
			ResourceID: cost.ResourceID,
			Quantity:   cost.Quantity * quantity,
		})
	}
	return costs
}

// ComputeTotals возвращает итоги по ресурсам для всех занятых слотов.
// Ресурс раскладывается по рецепту, только если он есть в decomposed и является переработанным;
// глубина разложения определяется только членством в наборе.
func (a *ResourceAggregator) ComputeTotals(store *loadout.Store, decomposed DecomposedSet) map[string]int {
	totals := make(map[string]int)

	for _, occupant := range store.Occupants() {
		item, ok := a.catalog.Item(occupant.ItemID)
		if !ok {
			a.logger.Debug("Skipping unknown item in loadout", zap.String("item_id", occupant.ItemID))
			continue
		}

		// 1. Стоимость записи слота
		for _, cost := range a.ItemCost(item, occupant.Quantity, occupant.Tier) {
			// 2. Рекурсивное добавление с разложением
			a.addResource(totals, decomposed, cost.ResourceID, cost.Quantity, map[string]bool{})
		}
	}

	// 3. Нулевые итоги не выводятся
	for id, quantity := range totals {
		if quantity == 0 {
			delete(totals, id)
		}
	}

	return totals
}

// addResource добавляет ресурс в итоги или раскладывает его по рецепту.
// path содержит ресурсы текущей цепочки разложения.
func (a *ResourceAggregator) addResource(totals map[string]int, decomposed DecomposedSet, id string, quantity int, path map[string]bool) {
	resource, ok := a.catalog.Resource(id)
	if !ok {
		a.logger.Debug("Skipping unknown resource", zap.String("resource_id", id))
		return
	}

	if !decomposed.Has(id) || !resource.IsRefined() {
		totals[id] += quantity
		return
	}

	if path[id] {
		a.logger.Warn("Recipe cycle detected, resource is not decomposed",
			zap.String("resource_id", id))
		totals[id] += quantity
		return
	}

	path[id] = true
	for _, component := range resource.Recipe {
		a.addResource(totals, decomposed, component.ResourceID, component.Quantity*quantity, path)
	}
	delete(path, id)
}

// OriginalTotals возвращает итоги без разложения
func (a *ResourceAggregator) OriginalTotals(store *loadout.Store) map[string]int {
	return a.ComputeTotals(store, nil)
}

// SortedTotals превращает итоги в отсортированный список для отображения
func (a *ResourceAggregator) SortedTotals(totals map[string]int) []models.ResourceDisplay {
	out := make([]models.ResourceDisplay, 0, len(totals))
	for id, quantity := range totals {
		out = append(out, a.display(id, quantity))
	}
	sortDisplays(out)
	return out
}

// DecomposedDisplay возвращает исходные количества ресурсов, которые были разложены
func (a *ResourceAggregator) DecomposedDisplay(store *loadout.Store, decomposed DecomposedSet) []models.ResourceDisplay {
	original := a.OriginalTotals(store)

	out := make([]models.ResourceDisplay, 0, len(decomposed))
	for _, id := range decomposed.IDs() {
		quantity, ok := original[id]
		if !ok {
			continue
		}
		out = append(out, a.display(id, quantity))
	}
	sortDisplays(out)
	return out
}

// RefinedIn returns the refined resource ids present in totals.
func (a *ResourceAggregator) RefinedIn(totals map[string]int) []string {
	var ids []string
	for id := range totals {
		if resource, ok := a.catalog.Resource(id); ok && resource.IsRefined() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (a *ResourceAggregator) display(id string, quantity int) models.ResourceDisplay {
	entry := models.ResourceDisplay{
		ID:       id,
		Name:     id,
		Quantity: quantity,
	}
	if resource, ok := a.catalog.Resource(id); ok {
		entry.Name = resource.Name
		entry.ResourceType = resource.ResourceType
		entry.Rarity = resource.Rarity
		entry.Image = resource.Image
	}
	return entry
}

// sortDisplays orders by rarity then name, with id as the final tie breaker so
// map iteration order never leaks into the result.
func sortDisplays(entries []models.ResourceDisplay) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	catalog.SortResourceDisplays(entries)
}
