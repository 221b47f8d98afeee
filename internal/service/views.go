package service

import (
	"github.com/shard-legends/loadout-service/internal/loadout"
	"github.com/shard-legends/loadout-service/internal/models"
)

// SlotItemView представляет занятый слот с полным описанием предмета
type SlotItemView struct {
	Slot     loadout.SlotType `json:"slot"`
	Position int              `json:"position"`
	Item     models.Item      `json:"item"`
	Quantity int              `json:"quantity"`
	Tier     *int             `json:"tier,omitempty"`
}

// LoadoutSnapshot представляет снаряжение, разрешенное до предметов каталога
type LoadoutSnapshot struct {
	Augment    *SlotItemView      `json:"augment"`
	Shield     *SlotItemView      `json:"shield"`
	Weapon1    *SlotItemView      `json:"weapon_1"`
	Weapon2    *SlotItemView      `json:"weapon_2"`
	Backpack   []SlotItemView     `json:"backpack"`
	QuickUse   []SlotItemView     `json:"quick_use"`
	SafePocket []SlotItemView     `json:"safe_pocket"`
	Capacities loadout.Capacities `json:"capacities"`
}

// SessionView представляет полное состояние сессии для отображения
type SessionView struct {
	SessionID              string                   `json:"session_id"`
	Category               string                   `json:"category"`
	SearchQuery            string                   `json:"search_query"`
	SelectedTiers          map[string]int           `json:"selected_tiers"`
	Loadout                LoadoutSnapshot          `json:"loadout"`
	Totals                 []models.ResourceDisplay `json:"totals"`
	Decomposed             []models.ResourceDisplay `json:"decomposed"`
	DecomposedResourceIDs  []string                 `json:"decomposed_resource_ids"`
	HasLoadoutItems        bool                     `json:"has_loadout_items"`
	HasDecomposedResources bool                     `json:"has_decomposed_resources"`
}

// ItemsView представляет отфильтрованный каталог
type ItemsView struct {
	Category    string        `json:"category"`
	SearchQuery string        `json:"search_query"`
	Items       []models.Item `json:"items"`
	Suggestions []models.Item `json:"suggestions,omitempty"`
}

func buildSnapshot(store *loadout.Store, items loadout.ItemLookup) LoadoutSnapshot {
	snapshot := LoadoutSnapshot{
		Backpack:   []SlotItemView{},
		QuickUse:   []SlotItemView{},
		SafePocket: []SlotItemView{},
		Capacities: loadout.CapacitiesFor(store, items),
	}

	for _, occupant := range store.Occupants() {
		item, ok := items.Item(occupant.ItemID)
		if !ok {
			continue
		}
		view := SlotItemView{
			Slot:     occupant.Ref.Slot,
			Position: occupant.Ref.Position,
			Item:     *item,
			Quantity: occupant.Quantity,
			Tier:     occupant.Tier,
		}

		switch occupant.Ref.Slot {
		case loadout.SlotAugment:
			snapshot.Augment = &view
		case loadout.SlotShield:
			snapshot.Shield = &view
		case loadout.SlotWeapon1:
			snapshot.Weapon1 = &view
		case loadout.SlotWeapon2:
			snapshot.Weapon2 = &view
		case loadout.SlotBackpack:
			snapshot.Backpack = append(snapshot.Backpack, view)
		case loadout.SlotQuickUse:
			snapshot.QuickUse = append(snapshot.QuickUse, view)
		case loadout.SlotSafePocket:
			snapshot.SafePocket = append(snapshot.SafePocket, view)
		}
	}

	return snapshot
}
