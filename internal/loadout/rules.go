package loadout

import "github.com/shard-legends/loadout-service/internal/models"

// Default sequence capacities when no augment overrides them.
const (
	DefaultBackpackSlots   = 14
	DefaultQuickUseSlots   = 4
	DefaultSafePocketSlots = 0
)

// ItemLookup resolves catalog items by id.
type ItemLookup interface {
	Item(id string) (*models.Item, bool)
}

var slotAcceptance = map[SlotType][]models.Category{
	SlotAugment:  {models.CategoryAugment},
	SlotShield:   {models.CategoryShield},
	SlotWeapon1:  {models.CategoryWeapon},
	SlotWeapon2:  {models.CategoryWeapon},
	SlotBackpack: models.AllCategories,
	SlotQuickUse: {models.CategoryHealing, models.CategoryTrap},
	SlotSafePocket: {
		models.CategoryAugment,
		models.CategoryShield,
		models.CategoryHealing,
		models.CategoryTrap,
		models.CategoryGear,
		models.CategoryGadget,
		models.CategoryTool,
	},
}

// CanAccept reports whether items of the category may occupy slot.
func CanAccept(category models.Category, slot SlotType) bool {
	for _, accepted := range slotAcceptance[slot] {
		if accepted == category {
			return true
		}
	}
	return false
}

// Capacities are the effective sizes of the sequence slots.
type Capacities struct {
	Backpack   int `json:"backpack"`
	QuickUse   int `json:"quick_use"`
	SafePocket int `json:"safe_pocket"`
}

// CapacitiesFor derives sequence capacities from the equipped augment.
// A missing or non-positive override keeps the default.
func CapacitiesFor(store *Store, items ItemLookup) Capacities {
	caps := Capacities{
		Backpack:   DefaultBackpackSlots,
		QuickUse:   DefaultQuickUseSlots,
		SafePocket: DefaultSafePocketSlots,
	}

	augmentID := store.Augment()
	if augmentID == "" {
		return caps
	}
	augment, ok := items.Item(augmentID)
	if !ok {
		return caps
	}

	caps.Backpack = override(augment.BackpackSlots, caps.Backpack)
	caps.QuickUse = override(augment.QuickUseSlots, caps.QuickUse)
	caps.SafePocket = override(augment.SafePocketSlots, caps.SafePocket)
	return caps
}

func override(value *int, fallback int) int {
	if value == nil || *value <= 0 {
		return fallback
	}
	return *value
}

// CapacityFor returns the capacity of any slot. Single-occupancy slots hold one item.
func CapacityFor(slot SlotType, store *Store, items ItemLookup) int {
	if !slot.IsValid() {
		return 0
	}
	if !slot.IsSequence() {
		return 1
	}

	caps := CapacitiesFor(store, items)
	switch slot {
	case SlotBackpack:
		return caps.Backpack
	case SlotQuickUse:
		return caps.QuickUse
	default:
		return caps.SafePocket
	}
}
