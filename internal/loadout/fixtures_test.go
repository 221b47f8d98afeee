package loadout

import (
	"github.com/shard-legends/loadout-service/internal/models"
	"go.uber.org/zap"
)

type itemTable map[string]*models.Item

func (t itemTable) Item(id string) (*models.Item, bool) {
	item, ok := t[id]
	return item, ok
}

func intPtr(v int) *int {
	return &v
}

func testItems() itemTable {
	items := []models.Item{
		{ID: "w_kettle", Name: "Kettle", Category: models.CategoryWeapon, Rarity: models.RarityCommon, StackSize: 1},
		{ID: "w_ferro", Name: "Ferro", Category: models.CategoryWeapon, Rarity: models.RarityCommon, StackSize: 1},
		{ID: "w_anvil", Name: "Anvil", Category: models.CategoryWeapon, Rarity: models.RarityUncommon, StackSize: 1},
		{ID: "a_looting", Name: "Looting Mk. 1", Category: models.CategoryAugment, Rarity: models.RarityUncommon, StackSize: 1,
			BackpackSlots: intPtr(2), QuickUseSlots: intPtr(1), SafePocketSlots: intPtr(1)},
		{ID: "a_zero", Name: "Zero Override", Category: models.CategoryAugment, Rarity: models.RarityCommon, StackSize: 1,
			BackpackSlots: intPtr(0)},
		{ID: "a_combat", Name: "Combat Mk. 1", Category: models.CategoryAugment, Rarity: models.RarityUncommon, StackSize: 1},
		{ID: "s_light", Name: "Light Shield", Category: models.CategoryShield, Rarity: models.RarityCommon, StackSize: 1},
		{ID: "s_medium", Name: "Medium Shield", Category: models.CategoryShield, Rarity: models.RarityUncommon, StackSize: 1},
		{ID: "h_bandage", Name: "Bandage", Category: models.CategoryHealing, Rarity: models.RarityCommon, StackSize: 5},
		{ID: "t_mine", Name: "Jolt Mine", Category: models.CategoryTrap, Rarity: models.RarityUncommon, StackSize: 3},
		{ID: "gr_key", Name: "Raider Hatch Key", Category: models.CategoryGear, Rarity: models.RarityRare, StackSize: 1},
		{ID: "gd_zipline", Name: "Zipline", Category: models.CategoryGadget, Rarity: models.RarityUncommon, StackSize: 3},
		{ID: "tl_binoculars", Name: "Binoculars", Category: models.CategoryTool, Rarity: models.RarityCommon, StackSize: 1},
	}

	table := make(itemTable, len(items))
	for i := range items {
		table[items[i].ID] = &items[i]
	}
	return table
}

func newTestCoordinator() *Coordinator {
	return NewCoordinator(NewStore(), testItems(), zap.NewNop())
}

func backpackIDs(s *Store) []string {
	return sequenceIDs(s, SlotBackpack)
}

func sequenceIDs(s *Store, slot SlotType) []string {
	var ids []string
	for _, entry := range s.Entries(slot) {
		ids = append(ids, entry.ItemID)
	}
	return ids
}

// locations counts the locations holding itemID.
func locations(s *Store, itemID string) int {
	count := 0
	for _, occupant := range s.Occupants() {
		if occupant.ItemID == itemID {
			count++
		}
	}
	return count
}
