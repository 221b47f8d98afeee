package loadout

// SlotType names a location in the loadout.
type SlotType string

const (
	SlotAugment    SlotType = "augment"
	SlotShield     SlotType = "shield"
	SlotWeapon1    SlotType = "weapon_1"
	SlotWeapon2    SlotType = "weapon_2"
	SlotBackpack   SlotType = "backpack"
	SlotQuickUse   SlotType = "quick_use"
	SlotSafePocket SlotType = "safe_pocket"
)

// AllSlots lists every slot in walk order.
var AllSlots = []SlotType{
	SlotAugment,
	SlotShield,
	SlotWeapon1,
	SlotWeapon2,
	SlotBackpack,
	SlotQuickUse,
	SlotSafePocket,
}

// AppendPosition places a sequence entry after the last occupied position.
const AppendPosition = -1

// IsValid reports whether s is a known slot.
func (s SlotType) IsValid() bool {
	switch s {
	case SlotAugment, SlotShield, SlotWeapon1, SlotWeapon2, SlotBackpack, SlotQuickUse, SlotSafePocket:
		return true
	}
	return false
}

// IsSequence reports whether s holds an ordered, gap-free list of entries.
func (s SlotType) IsSequence() bool {
	return s == SlotBackpack || s == SlotQuickUse || s == SlotSafePocket
}

// IsWeapon reports whether s is one of the two weapon slots.
func (s SlotType) IsWeapon() bool {
	return s == SlotWeapon1 || s == SlotWeapon2
}

// SlotRef addresses one location. Position is meaningful only for sequence slots.
type SlotRef struct {
	Slot     SlotType `json:"slot"`
	Position int      `json:"position"`
}

// Ref builds a reference to a single-occupancy slot.
func Ref(slot SlotType) SlotRef {
	return SlotRef{Slot: slot}
}

// At builds a reference to a sequence position.
func At(slot SlotType, position int) SlotRef {
	return SlotRef{Slot: slot, Position: position}
}

// SameLocation reports whether both refs address the same location.
func (r SlotRef) SameLocation(other SlotRef) bool {
	if r.Slot != other.Slot {
		return false
	}
	if r.Slot.IsSequence() {
		return r.Position == other.Position
	}
	return true
}

// WeaponEntry occupies a weapon slot. Quantity is always one.
type WeaponEntry struct {
	ItemID string `json:"item_id"`
	Tier   int    `json:"tier"`
}

// SequenceEntry occupies one position of a sequence slot.
// Tier is nil for anything but weapons. The zero value is a placeholder
// that never survives a store operation.
type SequenceEntry struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Tier     *int   `json:"tier,omitempty"`
}

func (e SequenceEntry) isPlaceholder() bool {
	return e.ItemID == ""
}

func (e SequenceEntry) clone() SequenceEntry {
	if e.Tier != nil {
		tier := *e.Tier
		e.Tier = &tier
	}
	return e
}

// Occupant is a read-only view of any occupied location.
type Occupant struct {
	Ref      SlotRef
	ItemID   string
	Quantity int
	Tier     *int
}
