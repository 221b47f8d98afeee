package loadout

import "github.com/shard-legends/loadout-service/internal/models"

// Store holds the current slot assignments of one loadout together with the
// per-item tier selected while browsing the catalog.
//
// Sequence slots never contain placeholder entries once a method returns.
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	augment    string
	shield     string
	weapons    [2]*WeaponEntry
	backpack   []SequenceEntry
	quickUse   []SequenceEntry
	safePocket []SequenceEntry

	selectedTiers map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{selectedTiers: make(map[string]int)}
}

// Augment returns the equipped augment id, or "" when empty.
func (s *Store) Augment() string {
	return s.augment
}

// SetAugment overwrites the augment slot. An empty id clears it.
func (s *Store) SetAugment(itemID string) {
	s.augment = itemID
}

// Shield returns the equipped shield id, or "" when empty.
func (s *Store) Shield() string {
	return s.shield
}

// SetShield overwrites the shield slot. An empty id clears it.
func (s *Store) SetShield(itemID string) {
	s.shield = itemID
}

func weaponIndex(slot SlotType) (int, bool) {
	switch slot {
	case SlotWeapon1:
		return 0, true
	case SlotWeapon2:
		return 1, true
	}
	return 0, false
}

// Weapon returns the entry of a weapon slot.
func (s *Store) Weapon(slot SlotType) (WeaponEntry, bool) {
	idx, ok := weaponIndex(slot)
	if !ok || s.weapons[idx] == nil {
		return WeaponEntry{}, false
	}
	return *s.weapons[idx], true
}

// SetWeapon overwrites a weapon slot.
func (s *Store) SetWeapon(slot SlotType, entry WeaponEntry) bool {
	idx, ok := weaponIndex(slot)
	if !ok || entry.ItemID == "" || !models.IsValidTier(entry.Tier) {
		return false
	}
	s.weapons[idx] = &entry
	return true
}

// ClearWeapon empties a weapon slot.
func (s *Store) ClearWeapon(slot SlotType) bool {
	idx, ok := weaponIndex(slot)
	if !ok || s.weapons[idx] == nil {
		return false
	}
	s.weapons[idx] = nil
	return true
}

func (s *Store) sequence(slot SlotType) *[]SequenceEntry {
	switch slot {
	case SlotBackpack:
		return &s.backpack
	case SlotQuickUse:
		return &s.quickUse
	case SlotSafePocket:
		return &s.safePocket
	}
	return nil
}

// Len returns the number of entries in a sequence slot.
func (s *Store) Len(slot SlotType) int {
	list := s.sequence(slot)
	if list == nil {
		return 0
	}
	return len(*list)
}

// Entries returns a copy of a sequence slot.
func (s *Store) Entries(slot SlotType) []SequenceEntry {
	list := s.sequence(slot)
	if list == nil {
		return nil
	}
	out := make([]SequenceEntry, len(*list))
	for i, entry := range *list {
		out[i] = entry.clone()
	}
	return out
}

// Entry returns the entry at a sequence position.
func (s *Store) Entry(slot SlotType, position int) (SequenceEntry, bool) {
	list := s.sequence(slot)
	if list == nil || position < 0 || position >= len(*list) {
		return SequenceEntry{}, false
	}
	return (*list)[position].clone(), true
}

// SetEntry replaces the entry at an existing sequence position.
func (s *Store) SetEntry(slot SlotType, position int, entry SequenceEntry) bool {
	list := s.sequence(slot)
	if list == nil || position < 0 || position >= len(*list) || entry.isPlaceholder() {
		return false
	}
	(*list)[position] = entry.clone()
	return true
}

// Insert places entry at position, shifting later entries right. Positions past
// the end (or AppendPosition) append. The list is padded with placeholders up to
// position and trimmed afterwards, so no gap remains.
func (s *Store) Insert(slot SlotType, position int, entry SequenceEntry) bool {
	list := s.sequence(slot)
	if list == nil || entry.isPlaceholder() {
		return false
	}
	if position < 0 {
		position = len(*list)
	}

	padded := *list
	for len(padded) < position {
		padded = append(padded, SequenceEntry{})
	}
	padded = append(padded, SequenceEntry{})
	copy(padded[position+1:], padded[position:])
	padded[position] = entry.clone()

	*list = trimPlaceholders(padded)
	return true
}

// Remove splices the entry at position out, shifting later entries left.
func (s *Store) Remove(slot SlotType, position int) (SequenceEntry, bool) {
	list := s.sequence(slot)
	if list == nil || position < 0 || position >= len(*list) {
		return SequenceEntry{}, false
	}
	removed := (*list)[position]
	*list = append((*list)[:position], (*list)[position+1:]...)
	return removed, true
}

// trimPlaceholders drops every placeholder entry in place.
func trimPlaceholders(list []SequenceEntry) []SequenceEntry {
	out := list[:0]
	for _, entry := range list {
		if !entry.isPlaceholder() {
			out = append(out, entry)
		}
	}
	for i := len(out); i < len(list); i++ {
		list[i] = SequenceEntry{}
	}
	return out
}

// Get returns the occupant of any location.
func (s *Store) Get(ref SlotRef) (Occupant, bool) {
	switch {
	case ref.Slot == SlotAugment:
		if s.augment == "" {
			return Occupant{}, false
		}
		return Occupant{Ref: Ref(SlotAugment), ItemID: s.augment, Quantity: 1}, true
	case ref.Slot == SlotShield:
		if s.shield == "" {
			return Occupant{}, false
		}
		return Occupant{Ref: Ref(SlotShield), ItemID: s.shield, Quantity: 1}, true
	case ref.Slot.IsWeapon():
		entry, ok := s.Weapon(ref.Slot)
		if !ok {
			return Occupant{}, false
		}
		tier := entry.Tier
		return Occupant{Ref: Ref(ref.Slot), ItemID: entry.ItemID, Quantity: 1, Tier: &tier}, true
	case ref.Slot.IsSequence():
		entry, ok := s.Entry(ref.Slot, ref.Position)
		if !ok {
			return Occupant{}, false
		}
		return Occupant{Ref: ref, ItemID: entry.ItemID, Quantity: entry.Quantity, Tier: entry.Tier}, true
	}
	return Occupant{}, false
}

// RemoveAt empties any location. Sequence removal is a splice.
func (s *Store) RemoveAt(ref SlotRef) bool {
	switch {
	case ref.Slot == SlotAugment:
		if s.augment == "" {
			return false
		}
		s.augment = ""
		return true
	case ref.Slot == SlotShield:
		if s.shield == "" {
			return false
		}
		s.shield = ""
		return true
	case ref.Slot.IsWeapon():
		return s.ClearWeapon(ref.Slot)
	case ref.Slot.IsSequence():
		_, ok := s.Remove(ref.Slot, ref.Position)
		return ok
	}
	return false
}

// SetTier changes the tier of the weapon at ref. Non-weapon entries are left
// untouched and report false.
func (s *Store) SetTier(ref SlotRef, tier int) bool {
	if !models.IsValidTier(tier) {
		return false
	}
	if idx, ok := weaponIndex(ref.Slot); ok {
		if s.weapons[idx] == nil {
			return false
		}
		s.weapons[idx].Tier = tier
		return true
	}

	list := s.sequence(ref.Slot)
	if list == nil || ref.Position < 0 || ref.Position >= len(*list) {
		return false
	}
	entry := &(*list)[ref.Position]
	if entry.Tier == nil {
		return false
	}
	entry.Tier = &tier
	return true
}

// SelectedTier returns the tier chosen for an item while browsing, default 1.
func (s *Store) SelectedTier(itemID string) int {
	if tier, ok := s.selectedTiers[itemID]; ok {
		return tier
	}
	return models.DefaultWeaponTier
}

// SelectedTiers returns a copy of every explicitly selected tier.
func (s *Store) SelectedTiers() map[string]int {
	out := make(map[string]int, len(s.selectedTiers))
	for itemID, tier := range s.selectedTiers {
		out[itemID] = tier
	}
	return out
}

// SetSelectedTier records the browsing tier of an item.
func (s *Store) SetSelectedTier(itemID string, tier int) bool {
	if itemID == "" || !models.IsValidTier(tier) {
		return false
	}
	s.selectedTiers[itemID] = tier
	return true
}

// Clear empties every slot and forgets selected tiers.
func (s *Store) Clear() {
	*s = *NewStore()
}

// IsEmpty reports whether no slot is occupied.
func (s *Store) IsEmpty() bool {
	return s.augment == "" &&
		s.shield == "" &&
		s.weapons[0] == nil &&
		s.weapons[1] == nil &&
		len(s.backpack) == 0 &&
		len(s.quickUse) == 0 &&
		len(s.safePocket) == 0
}

// Occupants walks every occupied location in slot order.
func (s *Store) Occupants() []Occupant {
	var out []Occupant
	for _, slot := range AllSlots {
		if slot.IsSequence() {
			for pos := range *s.sequence(slot) {
				occupant, _ := s.Get(At(slot, pos))
				out = append(out, occupant)
			}
			continue
		}
		if occupant, ok := s.Get(Ref(slot)); ok {
			out = append(out, occupant)
		}
	}
	return out
}

// Clone returns a deep copy.
func (s *Store) Clone() *Store {
	c := &Store{
		augment:       s.augment,
		shield:        s.shield,
		backpack:      s.Entries(SlotBackpack),
		quickUse:      s.Entries(SlotQuickUse),
		safePocket:    s.Entries(SlotSafePocket),
		selectedTiers: make(map[string]int, len(s.selectedTiers)),
	}
	for i, weapon := range s.weapons {
		if weapon != nil {
			entry := *weapon
			c.weapons[i] = &entry
		}
	}
	for itemID, tier := range s.selectedTiers {
		c.selectedTiers[itemID] = tier
	}
	return c
}

// replaceWith commits a working copy.
func (s *Store) replaceWith(other *Store) {
	*s = *other
}
