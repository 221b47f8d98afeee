package loadout

import (
	"github.com/shard-legends/loadout-service/internal/models"
	"go.uber.org/zap"
)

// Reason explains why an intent left the loadout unchanged.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonUnknownItem         Reason = "unknown_item"
	ReasonUnknownSlot         Reason = "unknown_slot"
	ReasonSlotRejectsCategory Reason = "slot_rejects_category"
	ReasonCapacityExceeded    Reason = "capacity_exceeded"
	ReasonEmptySource         Reason = "empty_source"
	ReasonSourceMismatch      Reason = "source_mismatch"
	ReasonSameLocation        Reason = "same_location"
	ReasonEmptySlot           Reason = "empty_slot"
	ReasonNotAWeapon          Reason = "not_a_weapon"
	ReasonInvalidTier         Reason = "invalid_tier"
	ReasonQuantityOutOfRange  Reason = "quantity_out_of_range"
	ReasonNoSlotAvailable     Reason = "no_slot_available"
)

// Outcome reports the result of an intent. Rejected intents are silent no-ops,
// never errors.
type Outcome struct {
	Changed bool     `json:"changed"`
	Reason  Reason   `json:"reason,omitempty"`
	Placed  *SlotRef `json:"placed,omitempty"`
}

func changed(placed *SlotRef) Outcome {
	return Outcome{Changed: true, Placed: placed}
}

// MovePayload describes the dragged item. Zero Quantity and nil Tier inherit
// from the source entry, then fall back to one and the selected tier.
type MovePayload struct {
	ItemID   string
	Quantity int
	Tier     *int
}

// Coordinator validates and applies loadout intents against a Store.
// Every intent works on a clone and commits only on success.
type Coordinator struct {
	store  *Store
	items  ItemLookup
	logger *zap.Logger
}

// NewCoordinator creates a coordinator over store.
func NewCoordinator(store *Store, items ItemLookup, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		store:  store,
		items:  items,
		logger: logger,
	}
}

// Store returns the underlying store for read access.
func (c *Coordinator) Store() *Store {
	return c.store
}

// Capacities returns the effective sequence capacities.
func (c *Coordinator) Capacities() Capacities {
	return CapacitiesFor(c.store, c.items)
}

func (c *Coordinator) reject(operation string, reason Reason, fields ...zap.Field) Outcome {
	c.logger.Debug("Loadout intent rejected",
		append([]zap.Field{
			zap.String("operation", operation),
			zap.String("reason", string(reason)),
		}, fields...)...,
	)
	return Outcome{Reason: reason}
}

// Move places an item at dest. With a nil source it equips from the catalog;
// otherwise the source entry is removed first and both steps commit together.
func (c *Coordinator) Move(source *SlotRef, dest SlotRef, payload MovePayload) Outcome {
	const op = "move"

	item, ok := c.items.Item(payload.ItemID)
	if !ok {
		return c.reject(op, ReasonUnknownItem, zap.String("item_id", payload.ItemID))
	}
	if !dest.Slot.IsValid() {
		return c.reject(op, ReasonUnknownSlot, zap.String("slot", string(dest.Slot)))
	}
	if !CanAccept(item.Category, dest.Slot) {
		return c.reject(op, ReasonSlotRejectsCategory,
			zap.String("item_id", item.ID),
			zap.String("slot", string(dest.Slot)),
		)
	}

	work := c.store.Clone()
	destPos := dest.Position

	if source != nil {
		src, ok := work.Get(*source)
		if !ok {
			return c.reject(op, ReasonEmptySource, zap.String("slot", string(source.Slot)), zap.Int("position", source.Position))
		}
		if src.ItemID != item.ID {
			return c.reject(op, ReasonSourceMismatch, zap.String("item_id", item.ID), zap.String("source_item_id", src.ItemID))
		}
		if source.SameLocation(dest) {
			return c.reject(op, ReasonSameLocation)
		}

		if payload.Quantity <= 0 {
			payload.Quantity = src.Quantity
		}
		if payload.Tier == nil && src.Tier != nil {
			tier := *src.Tier
			payload.Tier = &tier
		}

		work.RemoveAt(*source)

		// Removing an earlier entry of the same list shifts the target left.
		if source.Slot == dest.Slot && dest.Slot.IsSequence() && destPos > source.Position {
			destPos--
		}
	}

	tier := work.SelectedTier(item.ID)
	if payload.Tier != nil {
		tier = *payload.Tier
	}
	if item.IsWeapon() && !models.IsValidTier(tier) {
		return c.reject(op, ReasonInvalidTier, zap.Int("tier", tier))
	}

	var placed SlotRef
	switch {
	case dest.Slot == SlotAugment:
		work.SetAugment(item.ID)
		placed = Ref(SlotAugment)
	case dest.Slot == SlotShield:
		work.SetShield(item.ID)
		placed = Ref(SlotShield)
	case dest.Slot.IsWeapon():
		work.SetWeapon(dest.Slot, WeaponEntry{ItemID: item.ID, Tier: tier})
		placed = Ref(dest.Slot)
	default:
		size := work.Len(dest.Slot)
		capacity := CapacityFor(dest.Slot, work, c.items)
		if size >= capacity {
			return c.reject(op, ReasonCapacityExceeded,
				zap.String("slot", string(dest.Slot)),
				zap.Int("capacity", capacity),
			)
		}
		if destPos < 0 || destPos > size {
			destPos = size
		}

		entry := SequenceEntry{
			ItemID:   item.ID,
			Quantity: clampQuantity(payload.Quantity, item.StackSize),
		}
		if item.IsWeapon() {
			entry.Tier = &tier
		}
		work.Insert(dest.Slot, destPos, entry)
		placed = At(dest.Slot, destPos)
	}

	c.store.replaceWith(work)
	return changed(&placed)
}

func clampQuantity(quantity, stackSize int) int {
	if quantity < 1 {
		return 1
	}
	if stackSize > 0 && quantity > stackSize {
		return stackSize
	}
	return quantity
}

// Equip drops a catalog item into dest.
func (c *Coordinator) Equip(itemID string, dest SlotRef) Outcome {
	return c.Move(nil, dest, MovePayload{ItemID: itemID})
}

// Unequip empties the referenced location.
func (c *Coordinator) Unequip(ref SlotRef) Outcome {
	const op = "unequip"

	if !ref.Slot.IsValid() {
		return c.reject(op, ReasonUnknownSlot, zap.String("slot", string(ref.Slot)))
	}
	if !c.store.RemoveAt(ref) {
		return c.reject(op, ReasonEmptySlot, zap.String("slot", string(ref.Slot)), zap.Int("position", ref.Position))
	}
	return changed(nil)
}

// autoEquipTargets lists candidate slots per category, most specific first.
func autoEquipTargets(category models.Category) []SlotType {
	switch category {
	case models.CategoryAugment:
		return []SlotType{SlotAugment, SlotBackpack}
	case models.CategoryShield:
		return []SlotType{SlotShield, SlotBackpack}
	case models.CategoryWeapon:
		return []SlotType{SlotWeapon1, SlotWeapon2, SlotBackpack}
	case models.CategoryHealing, models.CategoryTrap:
		return []SlotType{SlotQuickUse, SlotSafePocket}
	default:
		return []SlotType{SlotBackpack}
	}
}

// AutoEquip places an item into the first free slot suited to its category.
// Occupied equipment slots are never overwritten here.
func (c *Coordinator) AutoEquip(itemID string) Outcome {
	const op = "auto_equip"

	item, ok := c.items.Item(itemID)
	if !ok {
		return c.reject(op, ReasonUnknownItem, zap.String("item_id", itemID))
	}

	for _, slot := range autoEquipTargets(item.Category) {
		if slot.IsSequence() {
			if c.store.Len(slot) >= CapacityFor(slot, c.store, c.items) {
				continue
			}
			return c.Equip(item.ID, At(slot, AppendPosition))
		}
		if _, occupied := c.store.Get(Ref(slot)); occupied {
			continue
		}
		return c.Equip(item.ID, Ref(slot))
	}

	return c.reject(op, ReasonNoSlotAvailable, zap.String("item_id", item.ID))
}

// AdjustQuantity adds delta to a sequence entry when the result stays within
// one and the item's stack size.
func (c *Coordinator) AdjustQuantity(ref SlotRef, delta int) Outcome {
	const op = "adjust_quantity"

	if !ref.Slot.IsSequence() {
		return c.reject(op, ReasonUnknownSlot, zap.String("slot", string(ref.Slot)))
	}
	entry, ok := c.store.Entry(ref.Slot, ref.Position)
	if !ok {
		return c.reject(op, ReasonEmptySlot, zap.String("slot", string(ref.Slot)), zap.Int("position", ref.Position))
	}
	item, ok := c.items.Item(entry.ItemID)
	if !ok {
		return c.reject(op, ReasonUnknownItem, zap.String("item_id", entry.ItemID))
	}

	quantity := entry.Quantity + delta
	if delta == 0 || quantity < 1 || quantity > item.StackSize {
		return c.reject(op, ReasonQuantityOutOfRange,
			zap.String("item_id", item.ID),
			zap.Int("quantity", entry.Quantity),
			zap.Int("delta", delta),
		)
	}

	entry.Quantity = quantity
	c.store.SetEntry(ref.Slot, ref.Position, entry)
	return changed(&ref)
}

// SetLoadoutWeaponTier changes the tier of an equipped weapon.
func (c *Coordinator) SetLoadoutWeaponTier(ref SlotRef, tier int) Outcome {
	const op = "set_loadout_weapon_tier"

	if !models.IsValidTier(tier) {
		return c.reject(op, ReasonInvalidTier, zap.Int("tier", tier))
	}
	occupant, ok := c.store.Get(ref)
	if !ok {
		return c.reject(op, ReasonEmptySlot, zap.String("slot", string(ref.Slot)), zap.Int("position", ref.Position))
	}
	if occupant.Tier == nil || !c.store.SetTier(ref, tier) {
		return c.reject(op, ReasonNotAWeapon, zap.String("item_id", occupant.ItemID))
	}
	return changed(&ref)
}

// SetWeaponTier records the tier selected for a weapon in the catalog view.
// Items equipped afterwards use it; equipped entries keep their own tier.
func (c *Coordinator) SetWeaponTier(itemID string, tier int) Outcome {
	const op = "set_weapon_tier"

	item, ok := c.items.Item(itemID)
	if !ok {
		return c.reject(op, ReasonUnknownItem, zap.String("item_id", itemID))
	}
	if !item.IsWeapon() {
		return c.reject(op, ReasonNotAWeapon, zap.String("item_id", itemID))
	}
	if !c.store.SetSelectedTier(item.ID, tier) {
		return c.reject(op, ReasonInvalidTier, zap.Int("tier", tier))
	}
	return changed(nil)
}

// Clear empties the loadout and resets selected tiers.
func (c *Coordinator) Clear() Outcome {
	c.store.Clear()
	return changed(nil)
}
