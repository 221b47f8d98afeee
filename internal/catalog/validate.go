package catalog

import (
	"github.com/pkg/errors"
	"github.com/shard-legends/loadout-service/internal/models"
)

var (
	// ErrEmptyID indicates an item or resource without an id
	ErrEmptyID = errors.New("empty id")

	// ErrDuplicateID indicates two entries sharing one id
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidCategory indicates an unknown item category
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidStackSize indicates a non-positive stack size
	ErrInvalidStackSize = errors.New("invalid stack size")

	// ErrInvalidTier indicates a weapon tier key outside 1..4
	ErrInvalidTier = errors.New("invalid tier")

	// ErrInvalidQuantity indicates a non-positive cost quantity
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrUnknownResource indicates a cost or recipe referencing a missing resource
	ErrUnknownResource = errors.New("unknown resource")

	// ErrInvalidResourceType indicates a resource type other than basic or refined
	ErrInvalidResourceType = errors.New("invalid resource type")

	// ErrRecipeMismatch indicates a basic resource with a recipe or a refined one without
	ErrRecipeMismatch = errors.New("recipe does not match resource type")

	// ErrRecipeCycle indicates a refined resource whose recipe reaches itself
	ErrRecipeCycle = errors.New("recipe cycle")

	// ErrSlotOverride indicates slot capacity overrides on a non-augment item
	ErrSlotOverride = errors.New("slot override on non-augment item")
)

// Validate checks referential integrity of the catalog and rejects recipe cycles.
func (c *Catalog) Validate() error {
	if err := c.validateResources(); err != nil {
		return err
	}
	if err := c.validateItems(); err != nil {
		return err
	}
	return c.validateRecipeGraph()
}

func (c *Catalog) validateResources() error {
	seen := make(map[string]bool, len(c.resources))
	for _, resource := range c.resources {
		if resource.ID == "" {
			return errors.Wrap(ErrEmptyID, "resource")
		}
		if seen[resource.ID] {
			return errors.Wrapf(ErrDuplicateID, "resource %s", resource.ID)
		}
		seen[resource.ID] = true

		switch resource.ResourceType {
		case models.ResourceTypeBasic:
			if len(resource.Recipe) > 0 {
				return errors.Wrapf(ErrRecipeMismatch, "basic resource %s has a recipe", resource.ID)
			}
		case models.ResourceTypeRefined:
			if len(resource.Recipe) == 0 {
				return errors.Wrapf(ErrRecipeMismatch, "refined resource %s has no recipe", resource.ID)
			}
		default:
			return errors.Wrapf(ErrInvalidResourceType, "resource %s: %q", resource.ID, resource.ResourceType)
		}

		if err := c.validateCosts(resource.Recipe); err != nil {
			return errors.Wrapf(err, "resource %s recipe", resource.ID)
		}
	}
	return nil
}

func (c *Catalog) validateItems() error {
	seen := make(map[string]bool, len(c.items))
	for _, item := range c.items {
		if item.ID == "" {
			return errors.Wrap(ErrEmptyID, "item")
		}
		if seen[item.ID] {
			return errors.Wrapf(ErrDuplicateID, "item %s", item.ID)
		}
		seen[item.ID] = true

		if !item.Category.IsValid() {
			return errors.Wrapf(ErrInvalidCategory, "item %s: %q", item.ID, item.Category)
		}
		if item.StackSize <= 0 {
			return errors.Wrapf(ErrInvalidStackSize, "item %s: %d", item.ID, item.StackSize)
		}
		if item.Category != models.CategoryAugment &&
			(item.BackpackSlots != nil || item.QuickUseSlots != nil || item.SafePocketSlots != nil) {
			return errors.Wrapf(ErrSlotOverride, "item %s", item.ID)
		}

		if err := c.validateCosts(item.Resources); err != nil {
			return errors.Wrapf(err, "item %s resources", item.ID)
		}
		for tier, costs := range item.TierResources {
			if !models.IsValidTier(tier) {
				return errors.Wrapf(ErrInvalidTier, "item %s: tier %d", item.ID, tier)
			}
			if err := c.validateCosts(costs); err != nil {
				return errors.Wrapf(err, "item %s tier %d", item.ID, tier)
			}
		}
	}
	return nil
}

func (c *Catalog) validateCosts(costs []models.ResourceCost) error {
	for _, cost := range costs {
		if _, ok := c.resourcesByID[cost.ResourceID]; !ok {
			return errors.Wrapf(ErrUnknownResource, "%s", cost.ResourceID)
		}
		if cost.Quantity <= 0 {
			return errors.Wrapf(ErrInvalidQuantity, "%s: %d", cost.ResourceID, cost.Quantity)
		}
	}
	return nil
}

// validateRecipeGraph runs a depth-first search over refined recipes.
func (c *Catalog) validateRecipeGraph() error {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(c.resources))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case inProgress:
			return errors.Wrapf(ErrRecipeCycle, "resource %s", id)
		case done:
			return nil
		}
		state[id] = inProgress
		if resource, ok := c.resourcesByID[id]; ok {
			for _, component := range resource.Recipe {
				if err := visit(component.ResourceID); err != nil {
					return err
				}
			}
		}
		state[id] = done
		return nil
	}

	for _, resource := range c.resources {
		if err := visit(resource.ID); err != nil {
			return err
		}
	}
	return nil
}
