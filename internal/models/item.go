package models

// Category представляет категорию предмета каталога
type Category string

const (
	CategoryWeapon  Category = "Weapon"
	CategoryAugment Category = "Augment"
	CategoryShield  Category = "Shield"
	CategoryHealing Category = "Healing"
	CategoryTrap    Category = "Trap"
	CategoryGear    Category = "Gear"
	CategoryGadget  Category = "Gadget"
	CategoryTool    Category = "Tool"
)

// CategoryAll is the browsing filter value that disables category filtering.
const CategoryAll = "All"

// AllCategories lists categories in catalog display order.
var AllCategories = []Category{
	CategoryWeapon,
	CategoryAugment,
	CategoryShield,
	CategoryHealing,
	CategoryTrap,
	CategoryGear,
	CategoryGadget,
	CategoryTool,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Rarity представляет редкость предмета или ресурса
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// unknownRarityRank sorts unknown rarities after every known one.
const unknownRarityRank = 999

var rarityRanks = map[Rarity]int{
	RarityLegendary: 0,
	RarityEpic:      1,
	RarityRare:      2,
	RarityUncommon:  3,
	RarityCommon:    4,
}

// DisplayRank returns the sort position of the rarity, highest rarity first.
func (r Rarity) DisplayRank() int {
	if rank, ok := rarityRanks[r]; ok {
		return rank
	}
	return unknownRarityRank
}

// IsValid reports whether r is a known rarity.
func (r Rarity) IsValid() bool {
	_, ok := rarityRanks[r]
	return ok
}

// ResourceType разделяет базовые и переработанные ресурсы
type ResourceType string

const (
	ResourceTypeBasic   ResourceType = "basic"
	ResourceTypeRefined ResourceType = "refined"
)

// Weapon tiers
const (
	MinWeaponTier     = 1
	MaxWeaponTier     = 4
	DefaultWeaponTier = MinWeaponTier
)

// IsValidTier reports whether tier is within 1..4.
func IsValidTier(tier int) bool {
	return tier >= MinWeaponTier && tier <= MaxWeaponTier
}

// ResourceCost представляет одну позицию стоимости
type ResourceCost struct {
	ResourceID string `json:"resource_id" yaml:"resource"`
	Quantity   int    `json:"quantity" yaml:"quantity"`
}

// Item представляет предмет каталога
type Item struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Category  Category `json:"category" yaml:"category"`
	Rarity    Rarity   `json:"rarity" yaml:"rarity"`
	StackSize int      `json:"stack_size" yaml:"stack_size"`
	Image     *string  `json:"image,omitempty" yaml:"image"`
	MaxShield *string  `json:"max_shield,omitempty" yaml:"max_shield"`

	// Resources is the crafting cost of non-weapon items.
	Resources []ResourceCost `json:"resources" yaml:"resources"`
	// TierResources holds the incremental cost of reaching each weapon tier.
	TierResources map[int][]ResourceCost `json:"tier_resources,omitempty" yaml:"tier_resources"`

	// Переопределения вместимости (только для аугментов)
	BackpackSlots   *int `json:"backpack_slots,omitempty" yaml:"backpack_slots"`
	QuickUseSlots   *int `json:"quick_use_slots,omitempty" yaml:"quick_use_slots"`
	SafePocketSlots *int `json:"safe_pocket_slots,omitempty" yaml:"safe_pocket_slots"`
}

// IsWeapon reports whether the item is weapon-category.
func (i *Item) IsWeapon() bool {
	return i.Category == CategoryWeapon
}

// CumulativeTierCost returns the union of tier costs from tier 1 to tier inclusive.
// Entries are not merged; a resource appearing in several tiers appears several times.
func (i *Item) CumulativeTierCost(tier int) []ResourceCost {
	var costs []ResourceCost
	for t := MinWeaponTier; t <= tier; t++ {
		costs = append(costs, i.TierResources[t]...)
	}
	return costs
}

// Resource представляет ресурс каталога
type Resource struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	ResourceType ResourceType   `json:"resource_type" yaml:"resource_type"`
	Rarity       Rarity         `json:"rarity" yaml:"rarity"`
	Image        *string        `json:"image,omitempty" yaml:"image"`
	Recipe       []ResourceCost `json:"recipe,omitempty" yaml:"recipe"`
}

// IsRefined reports whether the resource can be decomposed.
func (r *Resource) IsRefined() bool {
	return r.ResourceType == ResourceTypeRefined
}

// ResourceDisplay представляет ресурс с количеством для отображения
type ResourceDisplay struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Quantity     int          `json:"quantity"`
	ResourceType ResourceType `json:"resource_type"`
	Rarity       Rarity       `json:"rarity"`
	Image        *string      `json:"image,omitempty"`
}
