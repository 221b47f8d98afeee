package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shard-legends/loadout-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(v int) *int { return &v }

func basic(id string) models.Resource {
	return models.Resource{ID: id, Name: id, ResourceType: models.ResourceTypeBasic, Rarity: models.RarityCommon}
}

func refined(id string, recipe ...models.ResourceCost) models.Resource {
	return models.Resource{ID: id, Name: id, ResourceType: models.ResourceTypeRefined, Rarity: models.RarityRare, Recipe: recipe}
}

func cost(id string, qty int) models.ResourceCost {
	return models.ResourceCost{ResourceID: id, Quantity: qty}
}

func item(id string, category models.Category, costs ...models.ResourceCost) models.Item {
	return models.Item{ID: id, Name: id, Category: category, Rarity: models.RarityCommon, StackSize: 1, Resources: costs}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Greater(t, c.ItemCount(), 0)
	assert.Greater(t, c.ResourceCount(), 0)

	kettle, ok := c.Item("w_kettle")
	require.True(t, ok)
	assert.True(t, kettle.IsWeapon())
	assert.Equal(t, "Kettle", kettle.Name)

	_, ok = c.Item("missing")
	assert.False(t, ok)

	gunParts, ok := c.Resource("r_simple_gun_parts")
	require.True(t, ok)
	assert.True(t, gunParts.IsRefined())
	assert.Equal(t, []models.ResourceCost{cost("r_metal_parts", 3)}, gunParts.Recipe)
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	c := New([]models.Item{item("h_bandage", models.CategoryHealing, cost("r_fabric", 5))}, []models.Resource{basic("r_fabric")})

	items := c.Items()
	items[0].Name = "changed"
	resources := c.Resources()
	resources[0].Name = "changed"

	got, _ := c.Item("h_bandage")
	assert.Equal(t, "h_bandage", got.Name)
	assert.Equal(t, "r_fabric", c.ResourceName("r_fabric"))
	assert.Equal(t, "r_unknown", c.ResourceName("r_unknown"))
}

func TestWeaponTierResources(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t,
		[]models.ResourceCost{cost("r_metal_parts", 8), cost("r_plastic_parts", 10)},
		c.WeaponTierResources("w_kettle", 2))
	assert.Empty(t, c.WeaponTierResources("w_kettle", 5))
	assert.Nil(t, c.WeaponTierResources("h_bandage", 1))
	assert.Nil(t, c.WeaponTierResources("missing", 1))

	kettle, _ := c.Item("w_kettle")
	assert.Len(t, kettle.CumulativeTierCost(3), 6)
}

func TestFilter(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name     string
		category string
		query    string
		check    func(t *testing.T, items []models.Item)
	}{
		{
			name:     "all categories blank query",
			category: models.CategoryAll,
			check: func(t *testing.T, items []models.Item) {
				assert.Len(t, items, c.ItemCount())
			},
		},
		{
			name:     "empty category means all",
			category: "",
			check: func(t *testing.T, items []models.Item) {
				assert.Len(t, items, c.ItemCount())
			},
		},
		{
			name:     "category only",
			category: string(models.CategoryAugment),
			check: func(t *testing.T, items []models.Item) {
				require.NotEmpty(t, items)
				for _, it := range items {
					assert.Equal(t, models.CategoryAugment, it.Category)
				}
			},
		},
		{
			name:     "case insensitive trimmed query",
			category: models.CategoryAll,
			query:    "  KETT ",
			check: func(t *testing.T, items []models.Item) {
				require.Len(t, items, 1)
				assert.Equal(t, "w_kettle", items[0].ID)
			},
		},
		{
			name:     "query outside category",
			category: string(models.CategoryHealing),
			query:    "kettle",
			check: func(t *testing.T, items []models.Item) {
				assert.Empty(t, items)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, c.Filter(tt.category, tt.query))
		})
	}
}

func TestSuggest(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	suggestions := c.Suggest("kettel", 5)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "w_kettle", suggestions[0].ID)

	assert.Nil(t, c.Suggest("ke", 5), "short queries produce no suggestions")
	assert.Nil(t, c.Suggest("kettel", 0))
	assert.Empty(t, c.Suggest("zzzzzzzzzzzz", 5))

	limited := c.Suggest("mk. 1", 1)
	assert.LessOrEqual(t, len(limited), 1)
}

func TestSortResourceDisplays(t *testing.T) {
	entries := []models.ResourceDisplay{
		{ID: "b", Name: "Beta", Rarity: models.RarityCommon},
		{ID: "x", Name: "Mystery", Rarity: models.Rarity("Unobtainium")},
		{ID: "a", Name: "Alpha", Rarity: models.RarityCommon},
		{ID: "l", Name: "Zeta", Rarity: models.RarityLegendary},
		{ID: "r", Name: "Gamma", Rarity: models.RarityRare},
	}

	SortResourceDisplays(entries)

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"l", "r", "a", "b", "x"}, ids)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		items     []models.Item
		resources []models.Resource
		wantErr   error
	}{
		{
			name:      "valid",
			items:     []models.Item{item("h_bandage", models.CategoryHealing, cost("r_fabric", 5))},
			resources: []models.Resource{basic("r_fabric"), refined("r_cloth", cost("r_fabric", 2))},
		},
		{
			name:      "empty resource id",
			resources: []models.Resource{basic("")},
			wantErr:   ErrEmptyID,
		},
		{
			name:      "duplicate resource",
			resources: []models.Resource{basic("r_fabric"), basic("r_fabric")},
			wantErr:   ErrDuplicateID,
		},
		{
			name:      "duplicate item",
			items:     []models.Item{item("h_bandage", models.CategoryHealing), item("h_bandage", models.CategoryHealing)},
			resources: []models.Resource{},
			wantErr:   ErrDuplicateID,
		},
		{
			name:    "unknown category",
			items:   []models.Item{item("f_apple", models.Category("Food"))},
			wantErr: ErrInvalidCategory,
		},
		{
			name: "zero stack size",
			items: []models.Item{func() models.Item {
				it := item("h_bandage", models.CategoryHealing)
				it.StackSize = 0
				return it
			}()},
			wantErr: ErrInvalidStackSize,
		},
		{
			name:    "unknown resource in cost",
			items:   []models.Item{item("h_bandage", models.CategoryHealing, cost("r_silk", 1))},
			wantErr: ErrUnknownResource,
		},
		{
			name:      "non-positive quantity",
			items:     []models.Item{item("h_bandage", models.CategoryHealing, cost("r_fabric", 0))},
			resources: []models.Resource{basic("r_fabric")},
			wantErr:   ErrInvalidQuantity,
		},
		{
			name: "tier out of range",
			items: []models.Item{func() models.Item {
				it := item("w_kettle", models.CategoryWeapon)
				it.TierResources = map[int][]models.ResourceCost{5: {cost("r_fabric", 1)}}
				return it
			}()},
			resources: []models.Resource{basic("r_fabric")},
			wantErr:   ErrInvalidTier,
		},
		{
			name: "slot override on non-augment",
			items: []models.Item{func() models.Item {
				it := item("h_bandage", models.CategoryHealing)
				it.BackpackSlots = intPtr(4)
				return it
			}()},
			wantErr: ErrSlotOverride,
		},
		{
			name: "basic resource with recipe",
			resources: []models.Resource{basic("r_fabric"), func() models.Resource {
				r := basic("r_cloth")
				r.Recipe = []models.ResourceCost{cost("r_fabric", 1)}
				return r
			}()},
			wantErr: ErrRecipeMismatch,
		},
		{
			name:      "refined resource without recipe",
			resources: []models.Resource{refined("r_cloth")},
			wantErr:   ErrRecipeMismatch,
		},
		{
			name:      "unknown resource type",
			resources: []models.Resource{{ID: "r_goo", ResourceType: models.ResourceType("liquid")}},
			wantErr:   ErrInvalidResourceType,
		},
		{
			name: "recipe cycle",
			resources: []models.Resource{
				refined("r_a", cost("r_b", 1)),
				refined("r_b", cost("r_a", 1)),
			},
			wantErr: ErrRecipeCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.items, tt.resources).Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestYAMLSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
resources:
  - {id: r_fabric, name: Fabric, resource_type: basic, rarity: Common}
items:
  - id: h_bandage
    name: Bandage
    category: Healing
    rarity: Common
    stack_size: 5
    resources:
      - {resource: r_fabric, quantity: 5}
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := Load(context.Background(), NewYAMLSource(path), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, c.ItemCount())
	assert.Equal(t, 1, c.ResourceCount())

	bandage, ok := c.Item("h_bandage")
	require.True(t, ok)
	assert.Equal(t, 5, bandage.StackSize)
	assert.Equal(t, []models.ResourceCost{cost("r_fabric", 5)}, bandage.Resources)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), NewYAMLSource(filepath.Join(t.TempDir(), "nope.yaml")), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("items: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("invalid catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		data := []byte(`
resources: []
items:
  - {id: h_bandage, name: Bandage, category: Healing, rarity: Common, stack_size: 5, resources: [{resource: r_fabric, quantity: 5}]}
`)
		require.NoError(t, os.WriteFile(path, data, 0o600))

		_, err := Load(context.Background(), NewYAMLSource(path), zap.NewNop())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownResource)
		assert.Contains(t, err.Error(), "catalog validation failed")
	})
}
