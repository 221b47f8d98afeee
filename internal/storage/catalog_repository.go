package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/shard-legends/loadout-service/internal/models"
)

// baseCostTier marks non-weapon costs in loadout.item_costs.
const baseCostTier = 0

// CatalogSchema создает таблицы каталога
const CatalogSchema = `
	CREATE SCHEMA IF NOT EXISTS loadout;

	CREATE TABLE IF NOT EXISTS loadout.resources (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		rarity        TEXT NOT NULL,
		image         TEXT,
		position      INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS loadout.resource_recipes (
		resource_id  TEXT NOT NULL REFERENCES loadout.resources(id) ON DELETE CASCADE,
		component_id TEXT NOT NULL REFERENCES loadout.resources(id),
		quantity     INTEGER NOT NULL CHECK (quantity > 0),
		position     INTEGER NOT NULL,
		PRIMARY KEY (resource_id, position)
	);

	CREATE TABLE IF NOT EXISTS loadout.items (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		category          TEXT NOT NULL,
		rarity            TEXT NOT NULL,
		stack_size        INTEGER NOT NULL CHECK (stack_size > 0),
		image             TEXT,
		max_shield        TEXT,
		backpack_slots    INTEGER,
		quick_use_slots   INTEGER,
		safe_pocket_slots INTEGER,
		position          INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS loadout.item_costs (
		item_id     TEXT NOT NULL REFERENCES loadout.items(id) ON DELETE CASCADE,
		tier        INTEGER NOT NULL CHECK (tier BETWEEN 0 AND 4),
		resource_id TEXT NOT NULL REFERENCES loadout.resources(id),
		quantity    INTEGER NOT NULL CHECK (quantity > 0),
		position    INTEGER NOT NULL,
		PRIMARY KEY (item_id, tier, position)
	);
`

// catalogRepository реализует CatalogRepository
type catalogRepository struct {
	db      DatabaseInterface
	metrics MetricsInterface
}

// NewCatalogRepository создает новый экземпляр репозитория каталога
func NewCatalogRepository(deps *RepositoryDependencies) CatalogRepository {
	return &catalogRepository{
		db:      deps.DB,
		metrics: deps.MetricsCollector,
	}
}

func (r *catalogRepository) observe(operation string) func() {
	start := time.Now()
	r.metrics.IncDBQuery(operation)
	return func() {
		r.metrics.ObserveDBQueryDuration(operation, time.Since(start))
	}
}

// EnsureSchema создает схему каталога, если она отсутствует
func (r *catalogRepository) EnsureSchema(ctx context.Context) error {
	defer r.observe("ensure_catalog_schema")()

	if err := r.db.Exec(ctx, CatalogSchema); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// LoadResources возвращает все ресурсы каталога с рецептами
func (r *catalogRepository) LoadResources(ctx context.Context) ([]models.Resource, error) {
	defer r.observe("load_resources")()

	query := `
		SELECT id, name, resource_type, rarity, image
		FROM loadout.resources
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource
	index := make(map[string]int)
	for rows.Next() {
		var resource models.Resource
		if err := rows.Scan(
			&resource.ID,
			&resource.Name,
			&resource.ResourceType,
			&resource.Rarity,
			&resource.Image,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		index[resource.ID] = len(resources)
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	recipeQuery := `
		SELECT resource_id, component_id, quantity
		FROM loadout.resource_recipes
		ORDER BY resource_id, position
	`

	recipeRows, err := r.db.Query(ctx, recipeQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query resource recipes: %w", err)
	}
	defer recipeRows.Close()

	for recipeRows.Next() {
		var resourceID string
		var component models.ResourceCost
		if err := recipeRows.Scan(&resourceID, &component.ResourceID, &component.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan resource recipe: %w", err)
		}
		i, ok := index[resourceID]
		if !ok {
			continue
		}
		resources[i].Recipe = append(resources[i].Recipe, component)
	}

	if err := recipeRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return resources, nil
}

// LoadItems возвращает все предметы каталога с их стоимостью
func (r *catalogRepository) LoadItems(ctx context.Context) ([]models.Item, error) {
	defer r.observe("load_items")()

	query := `
		SELECT id, name, category, rarity, stack_size, image, max_shield,
			backpack_slots, quick_use_slots, safe_pocket_slots
		FROM loadout.items
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	index := make(map[string]int)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Rarity,
			&item.StackSize,
			&item.Image,
			&item.MaxShield,
			&item.BackpackSlots,
			&item.QuickUseSlots,
			&item.SafePocketSlots,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	costQuery := `
		SELECT item_id, tier, resource_id, quantity
		FROM loadout.item_costs
		ORDER BY item_id, tier, position
	`

	costRows, err := r.db.Query(ctx, costQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query item costs: %w", err)
	}
	defer costRows.Close()

	for costRows.Next() {
		var itemID string
		var tier int
		var cost models.ResourceCost
		if err := costRows.Scan(&itemID, &tier, &cost.ResourceID, &cost.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item cost: %w", err)
		}
		i, ok := index[itemID]
		if !ok {
			continue
		}
		item := &items[i]
		if tier == baseCostTier {
			item.Resources = append(item.Resources, cost)
			continue
		}
		if item.TierResources == nil {
			item.TierResources = make(map[int][]models.ResourceCost)
		}
		item.TierResources[tier] = append(item.TierResources[tier], cost)
	}

	if err := costRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// ReplaceCatalog атомарно заменяет содержимое каталога
func (r *catalogRepository) ReplaceCatalog(ctx context.Context, items []models.Item, resources []models.Resource) error {
	defer r.observe("replace_catalog")()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"loadout.item_costs", "loadout.items", "loadout.resource_recipes", "loadout.resources"} {
		if err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	resourceRows := make([][]interface{}, 0, len(resources))
	var recipeRows [][]interface{}
	for pos, resource := range resources {
		resourceRows = append(resourceRows, []interface{}{
			resource.ID, resource.Name, string(resource.ResourceType), string(resource.Rarity), resource.Image, pos,
		})
		for componentPos, component := range resource.Recipe {
			recipeRows = append(recipeRows, []interface{}{
				resource.ID, component.ResourceID, component.Quantity, componentPos,
			})
		}
	}

	itemRows := make([][]interface{}, 0, len(items))
	var costRows [][]interface{}
	for pos, item := range items {
		itemRows = append(itemRows, []interface{}{
			item.ID, item.Name, string(item.Category), string(item.Rarity), item.StackSize, item.Image, item.MaxShield,
			item.BackpackSlots, item.QuickUseSlots, item.SafePocketSlots, pos,
		})
		costRows = appendCostRows(costRows, item.ID, baseCostTier, item.Resources)
		for tier := models.MinWeaponTier; tier <= models.MaxWeaponTier; tier++ {
			costRows = appendCostRows(costRows, item.ID, tier, item.TierResources[tier])
		}
	}

	// Порядок таблиц соответствует внешним ключам
	copies := []struct {
		table   string
		columns []string
		rows    [][]interface{}
	}{
		{"resources", []string{"id", "name", "resource_type", "rarity", "image", "position"}, resourceRows},
		{"resource_recipes", []string{"resource_id", "component_id", "quantity", "position"}, recipeRows},
		{"items", []string{"id", "name", "category", "rarity", "stack_size", "image", "max_shield",
			"backpack_slots", "quick_use_slots", "safe_pocket_slots", "position"}, itemRows},
		{"item_costs", []string{"item_id", "tier", "resource_id", "quantity", "position"}, costRows},
	}
	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		copied, err := tx.CopyFrom(ctx, []string{"loadout", c.table}, c.columns, c.rows)
		if err != nil {
			return fmt.Errorf("failed to copy loadout.%s: %w", c.table, err)
		}
		if copied != int64(len(c.rows)) {
			return fmt.Errorf("copied %d of %d rows into loadout.%s", copied, len(c.rows), c.table)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	return nil
}

func appendCostRows(rows [][]interface{}, itemID string, tier int, costs []models.ResourceCost) [][]interface{} {
	for pos, cost := range costs {
		rows = append(rows, []interface{}{itemID, tier, cost.ResourceID, cost.Quantity, pos})
	}
	return rows
}
