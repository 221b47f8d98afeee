package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shard-legends/loadout-service/internal/catalog"
	"github.com/shard-legends/loadout-service/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func cost(id string, quantity int) models.ResourceCost {
	return models.ResourceCost{ResourceID: id, Quantity: quantity}
}

// nestedCatalog: refined x = 2a + 1y, refined y = 3b.
func nestedCatalog() *catalog.Catalog {
	resources := []models.Resource{
		{ID: "a", Name: "Alpha", ResourceType: models.ResourceTypeBasic, Rarity: models.RarityCommon},
		{ID: "b", Name: "Beta", ResourceType: models.ResourceTypeBasic, Rarity: models.RarityUncommon},
		{ID: "x", Name: "Xeno", ResourceType: models.ResourceTypeRefined, Rarity: models.RarityEpic,
			Recipe: []models.ResourceCost{cost("a", 2), cost("y", 1)}},
		{ID: "y", Name: "Yotta", ResourceType: models.ResourceTypeRefined, Rarity: models.RarityRare,
			Recipe: []models.ResourceCost{cost("b", 3)}},
		// c1 and c2 reference each other; only reachable through the cycle item
		{ID: "c1", Name: "Cycle One", ResourceType: models.ResourceTypeRefined, Rarity: models.RarityRare,
			Recipe: []models.ResourceCost{cost("c2", 1)}},
		{ID: "c2", Name: "Cycle Two", ResourceType: models.ResourceTypeRefined, Rarity: models.RarityRare,
			Recipe: []models.ResourceCost{cost("c1", 1)}},
	}
	items := []models.Item{
		{ID: "g_box", Name: "Box", Category: models.CategoryGear, Rarity: models.RarityCommon, StackSize: 3,
			Resources: []models.ResourceCost{cost("x", 2)}},
		{ID: "g_plain", Name: "Plain", Category: models.CategoryGear, Rarity: models.RarityCommon, StackSize: 1,
			Resources: []models.ResourceCost{cost("a", 1), cost("ghost", 5)}},
		{ID: "g_cycle", Name: "Loop", Category: models.CategoryGear, Rarity: models.RarityCommon, StackSize: 1,
			Resources: []models.ResourceCost{cost("c1", 1)}},
	}
	return catalog.New(items, resources)
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

// MockTotalsCache - мок для TotalsCache
type MockTotalsCache struct {
	mock.Mock
}

func (m *MockTotalsCache) Get(ctx context.Context, key string) (map[string]int, bool, error) {
	args := m.Called(ctx, key)
	totals, _ := args.Get(0).(map[string]int)
	return totals, args.Bool(1), args.Error(2)
}

func (m *MockTotalsCache) Set(ctx context.Context, key string, totals map[string]int) error {
	args := m.Called(ctx, key, totals)
	return args.Error(0)
}

// recordingMetrics collects service metrics calls.
type recordingMetrics struct {
	mu      sync.Mutex
	intents []string
	sources []string
	active  int
}

func (r *recordingMetrics) RecordIntent(operation string, changed bool, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, operation)
}

func (r *recordingMetrics) RecordTotalsComputation(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, source)
}

func (r *recordingMetrics) SetActiveSessions(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = count
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(c CatalogReader, cache TotalsCache, metrics MetricsInterface, clock *fakeClock) *Service {
	deps := &ServiceDependencies{
		Catalog:     c,
		TotalsCache: cache,
		Metrics:     metrics,
		Logger:      zap.NewNop(),
	}
	if clock != nil {
		deps.now = clock.Now
	}
	return NewService(deps)
}

func newTestSession(t *testing.T, c CatalogReader) *Session {
	t.Helper()
	svc := newTestService(c, nil, nil, nil)
	session, err := svc.Sessions.Create()
	require.NoError(t, err)
	return session
}
