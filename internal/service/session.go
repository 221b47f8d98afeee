package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shard-legends/loadout-service/internal/loadout"
	"github.com/shard-legends/loadout-service/internal/models"
	"go.uber.org/zap"
)

// Reasons produced by session-level intents
const (
	ReasonUnknownCategory loadout.Reason = "unknown_category"
	ReasonUnknownResource loadout.Reason = "unknown_resource"
	ReasonNothingToDo     loadout.Reason = "nothing_to_do"
)

// DefaultSuggestionLimit ограничивает число нечетких подсказок при пустом поиске
const DefaultSuggestionLimit = 5

// Session хранит рабочее состояние одного клиента: снаряжение,
// набор разложенных ресурсов и состояние просмотра каталога.
// Все операции сессии выполняются последовательно под мьютексом.
type Session struct {
	id        uuid.UUID
	createdAt time.Time

	mu          sync.Mutex
	lastAccess  time.Time
	store       *loadout.Store
	coordinator *loadout.Coordinator
	decomposed  DecomposedSet
	category    string
	search      string

	env    *sessionEnv
	logger *zap.Logger
}

// sessionEnv содержит зависимости, общие для всех сессий
type sessionEnv struct {
	catalog        CatalogReader
	aggregator     *ResourceAggregator
	totalsCache    TotalsCache
	metrics        MetricsInterface
	catalogVersion string
	now            func() time.Time
}

func newSession(id uuid.UUID, env *sessionEnv, logger *zap.Logger) *Session {
	now := env.now()
	sessionLogger := logger.With(zap.String("session_id", id.String()))
	store := loadout.NewStore()

	return &Session{
		id:          id,
		createdAt:   now,
		lastAccess:  now,
		store:       store,
		coordinator: loadout.NewCoordinator(store, env.catalog, sessionLogger),
		decomposed:  make(DecomposedSet),
		category:    models.CategoryAll,
		env:         env,
		logger:      sessionLogger,
	}
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// CreatedAt returns the creation time.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastAccess returns the time of the last operation on the session.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) touch() {
	s.lastAccess = s.env.now()
}

// apply runs an intent under the session lock and records its outcome.
func (s *Session) apply(operation string, intent func() loadout.Outcome) loadout.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	outcome := intent()
	s.env.metrics.RecordIntent(operation, outcome.Changed, string(outcome.Reason))
	return outcome
}

// SelectCategory sets the catalog category filter. "" and "All" disable it.
func (s *Session) SelectCategory(category string) loadout.Outcome {
	return s.apply("select_category", func() loadout.Outcome {
		if category == "" {
			category = models.CategoryAll
		}
		if category != models.CategoryAll && !models.Category(category).IsValid() {
			return loadout.Outcome{Reason: ReasonUnknownCategory}
		}
		s.category = category
		return loadout.Outcome{Changed: true}
	})
}

// SetSearchQuery sets the catalog name filter.
func (s *Session) SetSearchQuery(query string) loadout.Outcome {
	return s.apply("set_search_query", func() loadout.Outcome {
		s.search = query
		return loadout.Outcome{Changed: true}
	})
}

// SetWeaponTier selects the catalog tier used when the weapon is equipped next.
func (s *Session) SetWeaponTier(itemID string, tier int) loadout.Outcome {
	return s.apply("set_weapon_tier", func() loadout.Outcome {
		return s.coordinator.SetWeaponTier(itemID, tier)
	})
}

// AutoEquip places an item into the first suitable free slot.
func (s *Session) AutoEquip(itemID string) loadout.Outcome {
	return s.apply("auto_equip", func() loadout.Outcome {
		return s.coordinator.AutoEquip(itemID)
	})
}

// Equip drops a catalog item at ref.
func (s *Session) Equip(itemID string, ref loadout.SlotRef) loadout.Outcome {
	return s.apply("equip", func() loadout.Outcome {
		return s.coordinator.Equip(itemID, ref)
	})
}

// Unequip empties ref.
func (s *Session) Unequip(ref loadout.SlotRef) loadout.Outcome {
	return s.apply("unequip", func() loadout.Outcome {
		return s.coordinator.Unequip(ref)
	})
}

// SetQuantity adjusts the quantity of a sequence entry by delta.
func (s *Session) SetQuantity(ref loadout.SlotRef, delta int) loadout.Outcome {
	return s.apply("set_quantity", func() loadout.Outcome {
		return s.coordinator.AdjustQuantity(ref, delta)
	})
}

// SetLoadoutWeaponTier changes the tier of an equipped weapon.
func (s *Session) SetLoadoutWeaponTier(ref loadout.SlotRef, tier int) loadout.Outcome {
	return s.apply("set_loadout_weapon_tier", func() loadout.Outcome {
		return s.coordinator.SetLoadoutWeaponTier(ref, tier)
	})
}

// Move relocates an item. A nil source drops it from the catalog.
func (s *Session) Move(source *loadout.SlotRef, dest loadout.SlotRef, payload loadout.MovePayload) loadout.Outcome {
	return s.apply("move", func() loadout.Outcome {
		return s.coordinator.Move(source, dest, payload)
	})
}

// ToggleDecompose flips decomposition of a resource.
func (s *Session) ToggleDecompose(resourceID string) loadout.Outcome {
	return s.apply("toggle_decompose", func() loadout.Outcome {
		if _, ok := s.env.catalog.Resource(resourceID); !ok {
			return loadout.Outcome{Reason: ReasonUnknownResource}
		}
		if s.decomposed.Has(resourceID) {
			delete(s.decomposed, resourceID)
		} else {
			s.decomposed[resourceID] = true
		}
		return loadout.Outcome{Changed: true}
	})
}

// DecomposeAll flags every refined resource in the totals, repeating until the
// totals contain no unflagged refined resource.
func (s *Session) DecomposeAll() loadout.Outcome {
	return s.apply("decompose_all", func() loadout.Outcome {
		added := 0
		for {
			pass := 0
			totals := s.env.aggregator.ComputeTotals(s.store, s.decomposed)
			for _, id := range s.env.aggregator.RefinedIn(totals) {
				if !s.decomposed.Has(id) {
					s.decomposed[id] = true
					pass++
				}
			}
			if pass == 0 {
				break
			}
			added += pass
		}
		if added == 0 {
			return loadout.Outcome{Reason: ReasonNothingToDo}
		}
		return loadout.Outcome{Changed: true}
	})
}

// ResetDecomposition clears the decomposed set.
func (s *Session) ResetDecomposition() loadout.Outcome {
	return s.apply("reset_decomposition", func() loadout.Outcome {
		if len(s.decomposed) == 0 {
			return loadout.Outcome{Reason: ReasonNothingToDo}
		}
		s.decomposed = make(DecomposedSet)
		return loadout.Outcome{Changed: true}
	})
}

// ClearLoadout empties the loadout and selected tiers; resetSearch also clears
// the search query.
func (s *Session) ClearLoadout(resetSearch bool) loadout.Outcome {
	return s.apply("clear_loadout", func() loadout.Outcome {
		outcome := s.coordinator.Clear()
		if resetSearch {
			s.search = ""
		}
		return outcome
	})
}

// DecomposedResourceIDs returns the flagged resource ids.
func (s *Session) DecomposedResourceIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decomposed.IDs()
}

// FilteredItems returns the catalog filtered by the session's browsing state,
// with fuzzy suggestions when nothing matches a non-blank query.
func (s *Session) FilteredItems() ItemsView {
	s.mu.Lock()
	category, search := s.category, s.search
	s.touch()
	s.mu.Unlock()

	view := ItemsView{
		Category:    category,
		SearchQuery: search,
		Items:       s.env.catalog.Filter(category, search),
	}
	if len(view.Items) == 0 && strings.TrimSpace(search) != "" {
		view.Suggestions = s.env.catalog.Suggest(search, DefaultSuggestionLimit)
	}
	return view
}

// snapshot copies the state derived views are computed from.
func (s *Session) snapshot() (*loadout.Store, DecomposedSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.store.Clone(), s.decomposed.Clone()
}

// Totals returns the resource totals, served from the totals cache when possible.
func (s *Session) Totals(ctx context.Context) map[string]int {
	store, decomposed := s.snapshot()
	return s.totals(ctx, store, decomposed)
}

func (s *Session) totals(ctx context.Context, store *loadout.Store, decomposed DecomposedSet) map[string]int {
	cache := s.env.totalsCache
	if cache == nil {
		s.env.metrics.RecordTotalsComputation("computed")
		return s.env.aggregator.ComputeTotals(store, decomposed)
	}

	key := totalsFingerprint(s.env.catalogVersion, store, decomposed)
	cached, found, err := cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read cached totals", zap.Error(err))
	}
	if err == nil && found {
		s.env.metrics.RecordTotalsComputation("cache")
		return cached
	}

	totals := s.env.aggregator.ComputeTotals(store, decomposed)
	s.env.metrics.RecordTotalsComputation("computed")
	if err := cache.Set(ctx, key, totals); err != nil {
		s.logger.Warn("Failed to cache totals", zap.Error(err))
	}
	return totals
}

// SortedTotals returns the totals ordered for display.
func (s *Session) SortedTotals(ctx context.Context) []models.ResourceDisplay {
	return s.env.aggregator.SortedTotals(s.Totals(ctx))
}

// DecomposedDisplay returns the original quantities of decomposed resources.
func (s *Session) DecomposedDisplay() []models.ResourceDisplay {
	store, decomposed := s.snapshot()
	return s.env.aggregator.DecomposedDisplay(store, decomposed)
}

// Snapshot resolves the loadout to catalog items.
func (s *Session) Snapshot() LoadoutSnapshot {
	store, _ := s.snapshot()
	return buildSnapshot(store, s.env.catalog)
}

// Capacities returns the effective sequence capacities.
func (s *Session) Capacities() loadout.Capacities {
	store, _ := s.snapshot()
	return loadout.CapacitiesFor(store, s.env.catalog)
}

// HasLoadoutItems reports whether any slot is occupied.
func (s *Session) HasLoadoutItems() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.store.IsEmpty()
}

// HasDecomposedResources reports whether any resource is flagged.
func (s *Session) HasDecomposedResources() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decomposed) > 0
}

// View returns every derived view from one consistent snapshot.
func (s *Session) View(ctx context.Context) SessionView {
	s.mu.Lock()
	s.touch()
	store := s.store.Clone()
	decomposed := s.decomposed.Clone()
	category, search := s.category, s.search
	s.mu.Unlock()

	return SessionView{
		SessionID:              s.id.String(),
		Category:               category,
		SearchQuery:            search,
		SelectedTiers:          store.SelectedTiers(),
		Loadout:                buildSnapshot(store, s.env.catalog),
		Totals:                 s.env.aggregator.SortedTotals(s.totals(ctx, store, decomposed)),
		Decomposed:             s.env.aggregator.DecomposedDisplay(store, decomposed),
		DecomposedResourceIDs:  decomposed.IDs(),
		HasLoadoutItems:        !store.IsEmpty(),
		HasDecomposedResources: len(decomposed) > 0,
	}
}
