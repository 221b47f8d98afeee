package public

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shard-legends/loadout-service/internal/models"
	"github.com/shard-legends/loadout-service/internal/service"
	"go.uber.org/zap"
)

// CatalogHandler обрабатывает HTTP запросы к каталогу предметов и ресурсов
type CatalogHandler struct {
	responder
	catalog service.CatalogReader
}

// NewCatalogHandler создает новый экземпляр CatalogHandler
func NewCatalogHandler(catalog service.CatalogReader, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		responder: newResponder(logger),
		catalog:   catalog,
	}
}

// GetItems обрабатывает GET /catalog/items?category=&q=
func (h *CatalogHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = models.CategoryAll
	}
	if category != models.CategoryAll && !models.Category(category).IsValid() {
		allowed := []string{models.CategoryAll}
		for _, c := range models.AllCategories {
			allowed = append(allowed, string(c))
		}
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation,
			"Invalid category", map[string]interface{}{"allowed_values": allowed})
		return
	}

	query := r.URL.Query().Get("q")
	view := service.ItemsView{
		Category:    category,
		SearchQuery: query,
		Items:       h.catalog.Filter(category, query),
	}
	if len(view.Items) == 0 && strings.TrimSpace(query) != "" {
		view.Suggestions = h.catalog.Suggest(query, service.DefaultSuggestionLimit)
	}

	h.logger.Debug("Catalog items listed",
		zap.String("category", category),
		zap.Int("items_count", len(view.Items)),
		zap.String("request_id", getRequestID(r)),
	)

	h.writeJSONResponse(w, http.StatusOK, view)
}

// GetItem обрабатывает GET /catalog/items/{itemId}
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.catalog.Item(chi.URLParam(r, "itemId"))
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, models.ErrorCodeNotFound, "Item not found", nil)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, item)
}

// GetWeaponTier обрабатывает GET /catalog/items/{itemId}/tiers/{tier}
func (h *CatalogHandler) GetWeaponTier(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")
	item, ok := h.catalog.Item(itemID)
	if !ok || !item.IsWeapon() {
		h.writeErrorResponse(w, http.StatusNotFound, models.ErrorCodeNotFound, "Weapon not found", nil)
		return
	}

	tier, err := strconv.Atoi(chi.URLParam(r, "tier"))
	if err != nil || !models.IsValidTier(tier) {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid tier", nil)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"item_id":   itemID,
		"tier":      tier,
		"resources": h.catalog.WeaponTierResources(itemID, tier),
	})
}

// GetResources обрабатывает GET /catalog/resources
func (h *CatalogHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, models.ResourcesResponse{
		Resources: h.catalog.Resources(),
	})
}
