package public

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shard-legends/loadout-service/internal/loadout"
	"github.com/shard-legends/loadout-service/internal/models"
	"github.com/shard-legends/loadout-service/internal/service"
	"go.uber.org/zap"
)

// IntentResponse представляет результат операции над сессией вместе с
// обновленным состоянием. Отклоненная операция не является ошибкой HTTP.
type IntentResponse struct {
	Outcome loadout.Outcome     `json:"outcome"`
	Session service.SessionView `json:"session"`
}

// SessionHandler обрабатывает HTTP запросы к сессиям снаряжения
type SessionHandler struct {
	responder
	sessions *service.SessionManager
}

// NewSessionHandler создает новый экземпляр SessionHandler
func NewSessionHandler(sessions *service.SessionManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		responder: newResponder(logger),
		sessions:  sessions,
	}
}

// Routes монтирует маршруты сессий
func (h *SessionHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Route("/{sessionId}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)

		r.Post("/browse/category", h.SelectCategory)
		r.Post("/browse/search", h.SetSearchQuery)
		r.Post("/browse/weapon-tier", h.SetWeaponTier)
		r.Get("/items", h.GetItems)

		r.Post("/auto-equip", h.AutoEquip)
		r.Post("/equip", h.Equip)
		r.Post("/unequip", h.Unequip)
		r.Post("/move", h.Move)
		r.Post("/quantity", h.SetQuantity)
		r.Post("/weapon-tier", h.SetLoadoutWeaponTier)
		r.Post("/clear", h.Clear)

		r.Get("/totals", h.GetTotals)
		r.Get("/decomposed", h.GetDecomposed)
		r.Post("/decompose-all", h.DecomposeAll)
		r.Post("/decompose/{resourceId}", h.ToggleDecompose)
		r.Delete("/decompose", h.ResetDecomposition)
	})
}

// session находит сессию из URL. При ошибке ответ уже записан.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid session ID format", nil)
		return nil, false
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, models.ErrorCodeNotFound, "Session not found", nil)
		return nil, false
	}
	return session, true
}

// respondIntent отправляет результат операции и новое состояние сессии
func (h *SessionHandler) respondIntent(w http.ResponseWriter, r *http.Request, session *service.Session, operation string, outcome loadout.Outcome) {
	if !outcome.Changed {
		h.logger.Debug("Intent rejected",
			zap.String("session_id", session.ID().String()),
			zap.String("operation", operation),
			zap.String("reason", string(outcome.Reason)),
			zap.String("request_id", getRequestID(r)),
		)
	}

	h.writeJSONResponse(w, http.StatusOK, IntentResponse{
		Outcome: outcome,
		Session: session.View(r.Context()),
	})
}

// toSlotRef converts a request slot address. A missing position appends to a
// sequence slot and addresses the single occupant of any other slot.
func toSlotRef(req models.SlotRefRequest) loadout.SlotRef {
	slot := loadout.SlotType(req.Slot)
	if req.Position != nil {
		return loadout.At(slot, *req.Position)
	}
	if slot.IsSequence() {
		return loadout.At(slot, loadout.AppendPosition)
	}
	return loadout.Ref(slot)
}

// Create обрабатывает POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create()
	if err != nil {
		if errors.Is(err, service.ErrTooManySessions) {
			h.writeErrorResponse(w, http.StatusTooManyRequests, models.ErrorCodeTooManySessions,
				"Too many active sessions", nil)
			return
		}
		h.logger.Error("Failed to create session", zap.Error(err), zap.String("request_id", getRequestID(r)))
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError,
			"Failed to create session", nil)
		return
	}

	h.logger.Info("Session created",
		zap.String("session_id", session.ID().String()),
		zap.String("request_id", getRequestID(r)),
	)

	h.writeJSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: session.ID().String(),
	})
}

// Get обрабатывает GET /sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSONResponse(w, http.StatusOK, session.View(r.Context()))
}

// Delete обрабатывает DELETE /sessions/{sessionId}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Delete(session.ID()); err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, models.ErrorCodeNotFound, "Session not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectCategory обрабатывает POST /sessions/{sessionId}/browse/category
func (h *SessionHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.CategoryRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "select_category", session.SelectCategory(request.Category))
}

// SetSearchQuery обрабатывает POST /sessions/{sessionId}/browse/search
func (h *SessionHandler) SetSearchQuery(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.SearchRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "set_search_query", session.SetSearchQuery(request.Query))
}

// SetWeaponTier обрабатывает POST /sessions/{sessionId}/browse/weapon-tier
func (h *SessionHandler) SetWeaponTier(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.WeaponTierRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "set_weapon_tier", session.SetWeaponTier(request.ItemID, request.Tier))
}

// GetItems обрабатывает GET /sessions/{sessionId}/items
func (h *SessionHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSONResponse(w, http.StatusOK, session.FilteredItems())
}

// AutoEquip обрабатывает POST /sessions/{sessionId}/auto-equip
func (h *SessionHandler) AutoEquip(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.AutoEquipRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "auto_equip", session.AutoEquip(request.ItemID))
}

// Equip обрабатывает POST /sessions/{sessionId}/equip
func (h *SessionHandler) Equip(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.EquipRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "equip", session.Equip(request.ItemID, toSlotRef(request.Target)))
}

// Unequip обрабатывает POST /sessions/{sessionId}/unequip
func (h *SessionHandler) Unequip(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.UnequipRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "unequip", session.Unequip(toSlotRef(request.Target)))
}

// Move обрабатывает POST /sessions/{sessionId}/move
func (h *SessionHandler) Move(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.MoveRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	var source *loadout.SlotRef
	if request.Source != nil {
		ref := toSlotRef(*request.Source)
		source = &ref
	}
	payload := loadout.MovePayload{
		ItemID:   request.ItemID,
		Quantity: request.Quantity,
		Tier:     request.Tier,
	}
	h.respondIntent(w, r, session, "move", session.Move(source, toSlotRef(request.Destination), payload))
}

// SetQuantity обрабатывает POST /sessions/{sessionId}/quantity
func (h *SessionHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.QuantityRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "set_quantity", session.SetQuantity(toSlotRef(request.Target), request.Delta))
}

// SetLoadoutWeaponTier обрабатывает POST /sessions/{sessionId}/weapon-tier
func (h *SessionHandler) SetLoadoutWeaponTier(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.LoadoutWeaponTierRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "set_loadout_weapon_tier",
		session.SetLoadoutWeaponTier(toSlotRef(request.Target), request.Tier))
}

// Clear обрабатывает POST /sessions/{sessionId}/clear. Тело необязательно.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var request models.ClearRequest
	if r.ContentLength != 0 && !h.decodeAndValidate(w, r, &request) {
		return
	}
	h.respondIntent(w, r, session, "clear_loadout", session.ClearLoadout(request.ResetSearch))
}

// GetTotals обрабатывает GET /sessions/{sessionId}/totals
func (h *SessionHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"totals": session.SortedTotals(r.Context()),
	})
}

// GetDecomposed обрабатывает GET /sessions/{sessionId}/decomposed
func (h *SessionHandler) GetDecomposed(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"resource_ids": session.DecomposedResourceIDs(),
		"decomposed":   session.DecomposedDisplay(),
	})
}

// ToggleDecompose обрабатывает POST /sessions/{sessionId}/decompose/{resourceId}
func (h *SessionHandler) ToggleDecompose(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondIntent(w, r, session, "toggle_decompose", session.ToggleDecompose(chi.URLParam(r, "resourceId")))
}

// DecomposeAll обрабатывает POST /sessions/{sessionId}/decompose-all
func (h *SessionHandler) DecomposeAll(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondIntent(w, r, session, "decompose_all", session.DecomposeAll())
}

// ResetDecomposition обрабатывает DELETE /sessions/{sessionId}/decompose
func (h *SessionHandler) ResetDecomposition(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondIntent(w, r, session, "reset_decomposition", session.ResetDecomposition())
}
