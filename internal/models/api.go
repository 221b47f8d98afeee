package models

// SlotRefRequest адресует слот снаряжения в запросе. Position без значения
// означает добавление в конец последовательности.
type SlotRefRequest struct {
	Slot     string `json:"slot" validate:"required"`
	Position *int   `json:"position,omitempty" validate:"omitempty,min=-1"`
}

// CategoryRequest представляет запрос POST /browse/category
type CategoryRequest struct {
	Category string `json:"category"`
}

// SearchRequest представляет запрос POST /browse/search
type SearchRequest struct {
	Query string `json:"query" validate:"max=100"`
}

// WeaponTierRequest представляет запрос POST /browse/weapon-tier
type WeaponTierRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Tier   int    `json:"tier"`
}

// AutoEquipRequest представляет запрос POST /auto-equip
type AutoEquipRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// EquipRequest представляет запрос POST /equip
type EquipRequest struct {
	ItemID string         `json:"item_id" validate:"required"`
	Target SlotRefRequest `json:"target"`
}

// UnequipRequest представляет запрос POST /unequip
type UnequipRequest struct {
	Target SlotRefRequest `json:"target"`
}

// MoveRequest представляет запрос POST /move. Без Source предмет
// переносится из каталога.
type MoveRequest struct {
	Source      *SlotRefRequest `json:"source,omitempty"`
	Destination SlotRefRequest  `json:"destination"`
	ItemID      string          `json:"item_id" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Tier        *int            `json:"tier,omitempty"`
}

// QuantityRequest представляет запрос POST /quantity
type QuantityRequest struct {
	Target SlotRefRequest `json:"target"`
	Delta  int            `json:"delta"`
}

// LoadoutWeaponTierRequest представляет запрос POST /weapon-tier
type LoadoutWeaponTierRequest struct {
	Target SlotRefRequest `json:"target"`
	Tier   int            `json:"tier"`
}

// ClearRequest представляет запрос POST /clear
type ClearRequest struct {
	ResetSearch bool `json:"reset_search"`
}

// CreateSessionResponse представляет ответ POST /sessions
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// ResourcesResponse представляет ответ GET /catalog/resources
type ResourcesResponse struct {
	Resources []Resource `json:"resources"`
}

// ErrorResponse представляет стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationError представляет ошибку валидации
type ValidationError struct {
	Error            string                 `json:"error"`
	Message          string                 `json:"message"`
	ValidationErrors []ValidationFieldError `json:"validation_errors,omitempty"`
}

// ValidationFieldError представляет ошибку валидации поля
type ValidationFieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Constants для ошибок
const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeBadRequest      = "bad_request"
	ErrorCodeTooManySessions = "too_many_sessions"
	ErrorCodeInternalError   = "internal_error"
)
