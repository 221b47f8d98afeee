package public

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shard-legends/loadout-service/internal/models"
	"go.uber.org/zap"
)

// responder содержит общие для публичных обработчиков методы ответа
type responder struct {
	logger    *zap.Logger
	validator *validator.Validate
}

func newResponder(logger *zap.Logger) responder {
	return responder{
		logger:    logger,
		validator: validator.New(),
	}
}

// writeJSONResponse отправляет JSON ответ
func (h responder) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeErrorResponse отправляет JSON ответ с ошибкой
func (h responder) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, details map[string]interface{}) {
	h.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   errorCode,
		Message: message,
		Details: details,
	})
}

// decodeAndValidate разбирает тело запроса и проверяет теги validate.
// При ошибке ответ уже записан и возвращается false.
func (h responder) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON body", nil)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), nil)
			return false
		}

		response := models.ValidationError{
			Error:   models.ErrorCodeValidation,
			Message: "Request validation failed",
		}
		for _, fe := range fieldErrors {
			response.ValidationErrors = append(response.ValidationErrors, models.ValidationFieldError{
				Field: fe.Namespace(),
				Error: fe.Tag(),
			})
		}
		h.writeJSONResponse(w, http.StatusBadRequest, response)
		return false
	}

	return true
}

// getRequestID возвращает идентификатор запроса из middleware.RequestID
func getRequestID(r *http.Request) string {
	if requestID := middleware.GetReqID(r.Context()); requestID != "" {
		return requestID
	}
	if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
		return requestID
	}
	return "unknown"
}
