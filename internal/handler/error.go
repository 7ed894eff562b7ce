package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/immerse/sponsor-tracker/internal/domain"
)

// Сообщения об ошибках, которые видит клиент
const (
	MsgInvalidBody    = "Invalid request body"
	MsgFieldsRequired = "All fields are required"
	MsgInvalidID      = "Invalid Sponsor ID"
	MsgNotFound       = "Sponsor not found"
	MsgServerError    = "Server Error"
)

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	RespondWithJSON(w, r, statusCode, Response{
		Success: false,
		Message: message,
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы.
// Причина ошибок хранилища пишется в лог и не отдается клиенту.
func HandleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			logger.Info("Validation failed", "op", op, "field", vErr.Field)
		}
		RespondWithError(w, r, http.StatusBadRequest, MsgFieldsRequired)
	case errors.Is(err, domain.ErrInvalidSponsorID):
		RespondWithError(w, r, http.StatusBadRequest, MsgInvalidID)
	case errors.Is(err, domain.ErrSponsorNotFound):
		RespondWithError(w, r, http.StatusNotFound, MsgNotFound)
	default:
		logger.Error("Request failed", "op", op, "code", domain.MapErrorToCode(err), "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, MsgServerError)
	}
}
