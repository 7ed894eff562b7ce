package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки сервиса спонсоров
var (
	// ErrValidation возвращается когда в запросе отсутствует обязательное поле
	ErrValidation = errors.New("missing required field")

	// ErrInvalidSponsorID возвращается когда идентификатор не является ключом хранилища
	ErrInvalidSponsorID = errors.New("invalid sponsor id")

	// ErrSponsorNotFound возвращается когда спонсор с таким идентификатором не найден
	ErrSponsorNotFound = errors.New("sponsor not found")
)

// ValidationError описывает конкретное поле, не прошедшее проверку
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Field)
}

// Unwrap позволяет сравнивать ошибку через errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeValidation ErrorCode = "VALIDATION_ERROR" // Не заполнено обязательное поле
	CodeInvalidID  ErrorCode = "INVALID_ID"       // Некорректный идентификатор
	CodeNotFound   ErrorCode = "NOT_FOUND"        // Ресурс не найден
	CodeInternal   ErrorCode = "INTERNAL_ERROR"   // Ошибка хранилища
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInvalidSponsorID):
		return CodeInvalidID
	case errors.Is(err, ErrSponsorNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}
