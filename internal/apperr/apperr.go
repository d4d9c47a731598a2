// Package apperr содержит типизированные доменные ошибки координатора.
// Все коды восстановимые: операция либо полностью применена, либо
// состояние осталось прежним.
package apperr

import (
	"errors"
	"fmt"
)

// Code - код доменной ошибки
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeValidation        Code = "validation"
	CodeInvalidTransition Code = "invalid_transition"
	CodeInvalidState      Code = "invalid_state"
	CodeConflict          Code = "conflict"
)

// Error - доменная ошибка с контекстом сущности для сообщений пользователю
type Error struct {
	Code    Code
	Entity  string
	ID      string
	Message string
	Err     error
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Entity != "" && e.ID != "" {
		msg = fmt.Sprintf("%s: %s %s: %s", e.Code, e.Entity, e.ID, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap раскрывает вложенную ошибку для errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound - запрошенная сущность отсутствует
func NotFound(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Entity: entity, ID: id, Message: "does not exist"}
}

// Validation - некорректный ввод или нарушение инварианта на входе
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// InvalidTransition - переход статуса инцидента не разрешён графом
func InvalidTransition(incidentID, from, to string) *Error {
	return &Error{
		Code:    CodeInvalidTransition,
		Entity:  "incident",
		ID:      incidentID,
		Message: fmt.Sprintf("transition %q -> %q is not allowed", from, to),
	}
}

// InvalidState - операция над суб-жизненным циклом не разрешена из текущего состояния
func InvalidState(entity, id, message string) *Error {
	return &Error{Code: CodeInvalidState, Entity: entity, ID: id, Message: message}
}

// Conflict - обнаружена конкурентная запись, операцию безопасно повторить
func Conflict(entity, id string) *Error {
	return &Error{Code: CodeConflict, Entity: entity, ID: id, Message: "concurrent update detected"}
}

// CodeOf возвращает код доменной ошибки или пустую строку для посторонних ошибок
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is проверяет, что ошибка несёт указанный код
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
