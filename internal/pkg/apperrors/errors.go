// Package apperrors предоставляет структурированные ошибки приложения.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// Позволяет grep по категориям: `grep "COMMAND\."` для всех ошибок диспетчера.
const (
	// Category: CONFIG - ошибки загрузки и парсинга конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigParse    = "CONFIG.PARSE_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: COMMAND - ошибки разбора и выполнения команд.
	ErrNoCommand          = "COMMAND.NO_COMMAND"
	ErrCommandNotFound    = "COMMAND.NOT_FOUND"
	ErrMissingArgument    = "COMMAND.MISSING_ARGUMENT"
	ErrMissingSubcommand  = "COMMAND.MISSING_SUBCOMMAND"
	ErrUnknownSubcommand  = "COMMAND.UNKNOWN_SUBCOMMAND"
	ErrInvalidArgument    = "COMMAND.INVALID_ARGUMENT"
	ErrHandlerFault       = "COMMAND.HANDLER_FAULT"
	ErrContextUnavailable = "COMMAND.CONTEXT_UNAVAILABLE"

	// Category: ENGINE - ошибки движка загрузки.
	ErrEngineInit    = "ENGINE.INIT_FAILED"
	ErrEngineFetch   = "ENGINE.FETCH_FAILED"
	ErrEngineConvert = "ENGINE.CONVERT_FAILED"
	ErrEngineSave    = "ENGINE.SAVE_FAILED"

	// Category: TOKEN / CACHE - ошибки хранилища токена.
	ErrTokenNotSet     = "TOKEN.NOT_SET"
	ErrCacheRead       = "CACHE.READ_FAILED"
	ErrCacheWrite      = "CACHE.WRITE_FAILED"
	ErrCacheConnection = "CACHE.CONNECTION_FAILED"

	// Category: OUTPUT - ошибки форматирования вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"
)

// AppError представляет структурированную ошибку приложения.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты (пароли, токены, ключи).
// Используйте generic описания без конкретных значений.
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrMissingArgument,
//	    "не указан URL для загрузки",
//	    nil)
type AppError struct {
	// Code - машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message - человекочитаемое описание ошибки.
	// НЕ ДОЛЖЕН содержать секреты!
	Message string `json:"message"`

	// Cause - wrapped оригинальная ошибка.
	// Не сериализуется в JSON для безопасности.
	Cause error `json:"-"`

	// Trace - stack trace горутины, если ошибка получена из recover().
	// Пишется только в файл диагностики.
	Trace string `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
//
// ВАЖНО: message НЕ ДОЛЖЕН содержать секреты!
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithTrace возвращает копию ошибки с прикреплённым stack trace.
func (e *AppError) WithTrace(trace string) *AppError {
	c := *e
	c.Trace = trace
	return &c
}

// As извлекает первый AppError из цепочки ошибок.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Code возвращает код первого AppError в цепочке или пустую строку.
func Code(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

// Is сообщает, содержит ли цепочка ошибок AppError с указанным кодом.
// В отличие от Code() проверяет все AppError в цепочке, а не только первый.
func Is(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
