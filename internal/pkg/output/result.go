// Package output предоставляет структуры и интерфейсы для форматирования
// результатов команд в JSON и текстовом формате.
package output

import (
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
)

// StatusSuccess и StatusError - возможные значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIVersion - версия формата JSON вывода.
const APIVersion = "v1"

// Result представляет структурированный результат выполнения команды.
// Используется для сериализации в JSON (DR_OUTPUT_FORMAT=json)
// или для текстового вывода.
type Result struct {
	// Status содержит статус выполнения: "success" или "error".
	Status string `json:"status"`

	// Command содержит имя выполненной команды.
	Command string `json:"command"`

	// Data содержит command-specific payload.
	Data any `json:"data,omitempty"`

	// Error содержит информацию об ошибке (только при status="error").
	Error *ErrorInfo `json:"error,omitempty"`

	// Metadata содержит метаданные выполнения.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// ErrorInfo содержит информацию об ошибке в структурированном виде.
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты!
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata содержит метаданные выполнения команды.
type Metadata struct {
	// DurationMs - время выполнения команды в миллисекундах.
	DurationMs int64 `json:"duration_ms"`

	// TraceID - идентификатор трассировки для корреляции с логами.
	TraceID string `json:"trace_id,omitempty"`

	// APIVersion - версия формата API.
	APIVersion string `json:"api_version"`
}

// NewSuccess создаёт успешный Result.
func NewSuccess(command string, data any, meta *Metadata) *Result {
	return &Result{Status: StatusSuccess, Command: command, Data: data, Metadata: meta}
}

// NewError создаёт Result с ошибкой.
// Для AppError используются его Code и Message, Cause в вывод не попадает.
func NewError(command string, err error, meta *Metadata) *Result {
	info := &ErrorInfo{Code: apperrors.ErrHandlerFault, Message: err.Error()}
	if appErr, ok := apperrors.As(err); ok {
		info = &ErrorInfo{Code: appErr.Code, Message: appErr.Message}
	}
	return &Result{Status: StatusError, Command: command, Error: info, Metadata: meta}
}
