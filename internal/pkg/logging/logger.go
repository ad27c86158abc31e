// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

// Logger определяет интерфейс для структурированного логирования.
// Реализации: SlogAdapter (slog из stdlib) и NopLogger.
//
//	logger.Info("команда выполнена", "command", name, "duration_ms", 150)
//
// ВАЖНО: Logger пишет ТОЛЬКО в stderr или файл, никогда в stdout.
// stdout занят выводом команд и приглашением оболочки.
type Logger interface {
	// Debug записывает сообщение уровня DEBUG.
	Debug(msg string, args ...any)

	// Info записывает сообщение уровня INFO.
	Info(msg string, args ...any)

	// Warn записывает сообщение уровня WARN.
	// Используется для recoverable issues и deprecated usage.
	Warn(msg string, args ...any)

	// Error записывает сообщение уровня ERROR.
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	//
	//	logger.With("trace_id", traceID).Info("команда начата")
	With(args ...any) Logger
}

// Стандартные ключи атрибутов, чтобы записи разных пакетов группировались одинаково.
const (
	KeyCommand  = "command"
	KeyMode     = "mode"
	KeyTraceID  = "trace_id"
	KeyJobID    = "job_id"
	KeyDuration = "duration_ms"
	KeyError    = "error"
	KeyCode     = "code"
)
