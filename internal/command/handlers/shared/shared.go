// Package shared содержит общие компоненты обработчиков команд:
// зависимости вывода и конструкторы ошибок разбора аргументов.
package shared

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/console"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/output"
	"github.com/Kargones/dr-downloader/internal/pkg/tracing"
)

// Env - зависимости вывода, общие для всех обработчиков.
type Env struct {
	Console console.Console
	Logger  logging.Logger
	// Format - формат вывода результата: "text" (по умолчанию) или "json".
	Format string
}

// NewEnv создаёт Env, подставляя NopLogger вместо nil.
func NewEnv(out console.Console, log logging.Logger, format string) Env {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return Env{Console: out, Logger: log, Format: format}
}

// JSON сообщает, запрошен ли JSON вывод.
func (e Env) JSON() bool {
	return output.IsJSON(e.Format)
}

// WriteJSON выводит успешный Result в JSON формате.
// При trimNewline завершающий перевод строки не выводится.
func (e Env) WriteJSON(ctx context.Context, command string, started time.Time, data any, trimNewline bool) error {
	result := output.NewSuccess(command, data, &output.Metadata{
		DurationMs: time.Since(started).Milliseconds(),
		TraceID:    tracing.TraceIDFromContext(ctx),
		APIVersion: output.APIVersion,
	})
	text, err := output.Render(output.NewJSONWriter(), result)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "Failed to render JSON output", err)
	}
	if trimNewline {
		text = strings.TrimRight(text, "\n")
	}
	e.Console.Write(text)
	return nil
}

// MissingArgument - не указан обязательный аргумент name.
func MissingArgument(name string) error {
	return apperrors.NewAppError(apperrors.ErrMissingArgument,
		fmt.Sprintf("Missing argument: %s", name), nil)
}

// InvalidArgument - аргумент arg не поддерживается командой.
func InvalidArgument(arg string) error {
	return apperrors.NewAppError(apperrors.ErrInvalidArgument,
		fmt.Sprintf("Invalid argument: %s", arg), nil)
}

// MissingSubcommand - команда вызвана без подкоманды.
func MissingSubcommand(command string, expected ...string) error {
	return apperrors.NewAppError(apperrors.ErrMissingSubcommand,
		fmt.Sprintf("Missing subcommand for %s, expected one of: %s", command, strings.Join(expected, ", ")), nil)
}

// UnknownSubcommand - подкоманда не поддерживается.
func UnknownSubcommand(command, sub string) error {
	return apperrors.NewAppError(apperrors.ErrUnknownSubcommand,
		fmt.Sprintf("Unknown subcommand for %s: %s", command, sub), nil)
}
