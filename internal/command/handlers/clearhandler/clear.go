// Package clearhandler реализует команду clear: очистку экрана терминала.
package clearhandler

import (
	"context"

	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Handler обрабатывает команду clear.
type Handler struct {
	env shared.Env
}

var _ command.Handler = (*Handler)(nil)

// New создаёт обработчик.
func New(env shared.Env) *Handler {
	return &Handler{env: env}
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActClear
}

// Description возвращает описание команды.
func (h *Handler) Description() string {
	return "Clear the terminal screen"
}

// Execute выводит ANSI последовательность очистки экрана и перевода курсора в начало.
// В JSON режиме ничего не выводит: последовательность испортила бы документ.
func (h *Handler) Execute(_ context.Context, args []string, _ *state.Handle) error {
	if len(args) > 0 {
		return shared.InvalidArgument(args[0])
	}
	if h.env.JSON() {
		return nil
	}
	h.env.Console.Write(constants.ClearScreen)
	return nil
}
