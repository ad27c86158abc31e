// Package version реализует команду version: вывод версии приложения.
package version

import (
	"context"
	"runtime"
	"time"

	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Data содержит информацию о версии для JSON вывода.
type Data struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// Handler обрабатывает команду version.
type Handler struct {
	env     shared.Env
	version string
}

var _ command.Handler = (*Handler)(nil)

// New создаёт обработчик, выводящий constants.Version.
func New(env shared.Env) *Handler {
	return &Handler{env: env, version: constants.Version}
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Print the application version (version [no-newline])"
}

// Execute печатает версию. С аргументом no-newline перевод строки не выводится.
func (h *Handler) Execute(ctx context.Context, args []string, _ *state.Handle) error {
	started := time.Now()

	noNewline := false
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == constants.FlagNoNewline:
		noNewline = true
	case len(args) == 1:
		return shared.InvalidArgument(args[0])
	default:
		return shared.InvalidArgument(args[1])
	}

	version := h.version
	if version == "" {
		version = "dev"
	}

	if h.env.JSON() {
		data := Data{Version: version, GoVersion: runtime.Version()}
		return h.env.WriteJSON(ctx, constants.ActVersion, started, data, noNewline)
	}

	if noNewline {
		h.env.Console.Write(version)
	} else {
		h.env.Console.WriteLine(version)
	}
	return nil
}
