// Package help реализует команду help: список зарегистрированных команд.
package help

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Lister - источник списка команд. Реализуется command.Registry.
type Lister interface {
	ListAllWithAliases() []command.Info
}

// Data содержит список команд для JSON вывода.
type Data struct {
	Commands []CommandInfo `json:"commands"`
}

// CommandInfo описывает одну команду.
type CommandInfo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DeprecatedAlias string `json:"deprecated_alias,omitempty"`
}

// Handler обрабатывает команду help.
type Handler struct {
	env  shared.Env
	list Lister
}

var _ command.Handler = (*Handler)(nil)

// New создаёт обработчик. Список читается при каждом вызове,
// поэтому в него попадают команды, зарегистрированные после help.
func New(env shared.Env, list Lister) *Handler {
	return &Handler{env: env, list: list}
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды.
func (h *Handler) Description() string {
	return "List available commands"
}

// Execute выводит список команд, отсортированный по имени.
func (h *Handler) Execute(ctx context.Context, args []string, _ *state.Handle) error {
	started := time.Now()
	if len(args) > 0 {
		return shared.InvalidArgument(args[0])
	}

	data := buildData(h.list.ListAllWithAliases())
	if h.env.JSON() {
		return h.env.WriteJSON(ctx, constants.ActHelp, started, data, false)
	}
	h.env.Console.Write(data.text())
	return nil
}

func buildData(infos []command.Info) *Data {
	data := &Data{Commands: make([]CommandInfo, 0, len(infos))}
	for _, info := range infos {
		data.Commands = append(data.Commands, CommandInfo{
			Name:            info.Name,
			Description:     info.Description,
			DeprecatedAlias: info.DeprecatedAlias,
		})
	}
	return data
}

func (d *Data) text() string {
	width := 0
	for _, c := range d.Commands {
		width = max(width, len(c.Name))
	}

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range d.Commands {
		fmt.Fprintf(&b, "  %-*s  %s", width, c.Name, c.Description)
		if c.DeprecatedAlias != "" {
			fmt.Fprintf(&b, " (deprecated alias: %s)", c.DeprecatedAlias)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
