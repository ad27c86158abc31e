// Package command предоставляет интерфейсы, реестр и диспетчер команд оболочки.
//
// Обработчики регистрируются в Registry до запуска цикла оболочки,
// Dispatcher разбирает введённую строку и вызывает нужный обработчик.
package command

import (
	"context"

	"github.com/Kargones/dr-downloader/internal/state"
)

// Handler определяет интерфейс обработчика команды.
// Конфигурация (консоль, кэш, формат вывода) передаётся обработчику
// при создании, а не при каждом вызове.
type Handler interface {
	// Name возвращает имя команды для регистрации в реестре.
	// Должно соответствовать константам из internal/constants.
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду.
	// args - аргументы после имени команды, st - дескриптор разделяемого состояния
	// (может быть nil, если обработчик не реализует StateRequirer).
	Execute(ctx context.Context, args []string, st *state.Handle) error
}

// StateRequirer опционально реализуется обработчиками, которым нужно
// разделяемое состояние. Диспетчер не вызывает такой обработчик без дескриптора.
type StateRequirer interface {
	RequiresState() bool
}

// Invocation - одна разобранная команда.
type Invocation struct {
	Name  string
	Args  []string
	State *state.Handle
}

func requiresState(h Handler) bool {
	r, ok := h.(StateRequirer)
	return ok && r.RequiresState()
}
