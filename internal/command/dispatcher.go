package command

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Сообщения ошибок разбора строки. Выводятся пользователю как есть.
const (
	msgNoCommand       = "No command specified."
	msgCommandNotFound = "Command not found: %s"
)

// Dispatcher разбирает строки ввода и вызывает обработчики из Registry.
// Сам по себе не блокируется: время выполнения определяется обработчиком.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher создаёт диспетчер для заполненного реестра.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Registry возвращает реестр диспетчера.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Handle разбирает строку и выполняет команду.
// Пустая строка или строка из одних пробелов даёт COMMAND.NO_COMMAND.
func (d *Dispatcher) Handle(ctx context.Context, line string, st *state.Handle) error {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return apperrors.NewAppError(apperrors.ErrNoCommand, msgNoCommand, nil)
	}
	return d.Call(ctx, Invocation{Name: tokens[0], Args: tokens[1:], State: st})
}

// Call выполняет уже разобранную команду и ждёт её завершения.
//
// Возвращаемая ошибка всегда *apperrors.AppError:
//   - COMMAND.NOT_FOUND - имя не зарегистрировано
//   - COMMAND.CONTEXT_UNAVAILABLE - обработчику нужно состояние, а дескриптора нет
//   - ошибка обработчика, если она уже AppError
//   - COMMAND.HANDLER_FAULT - любая другая ошибка или panic обработчика
func (d *Dispatcher) Call(ctx context.Context, inv Invocation) error {
	h, ok := d.registry.Get(inv.Name)
	if !ok {
		return apperrors.NewAppError(apperrors.ErrCommandNotFound,
			fmt.Sprintf(msgCommandNotFound, inv.Name), nil)
	}
	if inv.State == nil && requiresState(h) {
		return apperrors.NewAppError(apperrors.ErrContextUnavailable,
			fmt.Sprintf("Command %s requires shared state", inv.Name), nil)
	}

	if err := invoke(ctx, h, inv); err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return appErr
		}
		return apperrors.NewAppError(apperrors.ErrHandlerFault, err.Error(), err)
	}
	return nil
}

// invoke вызывает обработчик и превращает panic в HANDLER_FAULT со stack trace.
func invoke(ctx context.Context, h Handler, inv Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewAppError(apperrors.ErrHandlerFault,
				fmt.Sprintf("Command %s crashed: %v", inv.Name, r), nil).
				WithTrace(string(debug.Stack()))
		}
	}()
	return h.Execute(ctx, inv.Args, inv.State)
}

// Tokenize разбивает строку по последовательностям ASCII пробельных символов
// (пробел, \t, \n, \v, \f, \r). Пустые токены отбрасываются, порядок сохраняется.
// Кавычки и экранирование не поддерживаются.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
