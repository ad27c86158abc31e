package command

import (
	"context"
	"fmt"

	"github.com/Kargones/dr-downloader/internal/pkg/console"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Deprecatable опционально реализуется deprecated handlers.
// Используется help-командой для определения deprecated статуса.
type Deprecatable interface {
	// IsDeprecated возвращает true если команда deprecated.
	IsDeprecated() bool
	// NewName возвращает новое рекомендуемое имя команды.
	NewName() string
}

// Compile-time проверки реализации интерфейсов.
var (
	_ Handler       = (*DeprecatedBridge)(nil)
	_ Deprecatable  = (*DeprecatedBridge)(nil)
	_ StateRequirer = (*DeprecatedBridge)(nil)
)

// DeprecatedBridge оборачивает handler для поддержки устаревших имён команд.
// При каждом вызове Execute выводит предупреждение в поток ошибок консоли,
// затем делегирует выполнение обработчику, зарегистрированному под newName
// на момент вызова. Повторная регистрация основного имени переключает и алиас.
type DeprecatedBridge struct {
	// actual - обработчик на момент регистрации алиаса; используется,
	// если под newName в реестре оказался не основной обработчик.
	actual     Handler
	registry   *Registry
	deprecated string
	newName    string
	warn       console.Console
}

// target возвращает текущий обработчик основного имени.
func (b *DeprecatedBridge) target() Handler {
	if b.registry != nil {
		if h, ok := b.registry.Get(b.newName); ok {
			if _, isBridge := h.(*DeprecatedBridge); !isBridge {
				return h
			}
		}
	}
	return b.actual
}

// Name возвращает deprecated имя команды.
func (b *DeprecatedBridge) Name() string {
	return b.deprecated
}

// Description делегирует вызов текущему основному обработчику.
func (b *DeprecatedBridge) Description() string {
	return b.target().Description()
}

// IsDeprecated возвращает true.
func (b *DeprecatedBridge) IsDeprecated() bool {
	return true
}

// NewName возвращает новое рекомендуемое имя команды.
func (b *DeprecatedBridge) NewName() string {
	return b.newName
}

// RequiresState повторяет требование основного обработчика.
func (b *DeprecatedBridge) RequiresState() bool {
	return requiresState(b.target())
}

// Execute выводит предупреждение и выполняет основной обработчик.
// Если context уже отменён, возвращает ctx.Err() без предупреждения и без вызова.
func (b *DeprecatedBridge) Execute(ctx context.Context, args []string, st *state.Handle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.warn != nil {
		b.warn.Warn(fmt.Sprintf("command '%s' is deprecated, use '%s' instead", b.deprecated, b.newName))
	}
	return b.target().Execute(ctx, args, st)
}
