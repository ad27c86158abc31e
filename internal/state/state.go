// Package state содержит разделяемое состояние оболочки и дескриптор
// эксклюзивного доступа к нему.
package state

import (
	"context"
	"sync"

	"github.com/Kargones/dr-downloader/internal/engine"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
)

// State - ресурсы, общие для всех команд процесса.
type State struct {
	// Saver выполняет загрузку, конвертацию и сохранение медиа.
	Saver engine.Saver

	// OutputDir - директория для сохранённых файлов.
	OutputDir string

	// DefaultFormat используется, если формат в команде не указан.
	DefaultFormat string
}

// Handle даёт обработчикам эксклюзивный доступ к State.
// Одновременно State может удерживать не более одного владельца.
//
// Вместо sync.Mutex используется семафор на канале, чтобы ожидание
// захвата можно было прервать отменой контекста.
type Handle struct {
	state *State
	sem   chan struct{}
}

// NewHandle создаёт дескриптор для st. Создаётся один раз при старте процесса.
func NewHandle(st *State) *Handle {
	return &Handle{
		state: st,
		sem:   make(chan struct{}, 1),
	}
}

// Acquire блокируется до получения эксклюзивного доступа или отмены ctx.
// Возвращённую функцию release нужно вызвать ровно один раз;
// повторные вызовы безопасны и ничего не делают.
//
// Для nil дескриптора возвращает COMMAND.CONTEXT_UNAVAILABLE.
func (h *Handle) Acquire(ctx context.Context) (*State, func(), error) {
	if h == nil || h.state == nil {
		return nil, func() {}, errUnavailable()
	}

	select {
	case h.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, func() {}, ctx.Err()
	}

	var once sync.Once
	release := func() {
		once.Do(func() { <-h.sem })
	}
	return h.state, release, nil
}

// With захватывает State, выполняет fn и освобождает State,
// в том числе если fn паникует.
func (h *Handle) With(ctx context.Context, fn func(*State) error) error {
	st, release, err := h.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(st)
}

func errUnavailable() error {
	return apperrors.NewAppError(apperrors.ErrContextUnavailable,
		"Shared state is unavailable", nil)
}
