package command

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/Kargones/dr-downloader/internal/pkg/console"
)

// Registry хранит обработчики команд по имени.
// Заполняется до запуска оболочки; после этого используется только на чтение.
// Все методы безопасны для конкурентного использования.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	// warn получает предупреждения deprecated-алиасов.
	warn console.Console
}

// NewRegistry создаёт пустой реестр.
// warn - консоль для предупреждений об устаревших именах команд.
func NewRegistry(warn console.Console) *Registry {
	if warn == nil {
		warn = console.NewStd()
	}
	return &Registry{
		handlers: make(map[string]Handler),
		warn:     warn,
	}
}

// Register регистрирует обработчик под именем h.Name().
// Если имя уже занято, новый обработчик заменяет прежний.
//
// Паникует если:
//   - h == nil (programming error)
//   - h.Name() == "" (programming error)
//   - h.Name() содержит пробельные символы: такая команда недостижима из строки ввода
func (r *Registry) Register(h Handler) {
	if h == nil {
		panic("command: nil handler")
	}
	r.put(h.Name(), h)
}

// RegisterWithAlias регистрирует обработчик под основным именем и
// дополнительно под deprecated именем (если указано).
//
// При вызове deprecated имени в консоль выводится предупреждение,
// затем команда выполняется основным обработчиком.
//
// Паникует если deprecated == h.Name().
func (r *Registry) RegisterWithAlias(h Handler, deprecated string) {
	r.Register(h)
	if deprecated == "" {
		return
	}
	if deprecated == h.Name() {
		panic("command: deprecated name cannot be same as handler name: " + deprecated)
	}
	r.put(deprecated, &DeprecatedBridge{
		actual:     h,
		registry:   r,
		deprecated: deprecated,
		newName:    h.Name(),
		warn:       r.warn,
	})
}

func (r *Registry) put(name string, h Handler) {
	if name == "" {
		panic("command: empty handler name")
	}
	if strings.IndexFunc(name, isSpace) >= 0 {
		panic("command: handler name contains whitespace: " + name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Get возвращает обработчик команды по имени.
// Возвращает (nil, false) если команда не зарегистрирована.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// All возвращает последовательность пар (имя, обработчик) в произвольном порядке.
// Последовательность ленивая и может обходиться повторно; каждый обход видит
// снимок реестра на момент своего начала.
func (r *Registry) All() iter.Seq2[string, Handler] {
	return func(yield func(string, Handler) bool) {
		r.mu.RLock()
		snapshot := maps.Clone(r.handlers)
		r.mu.RUnlock()

		for name, h := range snapshot {
			if !yield(name, h) {
				return
			}
		}
	}
}

// Names возвращает отсортированный список имён всех зарегистрированных команд.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.handlers))
}

// Len возвращает количество зарегистрированных имён, включая алиасы.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Info содержит информацию о команде для вывода в help.
type Info struct {
	// Name - основное имя команды.
	Name string
	// Description - описание команды.
	Description string
	// DeprecatedAlias - устаревшее имя команды, пустая строка если его нет.
	DeprecatedAlias string
}

// ListAllWithAliases возвращает информацию обо всех командах, отсортированную по имени.
// Deprecated bridges не включаются отдельными записями: их имена
// указываются в поле DeprecatedAlias основной команды.
func (r *Registry) ListAllWithAliases() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make(map[string]string)
	for _, h := range r.handlers {
		if bridge, ok := h.(*DeprecatedBridge); ok {
			aliases[bridge.newName] = bridge.deprecated
		}
	}

	result := make([]Info, 0, len(r.handlers))
	for name, h := range r.handlers {
		if _, isBridge := h.(*DeprecatedBridge); isBridge {
			continue
		}
		result = append(result, Info{
			Name:            name,
			Description:     h.Description(),
			DeprecatedAlias: aliases[name],
		})
	}

	slices.SortFunc(result, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}
