package console

import (
	"strings"
	"sync"
)

// Buffer - Console, накапливающий вывод в памяти. Используется в тестах.
// Цвета не применяются, поэтому вывод можно сравнивать как обычный текст.
type Buffer struct {
	mu       sync.Mutex
	out      strings.Builder
	warnings []string
}

// NewBuffer создаёт пустой Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Write добавляет строку в буфер.
func (b *Buffer) Write(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.WriteString(s)
}

// WriteLine добавляет строку и перевод строки в буфер.
func (b *Buffer) WriteLine(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.WriteString(s)
	b.out.WriteByte('\n')
}

// Warn сохраняет предупреждение отдельно от основного вывода.
func (b *Buffer) Warn(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.warnings = append(b.warnings, s)
}

// Paint возвращает текст без изменений.
func (b *Buffer) Paint(_ Color, s string) string {
	return s
}

// String возвращает накопленный вывод.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// Warnings возвращает копию накопленных предупреждений.
func (b *Buffer) Warnings() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.warnings...)
}

// Reset очищает буфер.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
	b.warnings = nil
}
