// Package console предоставляет вывод команд пользователю.
// Обработчики и цикл оболочки не пишут в os.Stdout напрямую,
// а получают Console при создании. Это позволяет перехватывать вывод в тестах.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Kargones/dr-downloader/internal/pkg/progress"
)

// Color - ANSI цвет текста.
type Color string

// Цвета, используемые при выводе статусов.
const (
	ColorRed    Color = "\x1B[91m"
	ColorGreen  Color = "\x1B[92m"
	ColorYellow Color = "\x1B[93m"
	colorReset        = "\x1B[0m"
)

// Console определяет вывод команд пользователю.
type Console interface {
	// Write пишет строку как есть, без перевода строки.
	Write(s string)
	// WriteLine пишет строку и перевод строки.
	WriteLine(s string)
	// Warn пишет предупреждение в поток ошибок.
	Warn(s string)
	// Paint оборачивает текст в ANSI цвет, если вывод поддерживает цвета.
	Paint(c Color, s string) string
}

// Stream реализует Console поверх пары writers (обычно stdout и stderr).
type Stream struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	colors bool
}

// NewStream создаёт Console для указанных writers.
// Цвета включаются только если out является терминалом.
func NewStream(out, errOut io.Writer) *Stream {
	return &Stream{
		out:    out,
		errOut: errOut,
		colors: progress.IsTTY(out),
	}
}

// NewStd создаёт Console для os.Stdout и os.Stderr.
func NewStd() *Stream {
	return NewStream(os.Stdout, os.Stderr)
}

// Write пишет строку как есть.
func (s *Stream) Write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, text) //nolint:errcheck // terminal output
}

// WriteLine пишет строку и перевод строки.
func (s *Stream) WriteLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.out, text) //nolint:errcheck // terminal output
}

// Warn пишет предупреждение в поток ошибок.
func (s *Stream) Warn(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.errOut, s.paint(ColorYellow, "WARNING: ")+text) //nolint:errcheck // terminal output
}

// Paint оборачивает текст в цвет для терминала и возвращает его без изменений иначе.
func (s *Stream) Paint(c Color, text string) string {
	return s.paint(c, text)
}

func (s *Stream) paint(c Color, text string) string {
	if !s.colors {
		return text
	}
	return string(c) + text + colorReset
}
