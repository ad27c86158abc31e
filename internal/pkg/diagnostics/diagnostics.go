// Package diagnostics пишет подробности неудачных команд в файл диагностики
// (по умолчанию error.txt в рабочей директории).
//
// Файл дополняется, а не перезаписывается; при превышении размера
// lumberjack переименовывает его и начинает новый.
package diagnostics

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kargones/dr-downloader/internal/constants"
)

// Entry - одна запись о неудачной команде.
type Entry struct {
	Time    time.Time
	TraceID string
	// Line - строка команды с уже скрытыми секретами.
	Line    string
	Code    string
	Message string
	// Trace - stack trace, если ошибка получена из panic.
	Trace string
}

// Recorder принимает записи диагностики.
type Recorder interface {
	Record(e Entry) error
}

// Config содержит настройки файла диагностики.
type Config struct {
	Enabled bool
	// Path - путь к файлу, по умолчанию constants.DiagnosticsFile.
	Path string
	// MaxSizeMB - размер файла, после которого выполняется ротация.
	MaxSizeMB  int
	MaxBackups int
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Path:       constants.DiagnosticsFile,
		MaxSizeMB:  5,
		MaxBackups: 3,
	}
}

// File записывает Entry в io.Writer в текстовом виде.
type File struct {
	mu sync.Mutex
	w  io.Writer
}

// New создаёт Recorder по конфигурации.
// При Enabled = false возвращает Nop.
func New(cfg Config) Recorder {
	if !cfg.Enabled {
		return Nop{}
	}
	path := cfg.Path
	if path == "" {
		path = constants.DiagnosticsFile
	}
	return NewWithWriter(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
}

// NewWithWriter создаёт File поверх произвольного writer.
func NewWithWriter(w io.Writer) *File {
	return &File{w: w}
}

// Record дописывает запись в файл.
//
//	=== 2026-10-18T10:00:00Z trace_id=... ===
//	command: download https://...
//	error: COMMAND.HANDLER_FAULT: ...
//	<stack trace>
func (f *File) Record(e Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s", e.Time.UTC().Format(time.RFC3339))
	if e.TraceID != "" {
		fmt.Fprintf(&b, " trace_id=%s", e.TraceID)
	}
	b.WriteString(" ===\n")
	fmt.Fprintf(&b, "command: %s\n", e.Line)
	fmt.Fprintf(&b, "error: %s: %s\n", e.Code, e.Message)
	if e.Trace != "" {
		b.WriteString(strings.TrimRight(e.Trace, "\n"))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.WriteString(f.w, b.String()); err != nil {
		return fmt.Errorf("diagnostics: write: %w", err)
	}
	return nil
}

// Close закрывает файл, если writer это поддерживает.
func (f *File) Close() error {
	if c, ok := f.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Nop отбрасывает записи.
type Nop struct{}

// Record ничего не делает.
func (Nop) Record(Entry) error { return nil }
