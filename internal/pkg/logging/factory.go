package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger создаёт Logger с заданной конфигурацией.
//
// Поддерживаемые режимы вывода (config.Output):
//   - "stderr" или "" (default): логи пишутся в os.Stderr
//   - "file": логи пишутся в файл с автоматической ротацией через lumberjack
//
// stdout никогда не используется: он принадлежит консоли команд.
func NewLogger(config Config) Logger {
	var w io.Writer

	switch config.Output {
	case OutputFile:
		w = NewRotatingWriter(config)
	case OutputStderr, "":
		w = os.Stderr
	default:
		_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
			"WARNING: неизвестный logging output %q, falling back to stderr\n", config.Output)
		w = os.Stderr
	}

	return NewLoggerWithWriter(config, w)
}

// NewRotatingWriter создаёт io.Writer с ротацией на основе lumberjack.
// Автоматически создаёт директорию для файла если она не существует.
// При пустом FilePath или ошибке создания директории возвращает os.Stderr.
func NewRotatingWriter(config Config) io.Writer {
	if config.FilePath == "" {
		_, _ = os.Stderr.WriteString("WARNING: logging output=file but filePath is empty, falling back to stderr\n") //nolint:errcheck // bootstrap stderr
		return os.Stderr
	}

	dir := filepath.Dir(config.FilePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, //nolint:errcheck // bootstrap stderr
				"WARNING: не удалось создать директорию логов %q: %v, falling back to stderr\n", dir, err)
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// NewLoggerWithWriter создаёт Logger с заданной конфигурацией и writer.
// Используется в тестах и там, где writer выбирается вызывающим кодом.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogAdapter(slog.New(handler))
}

// parseLevel конвертирует строковый уровень в slog.Level.
// При неизвестном значении возвращает уровень по умолчанию.
func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
