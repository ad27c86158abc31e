// Package progress отображает прогресс загрузки медиа.
// В терминале рисуется progress bar, в остальных случаях прогресс пишется в лог.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Kargones/dr-downloader/internal/pkg/logging"
)

// Progress определяет интерфейс для отображения прогресса операций.
type Progress interface {
	// Start инициализирует progress с начальным сообщением.
	Start(message string)
	// Update обновляет текущий прогресс.
	// current - текущее значение, message - опциональное сообщение.
	Update(current int64, message string)
	// Finish завершает progress.
	Finish()
	// SetTotal устанавливает общее количество (если стало известно).
	SetTotal(total int64)
}

// Options конфигурирует progress bar.
type Options struct {
	// Total - общее количество байт (0 = пока неизвестно)
	Total int64
	// Output - куда выводить (обычно os.Stderr)
	Output io.Writer
	// ShowETA - показывать ли расчётное время завершения
	ShowETA bool
	// ThrottleInterval - минимальный интервал между обновлениями
	ThrottleInterval time.Duration
	// Disabled - отключает вывод прогресса полностью
	Disabled bool
	// Logger - куда писать прогресс в non-TTY режиме
	Logger logging.Logger
}

// IsTTY проверяет, является ли writer терминалом.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return false
		}
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// FormatDuration форматирует duration в читаемый вид (1h 7m 30s, 5m 30s, 45s).
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	if d < 0 {
		return "0s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	if d >= time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		seconds := int(d.Seconds()) % 60

		switch {
		case minutes == 0 && seconds == 0:
			return fmt.Sprintf("%dh", hours)
		case seconds == 0:
			return fmt.Sprintf("%dh %dm", hours, minutes)
		case minutes == 0:
			return fmt.Sprintf("%dh %ds", hours, seconds)
		}
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// FormatBytes форматирует размер в двоичных единицах (512 B, 1.5 KiB, 12.0 MiB).
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		if n < 0 {
			n = 0
		}
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 4; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTP"[exp])
}

// percentOf возвращает процент выполнения, ограниченный диапазоном 0..100.
func percentOf(current, total int64) int {
	if total <= 0 || current <= 0 {
		return 0
	}
	percent := int(float64(current) / float64(total) * 100)
	if percent > 100 {
		return 100
	}
	return percent
}
