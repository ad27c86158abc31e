// Package metrics собирает метрики выполнения команд и отправляет их
// в Prometheus Pushgateway.
//
// При отключённых метриках используется NopCollector, поэтому вызывающий
// код не проверяет конфигурацию сам.
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector (активный) и NopCollector (no-op).
type Collector interface {
	// RecordCommandStart записывает начало выполнения команды.
	// mode - "interactive" или "batch".
	RecordCommandStart(command, mode string)

	// RecordCommandEnd записывает завершение команды.
	// code - код ошибки (apperrors) или пустая строка при успехе.
	RecordCommandEnd(command, mode string, duration time.Duration, code string)

	// RecordDownload записывает результат одного задания движка.
	RecordDownload(format string, duration time.Duration, success bool)

	// Push отправляет метрики в Pushgateway.
	// Ошибки отправки логируются внутри реализации, метод всегда возвращает nil.
	Push(ctx context.Context) error
}
