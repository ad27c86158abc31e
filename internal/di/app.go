// Package di собирает граф зависимостей приложения через Google Wire.
package di

import (
	"context"

	"github.com/Kargones/dr-downloader/internal/config"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/metrics"
	"github.com/Kargones/dr-downloader/internal/shell"
)

// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
// Отдельный тип нужен Wire, чтобы отличать его от других func(context.Context) error.
type TracerShutdown func(context.Context) error

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию приложения.
	Config *config.Config

	// Logger предоставляет структурированное логирование.
	Logger logging.Logger

	// Loop - цикл чтения и выполнения команд.
	Loop *shell.Loop

	// MetricsCollector собирает метрики команд; NopCollector если метрики отключены.
	MetricsCollector metrics.Collector

	// TracerShutdown - nop function если трейсинг отключён.
	TracerShutdown TracerShutdown
}
