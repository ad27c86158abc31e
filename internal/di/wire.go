//go:build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/Kargones/dr-downloader/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideConsole,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideDiagnostics,
	ProvideSubscriber,
	ProvideEngine,
	ProvideCache,
	ProvideState,
	ProvideRegistry,
	ProvideDispatcher,
	ProvideLoop,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт App через Wire DI.
// Принимает Config, загруженный через config.Load().
// Возвращённый cleanup закрывает хранилище и файл диагностики;
// вызывать его нужно после TracerShutdown.
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
