package di

import (
	"context"
	"log/slog"
	"os"

	"github.com/Kargones/dr-downloader/internal/cache"
	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/command/handlers"
	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/config"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/engine"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/console"
	"github.com/Kargones/dr-downloader/internal/pkg/diagnostics"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/metrics"
	"github.com/Kargones/dr-downloader/internal/pkg/output"
	"github.com/Kargones/dr-downloader/internal/pkg/tracing"
	"github.com/Kargones/dr-downloader/internal/shell"
	"github.com/Kargones/dr-downloader/internal/state"
)

// ProvideLogger создаёт Logger на основе секции logging.
// При nil Config используются значения по умолчанию.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.Logging.ToLogging())
}

// ProvideConsole создаёт Console для os.Stdout и os.Stderr.
func ProvideConsole() console.Console {
	return console.NewStd()
}

// ProvideMetricsCollector создаёт Collector на основе секции metrics.
// При ошибке создания возвращает NopCollector и логирует ошибку.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics.ToMetrics(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider создаёт и регистрирует OTel TracerProvider.
// При ошибке возвращает nop shutdown и логирует ошибку.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) TracerShutdown {
	if cfg == nil {
		return TracerShutdown(tracing.NewNopTracerProvider())
	}

	shutdown, err := tracing.NewTracerProvider(cfg.Tracing.ToTracing(constants.Version), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return TracerShutdown(tracing.NewNopTracerProvider())
	}
	return TracerShutdown(shutdown)
}

// ProvideDiagnostics создаёт Recorder для файла диагностики.
// Файл закрывается в cleanup.
func ProvideDiagnostics(cfg *config.Config) (diagnostics.Recorder, func()) {
	if cfg == nil {
		return diagnostics.Nop{}, func() {}
	}
	rec := diagnostics.New(cfg.Diagnostics.ToDiagnostics())
	return rec, func() {
		if f, ok := rec.(*diagnostics.File); ok {
			_ = f.Close() //nolint:errcheck // завершение процесса
		}
	}
}

// stderrConsole создаёт Console, пишущий в os.Stderr.
// Переопределяется в тестах.
var stderrConsole = func() console.Console {
	return console.NewStream(os.Stderr, os.Stderr)
}

// ProvideSubscriber создаёт подписчика на стадии загрузки.
// В JSON режиме stdout содержит только документ output.Result,
// поэтому сообщения о стадиях уходят в stderr.
func ProvideSubscriber(cfg *config.Config, out console.Console) engine.EventSubscriber {
	if cfg != nil && output.IsJSON(cfg.Output.Format) {
		return engine.NewConsoleSubscriber(stderrConsole())
	}
	return engine.NewConsoleSubscriber(out)
}

// ProvideEngine создаёт движок загрузки. Ошибка имеет код ENGINE.INIT_FAILED,
// если ffmpeg или yt-dlp не найдены.
func ProvideEngine(cfg *config.Config, subscriber engine.EventSubscriber, logger logging.Logger) (*engine.Engine, error) {
	if cfg == nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "configuration is not loaded", nil)
	}
	return engine.New(cfg.Download.ToEngine(cfg.Output.Format), subscriber, logger)
}

// ProvideCache открывает хранилище токена. Соединение закрывается в cleanup.
func ProvideCache(ctx context.Context, cfg *config.Config, logger logging.Logger) (cache.Cache, func(), error) {
	if cfg == nil {
		return nil, nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "configuration is not loaded", nil)
	}
	c, err := cache.New(ctx, cfg.Cache.ToCache())
	if err != nil {
		return nil, nil, apperrors.NewAppError(apperrors.ErrCacheConnection,
			"failed to open "+cfg.Cache.Backend+" cache", err)
	}
	return c, func() {
		if closeErr := c.Close(); closeErr != nil {
			logger.Warn("ошибка закрытия хранилища", slog.String("error", closeErr.Error()))
		}
	}, nil
}

// ProvideState создаёт дескриптор разделяемого состояния.
func ProvideState(cfg *config.Config, eng *engine.Engine) *state.Handle {
	return state.NewHandle(&state.State{
		Saver:         eng,
		OutputDir:     cfg.Download.Dir,
		DefaultFormat: cfg.Download.Format,
	})
}

// ProvideRegistry создаёт реестр и регистрирует в нём все команды.
func ProvideRegistry(cfg *config.Config, out console.Console, logger logging.Logger, c cache.Cache, collector metrics.Collector) *command.Registry {
	reg := command.NewRegistry(out)
	handlers.RegisterAll(reg, handlers.Deps{
		Env:     shared.NewEnv(out, logger, cfg.Output.Format),
		Cache:   c,
		Metrics: collector,
	})
	return reg
}

// ProvideDispatcher создаёт диспетчер поверх реестра.
func ProvideDispatcher(reg *command.Registry) *command.Dispatcher {
	return command.NewDispatcher(reg)
}

// ProvideLoop создаёт цикл оболочки, читающий команды из os.Stdin.
func ProvideLoop(
	cfg *config.Config,
	dispatcher *command.Dispatcher,
	st *state.Handle,
	out console.Console,
	diag diagnostics.Recorder,
	collector metrics.Collector,
	logger logging.Logger,
) *shell.Loop {
	return shell.New(shell.Options{
		Dispatcher:   dispatcher,
		State:        st,
		Console:      out,
		Input:        os.Stdin,
		Diagnostics:  diag,
		Metrics:      collector,
		Logger:       logger,
		OutputFormat: cfg.Output.Format,
	})
}
