// Package main содержит точку входа для приложения dr-downloader.
// Без аргументов запускается интерактивная оболочка, иначе аргументы
// выполняются как одна команда.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kargones/dr-downloader/internal/config"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/di"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/shell"
)

// tracerShutdownTimeout ограничивает отправку оставшихся span-ов при выходе.
const tracerShutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run содержит основную логику приложения и возвращает exit code.
// os.Exit вызывается только в main, после отработки всех defer-ов здесь.
func run(ctx context.Context, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return constants.ExitConfigError
	}

	cfg.DisableInvalid(logging.NewLogger(cfg.Logging.ToLogging()))

	app, cleanup, err := di.InitializeApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		if apperrors.Code(err) == apperrors.ErrEngineInit {
			return constants.ExitEngineError
		}
		return constants.ExitInitError
	}
	defer cleanup()

	l := app.Logger
	l.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
		slog.String("config", cfg.Source),
	)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			l.Error("ошибка завершения tracing", slog.String("error", err.Error()))
		}
	}()

	if err := app.Loop.Run(ctx, args); err != nil {
		l.Error("оболочка завершилась с ошибкой",
			slog.String(logging.KeyError, err.Error()),
		)
		if errors.Is(err, shell.ErrInput) {
			return constants.ExitInputError
		}
		return constants.ExitInitError
	}
	return constants.ExitOK
}
