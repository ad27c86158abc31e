// Package downloadhandler реализует команду download: загрузку медиа по URL,
// конвертацию в указанный формат и сохранение в выходную директорию.
package downloadhandler

import (
	"context"
	"strings"
	"time"

	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/engine"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/console"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/metrics"
	"github.com/Kargones/dr-downloader/internal/pkg/urlutil"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Handler обрабатывает команду download.
type Handler struct {
	env     shared.Env
	metrics metrics.Collector
}

var (
	_ command.Handler       = (*Handler)(nil)
	_ command.StateRequirer = (*Handler)(nil)
)

// New создаёт обработчик. collector может быть nil.
func New(env shared.Env, collector metrics.Collector) *Handler {
	if collector == nil {
		collector = metrics.NewNopCollector()
	}
	return &Handler{env: env, metrics: collector}
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActDownload
}

// Description возвращает описание команды.
func (h *Handler) Description() string {
	return "Download media and save it (download <url> [" + strings.Join(engine.SupportedFormats(), "|") + "])"
}

// RequiresState: загрузка выполняется через разделяемый Saver.
func (h *Handler) RequiresState() bool {
	return true
}

// Execute разбирает аргументы, захватывает состояние на время вызова движка
// и освобождает его сразу после завершения задания.
func (h *Handler) Execute(ctx context.Context, args []string, st *state.Handle) error {
	started := time.Now()

	req, err := parseArgs(args)
	if err != nil {
		return err
	}
	log := h.env.Logger.With(logging.KeyCommand, constants.ActDownload, "url", urlutil.RedactMediaURL(req.URL))

	var res *engine.Result
	err = st.With(ctx, func(s *state.State) error {
		if req.Format == "" {
			req.Format = s.DefaultFormat
		}
		if req.OutputDir == "" {
			req.OutputDir = s.OutputDir
		}
		var saveErr error
		res, saveErr = s.Saver.Save(ctx, req)
		return saveErr
	})
	h.metrics.RecordDownload(formatLabel(req.Format), time.Since(started), err == nil)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrContextUnavailable) {
			return err
		}
		log.Warn("загрузка не выполнена", logging.KeyError, err.Error())
		return wrapEngineError(err)
	}

	log.Info("файл сохранён", "path", res.Path, logging.KeyDuration, res.Duration.Milliseconds())
	if h.env.JSON() {
		return h.env.WriteJSON(ctx, constants.ActDownload, started, res, false)
	}
	h.env.Console.WriteLine(h.env.Console.Paint(console.ColorGreen, constants.DoneLabel))
	return nil
}

// parseArgs: download <url> [format].
func parseArgs(args []string) (engine.Request, error) {
	if len(args) == 0 {
		return engine.Request{}, shared.MissingArgument("url")
	}
	if len(args) > 2 {
		return engine.Request{}, shared.InvalidArgument(args[2])
	}
	req := engine.Request{URL: args[0]}
	if len(args) == 2 {
		format := strings.ToLower(args[1])
		if !engine.IsSupportedFormat(format) {
			return engine.Request{}, shared.InvalidArgument(args[1])
		}
		req.Format = format
	}
	return req, nil
}

// wrapEngineError оборачивает ошибку движка в COMMAND.HANDLER_FAULT.
// Сообщение берётся из ошибки движка, код движка остаётся доступен через apperrors.Is.
func wrapEngineError(err error) error {
	msg := err.Error()
	if appErr, ok := apperrors.As(err); ok {
		msg = appErr.Message
	}
	return apperrors.NewAppError(apperrors.ErrHandlerFault, msg, err)
}

func formatLabel(format string) string {
	if format == "" {
		return engine.DefaultFormat
	}
	return format
}
