// Package shell реализует цикл чтения и выполнения команд.
//
// Режим выбирается один раз при запуске: без аргументов командной строки
// команды читаются построчно из входного потока (интерактивный режим),
// иначе аргументы объединяются в одну команду, которая выполняется однократно.
//
// Ошибка команды не прерывает цикл: она выводится пользователю,
// записывается в файл диагностики, после чего читается следующая строка.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/console"
	"github.com/Kargones/dr-downloader/internal/pkg/diagnostics"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/metrics"
	"github.com/Kargones/dr-downloader/internal/pkg/output"
	"github.com/Kargones/dr-downloader/internal/pkg/tracing"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Options содержит зависимости цикла. Dispatcher, Console и Input обязательны.
type Options struct {
	Dispatcher  *command.Dispatcher
	State       *state.Handle
	Console     console.Console
	Input       io.Reader
	Diagnostics diagnostics.Recorder
	Metrics     metrics.Collector
	Logger      logging.Logger
	// OutputFormat - "text" или "json"; в JSON режиме ошибки выводятся как output.Result.
	OutputFormat string
}

// Loop читает команды и передаёт их диспетчеру по одной.
// Сам цикл никогда не захватывает разделяемое состояние.
type Loop struct {
	dispatcher *command.Dispatcher
	state      *state.Handle
	console    console.Console
	input      io.Reader
	diag       diagnostics.Recorder
	metrics    metrics.Collector
	log        logging.Logger
	format     string
	now        func() time.Time
}

// New создаёт Loop, подставляя no-op реализации вместо nil зависимостей.
func New(opts Options) *Loop {
	l := &Loop{
		dispatcher: opts.Dispatcher,
		state:      opts.State,
		console:    opts.Console,
		input:      opts.Input,
		diag:       opts.Diagnostics,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		format:     opts.OutputFormat,
		now:        time.Now,
	}
	if l.diag == nil {
		l.diag = diagnostics.Nop{}
	}
	if l.metrics == nil {
		l.metrics = metrics.NewNopCollector()
	}
	if l.log == nil {
		l.log = logging.NewNopLogger()
	}
	return l
}

// ErrInput возвращается Run, если входной поток завершился ошибкой, отличной от EOF.
var ErrInput = errors.New("shell: read input")

// Run выполняет цикл. Пустой args включает интерактивный режим.
//
// Интерактивный режим завершается без ошибки по концу ввода или отмене ctx.
// Пакетный режим выполняет одну команду и возвращает nil даже при её ошибке:
// ошибка уже выведена пользователю и записана в диагностику.
func (l *Loop) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return l.interactive(ctx)
	}
	l.execute(ctx, constants.ModeBatch, strings.Join(args, " "))
	return nil
}

// readResult - строка или ошибка чтения из горутины чтения.
type readResult struct {
	line string
	err  error
}

// interactive читает строки в отдельной горутине, чтобы ожидание ввода
// можно было прервать отменой ctx. Команды выполняются строго по одной
// в порядке чтения: следующая строка запрашивается только после завершения
// предыдущей команды.
func (l *Loop) interactive(ctx context.Context) error {
	lines := make(chan readResult)
	next := make(chan struct{})
	done := make(chan struct{})
	defer close(done)

	go l.readLines(lines, next, done)

	l.log.Debug("интерактивный режим запущен")
	for {
		l.console.Write(constants.Prompt)

		select {
		case next <- struct{}{}:
		case <-ctx.Done():
			l.console.WriteLine("")
			return nil
		}

		var res readResult
		select {
		case res = <-lines:
		case <-ctx.Done():
			l.console.WriteLine("")
			l.log.Debug("интерактивный режим остановлен сигналом")
			return nil
		}

		// Пустая строка тоже выполняется и даёт COMMAND.NO_COMMAND;
		// пустой остаток перед концом ввода пропускается.
		if res.err == nil || res.line != "" {
			l.execute(ctx, constants.ModeInteractive, res.line)
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				l.log.Debug("конец ввода, интерактивный режим завершён")
				return nil
			}
			return fmt.Errorf("%w: %w", ErrInput, res.err)
		}
	}
}

// readLines читает по одной строке на каждый запрос из next.
// Строка без завершающего перевода строки перед EOF возвращается вместе с io.EOF.
func (l *Loop) readLines(lines chan<- readResult, next <-chan struct{}, done <-chan struct{}) {
	reader := bufio.NewReader(l.input)
	for {
		select {
		case <-next:
		case <-done:
			return
		}

		raw, err := reader.ReadString('\n')
		res := readResult{line: strings.TrimRight(raw, "\r\n"), err: err}

		select {
		case lines <- res:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// execute выполняет одну строку и сообщает о результате.
func (l *Loop) execute(ctx context.Context, mode, line string) {
	started := l.now()
	traceID := tracing.GenerateTraceID()
	ctx = tracing.WithTraceID(ctx, traceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)

	tokens := command.Tokenize(line)
	name := ""
	if len(tokens) > 0 {
		name = tokens[0]
	}
	log := l.log.With(logging.KeyTraceID, traceID, logging.KeyCommand, name, logging.KeyMode, mode)

	l.metrics.RecordCommandStart(name, mode)
	spanCtx, span := tracing.StartCommandSpan(ctx, name, mode)

	err := l.dispatcher.Handle(spanCtx, line, l.state)

	code := apperrors.Code(err)
	duration := l.now().Sub(started)
	tracing.EndCommandSpan(span, code, err)
	l.metrics.RecordCommandEnd(name, mode, duration, code)
	// Push не должен прерываться сигналом, отменившим основной context.
	_ = l.metrics.Push(context.WithoutCancel(ctx)) //nolint:errcheck // ошибки логируются внутри

	if err == nil {
		log.Info("команда выполнена", logging.KeyDuration, duration.Milliseconds())
		return
	}

	log.Warn("команда завершилась ошибкой",
		logging.KeyCode, code,
		logging.KeyError, err.Error(),
		logging.KeyDuration, duration.Milliseconds(),
	)
	l.report(name, traceID, duration, err)

	entry := diagnostics.Entry{
		Time:    started,
		TraceID: traceID,
		Line:    RedactLine(tokens),
		Code:    code,
		Message: err.Error(),
	}
	if appErr, ok := apperrors.As(err); ok {
		entry.Message = appErr.Message
		entry.Trace = appErr.Trace
	}
	if recErr := l.diag.Record(entry); recErr != nil {
		log.Warn("не удалось записать диагностику", logging.KeyError, recErr.Error())
	}
}

// report выводит ошибку пользователю: "Error! <message>" в текстовом режиме
// или output.Result со статусом error в JSON режиме.
func (l *Loop) report(name, traceID string, duration time.Duration, err error) {
	if output.IsJSON(l.format) {
		result := output.NewError(name, err, &output.Metadata{
			DurationMs: duration.Milliseconds(),
			TraceID:    traceID,
			APIVersion: output.APIVersion,
		})
		text, renderErr := output.Render(output.NewJSONWriter(), result)
		if renderErr == nil {
			l.console.Write(text)
			return
		}
		l.log.Error("не удалось сформировать JSON ошибки", logging.KeyError, renderErr.Error())
	}

	msg := err.Error()
	if appErr, ok := apperrors.As(err); ok {
		msg = appErr.Message
	}
	l.console.WriteLine(l.console.Paint(console.ColorRed, constants.ErrorLabel) + " " + msg)
}

// RedactLine восстанавливает строку команды из токенов, скрывая значение
// токена в "token set <value>".
func RedactLine(tokens []string) string {
	if len(tokens) >= 3 && tokens[0] == constants.ActToken && tokens[1] == constants.SubTokenSet {
		redacted := append([]string{tokens[0], tokens[1]}, "***")
		if len(tokens) > 3 {
			redacted = append(redacted, tokens[3:]...)
		}
		return strings.Join(redacted, " ")
	}
	return strings.Join(tokens, " ")
}
