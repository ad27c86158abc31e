// Package engine загружает медиа по URL, конвертирует его в нужный формат
// и сохраняет в выходную директорию.
//
// Загрузка выполняется через yt-dlp, конвертация через ffmpeg.
// Engine не потокобезопасен по отношению к одному и тому же выходному файлу:
// эксклюзивный доступ обеспечивает вызывающий код (internal/state).
package engine

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/progress"
	"github.com/Kargones/dr-downloader/internal/pkg/urlutil"
)

// Request описывает одно задание на сохранение.
type Request struct {
	URL string
	// Format - целевой формат; пустой означает формат по умолчанию из Config.
	Format string
	// OutputDir - директория результата; пустая означает директорию из Config.
	OutputDir string
}

// Result описывает сохранённый файл.
type Result struct {
	JobID    string        `json:"job_id"`
	URL      string        `json:"url"`
	Title    string        `json:"title"`
	Format   string        `json:"format"`
	Path     string        `json:"path"`
	Duration time.Duration `json:"duration_ns"`
}

// Saver - операция, которую оболочка вызывает для команды download.
type Saver interface {
	Save(ctx context.Context, req Request) (*Result, error)
}

// Config содержит настройки движка.
type Config struct {
	OutputDir     string
	DefaultFormat string
	FFmpegPath    string
	YtdlpPath     string
	TempDir       string
	Retries       int
	RetryDelay    time.Duration
	Timeout       time.Duration
	ShowProgress  bool
}

// Engine реализует Saver.
type Engine struct {
	cfg         Config
	fetcher     Fetcher
	converter   Converter
	subscriber  EventSubscriber
	log         logging.Logger
	newProgress func() progress.Progress
	newJobID    func() string
}

// Compile-time проверка реализации интерфейса.
var _ Saver = (*Engine)(nil)

// New создаёт Engine с yt-dlp и ffmpeg.
// Возвращает ENGINE.INIT_FAILED, если исполняемые файлы не найдены:
// без них ни одна загрузка не может быть выполнена.
func New(cfg Config, subscriber EventSubscriber, log logging.Logger) (*Engine, error) {
	ffmpeg, err := resolveExecutable(cfg.FFmpegPath, "ffmpeg")
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrEngineInit, "ffmpeg not found", err)
	}
	ytdlpPath, err := resolveExecutable(cfg.YtdlpPath, "yt-dlp")
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrEngineInit, "yt-dlp not found", err)
	}
	log.Debug("движок инициализирован", "ffmpeg", ffmpeg, "yt-dlp", ytdlpPath)

	return NewWithDeps(cfg, NewYtdlpFetcher(ytdlpPath), NewFFmpegConverter(ffmpeg), subscriber, log), nil
}

// NewWithDeps создаёт Engine с заданными зависимостями.
func NewWithDeps(cfg Config, fetcher Fetcher, converter Converter, subscriber EventSubscriber, log logging.Logger) *Engine {
	if subscriber == nil {
		subscriber = NopSubscriber{}
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = DefaultFormat
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	e := &Engine{
		cfg:        cfg,
		fetcher:    fetcher,
		converter:  converter,
		subscriber: subscriber,
		log:        log,
		newJobID:   uuid.NewString,
	}
	e.newProgress = func() progress.Progress {
		return progress.New(progress.Options{
			Output:   os.Stderr,
			ShowETA:  true,
			Disabled: !cfg.ShowProgress,
			Logger:   log,
		})
	}
	return e
}

// Save загружает, при необходимости конвертирует и сохраняет медиа.
// Ошибки возвращаются как *apperrors.AppError с кодом ENGINE.*.
func (e *Engine) Save(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	format := strings.ToLower(req.Format)
	if format == "" {
		format = e.cfg.DefaultFormat
	}
	outDir := req.OutputDir
	if outDir == "" {
		outDir = e.cfg.OutputDir
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	jobID := e.newJobID()
	log := e.log.With(logging.KeyJobID, jobID, "url", urlutil.RedactMediaURL(req.URL), "format", format)

	res, err := e.save(ctx, log, jobID, req.URL, format, outDir)
	if err != nil {
		e.subscriber.OnFailed(req.URL, err)
		log.Warn("задание завершилось ошибкой", logging.KeyError, err)
		return nil, err
	}

	res.Duration = time.Since(started)
	e.subscriber.OnFinished(res.Title)
	log.Info("задание выполнено", "path", res.Path, logging.KeyDuration, res.Duration.Milliseconds())
	return res, nil
}

func (e *Engine) save(ctx context.Context, log logging.Logger, jobID, url, format, outDir string) (*Result, error) {
	workDir := filepath.Join(e.cfg.TempDir, "dr-downloader-"+jobID)
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrEngineFetch, "Failed to create work directory", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn("не удалось удалить рабочую директорию", "dir", workDir, logging.KeyError, err)
		}
	}()

	e.subscriber.OnDownloading(url)
	fetched, err := e.fetchWithRetry(ctx, log, FetchRequest{URL: url, Format: format, WorkDir: workDir})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrEngineFetch, "Failed to download media", err)
	}

	src := fetched.Path
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(src)), "."); ext != format {
		e.subscriber.OnConverting(fetched.Title, format)
		converted := filepath.Join(workDir, "converted."+format)
		if err := e.converter.Convert(ctx, src, converted, format); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrEngineConvert, "Failed to convert media", err)
		}
		src = converted
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrEngineSave, "Failed to create output directory", err)
	}
	dst := uniquePath(outDir, SanitizeFilename(fetched.Title), format)
	if err := moveFile(src, dst); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrEngineSave, "Failed to save file", err)
	}

	return &Result{
		JobID:  jobID,
		URL:    url,
		Title:  fetched.Title,
		Format: format,
		Path:   dst,
	}, nil
}

// fetchWithRetry выполняет загрузку с повторами при ошибке.
// Между попытками выдерживается RetryDelay; отмена контекста прерывает ожидание.
func (e *Engine) fetchWithRetry(ctx context.Context, log logging.Logger, req FetchRequest) (*Fetched, error) {
	bar := e.newProgress()
	bar.Start(req.URL)
	defer bar.Finish()

	var lastTotal int64
	req.OnProgress = func(p FetchProgress) {
		if p.Total > 0 && p.Total != lastTotal {
			lastTotal = p.Total
			bar.SetTotal(p.Total)
		}
		bar.Update(p.Downloaded, p.Title)
	}

	var lastErr error
	for attempt := 0; attempt <= e.cfg.Retries; attempt++ {
		if attempt > 0 {
			log.Info("повтор загрузки", "attempt", attempt+1)
			select {
			case <-time.After(e.cfg.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		fetched, err := e.fetcher.Fetch(ctx, req)
		if err == nil {
			return fetched, nil
		}
		lastErr = err
		log.Warn("попытка загрузки не удалась", "attempt", attempt+1, logging.KeyError, err)

		if ctx.Err() != nil {
			return nil, errors.Join(ctx.Err(), lastErr)
		}
	}
	return nil, lastErr
}

// resolveExecutable проверяет наличие исполняемого файла.
// Пустой configured означает поиск defaultName в PATH.
func resolveExecutable(configured, defaultName string) (string, error) {
	name := configured
	if name == "" {
		name = defaultName
	}
	return exec.LookPath(name)
}
