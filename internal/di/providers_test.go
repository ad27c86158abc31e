package di

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/dr-downloader/internal/cache"
	"github.com/Kargones/dr-downloader/internal/config"
	"github.com/Kargones/dr-downloader/internal/engine"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/console"
	"github.com/Kargones/dr-downloader/internal/pkg/diagnostics"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/metrics"
)

// fakeExecutable создаёт исполняемый файл-заглушку и возвращает путь к нему.
func fakeExecutable(t *testing.T, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("заглушки исполняемых файлов поддерживаются только на unix")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	return path
}

// testConfig возвращает валидную конфигурацию с заглушками ffmpeg и yt-dlp.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Logging: config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"},
		Output:  config.OutputConfig{Format: "text"},
		Download: config.DownloadConfig{
			Dir:        dir,
			Format:     "mp3",
			FFmpegPath: fakeExecutable(t, "ffmpeg"),
			YtdlpPath:  fakeExecutable(t, "yt-dlp"),
		},
		Cache: config.CacheConfig{
			Backend:  cache.BackendFile,
			FilePath: filepath.Join(dir, "cache.yaml"),
		},
		Diagnostics: config.DiagnosticsConfig{Enabled: true, Path: filepath.Join(dir, "error.txt")},
	}
}

func TestProvideLogger(t *testing.T) {
	assert.NotNil(t, ProvideLogger(nil), "nil Config должен давать логгер по умолчанию")
	assert.NotNil(t, ProvideLogger(testConfig(t)))
}

func TestProvideMetricsCollector_Disabled(t *testing.T) {
	collector := ProvideMetricsCollector(testConfig(t), logging.NewNopLogger())
	assert.IsType(t, &metrics.NopCollector{}, collector)
}

func TestProvideMetricsCollector_Enabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics = config.MetricsConfig{
		Enabled:        true,
		PushgatewayURL: "http://localhost:9091",
		JobName:        "test",
		Timeout:        time.Second,
	}
	collector := ProvideMetricsCollector(cfg, logging.NewNopLogger())
	assert.IsType(t, &metrics.PrometheusCollector{}, collector)
}

func TestProvideTracerProvider_Disabled(t *testing.T) {
	shutdown := ProvideTracerProvider(testConfig(t), logging.NewNopLogger())
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestProvideDiagnostics(t *testing.T) {
	cfg := testConfig(t)
	rec, cleanup := ProvideDiagnostics(cfg)
	defer cleanup()
	assert.IsType(t, &diagnostics.File{}, rec)

	cfg.Diagnostics.Enabled = false
	rec, cleanup2 := ProvideDiagnostics(cfg)
	defer cleanup2()
	assert.IsType(t, diagnostics.Nop{}, rec)
}

func TestProvideEngine_MissingExecutable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Download.FFmpegPath = filepath.Join(t.TempDir(), "absent-ffmpeg")

	_, err := ProvideEngine(cfg, engine.NopSubscriber{}, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrEngineInit))
}

func TestProvideCache_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "redis"

	_, _, err := ProvideCache(context.Background(), cfg, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCacheConnection))
}

func TestProvideRegistry_RegistersAllCommands(t *testing.T) {
	cfg := testConfig(t)
	c, cleanup, err := ProvideCache(context.Background(), cfg, logging.NewNopLogger())
	require.NoError(t, err)
	defer cleanup()

	reg := ProvideRegistry(cfg, console.NewBuffer(), logging.NewNopLogger(), c, metrics.NewNopCollector())
	assert.Equal(t, []string{"clear", "dl", "download", "help", "token", "version"}, reg.Names())
}
