package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/dr-downloader/internal/engine"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, ".", cfg.Download.Dir)
	assert.Equal(t, "mp3", cfg.Download.Format)
	assert.Equal(t, 1, cfg.Download.Retries)
	assert.Equal(t, 2*time.Second, cfg.Download.RetryDelay)
	assert.Equal(t, "file", cfg.Cache.Backend)
	assert.Equal(t, "dr-downloader.cache.yaml", cfg.Cache.FilePath)
	assert.Equal(t, 1433, cfg.Cache.MSSQL.Port)
	assert.Equal(t, "dbo.KeyValueCache", cfg.Cache.MSSQL.Table)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.Diagnostics.Enabled)
	assert.Equal(t, "error.txt", cfg.Diagnostics.Path)
	assert.Empty(t, cfg.Source)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("DR_LOG_LEVEL", "DEBUG")
	t.Setenv("DR_OUTPUT_FORMAT", "json")
	t.Setenv("DR_DOWNLOAD_FORMAT", "Flac")
	t.Setenv("DR_DOWNLOAD_DIR", "/music")
	t.Setenv("DR_DOWNLOAD_TIMEOUT", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "flac", cfg.Download.Format)
	assert.Equal(t, "/music", cfg.Download.Dir)
	assert.Equal(t, 5*time.Minute, cfg.Download.Timeout)
}

func TestLoadFrom_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: info
download:
  dir: /tmp/media
  format: wav
cache:
  backend: mssql
  mssql:
    server: db.local
    database: media
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/tmp/media", cfg.Download.Dir)
	assert.Equal(t, "wav", cfg.Download.Format)
	assert.Equal(t, "mssql", cfg.Cache.Backend)
	assert.Equal(t, "db.local", cfg.Cache.MSSQL.Server)
	assert.Equal(t, "media", cfg.Cache.MSSQL.Database)
	assert.Equal(t, 1433, cfg.Cache.MSSQL.Port, "незаданные поля получают значения по умолчанию")
}

func TestLoadFrom_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("download:\n  format: wav\n"), 0o600))
	t.Setenv("DR_DOWNLOAD_FORMAT", "mp4")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "mp4", cfg.Download.Format)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfigLoad))
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown log level", map[string]string{"DR_LOG_LEVEL": "trace"}},
		{"unknown log format", map[string]string{"DR_LOG_FORMAT": "xml"}},
		{"unknown log output", map[string]string{"DR_LOG_OUTPUT": "stdout"}},
		{"unknown output format", map[string]string{"DR_OUTPUT_FORMAT": "yaml"}},
		{"unsupported download format", map[string]string{"DR_DOWNLOAD_FORMAT": "avi"}},
		{"negative retries", map[string]string{"DR_DOWNLOAD_RETRIES": "-1"}},
		{"unknown cache backend", map[string]string{"DR_CACHE_BACKEND": "redis"}},
		{"mssql without server", map[string]string{"DR_CACHE_BACKEND": "mssql"}},
		{"mssql bad port", map[string]string{
			"DR_CACHE_BACKEND":      "mssql",
			"DR_CACHE_MSSQL_SERVER": "db",
			"DR_CACHE_MSSQL_PORT":   "70000",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigPath, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrConfigValidate), "got %v", err)
		})
	}
}

func TestLoad_AcceptsEverySupportedFormat(t *testing.T) {
	for _, format := range engine.SupportedFormats() {
		t.Run(format, func(t *testing.T) {
			t.Setenv(EnvConfigPath, "")
			t.Setenv("DR_DOWNLOAD_FORMAT", strings.ToUpper(format))

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, format, cfg.Download.Format)
		})
	}
}

func TestDisableInvalid(t *testing.T) {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true, PushgatewayURL: "", JobName: "job", Timeout: time.Second},
		Tracing: TracingConfig{Enabled: true, Endpoint: "", ServiceName: "svc", Timeout: time.Second, SamplingRate: 1},
	}

	cfg.DisableInvalid(logging.NewNopLogger())

	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestDisableInvalid_KeepsValid(t *testing.T) {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true, PushgatewayURL: "http://pushgateway:9091", JobName: "job", Timeout: time.Second},
		Tracing: TracingConfig{Enabled: true, Endpoint: "http://jaeger:4318", ServiceName: "svc", Timeout: time.Second, SamplingRate: 0.5},
	}

	cfg.DisableInvalid(logging.NewNopLogger())

	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestConverters(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("DR_FFMPEG_PATH", "/usr/bin/ffmpeg")
	cfg, err := Load()
	require.NoError(t, err)

	eng := cfg.Download.ToEngine("text")
	assert.Equal(t, "/usr/bin/ffmpeg", eng.FFmpegPath)
	assert.Equal(t, "mp3", eng.DefaultFormat)
	assert.True(t, eng.ShowProgress)
	assert.False(t, cfg.Download.ToEngine("json").ShowProgress, "в JSON режиме прогресс выключен")

	lc := cfg.Logging.ToLogging()
	assert.Equal(t, logging.DefaultConfig(), lc)

	cc := cfg.Cache.ToCache()
	assert.Equal(t, "file", cc.Backend)
	assert.Equal(t, "dr-downloader.cache.yaml", cc.FilePath)

	tc := cfg.Tracing.ToTracing("1.2.3")
	assert.Equal(t, "1.2.3", tc.Version)
	assert.Equal(t, "dr-downloader", tc.ServiceName)

	dc := cfg.Diagnostics.ToDiagnostics()
	assert.Equal(t, "error.txt", dc.Path)
	assert.Equal(t, 5, dc.MaxSizeMB)
}
