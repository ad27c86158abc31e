package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/Kargones/dr-downloader/internal/cache"
	"github.com/Kargones/dr-downloader/internal/engine"
	"github.com/Kargones/dr-downloader/internal/pkg/diagnostics"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/metrics"
	"github.com/Kargones/dr-downloader/internal/pkg/output"
	"github.com/Kargones/dr-downloader/internal/pkg/tracing"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	// Level - debug, info, warn или error.
	Level string `yaml:"level" env:"DR_LOG_LEVEL" env-default:"warn"`

	// Format - text или json.
	Format string `yaml:"format" env:"DR_LOG_FORMAT" env-default:"text"`

	// Output - stderr или file. stdout занят выводом команд.
	Output string `yaml:"output" env:"DR_LOG_OUTPUT" env-default:"stderr"`

	FilePath   string `yaml:"filePath" env:"DR_LOG_FILE_PATH" env-default:"logs/dr-downloader.log"`
	MaxSize    int    `yaml:"maxSize" env:"DR_LOG_MAX_SIZE" env-default:"10"`
	MaxBackups int    `yaml:"maxBackups" env:"DR_LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"maxAge" env:"DR_LOG_MAX_AGE" env-default:"7"`

	// TODO: bool с env-default:"true" перезаписывает compress: false из YAML;
	// нужен *bool в секции, чтобы отличать отсутствие значения.
	Compress bool `yaml:"compress" env:"DR_LOG_COMPRESS" env-default:"true"`
}

// Validate проверяет уровень, формат и вывод логов.
func (c *LoggingConfig) Validate() error {
	levels := []string{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError}
	if !slices.Contains(levels, c.Level) {
		return fmt.Errorf("logging: unknown level %q", c.Level)
	}
	if c.Format != logging.FormatText && c.Format != logging.FormatJSON {
		return fmt.Errorf("logging: unknown format %q", c.Format)
	}
	if c.Output != logging.OutputStderr && c.Output != logging.OutputFile {
		return fmt.Errorf("logging: unknown output %q", c.Output)
	}
	if c.Output == logging.OutputFile && c.FilePath == "" {
		return fmt.Errorf("logging: filePath is required for output=file")
	}
	return nil
}

// ToLogging конвертирует секцию в logging.Config.
func (c *LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:      c.Level,
		Format:     c.Format,
		Output:     c.Output,
		FilePath:   c.FilePath,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

// OutputConfig содержит настройки вывода результатов команд.
type OutputConfig struct {
	// Format - text или json.
	Format string `yaml:"format" env:"DR_OUTPUT_FORMAT" env-default:"text"`
}

// Validate проверяет формат вывода.
func (c *OutputConfig) Validate() error {
	if c.Format != output.FormatText && c.Format != output.FormatJSON {
		return fmt.Errorf("output: unknown format %q", c.Format)
	}
	return nil
}

// DownloadConfig содержит настройки движка загрузки.
type DownloadConfig struct {
	// Dir - директория для сохранённых файлов.
	Dir string `yaml:"dir" env:"DR_DOWNLOAD_DIR" env-default:"."`

	// Format - формат по умолчанию для download без второго аргумента.
	Format string `yaml:"format" env:"DR_DOWNLOAD_FORMAT" env-default:"mp3"`

	// FFmpegPath и YtdlpPath - пути к исполняемым файлам; пустые означают поиск в PATH.
	FFmpegPath string `yaml:"ffmpegPath" env:"DR_FFMPEG_PATH"`
	YtdlpPath  string `yaml:"ytdlpPath" env:"DR_YTDLP_PATH"`

	// TempDir - директория для рабочих каталогов заданий; пустая означает os.TempDir().
	TempDir string `yaml:"tempDir" env:"DR_DOWNLOAD_TEMP_DIR"`

	Retries    int           `yaml:"retries" env:"DR_DOWNLOAD_RETRIES" env-default:"1"`
	RetryDelay time.Duration `yaml:"retryDelay" env:"DR_DOWNLOAD_RETRY_DELAY" env-default:"2s"`

	// Timeout ограничивает одно задание; 0 - без ограничения.
	Timeout time.Duration `yaml:"timeout" env:"DR_DOWNLOAD_TIMEOUT" env-default:"0s"`

	// Progress включает индикатор прогресса загрузки в stderr.
	Progress bool `yaml:"progress" env:"DR_DOWNLOAD_PROGRESS" env-default:"true"`
}

// Validate проверяет формат и числовые параметры.
func (c *DownloadConfig) Validate() error {
	if !engine.IsSupportedFormat(c.Format) {
		return fmt.Errorf("download: unsupported format %q", c.Format)
	}
	if c.Dir == "" {
		return fmt.Errorf("download: dir must not be empty")
	}
	if c.Retries < 0 {
		return fmt.Errorf("download: retries must not be negative")
	}
	if c.RetryDelay < 0 || c.Timeout < 0 {
		return fmt.Errorf("download: retryDelay and timeout must not be negative")
	}
	return nil
}

// ToEngine конвертирует секцию в engine.Config.
// Progress выключается в JSON режиме, чтобы stderr не смешивался с документом.
func (c *DownloadConfig) ToEngine(outputFormat string) engine.Config {
	return engine.Config{
		OutputDir:     c.Dir,
		DefaultFormat: c.Format,
		FFmpegPath:    c.FFmpegPath,
		YtdlpPath:     c.YtdlpPath,
		TempDir:       c.TempDir,
		Retries:       c.Retries,
		RetryDelay:    c.RetryDelay,
		Timeout:       c.Timeout,
		ShowProgress:  c.Progress && !output.IsJSON(outputFormat),
	}
}

// CacheConfig содержит настройки хранилища токена.
type CacheConfig struct {
	// Backend - file или mssql.
	Backend string `yaml:"backend" env:"DR_CACHE_BACKEND" env-default:"file"`

	FilePath string `yaml:"filePath" env:"DR_CACHE_FILE" env-default:"dr-downloader.cache.yaml"`

	MSSQL MSSQLConfig `yaml:"mssql"`
}

// MSSQLConfig содержит параметры подключения к SQL Server.
type MSSQLConfig struct {
	Server   string        `yaml:"server" env:"DR_CACHE_MSSQL_SERVER"`
	Port     int           `yaml:"port" env:"DR_CACHE_MSSQL_PORT" env-default:"1433"`
	User     string        `yaml:"user" env:"DR_CACHE_MSSQL_USER"`
	Password string        `yaml:"password" env:"DR_CACHE_MSSQL_PASSWORD"`
	Database string        `yaml:"database" env:"DR_CACHE_MSSQL_DATABASE" env-default:"master"`
	Table    string        `yaml:"table" env:"DR_CACHE_MSSQL_TABLE" env-default:"dbo.KeyValueCache"`
	Timeout  time.Duration `yaml:"timeout" env:"DR_CACHE_MSSQL_TIMEOUT" env-default:"10s"`
	Encrypt  bool          `yaml:"encrypt" env:"DR_CACHE_MSSQL_ENCRYPT" env-default:"true"`
}

// Validate проверяет backend и обязательные параметры.
func (c *CacheConfig) Validate() error {
	switch c.Backend {
	case cache.BackendFile:
		if c.FilePath == "" {
			return fmt.Errorf("cache: filePath is required for backend=file")
		}
	case cache.BackendMSSQL:
		if c.MSSQL.Server == "" {
			return fmt.Errorf("cache: mssql.server is required for backend=mssql")
		}
		if c.MSSQL.Port < 1 || c.MSSQL.Port > 65535 {
			return fmt.Errorf("cache: invalid mssql.port %d", c.MSSQL.Port)
		}
	default:
		return fmt.Errorf("cache: unknown backend %q", c.Backend)
	}
	return nil
}

// ToCache конвертирует секцию в cache.Config.
func (c *CacheConfig) ToCache() cache.Config {
	return cache.Config{
		Backend:  c.Backend,
		FilePath: c.FilePath,
		MSSQL: cache.MSSQLOptions{
			Server:   c.MSSQL.Server,
			Port:     c.MSSQL.Port,
			User:     c.MSSQL.User,
			Password: c.MSSQL.Password,
			Database: c.MSSQL.Database,
			Table:    c.MSSQL.Table,
			Timeout:  c.MSSQL.Timeout,
			Encrypt:  c.MSSQL.Encrypt,
		},
	}
}

// MetricsConfig содержит настройки Prometheus метрик.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"DR_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL, например "http://pushgateway:9091".
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"DR_METRICS_PUSHGATEWAY_URL"`

	JobName       string        `yaml:"jobName" env:"DR_METRICS_JOB_NAME" env-default:"dr-downloader"`
	Timeout       time.Duration `yaml:"timeout" env:"DR_METRICS_TIMEOUT" env-default:"10s"`
	InstanceLabel string        `yaml:"instanceLabel" env:"DR_METRICS_INSTANCE"`
}

// ToMetrics конвертирует секцию в metrics.Config.
func (c *MetricsConfig) ToMetrics() metrics.Config {
	return metrics.Config{
		Enabled:        c.Enabled,
		PushgatewayURL: c.PushgatewayURL,
		JobName:        c.JobName,
		Timeout:        c.Timeout,
		InstanceLabel:  c.InstanceLabel,
	}
}

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" env:"DR_TRACING_ENABLED" env-default:"false"`

	// Endpoint - URL OTLP HTTP коллектора, например http://jaeger:4318.
	Endpoint string `yaml:"endpoint" env:"DR_TRACING_ENDPOINT"`

	ServiceName  string        `yaml:"serviceName" env:"DR_TRACING_SERVICE_NAME" env-default:"dr-downloader"`
	Environment  string        `yaml:"environment" env:"DR_TRACING_ENVIRONMENT" env-default:"local"`
	Insecure     bool          `yaml:"insecure" env:"DR_TRACING_INSECURE" env-default:"false"`
	Timeout      time.Duration `yaml:"timeout" env:"DR_TRACING_TIMEOUT" env-default:"5s"`
	SamplingRate float64       `yaml:"samplingRate" env:"DR_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// ToTracing конвертирует секцию в tracing.Config.
func (c *TracingConfig) ToTracing(version string) tracing.Config {
	return tracing.Config{
		Enabled:      c.Enabled,
		Endpoint:     c.Endpoint,
		ServiceName:  c.ServiceName,
		Version:      version,
		Environment:  c.Environment,
		Insecure:     c.Insecure,
		Timeout:      c.Timeout,
		SamplingRate: c.SamplingRate,
	}
}

// DiagnosticsConfig содержит настройки файла диагностики.
type DiagnosticsConfig struct {
	Enabled    bool   `yaml:"enabled" env:"DR_DIAGNOSTICS_ENABLED" env-default:"true"`
	Path       string `yaml:"path" env:"DR_DIAGNOSTICS_FILE" env-default:"error.txt"`
	MaxSizeMB  int    `yaml:"maxSizeMb" env:"DR_DIAGNOSTICS_MAX_SIZE" env-default:"5"`
	MaxBackups int    `yaml:"maxBackups" env:"DR_DIAGNOSTICS_MAX_BACKUPS" env-default:"3"`
}

// Validate проверяет путь к файлу.
func (c *DiagnosticsConfig) Validate() error {
	if c.Enabled && c.Path == "" {
		return fmt.Errorf("diagnostics: path is required when enabled=true")
	}
	return nil
}

// ToDiagnostics конвертирует секцию в diagnostics.Config.
func (c *DiagnosticsConfig) ToDiagnostics() diagnostics.Config {
	return diagnostics.Config{
		Enabled:    c.Enabled,
		Path:       c.Path,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}
