// Package config загружает конфигурацию приложения.
//
// Источники (в порядке приоритета):
//  1. переменные окружения DR_*
//  2. YAML файл, путь к которому задан в DR_CONFIG (необязательно)
//  3. значения env-default
//
// Загрузка выполняется через cleanenv; YAML разбирается yaml.v3.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
)

// EnvConfigPath - переменная окружения с путём к YAML файлу конфигурации.
const EnvConfigPath = "DR_CONFIG"

// Config - корневая конфигурация приложения.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Output      OutputConfig      `yaml:"output"`
	Download    DownloadConfig    `yaml:"download"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Tracing     TracingConfig     `yaml:"tracing"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`

	// Source - путь к YAML файлу, из которого загружена конфигурация, или пусто.
	Source string `yaml:"-" env:"-"`
}

// Load загружает конфигурацию из окружения и файла DR_CONFIG.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(EnvConfigPath))
}

// LoadFrom загружает конфигурацию из файла path (если задан) и окружения.
// Возвращает *apperrors.AppError с кодом CONFIG.LOAD_FAILED или
// CONFIG.VALIDATION_FAILED.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				fmt.Sprintf("failed to read config file %s", path), err)
		}
		cfg.Source = path
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"failed to read environment variables", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, err.Error(), err)
	}
	return &cfg, nil
}

// normalize приводит строковые перечисления к нижнему регистру.
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	c.Output.Format = strings.ToLower(c.Output.Format)
	c.Download.Format = strings.ToLower(c.Download.Format)
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
}

// Validate проверяет секции, без которых приложение не может работать.
// Секции метрик и трейсинга проверяются отдельно в DisableInvalid:
// их ошибки не должны мешать загрузке медиа.
func (c *Config) Validate() error {
	validators := []func() error{
		c.Logging.Validate,
		c.Output.Validate,
		c.Download.Validate,
		c.Cache.Validate,
		c.Diagnostics.Validate,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// DisableInvalid выключает секции метрик и трейсинга с некорректными
// настройками и пишет предупреждение в лог.
func (c *Config) DisableInvalid(log logging.Logger) {
	if c.Metrics.Enabled {
		mc := c.Metrics.ToMetrics()
		if err := mc.Validate(); err != nil {
			log.Warn("конфигурация метрик некорректна, метрики отключены", logging.KeyError, err.Error())
			c.Metrics.Enabled = false
		}
	}
	if c.Tracing.Enabled {
		tc := c.Tracing.ToTracing("")
		if err := tc.Validate(); err != nil {
			log.Warn("конфигурация трейсинга некорректна, трейсинг отключён", logging.KeyError, err.Error())
			c.Tracing.Enabled = false
		}
	}
}
