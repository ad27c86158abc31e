package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/urlutil"
)

// namespace - префикс всех метрик.
const namespace = "dr_downloader"

// PrometheusCollector реализует Collector с Prometheus метриками.
// Метрики накапливаются в собственном registry и отправляются в Pushgateway при Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	commandDuration  *prometheus.HistogramVec
	commandTotal     *prometheus.CounterVec
	downloadDuration *prometheus.HistogramVec

	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector и регистрирует метрики:
//   - dr_downloader_command_duration_seconds (histogram)
//   - dr_downloader_command_total (counter, label code)
//   - dr_downloader_download_duration_seconds (histogram)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				logging.KeyError, err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	commandDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
		[]string{"command", "mode", "status"},
	)

	// code пустой для успешных команд; набор кодов ограничен apperrors,
	// поэтому cardinality не растёт от пользовательского ввода.
	commandTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_total",
			Help:      "Total number of dispatched commands by result code",
		},
		[]string{"command", "mode", "code"},
	)

	downloadDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_duration_seconds",
			Help:      "Duration of download, conversion and save jobs in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"format", "status"},
	)

	for _, c := range []prometheus.Collector{commandDuration, commandTotal, downloadDuration} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:           config,
		logger:           logger,
		registry:         registry,
		commandDuration:  commandDuration,
		commandTotal:     commandTotal,
		downloadDuration: downloadDuration,
		instance:         instance,
	}, nil
}

// RecordCommandStart пишет debug запись; метрики записываются при завершении.
func (c *PrometheusCollector) RecordCommandStart(command, mode string) {
	c.logger.Debug("metrics: command started", logging.KeyCommand, command, logging.KeyMode, mode)
}

// maxLabelLength - максимальная длина значения label.
const maxLabelLength = 64

// unknownCommandLabel заменяет имена незарегистрированных команд,
// чтобы опечатки пользователя не порождали новые временные ряды.
const unknownCommandLabel = "_unknown"

// sanitizeLabel обрезает значение label по рунам и заменяет управляющие символы.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordCommandEnd обновляет histogram длительности и счётчик результатов.
func (c *PrometheusCollector) RecordCommandEnd(command, mode string, duration time.Duration, code string) {
	status := "success"
	if code != "" {
		status = "error"
	}
	if code == "COMMAND.NOT_FOUND" || code == "COMMAND.NO_COMMAND" {
		command = unknownCommandLabel
	}
	command = sanitizeLabel(command)

	c.commandDuration.WithLabelValues(command, mode, status).Observe(duration.Seconds())
	c.commandTotal.WithLabelValues(command, mode, code).Inc()

	c.logger.Debug("metrics: command ended",
		logging.KeyCommand, command,
		logging.KeyMode, mode,
		logging.KeyDuration, duration.Milliseconds(),
		logging.KeyCode, code,
	)
}

// RecordDownload обновляет histogram длительности заданий движка.
func (c *PrometheusCollector) RecordDownload(format string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.downloadDuration.WithLabelValues(sanitizeLabel(format), status).Observe(duration.Seconds())
}

// Push отправляет метрики в Pushgateway.
// Ошибка отправки не критична для пользователя: она логируется, возвращается nil.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if ctx.Err() != nil {
		c.logger.Debug("metrics push отменён")
		return nil
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			logging.KeyError, err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Debug("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// Registry возвращает внутренний registry. Используется в тестах.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
