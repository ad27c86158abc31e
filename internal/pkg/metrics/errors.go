package metrics

import "errors"

// Ошибки валидации секции metrics. Config.DisableInvalid отключает отправку
// метрик команд при любой из них, поэтому запуск dr-downloader не прерывается.
var (
	// ErrPushgatewayURLRequired: DR_METRICS_ENABLED=true, но DR_METRICS_PUSHGATEWAY_URL пуст.
	ErrPushgatewayURLRequired = errors.New("metrics: pushgateway URL must be set when command metrics are enabled")

	// ErrJobNameRequired: пустой DR_METRICS_JOB_NAME, метрики некуда сгруппировать.
	ErrJobNameRequired = errors.New("metrics: job name must not be empty")

	// ErrInvalidTimeout: DR_METRICS_TIMEOUT должен быть больше нуля.
	ErrInvalidTimeout = errors.New("metrics: push timeout must be positive")

	// ErrPushgatewayURLInvalid: адрес Pushgateway не разбирается как http(s) URL.
	ErrPushgatewayURLInvalid = errors.New("metrics: pushgateway URL must be an absolute http(s) URL")
)
