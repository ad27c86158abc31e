package tracing

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/pkg/urlutil"
)

// instrumentationName - имя tracer-а для span-ов команд.
const instrumentationName = "github.com/Kargones/dr-downloader/internal/shell"

// NewTracerProvider настраивает глобальный OTel TracerProvider с OTLP HTTP
// экспортом и возвращает shutdown function. Shutdown сбрасывает буфер
// BatchSpanProcessor, поэтому вызывается перед выходом процесса.
func NewTracerProvider(cfg Config, logger logging.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		logger.Debug("трейсинг выключен")
		return NewNopTracerProvider(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	// WithEndpoint принимает только host:port.
	host := cfg.Endpoint
	if u, parseErr := url.Parse(cfg.Endpoint); parseErr == nil && u.Host != "" {
		host = u.Host
	}
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(host),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("OpenTelemetry трейсинг инициализирован",
		"endpoint", urlutil.MaskURL(cfg.Endpoint),
		"service_name", cfg.ServiceName,
		"sampling_rate", cfg.SamplingRate,
	)
	return tp.Shutdown, nil
}

// ContextWithOTelTraceID делает traceIDHex родительским trace для span-ов,
// созданных из возвращённого context. Невалидный hex оставляет ctx без изменений.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}

// StartCommandSpan открывает span для одной команды.
func StartCommandSpan(ctx context.Context, command, mode string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "command "+command,
		trace.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("command.mode", mode),
		),
	)
}

// EndCommandSpan закрывает span, помечая его ошибкой с кодом code, если err != nil.
func EndCommandSpan(span trace.Span, code string, err error) {
	if err != nil {
		span.SetAttributes(attribute.String("error.code", code))
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// newSampler: remote parent из ContextWithOTelTraceID всегда помечен sampled,
// поэтому rate применяется и к нему, иначе SamplingRate игнорировался бы.
func newSampler(rate float64) sdktrace.Sampler {
	return sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(rate),
		sdktrace.WithRemoteParentSampled(sdktrace.TraceIDRatioBased(rate)),
	)
}
