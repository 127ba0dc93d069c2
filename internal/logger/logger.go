// Package logger wires structured logging and optional OpenTelemetry tracing.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dyike/arandu/config"
)

const serviceName = "arandu"

var (
	tracer         = otel.Tracer(serviceName)
	tracerProvider *sdktrace.TracerProvider
)

// Init builds the process logger from cfg and installs it as the zap global.
// The returned function flushes the logger and shuts the tracer down.
func Init(cfg *config.Config) (func(context.Context) error, error) {
	log, err := New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)

	if cfg.TracingEnabled {
		if err := initTracer(); err != nil {
			log.Warn("failed to initialize tracer, tracing disabled", zap.Error(err))
		}
	}

	return func(ctx context.Context) error {
		_ = log.Sync()
		if tracerProvider != nil {
			return tracerProvider.Shutdown(ctx)
		}
		return nil
	}, nil
}

// New returns a zap logger for the given level and encoding ("json" or "console").
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zcfg zap.Config
	switch format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	// Dashboard output goes to stdout.
	zcfg.OutputPaths = []string{"stderr"}

	return zcfg.Build()
}

// L returns the global logger.
func L() *zap.Logger {
	return zap.L()
}

func initTracer() error {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	if err != nil {
		return err
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = tracerProvider.Tracer(serviceName)
	return nil
}

// StartSpan starts a span on the process tracer. Without tracing enabled the
// span is a no-op.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, opts...)
}
