package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	ExporterNone   = ""
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Tracer is backed by the global provider; spans are dropped until Setup
// installs an exporter.
var Tracer = otel.Tracer("fittrack-backend")

type SetupParams struct {
	Exporter    string
	ServiceName string
	Environment string
	// Writer receives stdout exporter output. Defaults to os.Stdout.
	Writer io.Writer
}

// Setup installs the global tracer provider for the configured exporter. The
// OTLP exporter reads its endpoint and headers from the standard
// OTEL_EXPORTER_OTLP_* variables. The returned shutdown flushes pending spans.
func Setup(ctx context.Context, params SetupParams) (shutdown func(context.Context) error, err error) {
	var exporter sdktrace.SpanExporter
	switch params.Exporter {
	case ExporterNone:
		log.Debugln("tracing exporter not configured, spans are dropped")
		return func(context.Context) error { return nil }, nil
	case ExporterStdout:
		w := params.Writer
		if w == nil {
			w = os.Stdout
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w))
	case ExporterOTLP:
		exporter, err = otlptracehttp.New(ctx)
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", params.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", params.Exporter, err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", params.ServiceName),
			attribute.String("deployment.environment", params.Environment),
		)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.WithField("exporter", params.Exporter).Info("tracing enabled")
	return provider.Shutdown, nil
}

// End records err on the span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
