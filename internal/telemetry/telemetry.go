package telemetry

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the process-wide structured logger, set by InitTelemetry. It
// defaults to a no-op so packages can log before initialization (and tests
// stay quiet).
var Logger = zap.NewNop()

var tracerProvider *sdktrace.TracerProvider

// InitTelemetry sets up the zap logger and the OTLP trace exporter.
// Tracing is skipped when OTEL_EXPORTER_OTLP_ENDPOINT is not set.
func InitTelemetry(serviceName string) error {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	Logger = Logger.With(zap.String("service", serviceName))

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return nil
}

// Shutdown flushes pending spans and the logger.
func Shutdown(ctx context.Context) {
	if Logger != nil {
		Logger.Sync()
	}
	if tracerProvider != nil {
		tracerProvider.Shutdown(ctx)
	}
}

// TracingMiddleware opens a server span per request.
func TracingMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer("foundation-backend")
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
