package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"

	"crmchat/internal/core/port"
	"crmchat/internal/core/telemetry"
	"crmchat/pkg/config"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	MetricsPort    string
	// OTLPEndpoint is a host:port for the gRPC exporter. Empty keeps spans
	// in process.
	OTLPEndpoint string
}

func ConfigFrom(cfg *config.AppConfig) Config {
	return Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	}
}

type Container struct {
	TracerProvider     *sdktrace.TracerProvider
	MeterProvider      *sdkmetric.MeterProvider
	PrometheusRegistry *prometheus.Registry
	MetricsServer      *http.Server
	AppMetrics         *telemetry.AppMetrics
	logger             *config.LokiLogger
}

// NewContainer installs the global tracer and meter providers and builds
// the Prometheus registry. Call Start to expose /metrics.
func NewContainer(ctx context.Context, cfg Config, logger *config.LokiLogger) (*Container, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentKey.String(cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := telemetry.NewAppMetrics(registry)

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	traceOptions := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if cfg.OTLPEndpoint != "" {
		otlpExporter, err := otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)

		if err != nil {
			return nil, err
		}

		traceOptions = append(traceOptions, sdktrace.WithBatcher(otlpExporter,
			sdktrace.WithBatchTimeout(time.Second),
		))
	}

	tracerProvider := sdktrace.NewTracerProvider(traceOptions...)
	otel.SetTracerProvider(tracerProvider)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second)); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return &Container{
		TracerProvider:     tracerProvider,
		MeterProvider:      meterProvider,
		PrometheusRegistry: registry,
		MetricsServer: &http.Server{
			Addr:         ":" + cfg.MetricsPort,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		AppMetrics: appMetrics,
		logger:     logger,
	}, nil
}

// Start serves /metrics in the background.
func (c *Container) Start() {
	go func() {
		if err := c.MetricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Logger.Error("Failed to start metrics server", zap.Error(err))
		}
	}()
}

func (c *Container) Shutdown(ctx context.Context) error {
	return errors.Join(
		c.TracerProvider.Shutdown(ctx),
		c.MeterProvider.Shutdown(ctx),
		c.MetricsServer.Shutdown(ctx),
	)
}

func (c *Container) NewTelemetryProbe() port.Telemetry {
	return telemetry.NewOTELProbe(c.logger, c.AppMetrics)
}
