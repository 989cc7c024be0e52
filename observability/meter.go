package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/pktchain/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricPacketsIn    = "pktchain.packets.in"
	MetricPacketsOut   = "pktchain.packets.out"
	MetricPacketSize   = "pktchain.packet.size"
	MetricFilterErrors = "pktchain.filter.errors"
	MetricRuns         = "pktchain.runs"
	MetricRunDuration  = "pktchain.run.duration"
)

// Metrics holds OpenTelemetry instruments for packet flow through filters.
type Metrics struct {
	packetsIn    metric.Int64Counter
	packetsOut   metric.Int64Counter
	packetSize   metric.Int64Histogram
	filterErrors metric.Int64Counter
	runs         metric.Int64Counter
	runDuration  metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	packetsIn, err := meter.Int64Counter(MetricPacketsIn,
		metric.WithDescription("Packets pushed into a filter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricPacketsIn, err)
	}

	packetsOut, err := meter.Int64Counter(MetricPacketsOut,
		metric.WithDescription("Packets produced by a filter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricPacketsOut, err)
	}

	packetSize, err := meter.Int64Histogram(MetricPacketSize,
		metric.WithDescription("Size of produced packets"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricPacketSize, err)
	}

	filterErrors, err := meter.Int64Counter(MetricFilterErrors,
		metric.WithDescription("Filter processing errors"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFilterErrors, err)
	}

	runs, err := meter.Int64Counter(MetricRuns,
		metric.WithDescription("Completed chain runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRuns, err)
	}

	runDuration, err := meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Duration of chain runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}

	return &Metrics{
		packetsIn:    packetsIn,
		packetsOut:   packetsOut,
		packetSize:   packetSize,
		filterErrors: filterErrors,
		runs:         runs,
		runDuration:  runDuration,
	}, nil
}

func stageAttrs(filter string, stage int) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String(AttrFilter, filter),
		attribute.Int(AttrStage, stage),
	)
}

// RecordPacketIn records a packet pushed into a filter.
func (m *Metrics) RecordPacketIn(ctx context.Context, filter string, stage int) {
	m.packetsIn.Add(ctx, 1, stageAttrs(filter, stage))
}

// RecordPacketOut records a packet produced by a filter.
func (m *Metrics) RecordPacketOut(ctx context.Context, filter string, stage, size int) {
	attrs := stageAttrs(filter, stage)
	m.packetsOut.Add(ctx, 1, attrs)
	m.packetSize.Record(ctx, int64(size), attrs)
}

// RecordError records a processing error by filter and error code.
func (m *Metrics) RecordError(ctx context.Context, filter string, stage int, code string) {
	m.filterErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrFilter, filter),
		attribute.Int(AttrStage, stage),
		attribute.String(AttrErrorCode, code),
	))
}

// RecordRun records a completed chain run.
func (m *Metrics) RecordRun(ctx context.Context, status string, duration time.Duration) {
	m.runs.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
	m.runDuration.Record(ctx, duration.Seconds())
}
