package main

import (
	"context"

	"github.com/kbukum/pktchain/config"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/observability"
	"github.com/kbukum/pktchain/version"
)

// setupTelemetry starts the OTLP meter and tracer providers when telemetry
// is enabled. The returned metrics are nil otherwise. shutdown is never nil.
func setupTelemetry(ctx context.Context, cfg *config.Config) (*observability.Metrics, func(context.Context), error) {
	noop := func(context.Context) {}
	if !cfg.Telemetry.Enabled {
		return nil, noop, nil
	}

	mc := observability.DefaultMeterConfig(cfg.Name)
	mc.ServiceVersion = version.Version
	mc.Environment = cfg.Environment
	mc.Endpoint = cfg.Telemetry.Endpoint
	mc.Insecure = cfg.Telemetry.Insecure
	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		return nil, noop, err
	}

	tc := observability.DefaultTracerConfig(cfg.Name)
	tc.ServiceVersion = version.Version
	tc.Environment = cfg.Environment
	tc.Endpoint = cfg.Telemetry.Endpoint
	tc.Insecure = cfg.Telemetry.Insecure
	tc.SampleRate = cfg.Telemetry.SampleRate
	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, noop, err
	}

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, noop, err
	}

	return metrics, func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("tracer shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn("meter shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}, nil
}
