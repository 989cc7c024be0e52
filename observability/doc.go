// Package observability provides OpenTelemetry tracing and metrics for
// filter chains.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("pktchain"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanChainRun)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("pktchain"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("pktchain"))
//	metrics.RecordPacketOut(ctx, "tok", 0, pkt.Len())
//
// Health:
//
//	health := observability.NewServiceHealth("pktchain", version.Version)
package observability
