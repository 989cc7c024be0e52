package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/observability"
	"github.com/kbukum/pktchain/packet"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		lines = append(lines, m)
	}
	return lines
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	f := WithLogging(mustConcat(t, "2"), log, 1)
	if f.Name() != ConcatName {
		t.Errorf("expected wrapped name, got %s", f.Name())
	}
	assertStrings(t, process(t, f, "a", "b", "c"), []string{"ab", "c"})
	f.Pull()

	lines := logLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected only the drain to be logged, got %v", lines)
	}
	if lines[0]["message"] != "filter drained" || lines[0]["level"] != "debug" {
		t.Errorf("unexpected entry: %v", lines[0])
	}
	if lines[0][logger.FieldFilter] != ConcatName || lines[0][logger.FieldPackets] != float64(2) {
		t.Errorf("missing fields: %v", lines[0])
	}
}

func TestWithLogging_Errors(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "test", &buf)

	c := newConcat(ConcatConfig{Nr: 2})
	c.limit = 1
	f := WithLogging(c, log, 0)

	if _, err := Process(f, packet.FromStrings("ab")); !errors.HasCode(err, errors.ErrCodeAllocationFailure) {
		t.Fatalf("expected ALLOCATION_FAILURE, got %v", err)
	}

	lines := logLines(t, &buf)
	if len(lines) != 1 || lines[0]["level"] != "error" || lines[0]["message"] != "pull failed" {
		t.Fatalf("expected one error entry, got %v", lines)
	}
}

func TestWithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	chain := NewChain(
		WithMetrics(ctx, mustTok(t, nil), metrics, 0),
		WithMetrics(ctx, mustConcat(t, "2"), metrics, 1),
	)
	assertStrings(t, process(t, chain, "a,b,c"), []string{"ab", "c[flush]"})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatal(err)
	}
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}

	// tok: 1 in, 4 out; concat: 4 in, 2 out.
	if totals[observability.MetricPacketsIn] != 5 {
		t.Errorf("expected 5 packets in, got %d", totals[observability.MetricPacketsIn])
	}
	if totals[observability.MetricPacketsOut] != 6 {
		t.Errorf("expected 6 packets out, got %d", totals[observability.MetricPacketsOut])
	}
	if totals[observability.MetricFilterErrors] != 0 {
		t.Errorf("expected no errors, got %d", totals[observability.MetricFilterErrors])
	}
}
