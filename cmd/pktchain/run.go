package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kbukum/pktchain/descriptor"
	"github.com/kbukum/pktchain/filter"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/observability"
	"github.com/kbukum/pktchain/packet"
	"github.com/kbukum/pktchain/pipeline"
)

func runCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "push packets through a chain and print the output",
		ArgsUsage: "[PACKET...]",
		Description: "Packets are taken from the arguments, or read from stdin and split on --sep.\n" +
			"Each output packet is printed as \"data\", on a single line.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "chain", Usage: "chain descriptor, e.g. tok,concat"},
			&cli.StringFlag{Name: "chain-file", Usage: "YAML chain catalog"},
			&cli.StringFlag{Name: "name", Usage: "catalog chain to run"},
			&cli.StringFlag{Name: "sep", Usage: "stdin packet separator (Go escapes allowed)"},
			&cli.BoolFlag{Name: "skip-empty", Usage: "drop empty input packets"},
		},
		Action: e.run,
	}
}

func (e *env) run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, shutdown, err := setupTelemetry(ctx, &e.cfg)
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	desc, err := e.selectDescriptor(c)
	if err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanChainRun)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrDescriptor, desc)

	opts := []descriptor.BuildOption{descriptor.WithLogger(e.log)}
	if metrics != nil {
		opts = append(opts, descriptor.WithMetrics(ctx, metrics))
	}
	chain, err := descriptor.Build(desc, filter.DefaultRegistry(), opts...)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}

	var src *pipeline.Pipeline[*packet.Packet]
	if c.Args().Present() {
		src = pipeline.FromSlice(packet.FromStrings(c.Args().Slice()...))
	} else {
		sep := e.cfg.Chain.Separator
		if c.IsSet("sep") {
			sep = parseSeparator(c.String("sep"))
		}
		src = pipeline.FromReader(e.stdin, sep)
	}
	if c.Bool("skip-empty") {
		src = pipeline.Where(src, func(p *packet.Packet) bool { return p.Len() > 0 })
	}
	consumed := 0
	src = pipeline.Tap(src, func(context.Context, *packet.Packet) error {
		consumed++
		return nil
	})

	start := time.Now()
	n, err := writePackets(ctx, e.stdout, pipeline.Apply(src, chain))
	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
	}
	if metrics != nil {
		metrics.RecordRun(ctx, status, time.Since(start))
	}
	observability.SetSpanAttribute(ctx, observability.AttrPackets, n)
	e.log.Debug("run finished", logger.Fields(
		logger.FieldDescriptor, desc,
		"consumed", consumed,
		logger.FieldPackets, n,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return err
}

// selectDescriptor picks the chain to run: --chain, then --name from a
// catalog, then the configured default.
func (e *env) selectDescriptor(c *cli.Context) (string, error) {
	if c.IsSet("chain") {
		return c.String("chain"), nil
	}
	if name := c.String("name"); name != "" {
		path := c.String("chain-file")
		if path == "" {
			path = e.cfg.Chain.Catalog
		}
		if path == "" {
			return "", fmt.Errorf("--name %q needs --chain-file or chain.catalog", name)
		}
		cat, err := descriptor.LoadCatalog(path)
		if err != nil {
			return "", err
		}
		return cat.Descriptor(name)
	}
	return e.cfg.Chain.Descriptor, nil
}

// writePackets prints each packet as "data", and ends the line once the
// stream is drained. Output already written stays on error.
func writePackets(ctx context.Context, w io.Writer, p *pipeline.Pipeline[*packet.Packet]) (int, error) {
	n := 0
	err := pipeline.ForEach(ctx, p, func(_ context.Context, pkt *packet.Packet) error {
		n++
		_, err := fmt.Fprintf(w, "\"%s\",", pkt.Bytes())
		return err
	})
	fmt.Fprintln(w)
	return n, err
}

// parseSeparator interprets Go escapes such as \n or \t; anything that is
// not a valid quoted string body is used as is.
func parseSeparator(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}
