package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/kbukum/pktchain/descriptor"
	"github.com/kbukum/pktchain/filter"
	"github.com/kbukum/pktchain/httpapi"
	"github.com/kbukum/pktchain/logger"
)

func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "override server.addr"},
			&cli.StringFlag{Name: "chain-file", Usage: "YAML chain catalog (overrides chain.catalog)"},
		},
		Action: e.serve,
	}
}

func (e *env) serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !e.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics, shutdown, err := setupTelemetry(ctx, &e.cfg)
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	srvCfg := e.cfg.Server
	if addr := c.String("addr"); addr != "" {
		srvCfg.Addr = addr
	}

	var opts []httpapi.Option
	if metrics != nil {
		opts = append(opts, httpapi.WithMetrics(metrics))
	}
	path := e.cfg.Chain.Catalog
	if c.IsSet("chain-file") {
		path = c.String("chain-file")
	}
	if path != "" {
		cat, err := descriptor.LoadCatalog(path)
		if err != nil {
			return err
		}
		opts = append(opts, httpapi.WithCatalog(cat))
		e.log.Info("catalog loaded", logger.Fields("path", path, "chains", len(cat.Chains)))
	}

	return httpapi.New(srvCfg, filter.DefaultRegistry(), e.log, opts...).ListenAndServe(ctx)
}
