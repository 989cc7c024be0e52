// Command pktchain runs packet filter chains from the command line and
// serves them over HTTP.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kbukum/pktchain/config"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/version"
)

const serviceName = "pktchain"

// env is the state shared by all commands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	cfg    config.Config
	log    *logger.Logger
}

func main() {
	e := &env{stdin: os.Stdin, stdout: os.Stdout}
	if err := newApp(e).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pktchain:", err)
		os.Exit(1)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      serviceName,
		Usage:     "run packet filter chains",
		Version:   version.Get().String(),
		Writer:    e.stdout,
		Reader:    e.stdin,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (default: search config.yml)"},
			&cli.StringFlag{Name: "env-file", Usage: "env file (default: search .env)"},
			&cli.StringFlag{Name: "log-level", Usage: "override logging.level"},
		},
		Before: e.load,
		Commands: []*cli.Command{
			runCmd(e),
			filtersCmd(e),
			serveCmd(e),
		},
	}
}

// load reads the configuration and initialises logging.
func (e *env) load(c *cli.Context) error {
	var opts []config.LoaderOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if path := c.String("env-file"); path != "" {
		opts = append(opts, config.WithEnvFile(path))
	}

	e.cfg = config.Defaults()
	if err := config.LoadConfig(serviceName, &e.cfg, opts...); err != nil {
		return err
	}
	if lvl := c.String("log-level"); lvl != "" {
		e.cfg.Logging.Level = lvl
	}
	e.cfg.ApplyDefaults()
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	logger.Init(e.cfg.Logging)
	e.log = logger.GetGlobalLogger()
	return nil
}
