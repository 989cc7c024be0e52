package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/pktchain/filter"
)

func filtersCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "list the registered filter kinds and their options",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "text", Usage: "text, yaml or json"},
		},
		Action: func(c *cli.Context) error {
			return writeKinds(e.stdout, filter.DefaultRegistry().Kinds(), c.String("format"))
		},
	}
}

func writeKinds(w io.Writer, kinds []filter.Kind, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(kinds); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(kinds)
	case "text":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range kinds {
		fmt.Fprintf(tw, "%s\t%s\n", k.Name, k.Description)
		for _, o := range k.Options {
			fmt.Fprintf(tw, "  %s=<%s>\tdefault %q", o.Name, o.Type, o.Default)
			if o.Range != "" {
				fmt.Fprintf(tw, ", range %s", o.Range)
			}
			if o.Help != "" {
				fmt.Fprintf(tw, ", %s", o.Help)
			}
			fmt.Fprintln(tw)
		}
	}
	return tw.Flush()
}
