package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kisanmitra/kisanmitra/pkg/intent"
)

func triggersCommand() *cli.Command {
	return &cli.Command{
		Name:      "triggers",
		Usage:     "Validate a YAML trigger table override and show its contents",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()

			var (
				table []intent.TriggerEntry
				err   error
			)
			if path == "" {
				table = intent.DefaultTable()
			} else {
				table, err = intent.LoadTriggers(path)
				if err != nil {
					return goerr.Wrap(err, "trigger file is invalid")
				}
			}

			out := c.Root().Writer
			for _, entry := range table {
				fmt.Fprintf(out, "%s (%d phrases)\n", entry.Function, len(entry.Phrases))
				for _, p := range entry.Phrases {
					fmt.Fprintf(out, "    %.2f  %q\n", p.Weight, p.Text)
				}
			}
			fmt.Fprintf(out, "\n%d function(s)\n", len(table))
			return nil
		},
	}
}
