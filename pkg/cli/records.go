package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

func recordsCommand() *cli.Command {
	var (
		cfg   config
		actor string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "actor",
			Usage:       "Only show records created by this user ID",
			Destination: &actor,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:      "records",
		Usage:     "List persisted records of a kind (transactions, notifications, ledger, qrcodes)",
		ArgsUsage: "<kind>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogging()

			kind := model.RecordKind(c.Args().First())
			if err := kind.Validate(); err != nil {
				return goerr.Wrap(err, "specify one of: transactions, notifications, ledger, qrcodes")
			}

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			var records []*model.Record
			if actor != "" {
				records, err = repo.ListByActor(ctx, kind, actor)
			} else {
				records, err = repo.List(ctx, kind)
			}
			if err != nil {
				return err
			}

			out := c.Root().Writer
			if len(records) == 0 {
				fmt.Fprintf(out, "No %s records found.\n", kind)
				return nil
			}

			for _, rec := range records {
				fmt.Fprintf(out, "%s  %s  %s  %s\n",
					rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.ID, rec.ActorID, rec.Data)
			}
			fmt.Fprintf(out, "\n%d record(s)\n", len(records))
			return nil
		},
	}
}
