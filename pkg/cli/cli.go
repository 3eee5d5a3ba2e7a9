package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "kisanmitra",
		Usage: "Conversational assistant engine for the KisanMitra marketplace",
		Commands: []*cli.Command{
			chatCommand(),
			serveCommand(),
			recordsCommand(),
			triggersCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
