package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/usecase/chat"
)

func chatCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, userFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive conversation with the assistant",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogging()

			user, err := cfg.newUser()
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			classifier, err := cfg.newClassifier()
			if err != nil {
				return err
			}

			session, err := chat.New(chat.NewInput{
				User:       user,
				Repo:       repo,
				Classifier: classifier,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create chat session")
			}

			rl, err := readline.New("you> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			out := c.Root().Writer
			fmt.Fprintf(out, "Chatting as %s (%s). Type 'exit' to quit.\n", user.Name, user.Role)

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				message := strings.TrimSpace(line)
				if message == "" {
					continue
				}
				if message == "exit" || message == "quit" {
					break
				}

				resp := session.Respond(ctx, message)
				if resp.Type == model.ChatResponseMessage {
					fmt.Fprintf(out, "bot> %s\n", resp.Content)
					continue
				}

				// Function call: show progress while the handler runs
				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " " + strings.ReplaceAll(string(resp.Function), "_", " ") + "..."
				sp.Start()
				result := session.Execute(ctx, resp.Function, resp.Params)
				sp.Stop()

				fmt.Fprintf(out, "bot> %s\n", result.Message)
			}

			fmt.Fprintf(out, "\nGoodbye!\n")
			return nil
		},
	}
}
