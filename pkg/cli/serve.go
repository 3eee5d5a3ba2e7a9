package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kisanmitra/kisanmitra/pkg/server"
	"github.com/kisanmitra/kisanmitra/pkg/utils/logging"
)

func serveCommand() *cli.Command {
	var (
		cfg  config
		addr string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("KISANMITRA_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the engine API over HTTP for the conversation UI",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogging()
			logger := logging.Default()

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			classifier, err := cfg.newClassifier()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr: addr,
				Handler: server.New(server.Deps{
					Repo:       repo,
					Classifier: classifier,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shut down server")
				}
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return goerr.Wrap(err, "server failed")
			}
		},
	}
}
