package cli

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kisanmitra/kisanmitra/pkg/intent"
	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
	"github.com/kisanmitra/kisanmitra/pkg/utils/logging"
)

// config holds configuration values shared across commands
type config struct {
	logLevel string
	dataDir  string
	memory   bool
	triggers string

	// Acting user for CLI conversations
	userID       string
	userName     string
	userRole     string
	userLocation string
}

// globalFlags returns common flags with destinations in config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("KISANMITRA_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Aliases:     []string{"d"},
			Usage:       "Directory for the SQLite store",
			Value:       "data",
			Sources:     cli.EnvVars("KISANMITRA_DATA_DIR"),
			Destination: &cfg.dataDir,
		},
		&cli.BoolFlag{
			Name:        "memory",
			Usage:       "Use an in-memory store instead of SQLite (records are lost on exit)",
			Destination: &cfg.memory,
		},
		&cli.StringFlag{
			Name:        "triggers",
			Usage:       "Path to a YAML trigger table override",
			Sources:     cli.EnvVars("KISANMITRA_TRIGGERS"),
			Destination: &cfg.triggers,
		},
	}
}

// userFlags returns flags describing the acting user
func userFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "User identifier",
			Value:       "local-user",
			Destination: &cfg.userID,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "User display name",
			Value:       "Kisan",
			Destination: &cfg.userName,
		},
		&cli.StringFlag{
			Name:        "role",
			Aliases:     []string{"r"},
			Usage:       "User role (farmer, consumer, warehouse, admin)",
			Value:       "farmer",
			Destination: &cfg.userRole,
		},
		&cli.StringFlag{
			Name:        "location",
			Usage:       "User location for contextual defaults",
			Destination: &cfg.userLocation,
		},
	}
}

// setupLogging installs the configured default logger
func (cfg *config) setupLogging() {
	logging.SetDefault(logging.New(cfg.logLevel, os.Stderr))
}

// newRepository creates the configured durable store
func (cfg *config) newRepository() (repository.Repository, error) {
	if cfg.memory {
		return repository.NewMemory(), nil
	}

	repo, err := repository.NewSQLite(cfg.dataDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open store", goerr.V("data_dir", cfg.dataDir))
	}
	return repo, nil
}

// newClassifier creates the classifier, applying the trigger override
// file when one is configured
func (cfg *config) newClassifier() (*intent.Classifier, error) {
	if cfg.triggers == "" {
		return intent.NewClassifier(), nil
	}

	table, err := intent.LoadTriggers(cfg.triggers)
	if err != nil {
		return nil, err
	}
	return intent.NewClassifierWithTable(table), nil
}

// newUser builds the acting user's profile from flags
func (cfg *config) newUser() (*model.UserProfile, error) {
	role := model.Role(cfg.userRole)
	if err := role.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid role", goerr.V("role", cfg.userRole))
	}

	return &model.UserProfile{
		ID:       cfg.userID,
		Name:     cfg.userName,
		Role:     role,
		Location: cfg.userLocation,
	}, nil
}
