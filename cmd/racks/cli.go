package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrecklessracks/racks/internal/bootstrap"
	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/logger"
)

type options struct {
	storage         string
	dbPath          string
	timezone        string
	logLevel        string
	startingBalance int64
}

// cli owns the services for one command invocation
type cli struct {
	opts options
	in   io.Reader
	out  io.Writer
	errw io.Writer

	repos    *bootstrap.Repositories
	services *bootstrap.Services
}

func newCLI(in io.Reader, out, errw io.Writer) *cli {
	return &cli{in: in, out: out, errw: errw}
}

func (c *cli) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "racks",
		Short:         "Play the Wreckless Racks casino from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context())
		},
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errw)

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.storage, "storage", config.StorageSQLite, "storage backend (sqlite or memory)")
	flags.StringVar(&c.opts.dbPath, "db", config.DefaultSQLitePath, "SQLite database file")
	flags.StringVar(&c.opts.timezone, "timezone", config.DefaultTimezone, "timezone for daily bonus days")
	flags.StringVar(&c.opts.logLevel, "log-level", "warn", "log level written to stderr")
	flags.Int64Var(&c.opts.startingBalance, "starting-balance", config.DefaultStartingBalance, "coins granted to new accounts")

	root.AddCommand(
		c.accountCmd(),
		c.playCmd(),
		c.bonusCmd(),
		c.tournamentCmd(),
		c.buyCmd(),
		c.statusCmd(),
		c.jackpotCmd(),
		c.deadLettersCmd(),
	)
	return root
}

// config builds the configuration from flags; the CLI never reads the server's environment
func (c *cli) config() (*config.Config, error) {
	storage := strings.ToLower(c.opts.storage)
	switch storage {
	case config.StorageSQLite, config.StorageMemory:
	default:
		return nil, fmt.Errorf("invalid --storage %q: want %s or %s", c.opts.storage, config.StorageSQLite, config.StorageMemory)
	}
	if _, err := time.LoadLocation(c.opts.timezone); err != nil {
		return nil, fmt.Errorf("invalid --timezone: %w", err)
	}

	return &config.Config{
		LogLevel:         c.opts.logLevel,
		LogFormat:        config.DefaultLogFormat,
		Environment:      config.DefaultEnvironment,
		ServiceName:      config.DefaultServiceName,
		Version:          config.DefaultVersion,
		StorageBackend:   storage,
		SQLitePath:       c.opts.dbPath,
		JackpotBackend:   config.JackpotBackendStore,
		StartingBalance:  c.opts.startingBalance,
		Timezone:         c.opts.timezone,
		SessionTTL:       config.DefaultSessionTTL,
		SessionCapacity:  config.DefaultSessionCapacity,
		JackpotSeed:      config.DefaultJackpotSeed,
		JackpotInitial:   config.DefaultJackpotInitial,
		JackpotIncrement: config.DefaultJackpotIncrease,
	}, nil
}

func (c *cli) open(ctx context.Context) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	logger.InitLoggerWithWriter(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false), c.errw)

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	services, err := bootstrap.InitializeServices(ctx, cfg, repos, nil)
	if err != nil {
		repos.Close()
		return fmt.Errorf("failed to start services: %w", err)
	}
	c.repos = repos
	c.services = services
	return nil
}

// close settles anything left open and releases storage
func (c *cli) close() {
	if c.repos == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	components := bootstrap.ShutdownComponents{Repositories: c.repos}
	if c.services != nil {
		components.Services = c.services.ShutdownOrder()
	}
	bootstrap.GracefulShutdown(ctx, components)
	c.repos = nil
	c.services = nil
}
