package main

import (
	"fmt"
	"time"

	"meridian/internal/core/equivalence"
	"meridian/internal/core/model"
	"meridian/internal/core/wallclock"
	"meridian/internal/core/worldclock"
	"meridian/internal/core/zone"
	"meridian/internal/platform"
	"meridian/internal/storage"
	"meridian/resources"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "Meridian"

// commandDeps lets tests replace host lookups.
type commandDeps struct {
	Clock worldclock.Clock
	Zones zone.Source
}

type rootOptions struct {
	verbose    bool
	configPath string
	localZone  string
}

// environment is built once per invocation before any subcommand runs.
type environment struct {
	config    model.ClockConfig
	logger    *zap.Logger
	localZone string
	catalog   *zone.Catalog
	formatter *wallclock.Formatter
	index     *equivalence.Index
	clock     worldclock.Clock
}

func newRootCommand(deps commandDeps) *cobra.Command {
	options := &rootOptions{}
	env := &environment{}

	rootCmd := &cobra.Command{
		Use:   "tzclock",
		Short: "World clock for the terminal",
		Long: `tzclock shows the current time across timezones and lists the zones
whose wall clock currently reads the same as a given zone.

Examples:

  # List every zone the host knows about, filtered by name:
  $ tzclock zones europe

  # Zones showing the same time as London right now:
  $ tzclock neighbors Europe/London

  # Same question for a given instant, capped at five names:
  $ tzclock neighbors Asia/Tokyo --at 2024-07-15T12:00:00Z --limit 5

  # Live view of the configured zones (Ctrl+C to exit):
  $ tzclock watch America/New_York Asia/Kolkata`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.init(options, deps)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.logger != nil {
				_ = env.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "config file (default <user config dir>/Meridian/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&options.localZone, "local", "", "override the detected local timezone")

	rootCmd.AddCommand(
		newZonesCommand(env),
		newNeighborsCommand(env),
		newWatchCommand(env),
	)

	return rootCmd
}

func (env *environment) init(options *rootOptions, deps commandDeps) error {
	logger, err := newLogger(options.verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	env.logger = logger

	if options.configPath != "" {
		env.config, err = storage.LoadConfigFrom(options.configPath)
	} else {
		env.config, err = storage.LoadConfig(appName)
	}
	if err != nil {
		logger.Warn("config unreadable, using defaults", zap.Error(err))
	}

	table, err := resources.RegionTable()
	if err != nil {
		logger.Warn("region table unavailable", zap.Error(err))
	}

	env.localZone = options.localZone
	if env.localZone == "" {
		env.localZone = platform.SystemZone()
	}

	source := deps.Zones
	if source == nil {
		source = zone.FirstAvailable(platform.NewZoneSource(), resources.ZoneSource())
	}
	env.catalog = zone.Load(source, env.localZone, table, logger)
	env.formatter = wallclock.NewFormatter(zone.NewResolver(), env.config.Night)
	env.index = equivalence.New(env.formatter)

	env.clock = deps.Clock
	if env.clock == nil {
		env.clock = worldclock.SystemClock{}
	}

	logger.Debug("environment ready",
		zap.String("local_zone", env.localZone),
		zap.Int("zones", env.catalog.Len()))
	return nil
}

// instant parses an RFC 3339 --at value, defaulting to the current time.
func (env *environment) instant(at string) (time.Time, error) {
	if at == "" {
		return env.clock.Now(), nil
	}
	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --at %q: %w", at, err)
	}
	return parsed, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	productionConfig := zap.NewProductionConfig()
	productionConfig.Encoding = "console"
	productionConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return productionConfig.Build()
}
