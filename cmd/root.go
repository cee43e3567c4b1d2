package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/roostlogger/cmd/heatmap"
	"github.com/tphakala/roostlogger/cmd/report"
	"github.com/tphakala/roostlogger/cmd/tempmap"
	"github.com/tphakala/roostlogger/cmd/version"
	"github.com/tphakala/roostlogger/internal/buildinfo"
	"github.com/tphakala/roostlogger/internal/conf"
	"github.com/tphakala/roostlogger/internal/logger"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *conf.Context, build *buildinfo.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "roostlogger",
		Short: "RoostLogger bat activity charts",
		Long: `Render bat detection logs and Anabat recording folders from a RoostLogger
as activity heatmaps, nightly activity reports and temperature maps.`,
		SilenceUsage: true,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, ctx)

	versionCmd := version.Command(build)
	subcommands := []*cobra.Command{
		heatmap.Command(ctx),
		report.Command(ctx),
		tempmap.Command(ctx),
		versionCmd,
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Skip setup for the version command
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		// Flags of the command being run take precedence over the config file
		if err := ctx.Load(cmd.Flags()); err != nil {
			return err
		}
		return initialize(ctx.Settings)
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return logger.Global().Close()
	}

	return rootCmd
}

// initialize replaces the fallback console logger with one built from settings
func initialize(settings *conf.Settings) error {
	cfg := &logger.LoggingConfig{
		DefaultLevel: logger.DefaultLogLevel,
		Timezone:     settings.Timezone,
	}
	if settings.Debug {
		cfg.DefaultLevel = string(logger.LogLevelDebug)
	}
	if settings.Log.Path != "" {
		cfg.FileOutput = &logger.FileOutput{Enabled: true, Path: settings.Log.Path}
	}

	cl, err := logger.NewCentralLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger.SetGlobal(cl)
	return nil
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, ctx *conf.Context) {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.ConfigFile, "config", "c", "", "Path to a YAML config file")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.String("timezone", conf.DefaultTimezoneName, "Time zone of logged timestamps: Local, UTC or an IANA name")
	flags.Float64("latitude", 0, "Roost latitude for the sunset and sunrise overlay")
	flags.Float64("longitude", 0, "Roost longitude for the sunset and sunrise overlay")
	flags.String("log-file", "", "Also write JSON logs to this file")

	conf.BindFlag(flags, "debug", "debug")
	conf.BindFlag(flags, "timezone", "timezone")
	conf.BindFlag(flags, "latitude", "location.latitude")
	conf.BindFlag(flags, "longitude", "location.longitude")
	conf.BindFlag(flags, "log-file", "log.path")
}
