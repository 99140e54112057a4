package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dicklesworthstone/progress_curve/pkg/config"
	"github.com/Dicklesworthstone/progress_curve/pkg/loader"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/version"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg holds the validated, final configuration.
var cfg = &config.Config{}

// input holds the raw configuration from file, env and flags.
var input = &config.RawInput{}

// logger is configured by sharedSetup.
var logger = slog.Default()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "pcurve",
	Short: "Draw a project portfolio on a hype-cycle progress curve.",
	Long: `pcurve places every project of a portfolio on a stylised hype-cycle curve,
labels it without overlaps and renders the result as SVG, PNG, a live browser
preview or a terminal view.`,
	Version:            version.Version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".pcurve")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("PCURVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	defaults := config.Default()
	viper.SetDefault("width", defaults.Width)
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("open", defaults.OpenBrowser)
	viper.SetDefault("watch", defaults.Watch)
	viper.SetDefault("poll-interval", defaults.PollInterval)
	viper.SetDefault("debounce", defaults.Debounce)
	viper.SetDefault("log-level", config.DefaultLogLevel)
}

// sharedSetup binds the running command's flags, unmarshals config and
// validates it.
func sharedSetup(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := config.Process(cfg, input); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config file", "path", used)
	}
	return nil
}

// datasetPath resolves the dataset: an explicit argument, then the
// configured path, then a dataset discovered in the working directory. An
// empty result means the built-in portfolio.
func datasetPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg.Dataset != "" {
		return cfg.Dataset
	}
	if found, err := loader.FindDataset(""); err == nil {
		return found
	}
	return ""
}

// loadDataset reads the portfolio at path with the configured format.
func loadDataset(path string) ([]model.Project, error) {
	if path == "" {
		logger.Info("no dataset found, using the built-in portfolio")
		return model.DefaultProjects(), nil
	}
	if cfg.DatasetFormat != "" {
		return loader.LoadProjectsAs(path, cfg.DatasetFormat)
	}
	return loader.LoadProjects(path)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}
