package main

import (
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/progress_curve/pkg/config"
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(renderCmd, serveCmd, tuiCmd, validateCmd, convertCmd, exportCmd, versionCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./.pcurve.yaml or $HOME/.pcurve.yaml)")
	rootCmd.PersistentFlags().StringP("dataset", "d", "", "dataset path (default: projects.* in the working directory)")
	rootCmd.PersistentFlags().String("dataset-format", "", "dataset format, overriding the extension (jsonl, json, yaml, csv, sqlite)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress status output")

	addChartFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", config.DefaultOutput, "output file")

	serveCmd.Flags().IntP("port", "p", 0, "port to serve on (0 picks a free one)")
	serveCmd.Flags().Bool("open", true, "open the preview in a browser")
	addWatchFlags(serveCmd)

	tuiCmd.Flags().StringP("output", "o", config.DefaultOutput, "directory of this path receives exported snapshots")
	tuiCmd.Flags().String("log-file", "", "write logs to this file while the terminal view runs")
	addWatchFlags(tuiCmd)

	convertCmd.Flags().String("to", "", "output format (default: from the output extension)")

	addChartFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", config.DefaultOutput, "output file")
	exportCmd.Flags().BoolP("interactive", "i", false, "ask for the export settings")

	versionCmd.Flags().Bool("check", false, "check for a newer release")
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("width", "w", config.DefaultWidth, "container width in pixels")
	cmd.Flags().StringP("format", "f", "", "output format: svg, png or all (default: from the extension)")
	cmd.Flags().String("hover", "", "show the tooltip of this project")
}

func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("watch", true, "reload the dataset when it changes")
	cmd.Flags().Bool("poll", false, "poll the dataset instead of using file notifications")
	cmd.Flags().Duration("poll-interval", config.Default().PollInterval, "polling interval")
	cmd.Flags().Duration("debounce", config.Default().Debounce, "debounce window for resizes and file changes")
}
