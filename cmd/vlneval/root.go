package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayshrv/visitron/config"
)

// flags shared by every subcommand; applied over the config file when set.
type rootFlags struct {
	configPath      string
	errorMargin     float64
	dataset         string
	pathType        string
	splits          []string
	dataRoot        string
	connectivityDir string
	workers         int
	mode            string
	logLevel        string
	logJSON         bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "vlneval",
		Short:         "Score navigation trajectories against ground-truth routes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	pf.Float64Var(&f.errorMargin, "error-margin", 0, "success radius in meters")
	pf.StringVar(&f.dataset, "dataset", "", "dataset: NDH, CVDN, R2R or R4R")
	pf.StringVar(&f.pathType, "path-type", "", "reference path: planner_path, player_path, trusted_path or path")
	pf.StringSliceVar(&f.splits, "splits", nil, "ground-truth splits to load")
	pf.StringVar(&f.dataRoot, "data-root", "", "directory holding the dataset folders")
	pf.StringVar(&f.connectivityDir, "connectivity-dir", "", "directory holding <scan>_connectivity.json files")
	pf.IntVar(&f.workers, "workers", 0, "concurrent workers (0 = GOMAXPROCS)")
	pf.StringVar(&f.mode, "mode", "", "failure mode: strict or permissive")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&f.logJSON, "log-json", false, "emit JSON logs")

	root.AddCommand(newScoreCmd(f), newServeCmd(f), newConfigCmd(f))

	return root
}

// load reads the config file, applies changed flags and validates.
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("error-margin") {
		cfg.ErrorMargin = f.errorMargin
	}
	if changed("dataset") {
		cfg.Dataset = f.dataset
	}
	if changed("path-type") {
		cfg.PathType = f.pathType
	}
	if changed("splits") {
		cfg.Splits = f.splits
	}
	if changed("data-root") {
		cfg.DataRoot = f.dataRoot
	}
	if changed("connectivity-dir") {
		cfg.ConnectivityDir = f.connectivityDir
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("mode") {
		cfg.Mode = f.mode
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-json") {
		cfg.Log.JSON = f.logJSON
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// newLogger builds the process logger writing to w.
func newLogger(c config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if c.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With("service", "vlneval")
}

func newConfigCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))

			return err
		},
	}
}
