package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iafilius/MultiAxisChart/src/config"
	"github.com/iafilius/MultiAxisChart/src/dataset"
	"github.com/iafilius/MultiAxisChart/src/logging"
)

// cliOptions holds the flags shared by all commands. Zero values mean "not
// given"; config.Load supplies the defaults.
type cliOptions struct {
	envFile    string
	logLevel   string
	logFile    string
	dataFile   string
	demoPoints int
	width      int
	height     int
	area       string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "chartviewer",
		Short:         "Interactive multi-axis chart viewer",
		Long:          "Shows up to five series sharing one sample axis, each with its own vertical range.\nWithout a subcommand the interactive viewer is started.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.envFile, "env", "", "env file to load instead of ./.env")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&opts.logFile, "log-file", "", "also write logs to this rotating file")
	pf.StringVarP(&opts.dataFile, "file", "f", "", "series file (.csv, .xlsx, .jsonl); demo data when empty")
	pf.IntVar(&opts.demoPoints, "demo-points", 0, "length of the generated demo series")
	pf.IntVar(&opts.width, "width", 0, "window or image width in pixels")
	pf.IntVar(&opts.height, "height", 0, "window or image height in pixels")
	pf.StringVar(&opts.area, "area", "", "plot area as x,y,w,h fractions of the control")

	root.AddCommand(newViewCmd(opts), newShotCmd(opts))
	return root
}

func newViewCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive viewer window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}
}

func newShotCmd(opts *cliOptions) *cobra.Command {
	var (
		outDir string
		zoom   float64
		center float64
	)
	cmd := &cobra.Command{
		Use:   "shot",
		Short: "Render a set of PNG screenshots without opening a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			cols, source, err := loadColumns(cfg.DataFile, cfg.DemoPoints)
			if err != nil {
				return err
			}
			defer logging.TimeTrack(time.Now(), "screenshots")
			paths, err := RunScreenshots(cfg, cols, outDir, ShotOptions{Zoom: zoom, Center: center})
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			logging.Infof("wrote %d screenshots of %s to %s", len(paths), source, outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "screenshots", "output directory")
	cmd.Flags().Float64Var(&zoom, "zoom", 4, "horizontal zoom of the zoomed screenshot")
	cmd.Flags().Float64Var(&center, "center", 0.5, "plot fraction the zoom is anchored at")
	return cmd
}

func runView(cmd *cobra.Command, opts *cliOptions) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	return runViewer(cfg)
}

// resolveConfig loads the environment configuration, applies the flags that
// were set explicitly and configures logging.
func resolveConfig(cmd *cobra.Command, opts *cliOptions) (config.Config, error) {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("file") {
		cfg.DataFile = opts.dataFile
	}
	if flags.Changed("demo-points") {
		cfg.DemoPoints = opts.demoPoints
	}
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Height = opts.height
	}
	if flags.Changed("area") {
		a, err := config.ParseArea(opts.area)
		if err != nil {
			return config.Config{}, errors.Wrap(err, "--area")
		}
		cfg.Area = a
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if err := logging.Configure(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadColumns reads path, or generates demo series when path is empty. The
// returned source names what was loaded for logs and the window title.
func loadColumns(path string, demoPoints int) ([]dataset.Column, string, error) {
	if path == "" {
		return dataset.Demo(demoPoints), "demo data", nil
	}
	cols, err := dataset.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cols, filepath.Base(path), nil
}
