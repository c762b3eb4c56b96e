// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/grooverider"
	"github.com/ik5/grooverider/config"
	"github.com/ik5/grooverider/internal/logging"
)

type globalFlags struct {
	configPath string
	logLevel   string
	quiet      bool
}

// app is what every subcommand needs once flags are parsed.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	bars     *progressBars
	pipeline *grooverider.Pipeline
	out      io.Writer
}

func (a *app) close() {
	a.bars.wait()
	_ = a.log.Sync()
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "grooverider",
		Short:         "Cut audio into 3D-printable records and play them back",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"YAML settings file; built-in defaults when empty")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"debug, info, warn or error; overrides the settings file")
	root.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false,
		"hide progress bars")

	root.AddCommand(
		newCutCmd(&flags),
		newExtractCmd(&flags),
		newCompareCmd(&flags),
	)

	return root
}

func setup(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	bars := newProgressBars(cmd.ErrOrStderr(), flags.quiet)

	p, err := grooverider.New(*cfg,
		grooverider.WithLogger(log),
		grooverider.WithProgress(bars.report),
	)
	if err != nil {
		bars.wait()
		return nil, err
	}

	log.Debug("configuration loaded",
		zap.String("path", flags.configPath),
		zap.Float64("rpm", cfg.AudioProcessing.RPM),
		zap.Int("sample_rate", cfg.AudioProcessing.SampleRate))

	return &app{cfg: cfg, log: log, bars: bars, pipeline: p, out: cmd.OutOrStdout()}, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
