// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/playcover/internal/config"
	"github.com/tomtom215/playcover/internal/logging"
)

// app holds state shared by subcommands, populated in PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "playcover",
		Short:         "Track which parts of media were actually watched",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newReplayCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.LoadWithKoanf()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	logCfg := cfg.LoggingInit()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	a.cfg = cfg
	return nil
}
