// Playcover - Playback Coverage Tracking for Media Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playcover

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/tomtom215/playcover/internal/config"
	"github.com/tomtom215/playcover/internal/logging"
	"github.com/tomtom215/playcover/internal/playerevent"
	"github.com/tomtom215/playcover/internal/session"
)

type replayFlags struct {
	buckets        int
	dwellThreshold int
	maxLineBytes   int
	stopOnError    bool
	viaRouter      bool
	compact        bool
	metricsPath    string
}

type replayReport struct {
	Stats    playerevent.ReplayStats `json:"stats"`
	Sessions []session.Snapshot      `json:"sessions"`
}

func newReplayCmd(a *app) *cobra.Command {
	f := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay [file|-]",
		Short: "Replay a newline-delimited JSON player event log",
		Long: `Replay reads player events, one JSON object per line, and prints the final
coverage snapshot of every session as JSON. Reads standard input when no file
is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runReplay(cmd, a, f, path)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.buckets, "buckets", 0, "override heatmap bucket count")
	flags.IntVar(&f.dwellThreshold, "dwell-threshold", 0, "override heatmap dwell threshold")
	flags.IntVar(&f.maxLineBytes, "max-line-bytes", 0, "override the longest accepted event line")
	flags.BoolVar(&f.stopOnError, "stop-on-error", false, "abort at the first malformed event")
	flags.BoolVar(&f.viaRouter, "via-router", false, "deliver events through an in-process Watermill router")
	flags.BoolVar(&f.compact, "compact", false, "print compact JSON")
	flags.StringVar(&f.metricsPath, "metrics", "", `write Prometheus metrics in text format to this file after the replay ("-" for stderr)`)
	return cmd
}

// effectiveConfig applies the replay flags that were set on top of a copy of
// the loaded configuration. The shared config is left untouched.
func effectiveConfig(cmd *cobra.Command, a *app, f *replayFlags) (config.Config, error) {
	cfg := *a.cfg
	flags := cmd.Flags()
	if flags.Changed("buckets") {
		cfg.Heatmap.Buckets = f.buckets
	}
	if flags.Changed("dwell-threshold") {
		cfg.Heatmap.DwellThreshold = f.dwellThreshold
	}
	if flags.Changed("max-line-bytes") {
		cfg.Replay.MaxLineBytes = f.maxLineBytes
	}
	if flags.Changed("stop-on-error") {
		cfg.Replay.StopOnError = f.stopOnError
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid replay options: %w", err)
	}
	return cfg, nil
}

func runReplay(cmd *cobra.Command, a *app, f *replayFlags, path string) error {
	cfg, err := effectiveConfig(cmd, a, f)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer closeIn()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.ContextWithNewCorrelationID(ctx)

	logging.Info().
		Str("input", path).
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Bool("via_router", f.viaRouter).
		Msg("Replay starting")
	logging.Debug().
		Int("buckets", cfg.Heatmap.Buckets).
		Int("dwell_threshold", cfg.Heatmap.DwellThreshold).
		Int("max_line_bytes", cfg.Replay.MaxLineBytes).
		Bool("stop_on_error", cfg.Replay.StopOnError).
		Msg("Effective replay configuration")

	logger := logging.WithComponent("replay")
	consumer := playerevent.NewConsumer(cfg.TrackerConfig(), logging.Logger())
	opts := playerevent.ReplayOptions{
		MaxLineBytes: cfg.Replay.MaxLineBytes,
		StopOnError:  cfg.Replay.StopOnError,
		Logger:       logger,
	}

	var stats playerevent.ReplayStats
	if f.viaRouter {
		stats, err = replayViaRouter(ctx, in, opts, consumer)
	} else {
		stats, err = playerevent.Replay(ctx, in, opts, consumer.Process)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	report := replayReport{Stats: stats, Sessions: consumer.CloseAll()}
	logger.Info().
		Int("lines", stats.Lines).
		Int("events", stats.Events).
		Int("skipped", stats.Skipped).
		Int("sessions", len(report.Sessions)).
		Msg("Replay complete")

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !f.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if f.metricsPath != "" {
		if err := dumpMetrics(cmd, f.metricsPath); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// dumpMetrics writes every registered collector in the Prometheus text
// exposition format. "-" writes to the command's stderr, leaving stdout to
// the JSON report.
func dumpMetrics(cmd *cobra.Command, path string) (err error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather: %w", err)
	}

	var w io.Writer
	if path == "-" {
		w = cmd.ErrOrStderr()
	} else {
		f, createErr := os.Create(path) //nolint:gosec // G304: path is the operator-supplied metrics file
		if createErr != nil {
			return createErr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// replayViaRouter publishes each replayed event to an in-process pub/sub and
// lets the consumer receive it from a Watermill router. Publishing blocks until
// the consumer acknowledges, so events keep their file order.
//
//nolint:gocritic // options carry a zerolog.Logger by value
func replayViaRouter(ctx context.Context, in io.Reader, opts playerevent.ReplayOptions, consumer *playerevent.Consumer) (playerevent.ReplayStats, error) {
	wmLogger := playerevent.NewZerologAdapter(logging.WithComponent("watermill"))
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, wmLogger)
	defer pubSub.Close()

	routerCfg := playerevent.DefaultRouterConfig()
	router, err := playerevent.NewRouter(routerCfg, pubSub, consumer, wmLogger)
	if err != nil {
		return playerevent.ReplayStats{}, err
	}

	runErr := make(chan error, 1)
	go func() { runErr <- router.Run(ctx) }()

	select {
	case <-router.Running():
	case err := <-runErr:
		return playerevent.ReplayStats{}, fmt.Errorf("start router: %w", err)
	}

	stats, replayErr := playerevent.Replay(ctx, in, opts, func(_ context.Context, e *playerevent.Event) error {
		return playerevent.Publish(pubSub, routerCfg.Topic, e)
	})

	if err := router.Close(); err != nil {
		logging.Warn().Err(err).Msg("Closing router")
	}
	if err := <-runErr; err != nil && replayErr == nil {
		replayErr = fmt.Errorf("router: %w", err)
	}
	return stats, replayErr
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path) //nolint:gosec // G304: path is the operator-supplied input file
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
