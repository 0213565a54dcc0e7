package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-fsrs/internal/config"
	"github.com/phrazzld/scry-fsrs/internal/domain/srs"
	"github.com/phrazzld/scry-fsrs/internal/platform/logger"
	"github.com/phrazzld/scry-fsrs/internal/service/card_review"
	"github.com/spf13/cobra"
)

// options carries the dependencies of the command tree so tests can
// capture output and pin the clock.
type options struct {
	Stdout io.Writer
	Stderr io.Writer
	Clock  func() time.Time // nil uses the service default

	// Service replaces the scheduler-backed service when set.
	Service card_review.CardReviewService
}

// app is the state shared by every subcommand once initialization ran.
type app struct {
	opts       options
	configPath string
	logger     *slog.Logger
	service    card_review.CardReviewService
}

func newRootCmd(opts options) *cobra.Command {
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:          "fsrs",
		Short:        "fsrs - FSRS-5 spaced repetition scheduler",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file (default: ./fsrs.yaml or ~/.config/fsrs/fsrs.yaml)")

	rootCmd.AddCommand(
		newReviewCmd(a),
		newPreviewCmd(a),
		newQueueCmd(a),
		newPostponeCmd(a),
	)

	return rootCmd
}

// initialize loads configuration and sets up application components.
func (a *app) initialize() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	log, err := logger.Setup(cfg.Log, a.opts.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	enableFuzz := cfg.Scheduler.EnableFuzz
	params, err := srs.NewParams(srs.ParamsConfig{
		Weights:          cfg.Scheduler.Weights,
		DesiredRetention: cfg.Scheduler.DesiredRetention,
		MaximumInterval:  cfg.Scheduler.MaximumInterval,
		EnableFuzz:       &enableFuzz,
	})
	if err != nil {
		return fmt.Errorf("failed to build scheduler parameters: %w", err)
	}

	log.Debug("configuration loaded",
		slog.String("log_level", cfg.Log.Level),
		slog.Float64("desired_retention", params.DesiredRetention),
		slog.Int("maximum_interval", params.MaximumInterval))

	a.logger = log

	if a.opts.Service != nil {
		a.service = a.opts.Service
		return nil
	}

	var serviceOpts []card_review.Option
	if a.opts.Clock != nil {
		serviceOpts = append(serviceOpts, card_review.WithClock(a.opts.Clock))
	}
	a.service = card_review.NewCardReviewService(srs.NewServiceWithParams(params), log, serviceOpts...)
	return nil
}

// writeJSON prints v to stdout as indented JSON.
func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.opts.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
