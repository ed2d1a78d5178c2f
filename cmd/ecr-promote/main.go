package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/scottbass3/ecr-promote/internal/config"
	"github.com/scottbass3/ecr-promote/internal/promote"
	"github.com/scottbass3/ecr-promote/internal/registry"
	"github.com/scottbass3/ecr-promote/internal/tui"
)

const (
	exitFailure  = 1
	exitSetup    = 2
	exitCanceled = 130
)

func main() {
	var cfg config.Config
	flag.StringVar(&cfg.Region, "region", "", "AWS region of the registry (defaults to the SDK environment/profile)")
	flag.StringVar(&cfg.Profile, "profile", "", "Shared config profile to use (defaults to AWS_PROFILE)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable request logging")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Stderr, cfg.Debug)

	client, err := newRegistryClient(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitSetup)
	}

	promoter := &promote.Promoter{
		Client: client,
		Select: func(ctx context.Context, title string, labels []string) (int, error) {
			return tui.Select(ctx, title, labels)
		},
		Logger: logger,
		Tag:    registry.LatestTag,
	}
	if _, err := promoter.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

func newRegistryClient(ctx context.Context, cfg config.Config, logger zerolog.Logger) (registry.Client, error) {
	awsCfg, err := cfg.AWS(ctx)
	if err != nil {
		return nil, err
	}
	return registry.NewClientWithLogger(awsCfg, makeRequestLogger(logger))
}

func newLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func makeRequestLogger(logger zerolog.Logger) registry.RequestLogger {
	return func(log registry.RequestLog) {
		event := logger.Debug()
		if log.Err != nil {
			event = logger.Warn().Err(log.Err)
		}
		event = event.
			Str("operation", log.Operation).
			Dur("duration", log.Duration)
		if log.Repository != "" {
			event = event.Str("repository", log.Repository)
		}
		if log.Code != "" {
			event = event.Str("code", log.Code)
		}
		event.Msg("ecr request")
	}
}

func exitCode(err error) int {
	if errors.Is(err, tui.ErrCancelled) {
		return exitCanceled
	}
	return exitFailure
}
