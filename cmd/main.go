package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yotoup/internal/services"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	exitError   = 1
	exitAuth    = 2
	exitTimeout = 3
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "yotoup",
		Usage:    "Replace the audio on Yoto cards from the terminal",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   runner.Before,
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := app.Run(ctx, os.Args)
	stop()
	runner.Close()

	if err != nil {
		os.Exit(report(logger, err))
	}
}

// report logs err in a way the user can act on and returns the process exit code.
func report(logger *log.Logger, err error) int {
	switch {
	case services.IsAuthError(err):
		logger.Error("not logged in to Yoto, run 'yotoup auth login' first", "error", err)
		return exitAuth
	case errors.Is(err, shared.ErrMissingCredentials):
		logger.Error("no Yoto client id configured, run 'yotoup setup' and edit config.toml or set "+shared.ClientIDEnv, "error", err)
		return exitAuth
	case errors.Is(err, shared.ErrTranscodeTimeout), errors.Is(err, shared.ErrTimeout):
		logger.Error("gave up waiting", "error", err)
		return exitTimeout
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted")
		return exitError
	default:
		logger.Errorf("application error: %v", err)
		return exitError
	}
}
