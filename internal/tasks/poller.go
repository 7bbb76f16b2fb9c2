package tasks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
)

const (
	DefaultPollAttempts = 30
	DefaultPollInterval = 500 * time.Millisecond
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// TranscodeStatusFetcher performs one transcode status request.
type TranscodeStatusFetcher interface {
	TranscodeStatus(ctx context.Context, token, uploadID string) (*models.TranscodeResult, error)
}

// TranscodePoller waits for a transcode job by counted attempts.
//
// Every failed or malformed status response counts as not ready.
type TranscodePoller struct {
	api         TranscodeStatusFetcher
	maxAttempts int
	interval    time.Duration
	sleep       SleepFunc
	logger      *log.Logger
}

// NewTranscodePoller creates a poller. Non-positive attempts or interval use the defaults.
func NewTranscodePoller(api TranscodeStatusFetcher, maxAttempts int, interval time.Duration) *TranscodePoller {
	if maxAttempts <= 0 {
		maxAttempts = DefaultPollAttempts
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &TranscodePoller{
		api:         api,
		maxAttempts: maxAttempts,
		interval:    interval,
		sleep:       sleepContext,
		logger:      log.New(io.Discard),
	}
}

// WithSleep replaces the delay strategy.
func (p *TranscodePoller) WithSleep(sleep SleepFunc) *TranscodePoller {
	if sleep != nil {
		p.sleep = sleep
	}
	return p
}

// WithLogger sets the logger used for per-attempt debug output.
func (p *TranscodePoller) WithLogger(logger *log.Logger) *TranscodePoller {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// MaxAttempts returns the attempt budget.
func (p *TranscodePoller) MaxAttempts() int {
	return p.maxAttempts
}

// Poll requests the status until it carries a transcoded hash, sleeping between attempts.
//
// onAttempt is called after each unsuccessful attempt with the count so far.
func (p *TranscodePoller) Poll(ctx context.Context, token, uploadID string, onAttempt func(attempts, maxAttempts int)) (*models.TranscodeResult, error) {
	for attempts := 0; attempts < p.maxAttempts; {
		result, err := p.api.TranscodeStatus(ctx, token, uploadID)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			p.logger.Debug("transcode status not available", "upload_id", uploadID, "attempt", attempts+1, "error", err)
		case result.Ready():
			p.logger.Debug("transcode ready", "upload_id", uploadID, "sha256", result.TranscodedSha256)
			return result, nil
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, err
		}

		attempts++
		if onAttempt != nil {
			onAttempt(attempts, p.maxAttempts)
		}
	}

	return nil, fmt.Errorf("%w after %d attempts", shared.ErrTranscodeTimeout, p.maxAttempts)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
