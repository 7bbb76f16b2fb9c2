package tasks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/services"
	"github.com/desertthunder/yotoup/internal/shared"
)

// UploadAPI is the remote surface the upload pipeline needs.
type UploadAPI interface {
	TranscodeStatusFetcher
	RequestUploadTarget(ctx context.Context, token string) (*models.UploadTarget, error)
	PutAudio(ctx context.Context, uploadURL string, audio models.AudioFile) error
	FetchCard(ctx context.Context, cardID, token string) (*models.Card, error)
	SaveCard(ctx context.Context, card *models.Card, token string) (*models.Card, error)
}

// UploadRecorder persists upload history (repositories.UploadRepository).
type UploadRecorder interface {
	Create(upload *models.UploadRecord) error
	Update(upload *models.UploadRecord) error
}

// UploadRequest describes one audio replacement.
type UploadRequest struct {
	Audio       models.AudioFile
	Title       string // New card title
	CardID      string
	AccessToken string
	APIBaseURL  string // Optional override of the client's base URL
}

func (r UploadRequest) validate() error {
	switch {
	case r.AccessToken == "":
		return shared.ErrNotAuthenticated
	case r.CardID == "":
		return fmt.Errorf("%w: card id is required", shared.ErrInvalidInput)
	case r.Title == "":
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	case r.Audio.Body == nil:
		return fmt.Errorf("%w: audio is required", shared.ErrInvalidInput)
	}
	return nil
}

// UploaderConfig holds optional [Uploader] settings. Zero values use the defaults.
type UploaderConfig struct {
	PollAttempts int
	PollInterval time.Duration
	Sleep        SleepFunc
	Recorder     UploadRecorder
	Logger       *log.Logger
}

// Uploader runs the upload pipeline:
//
//	requesting_target -> uploading -> transcoding -> fetching_card -> mutating -> saving -> complete
//
// Each stage starts only after the previous remote call returned. A failure in any stage aborts the run;
// nothing already done remotely is undone.
type Uploader struct {
	api    UploadAPI
	config UploaderConfig
	logger *log.Logger
}

// NewUploader creates an Uploader over api.
func NewUploader(api UploadAPI, config UploaderConfig) *Uploader {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Uploader{api: api, config: config, logger: logger}
}

// progressTracker remembers the last reported waypoint so the failure event can repeat it.
type progressTracker struct {
	notify   ProgressFunc
	state    State
	stage    Stage
	progress float64
}

func (p *progressTracker) enter(state State) {
	p.state = state
}

func (p *progressTracker) emit(stage Stage, progress float64) {
	p.stage = stage
	p.progress = progress
	if p.notify != nil {
		p.notify(ProgressEvent{Stage: stage, Progress: progress, State: p.state})
	}
}

func (p *progressTracker) fail(err error) error {
	failedIn := p.state
	p.state = Failed
	if p.notify != nil {
		p.notify(ProgressEvent{Stage: p.stage, Progress: p.progress, State: Failed, Err: err})
	}
	return fmt.Errorf("%s: %w", failedIn, err)
}

// Upload replaces the content of req.CardID with req.Audio and returns the card as saved by the server.
//
// onProgress receives the waypoints 0, 50, 50..75 while polling, 85 and 100. On failure it receives exactly
// one event with Err set, and the returned error names the state that failed while still matching the
// shared sentinel errors with errors.Is. An empty access token returns [shared.ErrNotAuthenticated]
// before anything starts.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest, onProgress ProgressFunc) (*models.Card, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	logger := shared.WithLogger(u.logger, "card_id", req.CardID)
	api := u.apiFor(req, logger)
	tracker := &progressTracker{notify: onProgress, stage: StageUploading, state: RequestingTarget}
	record := u.begin(req, logger)

	out := &outcome{}
	if err := u.run(ctx, api, req, tracker, logger, out); err != nil {
		logger.Error("upload failed", "state", tracker.state, "error", err)
		err = tracker.fail(err)
		u.finish(record, out, err, logger)
		return nil, err
	}

	u.finish(record, out, nil, logger)
	return out.card, nil
}

// outcome collects what a run produced, including partial results of a failed run.
type outcome struct {
	uploadID string
	sha256   string
	card     *models.Card
}

func (u *Uploader) run(ctx context.Context, api UploadAPI, req UploadRequest, tracker *progressTracker, logger *log.Logger, out *outcome) error {
	tracker.enter(RequestingTarget)
	target, err := api.RequestUploadTarget(ctx, req.AccessToken)
	if err != nil {
		return err
	}
	out.uploadID = target.UploadID
	logger.Debug("upload target acquired", "upload_id", target.UploadID)

	tracker.enter(Uploading)
	tracker.emit(StageUploading, ProgressUploadStart)
	if err := api.PutAudio(ctx, target.UploadURL, req.Audio); err != nil {
		return err
	}
	logger.Info("audio uploaded", "file", req.Audio.Name, "upload_id", target.UploadID)

	tracker.enter(Transcoding)
	tracker.emit(StageTranscoding, ProgressTranscodeStart)
	poller := NewTranscodePoller(api, u.config.PollAttempts, u.config.PollInterval).
		WithSleep(u.config.Sleep).
		WithLogger(logger)
	result, err := poller.Poll(ctx, req.AccessToken, target.UploadID, func(attempts, maxAttempts int) {
		tracker.emit(StageTranscoding, transcodeProgress(attempts, maxAttempts))
	})
	if err != nil {
		return err
	}
	out.sha256 = result.TranscodedSha256
	logger.Info("transcoding complete", "sha256", result.TranscodedSha256)

	tracker.enter(FetchingCard)
	tracker.emit(StageUpdatingCard, ProgressCardUpdate)
	existing, err := api.FetchCard(ctx, req.CardID, req.AccessToken)
	if err != nil {
		return err
	}

	tracker.enter(Mutating)
	updated := MutateCard(existing, result, req.Title)

	tracker.enter(Saving)
	saved, err := api.SaveCard(ctx, updated, req.AccessToken)
	if err != nil {
		return err
	}

	tracker.enter(Complete)
	tracker.emit(StageComplete, ProgressComplete)
	logger.Info("card updated", "title", req.Title)

	if saved == nil {
		saved = updated
	}
	out.card = saved
	return nil
}

// baseURLOverrider is implemented by APIs that can be pointed at another host for a single run.
type baseURLOverrider interface {
	WithBaseURL(baseURL string) *services.YotoClient
}

func (u *Uploader) apiFor(req UploadRequest, logger *log.Logger) UploadAPI {
	if req.APIBaseURL == "" {
		return u.api
	}
	if client, ok := u.api.(baseURLOverrider); ok {
		return client.WithBaseURL(req.APIBaseURL)
	}
	logger.Warn("api does not support a base URL override, ignoring it", "base_url", req.APIBaseURL)
	return u.api
}

// begin records a pending history entry. Recorder failures are logged and otherwise ignored.
func (u *Uploader) begin(req UploadRequest, logger *log.Logger) *models.UploadRecord {
	if u.config.Recorder == nil {
		return nil
	}
	record := models.NewUploadRecord(0, req.CardID, req.Title, req.Audio.Name)
	if err := u.config.Recorder.Create(record); err != nil {
		logger.Warn("failed to record upload", "error", err)
		return nil
	}
	return record
}

func (u *Uploader) finish(record *models.UploadRecord, out *outcome, runErr error, logger *log.Logger) {
	if record == nil {
		return
	}
	record.SetUploadID(out.uploadID)
	record.SetTranscodedSha256(out.sha256)
	if runErr != nil {
		record.Fail(runErr)
	} else {
		record.Complete(out.sha256)
	}
	if err := u.config.Recorder.Update(record); err != nil {
		logger.Warn("failed to update upload record", "error", err)
	}
}
