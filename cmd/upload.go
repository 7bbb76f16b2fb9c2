package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/yotoup/internal/formatter"
	"github.com/desertthunder/yotoup/internal/repositories"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/desertthunder/yotoup/internal/tasks"
	"github.com/urfave/cli/v3"
)

// uploader builds the upload pipeline from config, recording runs in the history table.
func (r *Runner) uploader() (*tasks.Uploader, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}

	api := r.Config().API
	return tasks.NewUploader(r.client(), tasks.UploaderConfig{
		PollAttempts: api.PollAttempts,
		PollInterval: api.PollInterval.Duration,
		Recorder:     repositories.NewUploadRepository(db),
		Logger:       r.logger,
	}), nil
}

// Upload sends a local audio file to Yoto and makes it the only track on the given card.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: audio file", shared.ErrMissingArgument)
	}

	title := strings.TrimSpace(cmd.String("title"))
	if title == "" {
		title = tasks.DefaultTitle(path)
	}

	token, err := r.accessToken(ctx)
	if err != nil {
		return err
	}

	audio, f, err := tasks.OpenAudio(path)
	if err != nil {
		return err
	}
	defer f.Close()

	uploader, err := r.uploader()
	if err != nil {
		return err
	}

	cardID := cmd.String("card")
	r.logger.Info("starting upload", "card_id", cardID, "file", audio.Name, "type", audio.ContentType)
	r.writePlain("Uploading %s to card %s\n", audio.Name, cardID)
	r.writePlain("Title: %s\n\n", title)

	progressCh := make(chan tasks.ProgressEvent, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		var last tasks.Stage
		for ev := range progressCh {
			switch {
			case ev.Failed():
				r.writePlain("✗ %s failed at %.0f%%\n", ev.Stage, ev.Progress)
			case ev.Stage != last:
				r.writePlain("[%3.0f%%] %s\n", ev.Progress, describeStage(ev.Stage))
			default:
				r.logger.Debug("progress", "stage", ev.Stage, "progress", ev.Progress)
			}
			last = ev.Stage
		}
	}()

	card, err := uploader.Upload(ctx, tasks.UploadRequest{
		Audio:       audio,
		Title:       title,
		CardID:      cardID,
		AccessToken: token,
		APIBaseURL:  cmd.String("base-url"),
	}, tasks.ChannelProgress(progressCh))
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(card, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Card updated!")
	_, err = r.output.Write(formatter.CardDetail(card))
	return err
}

func describeStage(stage tasks.Stage) string {
	switch stage {
	case tasks.StageUploading:
		return "uploading audio"
	case tasks.StageTranscoding:
		return "waiting for transcoding"
	case tasks.StageUpdatingCard:
		return "updating card"
	case tasks.StageComplete:
		return "complete"
	default:
		return string(stage)
	}
}
