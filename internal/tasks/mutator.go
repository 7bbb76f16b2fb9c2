package tasks

import (
	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
)

// DefaultChapterIcon is the display icon set on the replacement chapter.
const DefaultChapterIcon = "yoto:#aUm9i3ex3qqAMYBv-i-O-pYMKuMJGICtR3Vhf289u2Q"

// MutateCard returns a copy of existing whose content is replaced by the single transcoded track.
//
// The chapter and track take the embedded title tag, else the current card title; the card itself is renamed to
// newTitle. Media stats are copied from the transcode. existing is left untouched.
func MutateCard(existing *models.Card, result *models.TranscodeResult, newTitle string) *models.Card {
	if existing == nil {
		existing = &models.Card{}
	}
	card := existing.Clone()

	info := result.Info()
	chapterTitle := info.Title()
	if chapterTitle == "" {
		chapterTitle = existing.Title
	}

	track := models.Track{
		Key:          "01",
		Title:        chapterTitle,
		TrackURL:     models.ContentRef(result.TranscodedSha256),
		Duration:     info.Duration,
		FileSize:     info.FileSize,
		Channels:     info.Channels,
		Format:       info.Format,
		Type:         "audio",
		OverlayLabel: "1",
	}

	chapter := models.Chapter{
		Key:          "01",
		Title:        chapterTitle,
		OverlayLabel: "1",
		Tracks:       []models.Track{track},
		Display:      &models.Display{Icon16x16: DefaultChapterIcon},
	}

	if card.Content == nil {
		card.Content = &models.CardContent{}
	}
	card.Content.Chapters = []models.Chapter{chapter}
	card.Title = newTitle

	if card.Metadata == nil {
		card.Metadata = &models.CardMetadata{}
	}
	if card.Metadata.Media == nil {
		card.Metadata.Media = &models.MediaInfo{}
	}

	duration := info.Duration
	fileSize := info.FileSize
	readable := shared.ReadableFileSize(fileSize)
	hasStreams := false

	media := card.Metadata.Media
	media.Duration = &duration
	media.FileSize = &fileSize
	media.ReadableFileSize = &readable
	media.HasStreams = &hasStreams

	return card
}
