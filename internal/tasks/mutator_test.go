package tasks

import (
	"encoding/json"
	"testing"

	"github.com/desertthunder/yotoup/internal/models"
)

func mustCard(t *testing.T, raw string) *models.Card {
	t.Helper()
	var card models.Card
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		t.Fatalf("failed to decode card: %v", err)
	}
	return &card
}

func TestMutateCard(t *testing.T) {
	result := &models.TranscodeResult{
		TranscodedSha256: "deadbeef",
		TranscodedInfo: &models.TranscodedInfo{
			Duration: 120,
			FileSize: 1572864,
			Channels: json.RawMessage(`2`),
			Format:   "opus",
			Metadata: &models.TranscodedMetadata{Title: "From Tags"},
		},
	}

	t.Run("Builds Single Chapter And Track", func(t *testing.T) {
		existing := mustCard(t, `{"cardId":"c1","title":"Old","content":{"chapters":[{"key":"1"},{"key":"2"}]}}`)

		card := MutateCard(existing, result, "New")

		chapters := card.Chapters()
		if len(chapters) != 1 || len(chapters[0].Tracks) != 1 {
			t.Fatalf("expected one chapter and track, got %+v", chapters)
		}

		ch := chapters[0]
		if ch.Key != "01" || ch.OverlayLabel != "1" || ch.Title != "From Tags" {
			t.Errorf("unexpected chapter: %+v", ch)
		}
		if ch.Display == nil || ch.Display.Icon16x16 != DefaultChapterIcon {
			t.Errorf("unexpected display: %+v", ch.Display)
		}

		tr := ch.Tracks[0]
		if tr.Key != "01" || tr.OverlayLabel != "1" || tr.Type != "audio" || tr.Title != "From Tags" {
			t.Errorf("unexpected track: %+v", tr)
		}
		if tr.TrackURL != "yoto:#deadbeef" {
			t.Errorf("expected trackUrl yoto:#deadbeef, got %s", tr.TrackURL)
		}
		if tr.Duration != 120 || tr.FileSize != 1572864 || tr.Format != "opus" || string(tr.Channels) != "2" {
			t.Errorf("unexpected track media: %+v", tr)
		}
		if card.Title != "New" {
			t.Errorf("expected card title New, got %s", card.Title)
		}
	})

	t.Run("Media Metadata", func(t *testing.T) {
		card := MutateCard(&models.Card{Title: "Old"}, result, "New")

		media := card.Metadata.Media
		if *media.Duration != 120 || *media.FileSize != 1572864 {
			t.Errorf("unexpected media: duration=%v size=%v", *media.Duration, *media.FileSize)
		}
		if *media.ReadableFileSize != 1.5 {
			t.Errorf("expected readableFileSize 1.5, got %v", *media.ReadableFileSize)
		}
		if *media.HasStreams {
			t.Error("expected hasStreams false")
		}
	})

	t.Run("Chapter Title Falls Back To Existing Title", func(t *testing.T) {
		untagged := &models.TranscodeResult{TranscodedSha256: "abc", TranscodedInfo: &models.TranscodedInfo{FileSize: 10}}

		card := MutateCard(&models.Card{Title: "Existing"}, untagged, "Requested")

		ch := card.Chapters()[0]
		if ch.Title != "Existing" || ch.Tracks[0].Title != "Existing" {
			t.Errorf("expected fallback to existing title, got %q / %q", ch.Title, ch.Tracks[0].Title)
		}
		if card.Title != "Requested" {
			t.Errorf("expected card title Requested, got %s", card.Title)
		}
	})

	t.Run("Leaves Input And Other Fields Untouched", func(t *testing.T) {
		raw := `{"cardId":"c1","title":"Old","sortKey":"z","content":{"chapters":[{"key":"1","title":"one","tracks":[]}],"playbackType":"linear"},"metadata":{"author":"A","media":{"duration":1,"custom":true}}}`
		existing := mustCard(t, raw)

		card := MutateCard(existing, result, "New")

		before, _ := json.Marshal(mustCard(t, raw))
		after, _ := json.Marshal(existing)
		if string(before) != string(after) {
			t.Errorf("input was modified:\nbefore %s\nafter  %s", before, after)
		}

		out, err := json.Marshal(card)
		if err != nil {
			t.Fatalf("failed to encode card: %v", err)
		}
		var m map[string]any
		json.Unmarshal(out, &m)

		if m["sortKey"] != "z" || m["cardId"] != "c1" {
			t.Errorf("expected top-level fields kept, got %v", m)
		}
		if m["content"].(map[string]any)["playbackType"] != "linear" {
			t.Error("expected content.playbackType kept")
		}
		metadata := m["metadata"].(map[string]any)
		if metadata["author"] != "A" || metadata["media"].(map[string]any)["custom"] != true {
			t.Errorf("expected metadata fields kept, got %v", metadata)
		}
	})

	t.Run("Nil Existing Card", func(t *testing.T) {
		card := MutateCard(nil, result, "New")
		if card.Title != "New" || len(card.Chapters()) != 1 {
			t.Errorf("unexpected card: %+v", card)
		}
	})
}
