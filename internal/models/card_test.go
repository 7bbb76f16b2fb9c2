package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const cardFixture = `{
  "cardId": "abc12",
  "title": "Bedtime",
  "userId": "user-1",
  "createdAt": "2024-01-01T00:00:00Z",
  "content": {
    "activity": "yoto_Player",
    "chapters": [
      {
        "key": "01",
        "title": "Old chapter",
        "availableFrom": null,
        "tracks": [
          {"key": "01", "title": "Old track", "trackUrl": "yoto:#old", "type": "audio", "ambient": {"defaultTrackDisplay": null}}
        ],
        "display": {"icon16x16": "yoto:#icon", "iconUrl16x16": "https://cdn/icon.png"}
      }
    ]
  },
  "metadata": {
    "author": "Someone",
    "media": {"duration": 120, "fileSize": 1000, "readableFileSize": 0, "hasStreams": true, "legacy": 1}
  }
}`

func TestCardJSON(t *testing.T) {
	t.Run("Decodes Modeled Fields", func(t *testing.T) {
		var card Card
		if err := json.Unmarshal([]byte(cardFixture), &card); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if card.CardID != "abc12" || card.Title != "Bedtime" {
			t.Errorf("unexpected card header: %+v", card)
		}
		if card.TrackCount() != 1 {
			t.Errorf("expected 1 track, got %d", card.TrackCount())
		}
		if card.Duration() != 120 {
			t.Errorf("expected duration 120, got %v", card.Duration())
		}
		if _, ok := card.Extra["userId"]; !ok {
			t.Error("expected userId to be kept as an unknown field")
		}
		if _, ok := card.Extra["title"]; ok {
			t.Error("modeled fields must not be duplicated into Extra")
		}
	})

	t.Run("Round Trip Keeps Unknown Fields", func(t *testing.T) {
		var card Card
		if err := json.Unmarshal([]byte(cardFixture), &card); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		out, err := json.Marshal(card)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var want, got map[string]any
		json.Unmarshal([]byte(cardFixture), &want)
		json.Unmarshal(out, &got)

		wantJSON, _ := json.Marshal(want)
		gotJSON, _ := json.Marshal(got)
		if string(wantJSON) != string(gotJSON) {
			t.Errorf("round trip changed the document\nwant %s\ngot  %s", wantJSON, gotJSON)
		}
	})

	t.Run("Modeled Value Wins Over Stale Extra", func(t *testing.T) {
		card := Card{Title: "new", Extra: Fields{"title": json.RawMessage(`"old"`)}}
		out, err := json.Marshal(card)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(out), `"title":"new"`) {
			t.Errorf("expected modeled title, got %s", out)
		}
	})

	t.Run("Rejects Non Object", func(t *testing.T) {
		var card Card
		if err := json.Unmarshal([]byte(`[1,2]`), &card); err == nil {
			t.Error("expected error decoding array into card")
		}
	})

	t.Run("Accepts Fractional File Sizes", func(t *testing.T) {
		data := `{"cardId":"abc","content":{"chapters":[{"key":"01","tracks":[{"key":"01","fileSize":2048.5}]}]},` +
			`"metadata":{"media":{"fileSize":1234.0}}}`
		var card Card
		if err := json.Unmarshal([]byte(data), &card); err != nil {
			t.Fatalf("failed to decode card: %v", err)
		}
		if *card.Metadata.Media.FileSize != 1234 {
			t.Errorf("expected media fileSize 1234, got %v", *card.Metadata.Media.FileSize)
		}
		if got := card.Content.Chapters[0].Tracks[0].FileSize; got != 2048.5 {
			t.Errorf("expected track fileSize 2048.5, got %v", got)
		}

		var result TranscodeResult
		if err := json.Unmarshal([]byte(`{"transcodedSha256":"sha","transcodedInfo":{"fileSize":99.5}}`), &result); err != nil {
			t.Fatalf("failed to decode transcode result: %v", err)
		}
		if result.Info().FileSize != 99.5 {
			t.Errorf("expected transcoded fileSize 99.5, got %v", result.Info().FileSize)
		}
	})
}

func TestCardClone(t *testing.T) {
	var card Card
	if err := json.Unmarshal([]byte(cardFixture), &card); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	clone := card.Clone()
	clone.Title = "Changed"
	clone.Content.Chapters = nil
	size := 5.0
	clone.Metadata.Media.FileSize = &size
	clone.Extra["userId"] = json.RawMessage(`"someone-else"`)

	if card.Title != "Bedtime" {
		t.Error("clone title change leaked into original")
	}
	if len(card.Content.Chapters) != 1 {
		t.Error("clone chapter change leaked into original")
	}
	if *card.Metadata.Media.FileSize != 1000 {
		t.Error("clone media change leaked into original")
	}
	if string(card.Extra["userId"]) != `"user-1"` {
		t.Error("clone extra change leaked into original")
	}
}

func TestContentRef(t *testing.T) {
	if got := ContentRef("deadbeef"); got != "yoto:#deadbeef" {
		t.Errorf("ContentRef() = %q", got)
	}
}

func TestTranscodeResult(t *testing.T) {
	var empty *TranscodeResult
	if empty.Ready() {
		t.Error("nil result must not be ready")
	}
	if empty.Info().Title() != "" {
		t.Error("nil result must have empty info")
	}

	var r TranscodeResult
	data := `{"transcodedSha256":"sha","transcodedInfo":{"duration":3.5,"fileSize":1572864,"channels":"stereo","format":"aac","metadata":{"title":"Song"}}}`
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !r.Ready() || r.Info().Title() != "Song" || r.Info().FileSize != 1572864 {
		t.Errorf("unexpected result: %+v", r)
	}
	if string(r.Info().Channels) != `"stereo"` {
		t.Errorf("channels not passed through: %s", r.Info().Channels)
	}
}

func TestUploadRecord(t *testing.T) {
	t.Run("New Record Is Pending And Valid", func(t *testing.T) {
		rec := NewUploadRecord(1, "card", "Title", "song.mp3")
		if rec.Status() != UploadPending {
			t.Errorf("expected pending, got %s", rec.Status())
		}
		if err := rec.Validate(); err != nil {
			t.Errorf("expected valid record, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := NewUploadRecord(1, "", "t", "f").Validate(); err == nil {
			t.Error("expected error for missing card id")
		}
		if err := NewUploadRecord(1, "c", "t", "").Validate(); err == nil {
			t.Error("expected error for missing file name")
		}
		rec := NewUploadRecord(1, "c", "t", "f")
		rec.SetStatus("bogus")
		if err := rec.Validate(); err == nil {
			t.Error("expected error for invalid status")
		}
	})

	t.Run("Complete And Fail", func(t *testing.T) {
		rec := NewUploadRecord(1, "c", "t", "f")
		rec.Fail(errors.New("boom"))
		if rec.Status() != UploadFailed || rec.ErrorMessage() != "boom" {
			t.Errorf("unexpected failed record: %s %s", rec.Status(), rec.ErrorMessage())
		}
		rec.Complete("sha")
		if rec.Status() != UploadComplete || rec.ErrorMessage() != "" || rec.TranscodedSha256() != "sha" {
			t.Errorf("unexpected completed record: %s %s", rec.Status(), rec.TranscodedSha256())
		}
	})
}
