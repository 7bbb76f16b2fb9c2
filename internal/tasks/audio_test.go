package tasks

import (
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/yotoup/internal/shared"
	tu "github.com/desertthunder/yotoup/internal/testing"
)

func TestOpenAudio(t *testing.T) {
	t.Run("Detects MP3", func(t *testing.T) {
		content := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...)
		path := tu.MustWriteFile(t, t.TempDir(), "My Story.mp3", content)

		audio, f, err := OpenAudio(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer f.Close()

		if audio.ContentType != "audio/mpeg" {
			t.Errorf("expected audio/mpeg, got %s", audio.ContentType)
		}
		if audio.Name != "My Story.mp3" || audio.Size != int64(len(content)) {
			t.Errorf("unexpected audio file: %+v", audio)
		}

		data, _ := io.ReadAll(audio.Body)
		if len(data) != len(content) {
			t.Errorf("expected %d bytes, got %d", len(content), len(data))
		}
	})

	t.Run("Rejects Non-Audio", func(t *testing.T) {
		path := tu.MustWriteFile(t, t.TempDir(), "notes.txt", []byte("just some text"))

		if _, _, err := OpenAudio(path); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, _, err := OpenAudio("/does/not/exist.mp3"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Directory", func(t *testing.T) {
		if _, _, err := OpenAudio(t.TempDir()); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestDefaultTitle(t *testing.T) {
	if got := DefaultTitle("/music/Bedtime Story.m4a"); got != "Bedtime Story" {
		t.Errorf("expected Bedtime Story, got %s", got)
	}
}
