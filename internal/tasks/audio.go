package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/gabriel-vasile/mimetype"
)

// OpenAudio opens a local audio file for upload, detecting its media type from the content.
//
// The caller closes the returned file once the upload finished.
func OpenAudio(path string) (models.AudioFile, *os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.AudioFile{}, nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if info.IsDir() {
		return models.AudioFile{}, nil, fmt.Errorf("%w: %s is a directory", shared.ErrInvalidInput, path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return models.AudioFile{}, nil, fmt.Errorf("failed to detect media type: %w", err)
	}
	if !isAudio(mtype) {
		return models.AudioFile{}, nil, fmt.Errorf("%w: %s is %s, not audio", shared.ErrInvalidInput, filepath.Base(path), mtype.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return models.AudioFile{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return models.AudioFile{
		Name:        filepath.Base(path),
		ContentType: mediaType(mtype),
		Size:        info.Size(),
		Body:        f,
	}, f, nil
}

// DefaultTitle derives a card title from a file name.
func DefaultTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isAudio(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "audio/") {
			return true
		}
	}
	return false
}

// mediaType drops parameters such as charset.
func mediaType(m *mimetype.MIME) string {
	t, _, _ := strings.Cut(m.String(), ";")
	return t
}
