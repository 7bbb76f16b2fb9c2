package models

import (
	"encoding/json"
	"fmt"
)

// Card is a Yoto card document as returned by GET /content/{cardId}.
//
// Only the members the uploader reads or writes are modeled; everything else is kept in Extra and at each nested
// level so an updated card can be posted back without losing data.
type Card struct {
	CardID   string        `json:"cardId,omitempty"`
	Title    string        `json:"title"`
	Content  *CardContent  `json:"content,omitempty"`
	Metadata *CardMetadata `json:"metadata,omitempty"`
	Extra    Fields        `json:"-"`
}

// CardContent holds the ordered chapters of a card.
type CardContent struct {
	Chapters []Chapter `json:"chapters"`
	Extra    Fields    `json:"-"`
}

// CardMetadata holds descriptive card data.
type CardMetadata struct {
	Media *MediaInfo `json:"media,omitempty"`
	Extra Fields     `json:"-"`
}

// MediaInfo holds aggregate stats for the audio on a card.
type MediaInfo struct {
	Duration         *float64 `json:"duration,omitempty"`
	FileSize         *float64 `json:"fileSize,omitempty"`
	ReadableFileSize *float64 `json:"readableFileSize,omitempty"`
	HasStreams       *bool    `json:"hasStreams,omitempty"`
	Extra            Fields   `json:"-"`
}

// Chapter is one playable segment of a card.
type Chapter struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	OverlayLabel string   `json:"overlayLabel,omitempty"`
	Tracks       []Track  `json:"tracks"`
	Display      *Display `json:"display,omitempty"`
	Extra        Fields   `json:"-"`
}

// Track points at a piece of audio. TrackURL is a content-address reference of the form yoto:#<sha256>.
type Track struct {
	Key          string          `json:"key"`
	Title        string          `json:"title"`
	TrackURL     string          `json:"trackUrl"`
	Duration     float64         `json:"duration,omitempty"`
	FileSize     float64         `json:"fileSize,omitempty"`
	Channels     json.RawMessage `json:"channels,omitempty"`
	Format       string          `json:"format,omitempty"`
	Type         string          `json:"type"`
	OverlayLabel string          `json:"overlayLabel,omitempty"`
	Extra        Fields          `json:"-"`
}

// Display holds icon references for a chapter.
type Display struct {
	Icon16x16 string `json:"icon16x16,omitempty"`
	Extra     Fields `json:"-"`
}

// ContentRef builds the yoto:#<sha256> reference for transcoded audio.
func ContentRef(sha256 string) string {
	return "yoto:#" + sha256
}

// Chapters returns the card's chapters, or nil when the card has no content.
func (c *Card) Chapters() []Chapter {
	if c.Content == nil {
		return nil
	}
	return c.Content.Chapters
}

// TrackCount returns the number of tracks across all chapters.
func (c *Card) TrackCount() int {
	n := 0
	for _, ch := range c.Chapters() {
		n += len(ch.Tracks)
	}
	return n
}

// Duration returns metadata.media.duration in seconds, or 0 when absent.
func (c *Card) Duration() float64 {
	if c.Metadata == nil || c.Metadata.Media == nil || c.Metadata.Media.Duration == nil {
		return 0
	}
	return *c.Metadata.Media.Duration
}

// String implements [fmt.Stringer].
func (c *Card) String() string {
	return fmt.Sprintf("%s - %s", c.CardID, c.Title)
}

// Clone returns a copy of the card that can be modified without affecting c.
//
// Content, metadata and media are copied; chapters are copied as a slice of values.
func (c *Card) Clone() *Card {
	out := *c
	out.Extra = c.Extra.Clone()

	if c.Content != nil {
		content := *c.Content
		content.Extra = c.Content.Extra.Clone()
		if c.Content.Chapters != nil {
			content.Chapters = append([]Chapter(nil), c.Content.Chapters...)
		}
		out.Content = &content
	}

	if c.Metadata != nil {
		metadata := *c.Metadata
		metadata.Extra = c.Metadata.Extra.Clone()
		if c.Metadata.Media != nil {
			media := *c.Metadata.Media
			media.Extra = c.Metadata.Media.Extra.Clone()
			metadata.Media = &media
		}
		out.Metadata = &metadata
	}

	return &out
}

func (c *Card) UnmarshalJSON(data []byte) error {
	type alias Card
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := unknownFields(data, "cardId", "title", "content", "metadata")
	if err != nil {
		return err
	}
	a.Extra = extra
	*c = Card(a)
	return nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	type alias Card
	return marshalWithFields(alias(c), c.Extra)
}

func (c *CardContent) UnmarshalJSON(data []byte) error {
	type alias CardContent
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := unknownFields(data, "chapters")
	if err != nil {
		return err
	}
	a.Extra = extra
	*c = CardContent(a)
	return nil
}

func (c CardContent) MarshalJSON() ([]byte, error) {
	type alias CardContent
	return marshalWithFields(alias(c), c.Extra)
}

func (m *CardMetadata) UnmarshalJSON(data []byte) error {
	type alias CardMetadata
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := unknownFields(data, "media")
	if err != nil {
		return err
	}
	a.Extra = extra
	*m = CardMetadata(a)
	return nil
}

func (m CardMetadata) MarshalJSON() ([]byte, error) {
	type alias CardMetadata
	return marshalWithFields(alias(m), m.Extra)
}

func (m *MediaInfo) UnmarshalJSON(data []byte) error {
	type alias MediaInfo
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := unknownFields(data, "duration", "fileSize", "readableFileSize", "hasStreams")
	if err != nil {
		return err
	}
	a.Extra = extra
	*m = MediaInfo(a)
	return nil
}

func (m MediaInfo) MarshalJSON() ([]byte, error) {
	type alias MediaInfo
	return marshalWithFields(alias(m), m.Extra)
}

func (ch *Chapter) UnmarshalJSON(data []byte) error {
	type alias Chapter
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := unknownFields(data, "key", "title", "overlayLabel", "tracks", "display")
	if err != nil {
		return err
	}
	a.Extra = extra
	*ch = Chapter(a)
	return nil
}

func (ch Chapter) MarshalJSON() ([]byte, error) {
	type alias Chapter
	return marshalWithFields(alias(ch), ch.Extra)
}

func (t *Track) UnmarshalJSON(data []byte) error {
	type alias Track
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := unknownFields(data,
		"key", "title", "trackUrl", "duration", "fileSize", "channels", "format", "type", "overlayLabel")
	if err != nil {
		return err
	}
	a.Extra = extra
	*t = Track(a)
	return nil
}

func (t Track) MarshalJSON() ([]byte, error) {
	type alias Track
	return marshalWithFields(alias(t), t.Extra)
}

func (d *Display) UnmarshalJSON(data []byte) error {
	type alias Display
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := unknownFields(data, "icon16x16")
	if err != nil {
		return err
	}
	a.Extra = extra
	*d = Display(a)
	return nil
}

func (d Display) MarshalJSON() ([]byte, error) {
	type alias Display
	return marshalWithFields(alias(d), d.Extra)
}
