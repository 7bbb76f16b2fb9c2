package models

import (
	"encoding/json"
	"io"
)

// UploadTarget is a one-time, time-limited location for an audio upload and the server's correlation id for it.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	UploadID  string `json:"uploadId"`
}

// TranscodeResult is the outcome of server-side transcoding. It is ready once TranscodedSha256 is set.
type TranscodeResult struct {
	TranscodedSha256 string          `json:"transcodedSha256,omitempty"`
	TranscodedInfo   *TranscodedInfo `json:"transcodedInfo,omitempty"`
}

// TranscodedInfo describes the finished audio.
type TranscodedInfo struct {
	Duration float64             `json:"duration,omitempty"`
	FileSize float64             `json:"fileSize,omitempty"`
	Channels json.RawMessage     `json:"channels,omitempty"`
	Format   string              `json:"format,omitempty"`
	Metadata *TranscodedMetadata `json:"metadata,omitempty"`
}

// TranscodedMetadata holds tags read from the uploaded file.
type TranscodedMetadata struct {
	Title string `json:"title,omitempty"`
}

// Ready reports whether the transcode finished.
func (r *TranscodeResult) Ready() bool {
	return r != nil && r.TranscodedSha256 != ""
}

// Info returns TranscodedInfo, or an empty value when the server sent none.
func (r *TranscodeResult) Info() TranscodedInfo {
	if r == nil || r.TranscodedInfo == nil {
		return TranscodedInfo{}
	}
	return *r.TranscodedInfo
}

// Title returns the embedded title tag, or "" when absent.
func (i TranscodedInfo) Title() string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata.Title
}

// AudioFile is a local audio blob to upload.
type AudioFile struct {
	Name        string    // Base file name
	ContentType string    // Declared media type, sent as Content-Type
	Size        int64     // Length in bytes; -1 when unknown
	Body        io.Reader // Raw bytes
}
