package models

import (
	"fmt"
	"time"
)

// Upload statuses
const (
	UploadPending  = "pending"
	UploadComplete = "complete"
	UploadFailed   = "failed"
)

// UploadRecord is a persisted upload pipeline run.
type UploadRecord struct {
	id               string
	sequence         int
	cardID           string
	title            string
	fileName         string
	uploadID         string
	transcodedSha256 string
	status           string
	errorMessage     string
	createdAt        time.Time
	updatedAt        time.Time
	deletedAt        *time.Time
}

// NewUploadRecord creates a pending [UploadRecord] for an upload of fileName to cardID.
func NewUploadRecord(sequence int, cardID, title, fileName string) *UploadRecord {
	now := time.Now()
	return &UploadRecord{
		sequence:  sequence,
		cardID:    cardID,
		title:     title,
		fileName:  fileName,
		status:    UploadPending,
		createdAt: now,
		updatedAt: now,
	}
}

func (u *UploadRecord) ID() string               { return u.id }
func (u *UploadRecord) Sequence() int            { return u.sequence }
func (u *UploadRecord) CardID() string           { return u.cardID }
func (u *UploadRecord) Title() string            { return u.title }
func (u *UploadRecord) FileName() string         { return u.fileName }
func (u *UploadRecord) UploadID() string         { return u.uploadID }
func (u *UploadRecord) TranscodedSha256() string { return u.transcodedSha256 }
func (u *UploadRecord) Status() string           { return u.status }
func (u *UploadRecord) ErrorMessage() string     { return u.errorMessage }
func (u *UploadRecord) CreatedAt() time.Time     { return u.createdAt }
func (u *UploadRecord) UpdatedAt() time.Time     { return u.updatedAt }
func (u *UploadRecord) DeletedAt() *time.Time    { return u.deletedAt }

func (u *UploadRecord) SetID(id string)              { u.id = id }
func (u *UploadRecord) SetSequence(seq int)          { u.sequence = seq }
func (u *UploadRecord) SetUploadID(id string)        { u.uploadID = id }
func (u *UploadRecord) SetTranscodedSha256(s string) { u.transcodedSha256 = s }
func (u *UploadRecord) SetStatus(status string)      { u.status = status }
func (u *UploadRecord) SetErrorMessage(msg string)   { u.errorMessage = msg }
func (u *UploadRecord) SetCreatedAt(t time.Time)     { u.createdAt = t }
func (u *UploadRecord) SetUpdatedAt(t time.Time)     { u.updatedAt = t }
func (u *UploadRecord) SetDeletedAt(t *time.Time)    { u.deletedAt = t }

// Complete marks the run successful.
func (u *UploadRecord) Complete(sha256 string) {
	u.transcodedSha256 = sha256
	u.status = UploadComplete
	u.errorMessage = ""
}

// Fail marks the run failed with err.
func (u *UploadRecord) Fail(err error) {
	u.status = UploadFailed
	if err != nil {
		u.errorMessage = err.Error()
	}
}

// Validate implements [Model].
func (u *UploadRecord) Validate() error {
	if u.cardID == "" {
		return fmt.Errorf("card id is required")
	}
	if u.fileName == "" {
		return fmt.Errorf("file name is required")
	}
	switch u.status {
	case UploadPending, UploadComplete, UploadFailed:
	default:
		return fmt.Errorf("invalid status: %q", u.status)
	}
	return nil
}
