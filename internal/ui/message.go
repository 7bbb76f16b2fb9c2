package ui

import (
	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/tasks"
)

// cardsFetchedMsg carries the card listing.
type cardsFetchedMsg struct {
	cards []models.Card
	err   error
}

// progressMsg carries one pipeline event.
type progressMsg tasks.ProgressEvent

// uploadDoneMsg ends an upload run.
type uploadDoneMsg struct {
	card *models.Card
	err  error
}

// uploadClosedMsg is sent when the event stream closed without a result.
type uploadClosedMsg struct{}
