package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
)

var _ list.Item = cardItem{}

// cardItem wraps [models.Card] to implement [list.Item].
type cardItem struct {
	card models.Card
}

func (i cardItem) FilterValue() string { return i.card.Title }
func (i cardItem) Title() string       { return i.card.Title }
func (i cardItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.card.TrackCount())
	if d := i.card.Duration(); d > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(d))
	}
	return fmt.Sprintf("%s • %s", desc, i.card.CardID)
}

func cardItems(cards []models.Card) []list.Item {
	items := make([]list.Item, len(cards))
	for i, card := range cards {
		items[i] = cardItem{card: card}
	}
	return items
}
