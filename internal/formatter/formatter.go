// package formatter renders card listings and upload history as JSON, CSV, Markdown, or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
)

// Format is an output format name.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "txt"
)

// ParseFormat resolves a format name, accepting "md" and "text" as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "txt", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "md", "markdown":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (json, csv, markdown, txt)", shared.ErrInvalidArgument, name)
	}
}

func fileSize(card models.Card) float64 {
	if card.Metadata == nil || card.Metadata.Media == nil || card.Metadata.Media.FileSize == nil {
		return 0
	}
	return *card.Metadata.Media.FileSize
}

// CardsToJSON renders the full card documents, unknown fields included.
func CardsToJSON(cards []models.Card) ([]byte, error) {
	if cards == nil {
		cards = []models.Card{}
	}
	return shared.MarshalJSON(cards, true)
}

// CardsToCSV renders cards with columns: ID, Title, Chapters, Tracks, Duration, Size (MB)
func CardsToCSV(cards []models.Card) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Chapters", "Tracks", "Duration", "Size (MB)"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, card := range cards {
		record := []string{
			card.CardID,
			card.Title,
			strconv.Itoa(len(card.Chapters())),
			strconv.Itoa(card.TrackCount()),
			shared.FormatDuration(card.Duration()),
			strconv.FormatFloat(shared.ReadableFileSize(fileSize(card)), 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CardsToMarkdown renders a card table.
func CardsToMarkdown(cards []models.Card) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Cards\n\n")
	fmt.Fprintf(&buf, "**Total**: %d\n\n", len(cards))

	if len(cards) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Title | ID | Tracks | Duration |\n")
	buf.WriteString("|---|-------|----|--------|----------|\n")
	for i, card := range cards {
		fmt.Fprintf(&buf, "| %d | %s | `%s` | %d | %s |\n",
			i+1, escapeCell(card.Title), card.CardID, card.TrackCount(), shared.FormatDuration(card.Duration()))
	}

	return buf.Bytes(), nil
}

// CardsToText renders one card per line.
func CardsToText(cards []models.Card) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Cards: %d\n\n", len(cards))
	for i, card := range cards {
		fmt.Fprintf(&buf, "%d. %s [%s] (%d tracks, %s)\n",
			i+1, card.Title, card.CardID, card.TrackCount(), shared.FormatDuration(card.Duration()))
	}

	return buf.Bytes(), nil
}

// CardDetail renders one card with its chapters and tracks as Markdown.
func CardDetail(card *models.Card) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", card.Title)
	fmt.Fprintf(&buf, "**ID**: `%s`\n", card.CardID)
	fmt.Fprintf(&buf, "**Duration**: %s\n", shared.FormatDuration(card.Duration()))
	if size := fileSize(*card); size > 0 {
		fmt.Fprintf(&buf, "**Size**: %.1f MB\n", shared.ReadableFileSize(size))
	}
	buf.WriteString("\n## Chapters\n\n")

	for _, ch := range card.Chapters() {
		fmt.Fprintf(&buf, "%s. %s\n", ch.Key, ch.Title)
		for _, tr := range ch.Tracks {
			fmt.Fprintf(&buf, "   - %s %s [%s] %s\n", tr.Key, tr.Title, shared.FormatDuration(tr.Duration), tr.TrackURL)
		}
	}

	return buf.Bytes()
}

// Cards renders cards in format.
func Cards(cards []models.Card, format Format) ([]byte, error) {
	switch format {
	case JSON:
		return CardsToJSON(cards)
	case CSV:
		return CardsToCSV(cards)
	case Markdown:
		return CardsToMarkdown(cards)
	case Text:
		return CardsToText(cards)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteCards renders cards to w, or to the file at path when path is non-empty.
func WriteCards(w io.Writer, cards []models.Card, format Format, path string) error {
	data, err := Cards(cards, format)
	if err != nil {
		return err
	}

	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// UploadHistory renders upload records as an aligned text table, newest first as given.
func UploadHistory(records []*models.UploadRecord) []byte {
	var buf bytes.Buffer

	if len(records) == 0 {
		buf.WriteString("No uploads recorded.\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "%-4s  %-16s  %-9s  %-20s  %s\n", "#", "WHEN", "STATUS", "CARD", "TITLE")
	for _, r := range records {
		fmt.Fprintf(&buf, "%-4d  %-16s  %-9s  %-20s  %s\n",
			r.Sequence(), r.CreatedAt().Local().Format("2006-01-02 15:04"), r.Status(), r.CardID(), r.Title())
		if r.ErrorMessage() != "" {
			fmt.Fprintf(&buf, "      error: %s\n", r.ErrorMessage())
		}
	}

	return buf.Bytes()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
