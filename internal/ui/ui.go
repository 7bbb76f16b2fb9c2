package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/desertthunder/yotoup/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CardListView ViewState = iota
	FormView
	UploadView
	ResultView
)

const (
	pathField = iota
	titleField
)

// CardSource lists the user's cards ([tasks.CardLister]).
type CardSource interface {
	List(ctx context.Context, token string) ([]models.Card, error)
}

// CardUploader runs the upload pipeline ([tasks.Uploader]).
type CardUploader interface {
	Upload(ctx context.Context, req tasks.UploadRequest, onProgress tasks.ProgressFunc) (*models.Card, error)
}

// TokenProvider hands out a usable access token ([services.Authenticator]).
type TokenProvider interface {
	ValidAccessToken(ctx context.Context) (string, error)
}

// AudioOpener opens a local file for upload.
type AudioOpener func(path string) (models.AudioFile, io.Closer, error)

func openAudio(path string) (models.AudioFile, io.Closer, error) {
	audio, f, err := tasks.OpenAudio(path)
	if err != nil {
		return models.AudioFile{}, nil, err
	}
	return audio, f, nil
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	cards    CardSource
	uploader CardUploader
	tokens   TokenProvider
	open     AudioOpener
	width    int
	height   int
	cardList list.Model
	loaded   bool
	selected *models.Card
	inputs   []textinput.Model
	focus    int
	formErr  string
	events   chan tea.Msg
	bar      progress.Model
	last     tasks.ProgressEvent
	result   *models.Card
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, cards CardSource, uploader CardUploader, tokens TokenProvider) *Model {
	return &Model{
		ctx:      ctx,
		view:     CardListView,
		cards:    cards,
		uploader: uploader,
		tokens:   tokens,
		open:     openAudio,
		inputs:   newInputs(),
		bar:      progress.New(progress.WithGradient(accentColor, successColor)),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// WithAudioOpener replaces how the form's file path is opened.
func (m *Model) WithAudioOpener(open AudioOpener) *Model {
	m.open = open
	return m
}

func newInputs() []textinput.Model {
	path := textinput.New()
	path.Placeholder = "/path/to/story.mp3"
	path.Prompt = "File:  "
	path.CharLimit = 1024

	title := textinput.New()
	title.Placeholder = "defaults to the file name"
	title.Prompt = "Title: "
	title.CharLimit = 256

	return []textinput.Model{path, title}
}

// Init initializes the TUI by fetching the user's cards.
func (m *Model) Init() tea.Cmd {
	return m.fetchCards()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loaded {
			m.cardList.SetSize(msg.Width-4, msg.Height-8)
		}
		m.bar.Width = max(msg.Width-8, 10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CardListView:
			return m.handleCardListKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case UploadView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case cardsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.cardList = list.New(cardItems(msg.cards), list.NewDefaultDelegate(), 0, 0)
		m.cardList.Title = "Yoto Cards"
		m.cardList.SetSize(m.width-4, m.height-8)
		m.loaded = true
		return m, nil

	case progressMsg:
		m.last = tasks.ProgressEvent(msg)
		return m, m.waitForEvent()

	case uploadDoneMsg:
		m.result = msg.card
		m.err = msg.err
		m.events = nil
		m.view = ResultView
		return m, nil

	case uploadClosedMsg:
		m.events = nil
		m.view = ResultView
		return m, nil
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case CardListView:
		return m.renderCardList()
	case FormView:
		return m.renderForm()
	case UploadView:
		return m.renderUpload()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleCardListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := m.loaded && m.cardList.FilterState() == list.Filtering
	if !filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.refresh):
			return m, m.fetchCards()
		case key.Matches(msg, m.keys.enter) && m.loaded:
			if item, ok := m.cardList.SelectedItem().(cardItem); ok {
				card := item.card
				m.selected = &card
				return m, m.showForm()
			}
		}
	}

	if !m.loaded {
		return m, nil
	}
	var cmd tea.Cmd
	m.cardList, cmd = m.cardList.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CardListView
		m.formErr = ""
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m, m.focusField((m.focus + 1) % len(m.inputs))
	case key.Matches(msg, m.keys.enter):
		if m.focus == pathField {
			return m, m.focusField(titleField)
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.view = CardListView
		m.selected = nil
		m.result = nil
		m.err = nil
		m.last = tasks.ProgressEvent{}
		return m, m.fetchCards()
	}
	return m, nil
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CardListView:
		if m.loaded {
			m.cardList, cmd = m.cardList.Update(msg)
		}
	case FormView:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *Model) showForm() tea.Cmd {
	m.view = FormView
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	return m.focusField(pathField)
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		if j != i {
			m.inputs[j].Blur()
		}
	}
	return m.inputs[i].Focus()
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.inputs[pathField].Value())
	if path == "" {
		m.formErr = "a file path is required"
		return m, m.focusField(pathField)
	}

	title := strings.TrimSpace(m.inputs[titleField].Value())
	if title == "" {
		title = tasks.DefaultTitle(path)
	}

	m.formErr = ""
	m.view = UploadView
	m.last = tasks.ProgressEvent{Stage: tasks.StageUploading}
	return m, m.startUpload(path, title)
}

func (m *Model) fetchCards() tea.Cmd {
	return func() tea.Msg {
		token, err := m.tokens.ValidAccessToken(m.ctx)
		if err != nil {
			return cardsFetchedMsg{err: err}
		}
		if token == "" {
			return cardsFetchedMsg{err: shared.ErrNotAuthenticated}
		}
		cards, err := m.cards.List(m.ctx, token)
		return cardsFetchedMsg{cards: cards, err: err}
	}
}

// startUpload runs the pipeline in a goroutine. Progress events and the final result share one channel,
// so the result is always delivered after the last event.
func (m *Model) startUpload(path, title string) tea.Cmd {
	events := make(chan tea.Msg, 16)
	m.events = events
	ctx := m.ctx
	cardID := m.selected.CardID

	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)
		card, err := m.runUpload(ctx, path, title, cardID, func(ev tasks.ProgressEvent) {
			send(progressMsg(ev))
		})
		send(uploadDoneMsg{card: card, err: err})
	}()

	return m.waitForEvent()
}

func (m *Model) runUpload(ctx context.Context, path, title, cardID string, onProgress tasks.ProgressFunc) (*models.Card, error) {
	token, err := m.tokens.ValidAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	audio, closer, err := m.open(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return m.uploader.Upload(ctx, tasks.UploadRequest{
		Audio:       audio,
		Title:       title,
		CardID:      cardID,
		AccessToken: token,
	}, onProgress)
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		if events == nil {
			return uploadClosedMsg{}
		}
		msg, ok := <-events
		if !ok {
			return uploadClosedMsg{}
		}
		return msg
	}
}

func (m *Model) renderCardList() string {
	if m.err != nil {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}
	if !m.loaded {
		return styles.help.Render("Loading cards...")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.cardList.View(), helpView)
}

func (m *Model) renderForm() string {
	title := styles.title.Render(fmt.Sprintf("Replace audio on '%s'", m.selected.Title))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", styles.label.Render("Card:"), m.selected.CardID)
	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if m.formErr != "" {
		fmt.Fprintf(&b, "\n%s\n", styles.err.Render(m.formErr))
	}

	uploadKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload"))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.next, uploadKey, m.keys.back})
	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), helpView)
}

func (m *Model) renderUpload() string {
	title := styles.title.Render("Uploading")

	var stage string
	switch m.last.Stage {
	case tasks.StageUploading:
		stage = "Uploading audio..."
	case tasks.StageTranscoding:
		stage = styles.warn.Render("Waiting for transcoding...")
	case tasks.StageUpdatingCard:
		stage = "Updating card..."
	case tasks.StageComplete:
		stage = "Done"
	default:
		stage = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s %.0f%%", title, stage, m.bar.ViewAs(m.last.Progress/100), m.last.Progress)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	if m.err != nil {
		msg := fmt.Sprintf("Upload failed during %s at %.0f%%: %v", m.last.Stage, m.last.Progress, m.err)
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(msg), helpView)
	}
	if m.result == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("No result available"), helpView)
	}

	title := styles.ok.Render("✓ Card updated!")
	info := fmt.Sprintf(
		"\nCard: %s (%s)\nTracks: %d\nDuration: %s",
		m.result.Title,
		m.result.CardID,
		m.result.TrackCount(),
		shared.FormatDuration(m.result.Duration()),
	)
	if m.result.Metadata != nil && m.result.Metadata.Media != nil && m.result.Metadata.Media.ReadableFileSize != nil {
		info += fmt.Sprintf("\nSize: %.1f MB", *m.result.Metadata.Media.ReadableFileSize)
	}

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
