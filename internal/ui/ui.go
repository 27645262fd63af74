package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/services"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	SetupView
	ConfirmView
	GenerateView
	ResultView
)

// Setup form field indices.
const (
	fieldCards = iota
	fieldMarket
	fieldTitle
	fieldSubtitle
	fieldSeed
	fieldCount
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	spotify      services.Service
	engine       *tasks.BingoEngine
	defaults     shared.DefaultsConfig
	width        int
	height       int
	playlistList list.Model
	playlists    []models.Playlist
	selected     *models.Playlist
	inputs       []textinput.Model
	focus        int
	noRepeat     bool
	progressChan chan tasks.ProgressUpdate
	done         chan generateCompleteMsg
	progress     tasks.ProgressUpdate
	result       *tasks.RunResult
	err          error
	help         help.Model
	keys         keyMap
}

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type progressUpdateMsg tasks.ProgressUpdate

type generateCompleteMsg struct {
	result *tasks.RunResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, spotify services.Service, engine *tasks.BingoEngine, defaults shared.DefaultsConfig) *Model {
	return &Model{
		ctx:      ctx,
		view:     PlaylistListView,
		spotify:  spotify,
		engine:   engine,
		defaults: defaults,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by fetching playlists from Spotify.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case SetupView:
			return m.handleSetupKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Spotify Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case generateCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	if m.view == PlaylistListView {
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case SetupView:
		return m.renderSetup()
	case ConfirmView:
		return m.renderConfirm()
	case GenerateView:
		return m.renderGenerate()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				m.selected = &pl.playlist
				m.initSetupForm()
				m.view = SetupView
				return m, textinput.Blink
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

// initSetupForm builds the card setup inputs, seeded from the config defaults
// and the selected playlist.
func (m *Model) initSetupForm() {
	m.inputs = make([]textinput.Model, fieldCount)
	m.focus = 0
	m.noRepeat = false

	cards := textinput.New()
	cards.Prompt = "Cards: "
	cards.SetValue(strconv.Itoa(m.defaults.Cards))
	cards.CharLimit = 3
	cards.Focus()
	m.inputs[fieldCards] = cards

	market := textinput.New()
	market.Prompt = "Market: "
	market.SetValue(m.defaults.Market)
	market.CharLimit = 2
	m.inputs[fieldMarket] = market

	title := textinput.New()
	title.Prompt = "Title: "
	title.SetValue(m.selected.Name)
	m.inputs[fieldTitle] = title

	subtitle := textinput.New()
	subtitle.Prompt = "Subtitle: "
	m.inputs[fieldSubtitle] = subtitle

	seed := textinput.New()
	seed.Prompt = "Seed (blank for random): "
	seed.CharLimit = 20
	m.inputs[fieldSeed] = seed
}

func (m *Model) handleSetupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "ctrl+r":
		m.noRepeat = !m.noRepeat
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.focus < fieldCount-1 {
			return m, m.setFocus(m.focus + 1)
		}
		if err := m.validateSetup(); err != nil {
			m.inputs[fieldCards].SetValue(strconv.Itoa(m.defaults.Cards))
			m.inputs[fieldSeed].SetValue("")
			return m, nil
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(idx int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = idx
	return m.inputs[m.focus].Focus()
}

// validateSetup checks the numeric form fields before confirmation.
func (m *Model) validateSetup() error {
	if _, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldCards].Value())); err != nil {
		return err
	}
	if v := strings.TrimSpace(m.inputs[fieldSeed].Value()); v != "" {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = SetupView
		return m, nil
	case "y":
		m.view = GenerateView
		return m, m.startGenerate()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = PlaylistListView
		m.selected = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.spotify.GetPlaylists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) startGenerate() tea.Cmd {
	cards, _ := strconv.Atoi(strings.TrimSpace(m.inputs[fieldCards].Value()))

	var seed *int64
	if v := strings.TrimSpace(m.inputs[fieldSeed].Value()); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = &parsed
		}
	}

	market := strings.ToUpper(strings.TrimSpace(m.inputs[fieldMarket].Value()))
	exportOpts := tasks.ExportOpts{
		Market:    market,
		OutputDir: m.defaults.CSVDir,
	}
	cardOpts := tasks.CardOpts{
		Cards:     cards,
		NoRepeat:  m.noRepeat,
		Seed:      seed,
		Title:     strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Subtitle:  strings.TrimSpace(m.inputs[fieldSubtitle].Value()),
		OutputDir: m.defaults.PDFDir,
	}

	progressChan := make(chan tasks.ProgressUpdate, 50)
	m.progressChan = progressChan
	done := make(chan generateCompleteMsg, 1)

	go func() {
		result, err := m.engine.Run(m.ctx, progressChan, m.selected.ID, exportOpts, cardOpts)
		done <- generateCompleteMsg{result: result, err: err}
		close(progressChan)
	}()

	m.done = done
	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return <-m.done
		}

		update, ok := <-m.progressChan
		if !ok {
			return <-m.done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderSetup() string {
	title := styles.title.Render(fmt.Sprintf("Card setup for '%s'", m.selected.Name))

	var fields []string
	for i := range m.inputs {
		fields = append(fields, m.inputs[i].View())
	}

	repeats := "tracks may repeat across cards"
	if m.noRepeat {
		repeats = "no track appears on more than one card"
	}
	mode := styles.warn.Render(fmt.Sprintf("Mode: %s", repeats))

	helpKeys := []key.Binding{m.keys.enter, m.keys.repeat, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, strings.Join(fields, "\n"), mode, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Generate cards for '%s'?", m.selected.Name))
	info := fmt.Sprintf(
		"\nPlaylist: %s (%d tracks)\nCards: %s\nNo repeats: %t\n",
		m.selected.Name,
		m.selected.TrackCount,
		m.inputs[fieldCards].Value(),
		m.noRepeat,
	)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderGenerate() string {
	title := styles.title.Render("Generating Bingo Cards")

	var phase string
	switch m.progress.Phase {
	case tasks.ResolvePlaylist, tasks.FetchTracks:
		phase = "Fetching playlist from Spotify..."
	case tasks.WriteCSV:
		phase = "Writing track listing..."
	case tasks.SampleCards:
		phase = fmt.Sprintf("Sampling cards (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.RenderPDF:
		phase = "Rendering PDF..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Generation failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil || m.result.Cards == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Cards Ready!")
	info := fmt.Sprintf(
		"\nPlaylist: %s (%d tracks)\nCSV: %s\nPDF: %s (%d cards)",
		m.result.Export.Export.Playlist.Name,
		m.result.Export.TrackCount,
		m.result.Export.Path,
		m.result.Cards.Path,
		len(m.result.Cards.Set),
	)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
