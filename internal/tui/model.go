package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sksahoo1435/scintillate-project/internal/logging"
	"github.com/sksahoo1435/scintillate-project/internal/pagination"
	"github.com/sksahoo1435/scintillate-project/internal/resolver"
	"github.com/sksahoo1435/scintillate-project/internal/selection"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
	tuiactions "github.com/sksahoo1435/scintillate-project/internal/tui/actions"
	tuiplatform "github.com/sksahoo1435/scintillate-project/internal/tui/platform"
	tuistate "github.com/sksahoo1435/scintillate-project/internal/tui/state"
	tuitheme "github.com/sksahoo1435/scintillate-project/internal/tui/theme"
	tuiview "github.com/sksahoo1435/scintillate-project/internal/tui/view"
)

type Service interface {
	tuiactions.Service
	Window() pagination.Window
	Entries() []swapi.Entry
	Count() int
	IsFavorite(entry swapi.Entry) bool
	Favorites() []swapi.Entry
	Select(index int, entry swapi.Entry) (selection.Route, error)
	CloseDetail()
}

type screen int

const (
	screenList screen = iota
	screenDetail
	screenFavorites
)

func (s screen) String() string {
	switch s {
	case screenDetail:
		return "detail"
	case screenFavorites:
		return "favorites"
	default:
		return "list"
	}
}

const maxPageButtons = 9

type clearStatusMsg struct {
	id int
}

type Model struct {
	ctx       context.Context
	service   Service
	theme     tuitheme.Theme
	spinner   spinner.Model
	screen    screen
	returnTo  screen
	entries   []swapi.Entry
	window    pagination.Window
	count     int
	favorites []swapi.Entry
	cursor    int
	favCursor int
	route     selection.Route
	detail    resolver.Snapshot
	width     int
	height    int
	loading   bool
	status    string
	statusID  int
	err       error
	openURLFn func(string) error
	copyURLFn func(string) error
}

// NewModel builds the root model. ctx carries the logger into every command.
func NewModel(ctx context.Context, service Service) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := Model{
		ctx:       ctx,
		service:   service,
		theme:     tuitheme.Default(),
		spinner:   sp,
		window:    pagination.Window{Current: 1, Total: 1},
		openURLFn: tuiplatform.OpenURLInBrowser,
		copyURLFn: tuiplatform.CopyToClipboard,
		width:     80,
	}
	if service != nil {
		m.entries = service.Entries()
		m.window = service.Window()
		m.count = service.Count()
		m.favorites = service.Favorites()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, tuiactions.LoadPageCmd(m.ctx, m.service, 1))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tuiactions.PageLoadSuccessMsg:
		m.loading = false
		if !msg.Accepted {
			return m.setStatus(fmt.Sprintf("Page %d is out of range", msg.Page))
		}
		m.err = nil
		m.entries = m.service.Entries()
		m.window = m.service.Window()
		m.count = m.service.Count()
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.entries))
		return m.setStatus(fmt.Sprintf("Loaded page %d in %s", msg.Page, msg.Duration.Round(time.Millisecond)))
	case tuiactions.PageLoadErrorMsg:
		if msg.Superseded {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		logging.FromContext(m.ctx).Warn().Err(msg.Err).Int("page", msg.Page).Msg("page load failed")
		return m, nil
	case tuiactions.FavoriteToggleSuccessMsg:
		m.err = nil
		m.favorites = m.service.Favorites()
		m.favCursor = tuistate.ClampCursor(m.favCursor, len(m.favorites))
		return m.setStatus(msg.Status)
	case tuiactions.FavoriteToggleErrorMsg:
		m.err = msg.Err
		return m, nil
	case tuiactions.DetailResolvedMsg:
		if m.screen != screenDetail || msg.Route != m.route {
			return m, nil
		}
		m.detail = msg.Snapshot
		return m, nil
	case tuiactions.DetailSupersededMsg:
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.err = nil
		return m.setStatus(msg.Status)
	case tuiactions.OpenURLErrorMsg:
		m.err = msg.Err
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenDetail:
			return m.updateDetail(msg)
		case screenFavorites:
			return m.updateFavorites(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = tuistate.ClampCursor(m.cursor-1, len(m.entries))
		return m, nil
	case "down", "j":
		m.cursor = tuistate.ClampCursor(m.cursor+1, len(m.entries))
		return m, nil
	case "left", "h":
		return m.requestPage(m.window.Current - 1)
	case "right", "l":
		return m.requestPage(m.window.Current + 1)
	case "r":
		return m.requestPage(m.window.Current)
	case "F":
		m.screen = screenFavorites
		m.favorites = m.service.Favorites()
		m.favCursor = tuistate.ClampCursor(m.favCursor, len(m.favorites))
		return m, nil
	}

	if n, ok := tuistate.DigitPage(key); ok {
		return m.requestPage(n)
	}

	entry, ok := m.currentEntry()
	if !ok {
		return m, nil
	}
	switch key {
	case "enter":
		return m.openDetail(m.cursor, entry, screenList)
	case "f":
		return m, tuiactions.ToggleFavoriteCmd(m.ctx, m.service, entry)
	case "y":
		return m.copyURL(entry.URL)
	case "o":
		return m.openURL(entry.URL)
	}
	return m, nil
}

func (m Model) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace", "F":
		m.screen = screenList
		return m, nil
	case "up", "k":
		m.favCursor = tuistate.ClampCursor(m.favCursor-1, len(m.favorites))
		return m, nil
	case "down", "j":
		m.favCursor = tuistate.ClampCursor(m.favCursor+1, len(m.favorites))
		return m, nil
	}

	if len(m.favorites) == 0 {
		return m, nil
	}
	entry := m.favorites[tuistate.ClampCursor(m.favCursor, len(m.favorites))]
	switch msg.String() {
	case "enter":
		return m.openDetail(m.favCursor, entry, screenFavorites)
	case "f":
		return m, tuiactions.ToggleFavoriteCmd(m.ctx, m.service, entry)
	case "y":
		return m.copyURL(entry.URL)
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.service.CloseDetail()
		m.screen = m.returnTo
		m.route = selection.Route{}
		m.detail = resolver.Snapshot{}
		return m, nil
	}

	if m.detail.Entry == nil {
		return m, nil
	}
	entry := *m.detail.Entry
	switch msg.String() {
	case "f":
		return m, tuiactions.ToggleFavoriteCmd(m.ctx, m.service, entry)
	case "y":
		return m.copyURL(entry.URL)
	case "o":
		return m.openURL(entry.URL)
	}
	return m, nil
}

func (m Model) requestPage(n int) (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	m.loading = true
	m.err = nil
	return m, tuiactions.LoadPageCmd(m.ctx, m.service, n)
}

func (m Model) openDetail(index int, entry swapi.Entry, from screen) (tea.Model, tea.Cmd) {
	route, err := m.service.Select(index, entry)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.screen = screenDetail
	m.returnTo = from
	m.route = route
	m.detail = resolver.Snapshot{Status: resolver.Loading, ID: route.EntryID}
	return m, tuiactions.ResolveDetailCmd(m.ctx, m.service, route)
}

func (m Model) copyURL(raw string) (tea.Model, tea.Cmd) {
	url, err := tuiplatform.ValidateReferenceURL(raw)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, tuiactions.CopyURLCmd(url, m.copyURLFn)
}

func (m Model) openURL(raw string) (tea.Model, tea.Cmd) {
	url, err := tuiplatform.ValidateReferenceURL(raw)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, tuiactions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	m.statusID++
	m.status = status
	return m, clearStatusCmd(m.statusID, 3*time.Second)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) currentEntry() (swapi.Entry, bool) {
	if len(m.entries) == 0 {
		return swapi.Entry{}, false
	}
	return m.entries[tuistate.ClampCursor(m.cursor, len(m.entries))], true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(tuiview.Header(m.screen.String(), m.theme))
	b.WriteString("\n")
	b.WriteString(tuiview.Toolbar(m.screen.String()))
	b.WriteString("\n\n")

	switch m.screen {
	case screenDetail:
		b.WriteString(m.detailView())
	case screenFavorites:
		b.WriteString(m.favoritesView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	if m.screen == screenList {
		b.WriteString(tuiview.ListFooter(m.window, m.count, len(m.favorites), m.theme))
		b.WriteString("\n")
		buttons := tuistate.PageButtons(m.window.Total, m.window.Current, maxPageButtons)
		b.WriteString(tuiview.PageButtonsLine(buttons, m.window.Current, m.window.HasPrev(), m.window.HasNext(), m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) listView() string {
	if len(m.entries) == 0 {
		if m.loading {
			return m.spinner.View() + " Loading entries...\n"
		}
		return "No entries available.\n"
	}
	var b strings.Builder
	for i, entry := range m.entries {
		b.WriteString(tuiview.RenderEntryLine(tuiview.EntryLineParams{
			Entry:    entry,
			Position: (m.window.Current-1)*pagination.PageSize + i,
			Active:   i == m.cursor,
			Favorite: m.service != nil && m.service.IsFavorite(entry),
			Width:    m.width,
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) favoritesView() string {
	if len(m.favorites) == 0 {
		return "No favorites yet. Press f on an entry to add it.\n"
	}
	height := m.height - 8
	start, end := tuistate.CenteredWindow(len(m.favorites), m.favCursor, height)
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(tuiview.RenderEntryLine(tuiview.EntryLineParams{
			Entry:    m.favorites[i],
			Position: i,
			Active:   i == m.favCursor,
			Favorite: true,
			Width:    m.width,
		}, m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	favorite := false
	if m.detail.Entry != nil && m.service != nil {
		favorite = m.service.IsFavorite(*m.detail.Entry)
	}
	return tuiview.RenderDetail(tuiview.DetailParams{
		Snapshot: m.detail,
		Variant:  selection.VariantFor(m.route.Selection),
		Favorite: favorite,
		Width:    m.width,
		Spinner:  m.spinner.View(),
	}, m.theme) + "\n"
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	loading := m.loading || (m.screen == screenDetail && m.detail.Status == resolver.Loading)
	return tuiview.Message(loading, m.status, warning, m.theme)
}
