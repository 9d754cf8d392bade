// internal/tui/app.go
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"prodview/internal/catalog"
	"prodview/internal/export"
	"prodview/internal/loader"
	"prodview/internal/remote"
)

type mode int

const (
	modeBrowse mode = iota
	modeDetail
	modeEdit
	modeCreate
)

// banner is the transient status line under the table. Success banners
// expire on a tick; error banners stay until the next attempt.
type banner struct {
	text  string
	isErr bool
	gen   int
}

// Model is the terminal render surface over the catalog state machine.
// All state transitions happen in Update on bubbletea's event loop;
// remote calls run as commands and re-enter as completion messages, so
// the store never needs a lock.
type Model struct {
	store  *catalog.Store
	ctrl   *remote.Controller
	source string

	loaded  bool
	loadErr string

	mode   mode
	cursor int

	search        textinput.Model
	searchFocused bool

	detailID int64
	edit     form
	create   form

	banner banner

	width  int
	height int
}

type (
	loadedMsg struct {
		records []catalog.Product
		err     error
	}
	completionMsg struct{ comp remote.Completion }
	bannerTickMsg struct{ gen int }
	exportDoneMsg struct {
		name string
		err  error
	}
)

// New builds the browser around a bulk load source and the remote API.
func New(source string, api remote.API) Model {
	store := catalog.NewStore()

	search := textinput.New()
	search.Placeholder = "search titles"
	search.Prompt = "/ "
	search.CharLimit = 64

	return Model{
		store:  store,
		ctrl:   remote.NewController(api, store),
		source: source,
		search: search,
	}
}

func (m Model) Init() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		records, err := loader.Fetch(context.Background(), source)
		return loadedMsg{records: records, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		if err := m.store.Load(msg.records); err != nil {
			m.loadErr = err.Error()
			return m, nil
		}
		m.loaded = true
		return m, nil

	case completionMsg:
		return m.resolve(msg.comp)

	case bannerTickMsg:
		if msg.gen == m.banner.gen && !m.banner.isErr {
			m.banner.text = ""
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("export failed: %v", msg.err))
		} else {
			m.setSuccess(fmt.Sprintf("exported %s", msg.name))
			return m, m.expireBanner(remote.CreateBannerFor)
		}
		return m, nil

	case tea.KeyMsg:
		// A failed load leaves only reload-or-quit.
		if m.loadErr != "" {
			switch msg.String() {
			case "r":
				m.loadErr = ""
				return m, m.Init()
			case "q", "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}
		if !m.loaded {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.mode {
		case modeDetail:
			return m.updateDetail(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeCreate:
			return m.updateCreate(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "esc", "enter":
			m.searchFocused = false
			m.search.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		// Live filter: every keystroke recomputes the view.
		m.store.SetSearch(m.search.Value())
		m.cursor = 0
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		return m, m.search.Focus()
	case "t":
		m.store.SortBy(catalog.SortTitle)
		m.cursor = 0
	case "p":
		m.store.SortBy(catalog.SortPrice)
		m.cursor = 0
	case "left", "h":
		m.store.Prev()
		m.cursor = 0
	case "right", "l":
		m.store.Next()
		m.cursor = 0
	case "g":
		m.store.GoTo(1)
		m.cursor = 0
	case "G":
		m.store.GoTo(m.store.Meta().TotalPages)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.store.Page())-1 {
			m.cursor++
		}
	case "+":
		m.store.SetPerPage(m.store.PageState().PerPage + 5)
	case "-":
		m.store.SetPerPage(m.store.PageState().PerPage - 5)
	case "enter":
		page := m.store.Page()
		if m.cursor < len(page) {
			m.detailID = page[m.cursor].ID
			m.mode = modeDetail
		}
	case "n":
		m.create = newCreateForm()
		m.mode = modeCreate
	case "e":
		return m, m.exportCmd()
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeBrowse
	case "e":
		p, ok := m.store.Find(m.detailID)
		if !ok {
			m.mode = modeBrowse
			return m, nil
		}
		m.edit = newEditForm(p)
		m.mode = modeEdit
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel discards the draft and returns to the read-only view.
		m.mode = modeDetail
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.edit.cycle(msg.String() == "shift+tab" || msg.String() == "up")
		return m, nil
	case "enter":
		if m.ctrl.Pending(remote.ActionUpdate) {
			return m, nil // control is disabled while a save is in flight
		}
		call, err := m.ctrl.BeginUpdate(m.edit.editDraft(m.detailID))
		if err != nil {
			m.edit.errMsg = err.Error()
			return m, nil
		}
		m.edit.errMsg = ""
		m.banner.text = ""
		return m, runCall(call)
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.update(msg)
	return m, cmd
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.create.cycle(msg.String() == "shift+tab" || msg.String() == "up")
		return m, nil
	case "enter":
		if m.ctrl.Pending(remote.ActionCreate) {
			return m, nil
		}
		call, err := m.ctrl.BeginCreate(m.create.createDraft())
		if err != nil {
			m.create.errMsg = err.Error()
			return m, nil
		}
		m.create.errMsg = ""
		m.banner.text = ""
		return m, runCall(call)
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.create, cmd = m.create.update(msg)
	return m, cmd
}

// runCall performs the remote request off the event loop. The result
// re-enters Update as a completionMsg; only then does state change.
func runCall(call *remote.Call) tea.Cmd {
	return func() tea.Msg {
		return completionMsg{comp: call.Do(context.Background())}
	}
}

func (m Model) resolve(comp remote.Completion) (tea.Model, tea.Cmd) {
	out := m.ctrl.Resolve(comp)
	if out.Stale {
		return m, nil
	}

	switch out.Action {
	case remote.ActionCreate:
		if out.Err != nil {
			m.create.errMsg = out.Err.Error()
			return m, nil
		}
		// Success closes the creation form after the banner.
		m.mode = modeBrowse
		m.cursor = 0
		m.setSuccess(fmt.Sprintf("created product %d", out.Product.ID))
		return m, m.expireBanner(remote.CreateBannerFor)
	default:
		if out.Err != nil {
			m.edit.errMsg = out.Err.Error()
			return m, nil
		}
		m.mode = modeDetail
		m.setSuccess("product updated")
		return m, m.expireBanner(remote.UpdateBannerFor)
	}
}

func (m *Model) setSuccess(text string) {
	m.banner = banner{text: text, gen: m.banner.gen + 1}
}

func (m *Model) setError(text string) {
	m.banner = banner{text: text, isErr: true, gen: m.banner.gen + 1}
}

func (m Model) expireBanner(after time.Duration) tea.Cmd {
	gen := m.banner.gen
	return tea.Tick(after, func(time.Time) tea.Msg {
		return bannerTickMsg{gen: gen}
	})
}

func (m Model) exportCmd() tea.Cmd {
	page := m.store.Page()
	return func() tea.Msg {
		name, err := writeExport(page)
		return exportDoneMsg{name: name, err: err}
	}
}

func writeExport(page []catalog.Product) (string, error) {
	name := export.Filename(time.Now())
	f, err := os.Create(filepath.Clean(name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := export.Write(f, page); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
