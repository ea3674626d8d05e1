// Package tui implements the interactive exercise library browser: a
// filterable list of catalog entries beside a detail pane that renders
// the selected card as markdown.
package tui

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"fittrack/internal/library"
	"fittrack/internal/logging"
	"fittrack/internal/render"
	"fittrack/internal/tui/components"
	"fittrack/internal/tui/styles"
)

// Minimum terminal size for the split-pane view. Below this the model
// falls back to a plain resize notice.
const (
	minBrowserWidth  = 60
	minBrowserHeight = 14
)

type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Filter     key.Binding
	FocusLeft  key.Binding
	FocusRight key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		FocusLeft:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "focus list")),
		FocusRight: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "focus card")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.FocusRight, k.FocusLeft, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter, k.FocusRight, k.FocusLeft, k.Quit},
	}
}

// pane identifies which side of the split owns the keyboard.
type pane int

const (
	listPane pane = iota
	detailPane
)

// Keys the detail viewport consumes while it has focus.
var scrollKeys = []string{
	"up", "down", "k", "j", "pgup", "pgdown",
	"ctrl+u", "ctrl+d", "home", "end",
}

// exerciseItem adapts a catalog entry to the bubbles list.
type exerciseItem struct {
	ex library.Exercise
}

func (i exerciseItem) Title() string { return i.ex.Name }

func (i exerciseItem) Description() string {
	return i.ex.Category.Label() + "  " + styles.TierBadge(string(i.ex.Tier))
}

func (i exerciseItem) FilterValue() string {
	return i.ex.Name + " " + strings.Join(i.ex.Aliases, " ")
}

type BrowseModel struct {
	logger  *logging.Logger
	catalog *library.Catalog

	list     list.Model
	viewport viewport.Model
	keys     KeyMap
	help     help.Model
	notice   components.Notice

	width  int
	height int
	ready  bool

	glamourStyle string
	rendered     map[string]string

	focus pane
}

func NewBrowseModel(catalog *library.Catalog, logger *logging.Logger) *BrowseModel {
	exercises := catalog.All()
	items := make([]list.Item, len(exercises))
	for i, ex := range exercises {
		items[i] = exerciseItem{ex: ex}
	}

	exerciseList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	exerciseList.Title = "Exercises"
	exerciseList.SetShowStatusBar(false)
	exerciseList.SetFilteringEnabled(true)
	exerciseList.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	notice := components.NewNotice(
		"Exercise Library",
		"AC-joint safe exercises with safety tiers",
		"q to quit",
	)

	return &BrowseModel{
		logger:    logger,
		catalog:   catalog,
		list:      exerciseList,
		viewport:  vp,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		notice:    notice,
		rendered: make(map[string]string),
		focus:    listPane,
	}
}

// pickGlamourStyle chooses the markdown theme. GLAMOUR_STYLE wins when set
// to anything but "auto"; otherwise the terminal background decides, under
// a deadline so an unresponsive terminal cannot stall startup.
func pickGlamourStyle(deadline time.Duration) string {
	if env := os.Getenv("GLAMOUR_STYLE"); env != "" && env != "auto" {
		return env
	}

	probe := make(chan string, 1)
	go func() {
		if termenv.NewOutput(os.Stdout).HasDarkBackground() {
			probe <- "dark"
		} else {
			probe <- "light"
		}
	}()

	select {
	case theme := <-probe:
		return theme
	case <-time.After(deadline):
		return "dark"
	}
}

func (m *BrowseModel) Init() tea.Cmd {
	// Detect glamour style once (with timeout and env override) so card
	// rendering never re-queries the terminal.
	if m.glamourStyle == "" {
		m.glamourStyle = pickGlamourStyle(50 * time.Millisecond)
		m.logger.Debug("Glamour style selected", "style", m.glamourStyle)
	}
	return nil
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.logger.TraceMsg(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.notice, _ = m.notice.Update(msg)

		// Measure the rendered pane frame so borders are not clipped.
		frameW, frameH := styles.Pane.GetFrameSize()
		const leftGutter = 1
		avail := max(msg.Width-frameW*2-leftGutter, 0)

		listWidth := max(avail/3, 24)
		detailWidth := max(avail-listWidth, 30)

		chromeHeight := lipgloss.Height(m.headerView()) + lipgloss.Height(m.helpView())
		bodyHeight := max(msg.Height-chromeHeight-frameH, 5)

		m.list.SetSize(listWidth, bodyHeight)
		m.viewport.Width = detailWidth
		m.viewport.Height = bodyHeight
		m.ready = true

		// Re-render at the new wrap width.
		m.showSelectedCard()
		return m, nil

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case list.FilterMatchesMsg:
		m.list, cmd = m.list.Update(msg)
		m.showSelectedCard()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// While filtering, every key belongs to the list. The detail pane
		// follows the narrowing selection.
		if m.list.FilterState() == list.Filtering {
			m.list, cmd = m.list.Update(msg)
			m.showSelectedCard()
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.FocusRight):
			m.focus = detailPane
			return m, nil
		case key.Matches(msg, m.keys.FocusLeft):
			m.focus = listPane
			return m, nil
		}

		if m.focus == detailPane && slices.Contains(scrollKeys, msg.String()) {
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		oldName := m.selectedName()
		m.list, cmd = m.list.Update(msg)
		if name := m.selectedName(); name != "" && name != oldName {
			m.showSelectedCard()
		}
		return m, cmd
	}

	return m, nil
}

func (m *BrowseModel) selectedName() string {
	if item, ok := m.list.SelectedItem().(exerciseItem); ok {
		return item.ex.Name
	}
	return ""
}

func (m *BrowseModel) showSelectedCard() {
	item, ok := m.list.SelectedItem().(exerciseItem)
	if !ok {
		m.viewport.SetContent("No exercise selected.")
		return
	}
	m.viewport.SetContent(m.renderCard(item.ex))
	m.viewport.GotoTop()
}

// renderCard renders one card through glamour, cached per exercise,
// wrap width, and style. Render failures fall back to raw markdown.
func (m *BrowseModel) renderCard(ex library.Exercise) string {
	width := m.viewport.Width - 2
	if width <= 0 {
		width = 80
	}

	cacheKey := fmt.Sprintf("%s|%d|%s", ex.Name, width, m.glamourStyle)
	if cached, ok := m.rendered[cacheKey]; ok {
		return cached
	}

	md := render.CardMarkdown(ex)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.glamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Error("Failed to create glamour renderer", "error", err)
		return styles.ErrText.Render("Markdown rendering unavailable, showing the raw card.") + "\n\n" + md
	}

	out, err := renderer.Render(md)
	if err != nil {
		m.logger.Error("Failed to render exercise card", "exercise", ex.Name, "error", err)
		return styles.ErrText.Render("Markdown rendering unavailable, showing the raw card.") + "\n\n" + md
	}

	m.rendered[cacheKey] = out
	return out
}

func (m *BrowseModel) View() string {
	if !m.ready {
		return m.notice.Render("Loading the exercise library browser...")
	}

	if m.width < minBrowserWidth || m.height < minBrowserHeight {
		return m.notice.Render(fmt.Sprintf(
			"The window is too small for the browser (need at least %dx%d). Enlarge the terminal or press q to quit.",
			minBrowserWidth, minBrowserHeight))
	}

	// Highlight whichever pane owns the keyboard.
	listStyle, detailStyle := styles.Pane, styles.Pane
	if m.focus == listPane {
		listStyle = styles.PaneActive
	} else {
		detailStyle = styles.PaneActive
	}

	listStyle = listStyle.Width(m.list.Width()).Height(m.list.Height())
	detailStyle = detailStyle.Width(m.viewport.Width).Height(m.viewport.Height)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(m.list.View()),
		detailStyle.Render(m.viewport.View()))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(), styles.ContentBox.Render(panes), m.helpView())
}

func (m *BrowseModel) headerView() string {
	title := styles.Title.Render("Exercise Library")
	subtitle := styles.Subtitle.Render(
		fmt.Sprintf("%d exercises with AC-joint safety tiers", m.catalog.Len()))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	return styles.HeaderBox.Render(header)
}

func (m *BrowseModel) helpView() string {
	return styles.HelpBox.Render(styles.Help.Render(m.help.View(m.keys)))
}
