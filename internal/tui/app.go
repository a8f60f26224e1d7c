// Package tui is the interactive terminal front end: a bio-page editor,
// analytics dashboard and automation list over the InstaAuto API.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/shivakharbanda/cm-front/internal/api"
	"github.com/shivakharbanda/cm-front/internal/config"
	"github.com/shivakharbanda/cm-front/internal/pagelist"
)

const requestTimeout = 20 * time.Second

type mode int

const (
	modeLogin mode = iota
	modeHome
	modeEditor
	modeAnalytics
	modeAutomations
	modeHelp
)

type App struct {
	cfg    *config.Config
	client *api.Client
	list   *pagelist.Controller
	log    zerolog.Logger

	mode     mode
	prevMode mode
	width    int
	height   int

	spinner spinner.Model
	loading bool
	status  string
	err     error

	login loginModel
	user  *api.User

	// editor
	cursor int

	// analytics
	pageStats *api.PageAnalytics
	itemStats *api.ItemAnalytics
	countries []api.CountryBreakdown

	// automations
	automations []api.Automation
	summary     map[string]api.AutomationSummary
	autoCursor  int
}

func NewApp(cfg *config.Config, client *api.Client, log zerolog.Logger) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	a := &App{
		cfg:     cfg,
		client:  client,
		list:    pagelist.New(client),
		log:     log,
		spinner: sp,
		login:   newLoginModel(),
	}
	if client.Session().Authenticated() {
		a.mode = modeHome
		a.loading = true
	} else {
		a.mode = modeLogin
	}
	return a
}

// Run blocks until the user quits.
func Run(cfg *config.Config, client *api.Client, log zerolog.Logger) error {
	p := tea.NewProgram(NewApp(cfg, client, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func (a *App) Init() tea.Cmd {
	if a.mode == modeLogin {
		return a.login.init()
	}
	return tea.Batch(a.spinner.Tick, a.fetchMe(), a.loadPage())
}

// Commands. Each one owns its own timeout context; results come back as
// messages on the update loop.

func (a *App) fetchMe() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := a.client.Me(ctx)
		if err != nil {
			return errMsg{err}
		}
		return loginDoneMsg{user}
	}
}

func (a *App) loadPage() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.list.Load(ctx); err != nil {
			return errMsg{err}
		}
		return editorLoadedMsg{}
	}
}

func (a *App) doLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.client.Login(ctx, email, password); err != nil {
			return errMsg{err}
		}
		user, err := a.client.Me(ctx)
		if err != nil {
			return errMsg{err}
		}
		return loginDoneMsg{user}
	}
}

func (a *App) toggleItem(item api.PageItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.list.ToggleActive(ctx, item.Type, item.ItemID, !item.Active()); err != nil {
			return errMsg{err}
		}
		return itemToggledMsg{}
	}
}

func (a *App) removeItem(item api.PageItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.list.Remove(ctx, item.Type, item.ItemID); err != nil {
			return errMsg{err}
		}
		return itemRemovedMsg{}
	}
}

func (a *App) moveItem(from, to int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.list.Reorder(ctx, from, to); err != nil {
			return errMsg{err}
		}
		return reorderedMsg{}
	}
}

func (a *App) togglePublish() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.list.TogglePublish(ctx); err != nil {
			return errMsg{err}
		}
		return publishToggledMsg{}
	}
}

func (a *App) fetchAnalytics() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page := a.list.Page()
		if page == nil {
			return errMsg{fmt.Errorf("no bio page loaded")}
		}
		params := api.AnalyticsParams{Period: "30d"}
		pageStats, err := a.client.BioAnalytics(ctx, page.ID, params)
		if err != nil {
			return errMsg{err}
		}
		itemStats, err := a.client.ItemAnalytics(ctx, page.ID, params)
		if err != nil {
			return errMsg{err}
		}
		countries, err := a.client.CountryBreakdown(ctx, page.ID, params)
		if err != nil {
			return errMsg{err}
		}
		return analyticsMsg{page: pageStats, items: itemStats, countries: countries}
	}
}

func (a *App) fetchAutomations() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		account, err := a.client.InstagramAccount(ctx)
		if err != nil {
			return errMsg{err}
		}
		if account == nil {
			return automationsMsg{}
		}
		automations, err := a.client.Automations(ctx, account.ID)
		if err != nil {
			return errMsg{err}
		}
		summary, err := a.client.AutomationsSummary(ctx)
		if err != nil {
			return errMsg{err}
		}
		return automationsMsg{automations: automations, summary: summary}
	}
}

func (a *App) toggleAutomation(auto api.Automation) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var (
			updated *api.Automation
			err     error
		)
		if auto.IsActive {
			updated, err = a.client.DeactivateAutomation(ctx, auto.ID)
		} else {
			updated, err = a.client.ActivateAutomation(ctx, auto.ID)
		}
		if err != nil {
			return errMsg{err}
		}
		return automationToggledMsg{automation: updated}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case errMsg:
		a.loading = false
		a.err = msg.err
		// An expired session anywhere drops back to the login screen.
		if errors.Is(msg.err, api.ErrSessionExpired) {
			a.mode = modeLogin
			a.user = nil
			a.login = newLoginModel()
			return a, a.login.init()
		}
		return a, nil

	case loginDoneMsg:
		a.user = msg.user
		a.err = nil
		a.mode = modeHome
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.loadPage())

	case editorLoadedMsg:
		a.loading = false
		a.err = nil
		a.clampCursor()
		return a, nil

	case itemToggledMsg, itemRemovedMsg, reorderedMsg:
		a.loading = false
		a.err = nil
		a.clampCursor()
		return a, nil

	case publishToggledMsg:
		a.loading = false
		a.err = nil
		if page := a.list.Page(); page != nil && page.IsPublished {
			a.status = "Page published."
		} else {
			a.status = "Page unpublished."
		}
		return a, nil

	case analyticsMsg:
		a.loading = false
		a.err = nil
		a.pageStats = msg.page
		a.itemStats = msg.items
		a.countries = msg.countries
		return a, nil

	case automationsMsg:
		a.loading = false
		a.err = nil
		a.automations = msg.automations
		a.summary = msg.summary
		if a.autoCursor >= len(a.automations) {
			a.autoCursor = max(0, len(a.automations)-1)
		}
		return a, nil

	case automationToggledMsg:
		a.loading = false
		a.err = nil
		for i := range a.automations {
			if a.automations[i].ID == msg.automation.ID {
				a.automations[i] = *msg.automation
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.mode == modeLogin {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	a.status = ""

	if a.mode == modeLogin {
		if msg.String() == "enter" && a.login.ready() {
			a.loading = true
			a.err = nil
			email, password := a.login.values()
			return a, tea.Batch(a.spinner.Tick, a.doLogin(email, password))
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}

	if a.mode == modeHelp {
		a.mode = a.prevMode
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.prevMode = a.mode
		a.mode = modeHelp
		return a, nil
	case "1", "h":
		a.mode = modeHome
		return a, nil
	case "2", "e":
		a.mode = modeEditor
		return a, nil
	case "3", "a":
		a.mode = modeAnalytics
		a.loading = true
		a.err = nil
		return a, tea.Batch(a.spinner.Tick, a.fetchAnalytics())
	case "4", "m":
		a.mode = modeAutomations
		a.loading = true
		a.err = nil
		return a, tea.Batch(a.spinner.Tick, a.fetchAutomations())
	}

	switch a.mode {
	case modeEditor:
		return a.handleEditorKey(msg)
	case modeAutomations:
		return a.handleAutomationsKey(msg)
	case modeHome:
		if msg.String() == "p" {
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.togglePublish())
		}
	}
	return a, nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := a.list.Items()
	switch msg.String() {
	case "j", "down":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "J", "shift+down":
		if a.cursor < len(items)-1 {
			from := a.cursor
			a.cursor++
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.moveItem(from, from+1))
		}
	case "K", "shift+up":
		if a.cursor > 0 {
			from := a.cursor
			a.cursor--
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.moveItem(from, from-1))
		}
	case " ", "t":
		if a.cursor < len(items) {
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.toggleItem(items[a.cursor]))
		}
	case "d", "x":
		if a.cursor < len(items) {
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.removeItem(items[a.cursor]))
		}
	case "p":
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.togglePublish())
	case "r":
		a.loading = true
		a.err = nil
		return a, tea.Batch(a.spinner.Tick, a.loadPage())
	}
	return a, nil
}

func (a *App) handleAutomationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.autoCursor < len(a.automations)-1 {
			a.autoCursor++
		}
	case "k", "up":
		if a.autoCursor > 0 {
			a.autoCursor--
		}
	case " ", "t":
		if a.autoCursor < len(a.automations) {
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.toggleAutomation(a.automations[a.autoCursor]))
		}
	case "r":
		a.loading = true
		a.err = nil
		return a, tea.Batch(a.spinner.Tick, a.fetchAutomations())
	}
	return a, nil
}

func (a *App) clampCursor() {
	n := len(a.list.Items())
	if a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	var body string
	switch a.mode {
	case modeLogin:
		body = a.login.view(a.width, a.height-1, a.cfg.Name())
	case modeHome:
		body = a.homeView()
	case modeEditor:
		body = a.editorView()
	case modeAnalytics:
		body = renderAnalytics(a.pageStats, a.itemStats, a.countries, a.width, a.height-3)
	case modeAutomations:
		body = renderAutomations(a.automations, a.summary, a.autoCursor, a.width, a.height-3)
	case modeHelp:
		body = a.helpView()
	}

	if a.mode == modeLogin {
		return body + "\n" + a.statusBar()
	}
	return a.headerView() + "\n" + body + "\n" + a.statusBar()
}

func (a *App) headerView() string {
	title := headerStyle.Render(a.cfg.Name())
	tabs := []string{"1 home", "2 editor", "3 analytics", "4 automations"}
	active := map[mode]int{modeHome: 0, modeEditor: 1, modeAnalytics: 2, modeAutomations: 3}
	if i, ok := active[a.mode]; ok {
		tabs[i] = itemSelectedStyle.Render(tabs[i])
	}
	right := headerInfoStyle.Render(strings.Join(tabs, "  "))

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (a *App) editorView() string {
	items := a.list.Items()

	listWidth := a.width / 2
	detailWidth := a.width - listWidth - 4
	paneHeight := a.height - 5
	if paneHeight < 3 {
		paneHeight = 3
	}

	var selected *api.PageItem
	if a.cursor < len(items) {
		selected = &items[a.cursor]
	}

	left := listPaneActiveStyle.Width(listWidth).Height(paneHeight).
		Render(renderItemList(items, a.cursor, paneHeight, listWidth-2))
	right := detailPaneStyle.Width(detailWidth).Height(paneHeight).
		Render(renderItemDetail(selected, detailWidth, paneHeight))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (a *App) homeView() string {
	page := a.list.Page()
	items := a.list.Items()

	var lines []string
	lines = append(lines, "")
	if a.user != nil {
		lines = append(lines, detailLabelStyle.Render("Account   ")+detailBodyStyle.Render(a.user.Email))
	}
	if page != nil {
		state := draftStyle.Render("draft")
		if page.IsPublished {
			state = publishedStyle.Render("published")
		}
		lines = append(lines, detailLabelStyle.Render("Bio page  ")+detailBodyStyle.Render("/"+page.Slug)+"  "+state)
		lines = append(lines, detailLabelStyle.Render("Items     ")+detailBodyStyle.Render(fmt.Sprintf("%d", len(items))))
	}
	lines = append(lines, "")
	lines = append(lines, helpDimStyle.Render("e editor · a analytics · m automations · p publish/unpublish · ? help · q quit"))

	card := formCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) helpView() string {
	rows := []string{
		itemTitleStyle.Render("Keys"),
		"",
		"1/h 2/e 3/a 4/m  switch view",
		"j/k              move cursor",
		"J/K              move item up/down",
		"space            toggle item on/off",
		"d                delete item",
		"p                publish / unpublish page",
		"r                refresh",
		"q                quit",
		"",
		helpDimStyle.Render("any key to close"),
	}
	card := helpCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center, card)
}
