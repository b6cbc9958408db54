package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const browserVisibleDays = 14

type calendarKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Today     key.Binding
	Persisted key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newCalendarKeyMap() calendarKeyMap {
	return calendarKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous day")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next day")),
		PrevWeek:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "week back")),
		NextWeek:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "week ahead")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Persisted: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stored plans on/off")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k calendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextWeek, k.Help, k.Quit}
}

func (k calendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Today},
		{k.PrevWeek, k.NextWeek},
		{k.Persisted, k.Help, k.Quit},
	}
}

// projectionLoadedMsg carries a finished projection into the browser.
type projectionLoadedMsg struct {
	resp *contract.CalendarProjectionResponse
	err  error
}

// calendarBrowser lists the projected days of a range and shows the plan
// of the selected one. Moving past either end shifts the range by a week.
type calendarBrowser struct {
	ctx   context.Context
	app   *App
	req   contract.CalendarProjectionRequest
	today domain.CalendarDate

	resp    *contract.CalendarProjectionResponse
	cursor  int
	loading bool
	err     error

	keys calendarKeyMap
	help help.Model
}

func newCalendarBrowser(ctx context.Context, app *App, req contract.CalendarProjectionRequest) (*calendarBrowser, error) {
	if _, err := domain.ParseDateRange(req.From, req.To); err != nil {
		return nil, err
	}
	return &calendarBrowser{
		ctx:     ctx,
		app:     app,
		req:     req,
		today:   app.today(),
		loading: true,
		keys:    newCalendarKeyMap(),
		help:    help.New(),
	}, nil
}

func (m *calendarBrowser) Init() tea.Cmd {
	return m.load()
}

func (m *calendarBrowser) load() tea.Cmd {
	ctx, app, req := m.ctx, m.app, m.req
	return func() tea.Msg {
		resp, err := app.Projection.Project(ctx, req)
		return projectionLoadedMsg{resp: resp, err: err}
	}
}

// shift moves the requested range by days and reloads it.
func (m *calendarBrowser) shift(days int) tea.Cmd {
	rng, err := domain.ParseDateRange(m.req.From, m.req.To)
	if err != nil {
		m.err = err
		return nil
	}
	from, errFrom := rng.From.AddDays(days)
	to, errTo := rng.To.AddDays(days)
	if errFrom != nil || errTo != nil {
		return nil
	}
	m.req.From, m.req.To = from.String(), to.String()
	m.loading = true
	return m.load()
}

func (m *calendarBrowser) plans() []*domain.DailyPlan {
	if m.resp == nil {
		return nil
	}
	return m.resp.Projection.Plans()
}

func (m *calendarBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectionLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		first := m.resp == nil
		m.resp = msg.resp
		if first {
			m.cursor = m.indexOf(m.today)
		}
		m.cursor = min(max(m.cursor, 0), max(len(m.plans())-1, 0))
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor == 0 {
				return m, m.shift(-1)
			}
			m.cursor--
		case key.Matches(msg, m.keys.Down):
			if m.cursor >= len(m.plans())-1 {
				return m, m.shift(1)
			}
			m.cursor++
		case key.Matches(msg, m.keys.PrevWeek):
			return m, m.shift(-7)
		case key.Matches(msg, m.keys.NextWeek):
			return m, m.shift(7)
		case key.Matches(msg, m.keys.Today):
			if i := m.indexOf(m.today); i >= 0 {
				m.cursor = i
			}
		case key.Matches(msg, m.keys.Persisted):
			m.req.IncludePersistedPlans = !m.req.IncludePersistedPlans
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m *calendarBrowser) indexOf(d domain.CalendarDate) int {
	for i, p := range m.plans() {
		if p.Date().Equal(d) {
			return i
		}
	}
	return -1
}

func (m *calendarBrowser) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Calendar %s → %s", m.req.From, m.req.To)))
	b.WriteString("\n")
	mode := "recomputed"
	if m.req.IncludePersistedPlans {
		mode = "stored plans shown"
	}
	b.WriteString(formatter.Dim(mode))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + FormatError(m.err)))
		b.WriteString("\n")
	case m.resp == nil:
		b.WriteString(formatter.Dim("Projecting..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.dayList())
		b.WriteString("\n")
		if plans := m.plans(); len(plans) > 0 {
			sel := plans[m.cursor]
			persisted := false
			for _, d := range m.resp.PersistedDates {
				persisted = persisted || d.Equal(sel.Date())
			}
			b.WriteString(formatter.FormatDailyPlan(&contract.DailyPlanResponse{
				Plan:       sel,
				SnapshotID: m.resp.Projection.SnapshotID(),
				Reused:     persisted,
			}, m.today))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// dayList renders a window of days around the cursor.
func (m *calendarBrowser) dayList() string {
	plans := m.plans()
	start := 0
	if len(plans) > browserVisibleDays {
		start = min(max(m.cursor-browserVisibleDays/2, 0), len(plans)-browserVisibleDays)
	}
	end := min(start+browserVisibleDays, len(plans))

	selected := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	var b strings.Builder
	for i := start; i < end; i++ {
		p := plans[i]
		label := formatter.HumanDate(p.Date(), m.today)
		summary := formatter.Dim("rest")
		if !p.IsRestDay() {
			summary = formatter.RenderBudget(p.Required().Minutes(), p.Available().Minutes(), 8)
		}
		line := fmt.Sprintf("%-16s %s", label, summary)
		if i == m.cursor {
			b.WriteString(selected.Render("▸ ") + selected.Render(fmt.Sprintf("%-16s", label)) + " " + summary)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
