// Package tui provides the interactive telemetry events browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/git-triage/internal/domain"
)

// Layout heights in lines.
const (
	chromeHeight = 6 // title and help footer
	headerHeight = 2 // table header and its bottom border
)

// EventsModel is the bubbletea model for browsing telemetry events.
// Fields are ordered to minimize memory padding.
type EventsModel struct {
	keys       KeyMap
	styles     Styles
	help       help.Model
	table      table.Model
	events     []domain.StoredEvent
	repo       domain.RepoRef
	height     int
	showDetail bool
	quitting   bool
}

// NewEventsModel creates a browser over events, which are ordered newest first.
func NewEventsModel(repo domain.RepoRef, events []domain.StoredEvent) EventsModel {
	styles := DefaultStyles()
	t := table.New(
		table.WithColumns(eventColumns()),
		table.WithRows(eventRows(events)),
		table.WithFocused(true),
		table.WithHeight(min(len(events), 15)+headerHeight),
	)
	t.SetStyles(styles.tableStyles())

	return EventsModel{
		keys:   DefaultKeyMap(),
		styles: styles,
		help:   help.New(),
		table:  t,
		events: events,
		repo:   repo,
	}
}

func eventColumns() []table.Column {
	return []table.Column{
		{Title: "Generated", Width: 24},
		{Title: "Issue", Width: 7},
		{Title: "Track", Width: 10},
		{Title: "Milestone", Width: 14},
		{Title: "Actions", Width: 40},
	}
}

func eventRows(events []domain.StoredEvent) []table.Row {
	rows := make([]table.Row, 0, len(events))
	for _, e := range events {
		p := e.Payload
		rows = append(rows, table.Row{
			p.GeneratedAt,
			fmt.Sprintf("#%d", p.Issue.Number),
			valueOr(p.Classification.Track, "-"),
			valueOr(p.Issue.Milestone, "-"),
			strings.Join(p.Classification.Actions, ", "),
		})
	}
	return rows
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// Init implements tea.Model.
func (m EventsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m EventsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - chromeHeight; h > 1 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the event under the cursor, or nil when there are none.
func (m EventsModel) Selected() *domain.StoredEvent {
	if len(m.events) == 0 {
		return nil
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.events) {
		return nil
	}
	return &m.events[i]
}

// View implements tea.Model.
func (m EventsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Telemetry events for %s (%d)", m.repo, len(m.events))))
	b.WriteString("\n")

	if len(m.events) == 0 {
		b.WriteString(m.styles.Empty.Render("No events recorded yet."))
	} else {
		b.WriteString(m.table.View())
		if m.showDetail {
			if e := m.Selected(); e != nil {
				b.WriteString("\n")
				b.WriteString(m.detailView(e))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

func (m EventsModel) detailView(e *domain.StoredEvent) string {
	p := e.Payload
	c := p.Classification
	line := func(k, v string) string {
		return m.styles.DetailKey.Render(k) + " " + v
	}

	violations := "-"
	if len(c.Violations) > 0 {
		violations = m.styles.Violation.Render(strings.Join(c.Violations, ", "))
	}
	lines := []string{
		line("title", p.Issue.Title),
		line("labels", strings.Join(p.Issue.Labels, ", ")),
		line("track", valueOr(c.Track, "-")),
		line("violations", violations),
		line("event id", p.EventID),
		line("file", e.Path),
	}
	return m.styles.Detail.Render(strings.Join(lines, "\n"))
}
