package entries

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/render"
)

type AddEntryMsg struct{}

type DeleteEntryMsg struct {
	Entry models.MoodEntry
}

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	table   table.Model
	keys    KeyMap
	entries []models.MoodEntry
}

func columns(width int) []table.Column {
	comment := width - 5 - 18 - 14 - 8
	if comment < 12 {
		comment = 12
	}
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Date", Width: 18},
		{Title: "Mood", Width: 14},
		{Title: "Comment", Width: comment},
	}
}

func New(entries []models.MoodEntry, width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := Model{table: t, keys: DefaultKeyMap()}
	m.SetEntries(entries)
	return m
}

// SetEntries replaces the rows, keeping the cursor in range.
func (m *Model) SetEntries(entries []models.MoodEntry) {
	m.entries = entries
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		comment := e.Comment
		if comment == "" {
			comment = "No comment"
		}
		rows[i] = table.Row{
			strconv.Itoa(e.ID),
			render.LongDate(e.Date),
			e.Mood.Emoji() + " " + e.Mood.String(),
			comment,
		}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (models.MoodEntry, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.entries) {
		return models.MoodEntry{}, false
	}
	return m.entries[c], true
}

func (m Model) Len() int {
	return len(m.entries)
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{Entry: e} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.entries) == 0 {
		return "\n  No entries yet.\n  Press 'a' to record your mood."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}
