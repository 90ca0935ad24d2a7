// Package tui is the interactive journal view.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/journal"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/stats"
	"github.com/julianstephens/moodlit/internal/tui/components/entries"
)

type SessionState int

const (
	StateBrowse SessionState = iota
	StateAdding
	StateConfirmDelete
)

type AddFormModel struct {
	Comment string
	Mood    models.Mood
	Date    string
}

// snapshotMsg carries a journal update into the program.
type snapshotMsg models.Snapshot

type Model struct {
	journal       *journal.Store
	settings      models.Settings
	loc           *time.Location
	state         SessionState
	keys          KeyMap
	help          help.Model
	entries       entries.Model
	form          *huh.Form
	addForm       *AddFormModel
	summary       stats.Summary
	windowDays    int
	pendingDelete *models.MoodEntry
	updates       chan models.Snapshot
	unsubscribe   func()
	status        string
	quitting      bool
	width         int
	height        int
	today         func() models.Date
}

// NewModel subscribes to j. Call Close when the program exits.
func NewModel(j *journal.Store, settings models.Settings) (Model, error) {
	loc, err := settings.Location()
	if err != nil {
		return Model{}, err
	}
	windowDays := settings.DefaultWindowDays
	if windowDays != constants.MonthWindowDays {
		windowDays = constants.WeekWindowDays
	}

	m := Model{
		journal:    j,
		settings:   settings,
		loc:        loc,
		state:      StateBrowse,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		entries:    entries.New(nil, 80, 10),
		windowDays: windowDays,
		updates:    make(chan models.Snapshot, 1),
	}
	m.today = func() models.Date { return models.Today(m.loc) }
	m.unsubscribe = j.Subscribe(m.push)
	return m, nil
}

// push runs on the journal's writer goroutine, so it never blocks. Only the
// newest snapshot matters; an unread older one is replaced.
func (m Model) push(snap models.Snapshot) {
	for {
		select {
		case m.updates <- snap:
			return
		default:
		}
		select {
		case <-m.updates:
		default:
		}
	}
}

func waitForSnapshot(ch <-chan models.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-ch)
	}
}

// Close stops listening for journal updates.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

func (m *Model) refreshSummary(list []models.MoodEntry) {
	m.summary = stats.Summarize(list, m.today(), m.windowDays, m.settings.BucketWindow)
}

func (m *Model) toggleWindow() {
	if m.windowDays == constants.WeekWindowDays {
		m.windowDays = constants.MonthWindowDays
	} else {
		m.windowDays = constants.WeekWindowDays
	}
	m.refreshSummary(m.journal.Snapshot())
}
