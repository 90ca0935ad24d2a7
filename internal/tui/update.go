package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/tui/components/entries"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.entries.SetSize(msg.Width/2, msg.Height-8)
		return m, nil

	case snapshotMsg:
		m.entries.SetEntries(msg.Entries)
		m.refreshSummary(msg.Entries)
		return m, waitForSnapshot(m.updates)
	}

	switch m.state {
	case StateAdding:
		return m.updateAdding(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Window):
			m.toggleWindow()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case entries.AddEntryMsg:
		m.addForm = &AddFormModel{Mood: models.MoodNormal, Date: m.today().String()}
		m.form = NewAddForm(m.addForm)
		m.status = ""
		m.state = StateAdding
		return m, m.form.Init()

	case entries.DeleteEntryMsg:
		e := msg.Entry
		m.pendingDelete = &e
		m.state = StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateBrowse
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if entry, err := m.submitAdd(*m.addForm); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Recorded entry #%d", entry.ID)
		}
		m.state = StateBrowse
	case huh.StateAborted:
		m.state = StateBrowse
	}
	return m, cmd
}

// submitAdd validates the form values and records the entry.
func (m Model) submitAdd(f AddFormModel) (models.MoodEntry, error) {
	if strings.TrimSpace(f.Comment) == "" {
		return models.MoodEntry{}, errors.New("comment is required")
	}
	if !f.Mood.Valid() {
		return models.MoodEntry{}, errors.New("pick a mood")
	}
	date := m.today()
	if strings.TrimSpace(f.Date) != "" {
		d, err := models.ParseDate(strings.TrimSpace(f.Date))
		if err != nil {
			return models.MoodEntry{}, err
		}
		date = d
	}
	entry := m.journal.Add(f.Comment, date, f.Mood)
	logger.Info("Mood recorded", "id", entry.ID, "mood", entry.Mood, "source", "tui")
	return entry, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch msgKey.String() {
	case "y", "Y":
		if m.pendingDelete != nil {
			if m.journal.Delete(m.pendingDelete.ID) {
				m.status = fmt.Sprintf("Deleted entry #%d", m.pendingDelete.ID)
			} else {
				m.status = fmt.Sprintf("Entry #%d was already gone", m.pendingDelete.ID)
			}
		}
		m.pendingDelete = nil
		m.state = StateBrowse
	case "n", "N", "esc", "q":
		m.pendingDelete = nil
		m.state = StateBrowse
	}
	return m, nil
}

func NewAddForm(f *AddFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How was your day?").
				Value(&f.Comment).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("comment is required")
					}
					return nil
				}),
			huh.NewSelect[models.Mood]().
				Title("Mood").
				Options(
					huh.NewOption(models.MoodGood.Emoji()+" Good", models.MoodGood),
					huh.NewOption(models.MoodNormal.Emoji()+" Normal", models.MoodNormal),
					huh.NewOption(models.MoodBad.Emoji()+" Bad", models.MoodBad),
				).
				Value(&f.Mood),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&f.Date).
				Validate(func(s string) error {
					_, err := models.ParseDate(strings.TrimSpace(s))
					return err
				}),
		),
	)
}
