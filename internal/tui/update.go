package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/kdrews/cadence/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Mark):
			if item, ok := m.list.SelectedItem().(Item); ok {
				m.markDone(item)
			}
			return m, nil

		case key.Matches(msg, m.keys.Add):
			m.habitForm = &HabitFormModel{Periodicity: string(models.PeriodicityDaily)}
			m.form = newHabitForm(m.habitForm)
			m.state = StateAddHabit
			return m, m.form.Init()

		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(Item); ok {
				m.habitToDeleteID = item.Stats.Habit.ID
				m.state = StateConfirmDelete
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) markDone(item Item) {
	if item.DoneNow {
		m.status = fmt.Sprintf("%q is already completed this %s",
			item.Stats.Habit.Name, item.Stats.Habit.Periodicity.Unit())
		return
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     item.Stats.Habit.ID,
		CompletedAt: time.Now(),
	}
	if err := m.store.AddCompletion(completion); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}

	m.status = fmt.Sprintf("Recorded completion for %q", item.Stats.Habit.Name)
	m.refresh()
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateList
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		periodicity, err := models.ParsePeriodicity(m.habitForm.Periodicity)
		if err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			m.state = StateList
			return m, nil
		}

		habit := models.Habit{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(m.habitForm.Name),
			Description: m.habitForm.Description,
			Periodicity: periodicity,
			CreatedAt:   time.Now(),
		}
		if err := m.store.AddHabit(habit); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
		} else {
			m.status = fmt.Sprintf("Added habit %q", habit.Name)
			m.refresh()
		}
		m.state = StateList

	case huh.StateAborted:
		m.state = StateList
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if err := m.store.DeleteHabit(m.habitToDeleteID); err != nil {
				m.status = fmt.Sprintf("Error: %v", err)
			} else {
				m.status = "Habit deleted"
				m.refresh()
			}
			m.habitToDeleteID = ""
			m.state = StateList
		case "n", "N", "esc", "q":
			m.habitToDeleteID = ""
			m.state = StateList
		}
	}
	return m, nil
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[string]().
				Title("Periodicity").
				Options(
					huh.NewOption("daily", string(models.PeriodicityDaily)),
					huh.NewOption("weekly", string(models.PeriodicityWeekly)),
				).
				Value(&fm.Periodicity),
		),
	)
}
