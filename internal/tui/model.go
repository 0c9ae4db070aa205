package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kdrews/cadence/internal/analytics"
	"github.com/kdrews/cadence/internal/storage"
)

type SessionState int

const (
	StateList SessionState = iota
	StateAddHabit
	StateConfirmDelete
)

type HabitFormModel struct {
	Name        string
	Description string
	Periodicity string
}

type Model struct {
	store           storage.Provider
	state           SessionState
	keys            KeyMap
	help            help.Model
	list            list.Model
	form            *huh.Form
	habitForm       *HabitFormModel
	habitToDeleteID string
	status          string
	quitting        bool
	width           int
	height          int
}

func NewModel(store storage.Provider) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	m := Model{
		store: store,
		state: StateList,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		list:  l,
	}
	m.refresh()
	return m
}

// refresh reloads habits and their streaks from the store.
func (m *Model) refresh() {
	stats, err := analytics.All(m.store, time.Now())
	if err != nil {
		m.status = fmt.Sprintf("Error loading habits: %v", err)
		return
	}

	items := make([]list.Item, len(stats))
	for i, s := range stats {
		items[i] = Item{
			Stats:   s,
			DoneNow: s.Current > 0 && !s.Broken,
		}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}
