package ui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plantmanager/internal/db"
	"plantmanager/internal/model"
	"plantmanager/internal/reminder"
	"plantmanager/internal/util"
)

// PlantSaveModel shows a plant and asks when the user wants to be reminded.
type PlantSaveModel struct {
	ctx   context.Context
	db    *sql.DB
	now   func() time.Time
	plant model.Plant

	timeInput textinput.Model
	keys      FormKeyMap
	error     string
	saving    bool
}

// NewPlantSaveModel creates the reminder form for plant.
func NewPlantSaveModel(ctx context.Context, database *sql.DB, plant model.Plant, now func() time.Time) *PlantSaveModel {
	input := textinput.New()
	input.Placeholder = "08:00"
	input.CharLimit = 8
	input.Width = 10
	input.Focus()

	return &PlantSaveModel{
		ctx:       ctx,
		db:        database,
		now:       now,
		plant:     plant,
		timeInput: input,
		keys:      DefaultFormKeyMap(),
	}
}

// SetReminderTime prefills the clock input from an existing reminder.
func (m *PlantSaveModel) SetReminderTime(t time.Time) {
	m.timeInput.SetValue(util.FormatClock(t.In(m.now().Location())))
}

// Update handles input.
func (m PlantSaveModel) Update(msg tea.Msg) (PlantSaveModel, tea.Cmd) {
	switch msg := msg.(type) {
	case saveFailedMsg:
		m.saving = false
		m.error = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, func() tea.Msg {
				return model.FormCancelledMsg{}
			}
		case key.Matches(msg, m.keys.Save):
			if m.saving {
				return m, nil
			}
			record, err := m.buildRecord()
			if err != nil {
				m.error = err.Error()
				return m, nil
			}
			m.error = ""
			m.saving = true
			return m, savePlantCmd(m.ctx, m.db, record)
		}
	}

	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

// buildRecord validates the input and computes the next notification time.
func (m *PlantSaveModel) buildRecord() (model.SavedPlant, error) {
	hour, minute, err := util.ParseClockInput(m.timeInput.Value())
	if err != nil {
		return model.SavedPlant{}, err
	}
	now := m.now()
	next, err := reminder.Next(reminder.At(now, hour, minute), now, m.plant.Frequency)
	if errors.Is(err, reminder.ErrPastTime) {
		return model.SavedPlant{}, fmt.Errorf("%s already passed today, %w", util.FormatClock(reminder.At(now, hour, minute)), err)
	}
	if err != nil {
		return model.SavedPlant{}, err
	}
	return model.SavedPlant{Plant: m.plant, NotifyAt: next, SavedAt: now}, nil
}

// View renders the plant details and the reminder input.
func (m *PlantSaveModel) View(width, height int) string {
	var sections []string

	sections = append(sections, HeadingStyle.Render(m.plant.Name))
	if m.plant.About != "" {
		sections = append(sections, NormalRowStyle.Width(max(width-12, 20)).Render(m.plant.About))
	}

	var fields []string
	fields = append(fields, renderField("Environments", strings.Join(m.plant.Environments, ", ")))
	fields = append(fields, renderField("Frequency", reminder.Describe(m.plant.Frequency)))
	sections = append(sections, strings.Join(fields, "\n"))

	if m.plant.WaterTips != "" {
		sections = append(sections, TipStyle.Width(max(width-12, 20)).Render("💧 "+m.plant.WaterTips))
	}

	sections = append(sections, renderFormField("Choose the best time to be reminded", m.timeInput, true))

	if m.saving {
		sections = append(sections, HelpDescStyle.Render("Saving..."))
	}
	if m.error != "" {
		sections = append(sections, ErrorStyle.Render(m.error))
	}

	return PanelStyle.
		Width(max(width-4, 0)).
		Height(max(height-4, 0)).
		Render(strings.Join(sections, "\n\n"))
}

type saveFailedMsg struct {
	err error
}

func savePlantCmd(ctx context.Context, database *sql.DB, record model.SavedPlant) tea.Cmd {
	return func() tea.Msg {
		before, err := db.SavePlant(ctx, database, record)
		if err != nil {
			return saveFailedMsg{err: fmt.Errorf("could not save %s: %w", record.Name, err)}
		}
		return model.PlantSavedMsg{Plant: record, Before: before}
	}
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}

func renderFormField(label string, input textinput.Model, focused bool) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	return style.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		input.View(),
	))
}
