package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"plantmanager/internal/model"
	"plantmanager/internal/reminder"
	"plantmanager/internal/util"
)

// MyPlantsModel represents the saved plants screen, soonest watering first.
type MyPlantsModel struct {
	plants []model.SavedPlant
	cursor int
	offset int

	confirmRemove bool
}

// NewMyPlantsModel creates the saved plants screen.
func NewMyPlantsModel(plants []model.SavedPlant) *MyPlantsModel {
	m := &MyPlantsModel{}
	m.SetPlants(plants)
	return m
}

// SetPlants replaces the list, keeping the cursor in range.
func (m *MyPlantsModel) SetPlants(plants []model.SavedPlant) {
	m.plants = append([]model.SavedPlant(nil), plants...)
	m.confirmRemove = false
	m.clampCursor()
}

func (m *MyPlantsModel) clampCursor() {
	if len(m.plants) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.plants) {
		m.cursor = len(m.plants) - 1
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// RequestRemoval asks for confirmation before removing the selected plant.
func (m *MyPlantsModel) RequestRemoval() {
	if len(m.plants) > 0 {
		m.confirmRemove = true
	}
}

// ConfirmingRemoval reports whether a removal is awaiting confirmation.
func (m *MyPlantsModel) ConfirmingRemoval() bool {
	return m.confirmRemove
}

// CancelRemoval clears a pending removal.
func (m *MyPlantsModel) CancelRemoval() {
	m.confirmRemove = false
}

// CursorDown moves the cursor down.
func (m *MyPlantsModel) CursorDown() {
	if m.cursor < len(m.plants)-1 {
		m.cursor++
		if m.cursor >= m.offset+10 {
			m.offset++
		}
	}
}

// CursorUp moves the cursor up.
func (m *MyPlantsModel) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the top of the list.
func (m *MyPlantsModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the bottom of the list.
func (m *MyPlantsModel) JumpToBottom() {
	if len(m.plants) > 0 {
		m.cursor = len(m.plants) - 1
		if m.cursor >= 10 {
			m.offset = m.cursor - 9
		}
	}
}

// SelectedPlant returns the currently selected plant.
func (m *MyPlantsModel) SelectedPlant() *model.SavedPlant {
	if len(m.plants) == 0 || m.cursor >= len(m.plants) {
		return nil
	}
	return &m.plants[m.cursor]
}

// View renders the spotlight and the upcoming waterings.
func (m *MyPlantsModel) View(width, height int, now time.Time) string {
	if len(m.plants) == 0 {
		emptyMsg := `    No plants yet.
    Press  p  to pick one!`
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(emptyMsg)
	}

	first := m.plants[0]
	spotlight := SpotlightStyle.
		Width(max(width-4, 0)).
		Render("💧 " + util.FormatNextWatering(first.Name, first.NotifyAt, now))

	title := LabelStyle.Padding(1, 1, 0, 1).Render("Next waterings")

	widths := []int{28, 24, 26}
	if extra := width - 78 - 2; extra > 0 {
		widths[2] += extra
	}
	header := renderTableRow([]string{"Plant", "Water at", "Frequency"}, widths, TableHeaderStyle)

	visibleHeight := max(height-lipgloss.Height(spotlight)-lipgloss.Height(title)-3, 1)
	if m.cursor >= m.offset+visibleHeight {
		m.offset = m.cursor - visibleHeight + 1
	}

	var rows []string
	for i := m.offset; i < len(m.plants) && i < m.offset+visibleHeight; i++ {
		p := m.plants[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		when := util.FormatWhen(p.NotifyAt, now)
		if !p.NotifyAt.After(now) && i != m.cursor {
			when = lipgloss.NewStyle().Foreground(ColorYellow).Render(when)
		}
		cells := []string{
			util.TruncateString(p.Name, widths[0]-2),
			when,
			util.TruncateString(reminder.Describe(p.Frequency), widths[2]-2),
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("Saved plants: %d  ·  row %d/%d", len(m.plants), m.cursor+1, len(m.plants)))
	if m.confirmRemove {
		if p := m.SelectedPlant(); p != nil {
			status = ErrorStyle.Render(fmt.Sprintf("Remove %s?  y yes  ·  any other key no", p.Name))
		}
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		spotlight,
		title,
		header,
		strings.Join(rows, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}
