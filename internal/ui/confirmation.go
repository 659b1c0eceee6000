package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plantmanager/internal/model"
	"plantmanager/internal/util"
)

// Confirmation is the content of a confirmation card.
type Confirmation struct {
	Emoji    string
	Title    string
	Subtitle string
	Button   string
}

// ConfirmationModel shows a card until the user continues.
type ConfirmationModel struct {
	card Confirmation
}

type confirmedMsg struct{}

// NewConfirmationModel creates a confirmation screen for card.
func NewConfirmationModel(card Confirmation) *ConfirmationModel {
	return &ConfirmationModel{card: card}
}

func savedConfirmation(p model.SavedPlant, now time.Time) *ConfirmationModel {
	return NewConfirmationModel(Confirmation{
		Emoji:    "🤗",
		Title:    "All set",
		Subtitle: fmt.Sprintf("Now relax. We will remind you to water your %s %s.", p.Name, util.FormatWhen(p.NotifyAt, now)),
		Button:   "Great",
	})
}

// Update continues on enter or space.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", " ", "l", "right":
		return func() tea.Msg { return confirmedMsg{} }
	}
	return nil
}

// View renders the card centered in the available space.
func (m *ConfirmationModel) View(width, height int) string {
	return RenderConfirmationCard(m.card, width, height)
}

// RenderConfirmationCard renders card centered in a width x height box.
func RenderConfirmationCard(card Confirmation, width, height int) string {
	inner := lipgloss.JoinVertical(lipgloss.Center,
		ConfirmationEmojiStyle.Render(card.Emoji),
		HeadingStyle.Render(card.Title),
		SubheadingStyle.Width(min(max(width-12, 20), 56)).Align(lipgloss.Center).Render(card.Subtitle),
		"",
		ButtonStyle.Render(card.Button),
	)
	return lipgloss.Place(max(width, 0), max(height, 0), lipgloss.Center, lipgloss.Center, CardStyle.Render(inner))
}
