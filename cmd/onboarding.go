package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"plantmanager/internal/ui"
)

// Settings is the user-editable configuration stored in config.yaml.
type Settings struct {
	UserName  string `yaml:"user_name,omitempty"`
	APIURL    string `yaml:"api_url,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	Onboarded bool   `yaml:"onboarded"`
}

func settingsPath(configDir string) string {
	return filepath.Join(configDir, "config.yaml")
}

func loadSettings(configDir string) (Settings, error) {
	data, err := os.ReadFile(settingsPath(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", settingsPath(configDir), err)
	}
	return settings, nil
}

func saveSettings(configDir string, settings Settings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(settingsPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings Settings) bool {
	if settings.Onboarded {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type onboardingStep int

const (
	stepName onboardingStep = iota
	stepDone
)

type onboardingModel struct {
	step      onboardingStep
	nameInput textinput.Model
	settings  Settings
	status    string
	width     int
	height    int
}

func newOnboardingModel(settings Settings) onboardingModel {
	in := textinput.New()
	in.Placeholder = "Your name"
	in.CharLimit = 40
	in.Prompt = "› "
	in.TextStyle = lipgloss.NewStyle().Foreground(ui.ColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	in.SetValue(settings.UserName)
	in.Focus()

	return onboardingModel{
		step:      stepName,
		nameInput: in,
		settings:  settings,
	}
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.step {
		case stepName:
			switch msg.String() {
			case "enter":
				name := strings.TrimSpace(m.nameInput.Value())
				if name == "" {
					m.status = "Tell us your name to continue."
					return m, nil
				}
				m.settings.UserName = name
				m.settings.Onboarded = true
				m.status = ""
				m.step = stepDone
				return m, nil
			case "esc", "ctrl+c":
				// Skip for good; the greeting just stays anonymous.
				m.settings.Onboarded = true
				m.step = stepDone
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		case stepDone:
			switch msg.String() {
			case "enter", " ", "q", "esc", "ctrl+c":
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 8)

	var content string
	if m.step == stepDone {
		content = ui.RenderConfirmationCard(ui.Confirmation{
			Emoji:    "😄",
			Title:    "Ready",
			Subtitle: fmt.Sprintf("Now let's start taking care of your plants, %s.", m.settings.UserName),
			Button:   "Start",
		}, width, contentHeight)
	} else {
		content = m.renderNameCard(width, contentHeight)
	}

	return lipgloss.NewStyle().
		Foreground(ui.ColorText).
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + ui.HeaderStyle.Render("plantmanager") + ui.BreadcrumbStyle.Render(" › Welcome")
	right := ui.BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return ui.TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderFooter(width int) string {
	if m.step == stepDone {
		return ui.FooterStyle.Width(width).Render("enter start")
	}
	return ui.FooterStyle.Width(width).Render("enter continue  esc skip")
}

func (m onboardingModel) renderNameCard(width, height int) string {
	cardWidth := min(72, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	body := []string{
		ui.HeadingStyle.Render("😃"),
		"",
		ui.HeadingStyle.Render("How should we"),
		ui.HeadingStyle.Render("call you?"),
		"",
		ui.ActiveBorderStyle.Padding(0, 1).Width(max(30, cardWidth-14)).Render(m.nameInput.View()),
	}
	if m.status != "" {
		body = append(body, "", ui.ErrorStyle.Render(m.status))
	}
	body = append(body, "", ui.SubheadingStyle.Render("You can change this later in ~/.plantmanager/config.yaml"))

	card := ui.PanelStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center, body...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func runOnboarding(configDir string, settings Settings) (Settings, error) {
	prog := tea.NewProgram(newOnboardingModel(settings), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return Settings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return Settings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if err := saveSettings(configDir, m.settings); err != nil {
		return Settings{}, err
	}
	return m.settings, nil
}
