package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plantmanager/internal/model"
	"plantmanager/internal/plantlist"
	"plantmanager/internal/reminder"
	"plantmanager/internal/util"
)

// nearEndRows is the window at the bottom of the list in which cursor
// movement counts as scrolling towards the end.
const nearEndRows = 2

// PlantSelectModel represents the catalog screen: environment tabs over the
// paged plant list.
type PlantSelectModel struct {
	state        plantlist.State
	environments []model.Environment
	envCursor    int

	cursor int
	offset int

	spinner spinner.Model
}

// NewPlantSelectModel creates the catalog screen before anything is loaded.
func NewPlantSelectModel() *PlantSelectModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &PlantSelectModel{
		state:        plantlist.New(),
		environments: []model.Environment{model.AllEnvironments()},
		spinner:      sp,
	}
}

// SetEnvironments replaces the environment tabs and selects preferred when
// it is one of them.
func (m *PlantSelectModel) SetEnvironments(envs []model.Environment, preferred string) {
	if len(envs) == 0 {
		envs = []model.Environment{model.AllEnvironments()}
	}
	m.environments = envs
	m.envCursor = 0
	for i, env := range envs {
		if env.Key == preferred {
			m.envCursor = i
			break
		}
	}
	m.selectEnvironment()
}

// NextEnvironment moves to the next tab. It reports whether the selection changed.
func (m *PlantSelectModel) NextEnvironment() bool {
	if m.envCursor >= len(m.environments)-1 {
		return false
	}
	m.envCursor++
	m.selectEnvironment()
	return true
}

// PrevEnvironment moves to the previous tab. It reports whether the selection changed.
func (m *PlantSelectModel) PrevEnvironment() bool {
	if m.envCursor == 0 {
		return false
	}
	m.envCursor--
	m.selectEnvironment()
	return true
}

func (m *PlantSelectModel) selectEnvironment() {
	m.state = m.state.SelectEnvironment(m.environments[m.envCursor].Key)
	m.cursor = 0
	m.offset = 0
}

// BeginFetch starts fetching the current page.
func (m *PlantSelectModel) BeginFetch() (plantlist.Request, bool) {
	next, req, ok := m.state.BeginFetch()
	m.state = next
	return req, ok
}

// OnScrollNearEnd forwards the cursor's distance from the end of the list.
func (m *PlantSelectModel) OnScrollNearEnd() (plantlist.Request, bool) {
	next, req, ok := m.state.OnScrollNearEnd(m.scrollDistance())
	m.state = next
	return req, ok
}

// Apply folds a fetch result into the list.
func (m *PlantSelectModel) Apply(ev plantlist.Event) {
	m.state = m.state.Apply(ev)
	m.clampCursor()
}

// Tick advances the spinner while a fetch is outstanding.
func (m *PlantSelectModel) Tick(msg spinner.TickMsg) tea.Cmd {
	if !m.state.Busy() {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// scrollDistance reports how deep the cursor is inside the bottom window of
// the list, in units of that window. An empty list counts as fully scrolled.
func (m *PlantSelectModel) scrollDistance() float64 {
	n := len(m.state.Filtered)
	if n == 0 {
		return plantlist.ScrollThreshold
	}
	remaining := n - 1 - m.cursor
	return float64(nearEndRows-remaining) / float64(nearEndRows)
}

func (m *PlantSelectModel) clampCursor() {
	n := len(m.state.Filtered)
	if n == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// CursorDown moves the cursor down.
func (m *PlantSelectModel) CursorDown() {
	if m.cursor < len(m.state.Filtered)-1 {
		m.cursor++
		if m.cursor >= m.offset+10 {
			m.offset++
		}
	}
}

// CursorUp moves the cursor up.
func (m *PlantSelectModel) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first plant.
func (m *PlantSelectModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last loaded plant.
func (m *PlantSelectModel) JumpToBottom() {
	if len(m.state.Filtered) > 0 {
		m.cursor = len(m.state.Filtered) - 1
		if m.cursor >= 10 {
			m.offset = m.cursor - 9
		}
	}
}

// HalfPageDown moves down half a page.
func (m *PlantSelectModel) HalfPageDown(pageSize int) {
	m.cursor = min(m.cursor+max(pageSize/2, 1), max(len(m.state.Filtered)-1, 0))
	if m.cursor >= m.offset+10 {
		m.offset = m.cursor - 9
	}
}

// HalfPageUp moves up half a page.
func (m *PlantSelectModel) HalfPageUp(pageSize int) {
	m.cursor = max(m.cursor-max(pageSize/2, 1), 0)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

// SelectedPlant returns the plant under the cursor.
func (m *PlantSelectModel) SelectedPlant() *model.Plant {
	if m.cursor >= len(m.state.Filtered) {
		return nil
	}
	return &m.state.Filtered[m.cursor]
}

// View renders the catalog screen.
func (m *PlantSelectModel) View(width, height int) string {
	heading := lipgloss.JoinVertical(lipgloss.Left,
		HeadingStyle.Render("In which environment"),
		SubheadingStyle.Render("should your plant live?"),
	)
	envBar := m.renderEnvironments(width)

	bodyHeight := height - lipgloss.Height(heading) - lipgloss.Height(envBar) - 2
	body := m.renderList(width, bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, heading, envBar, body, m.renderStatus())
}

func (m *PlantSelectModel) renderEnvironments(width int) string {
	chips := make([]string, 0, len(m.environments))
	for i, env := range m.environments {
		style := ChipStyle
		if i == m.envCursor {
			style = ActiveChipStyle
		}
		chips = append(chips, style.Render(env.Title))
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, chips...))
}

func (m *PlantSelectModel) renderList(width, height int) string {
	if m.state.Loading && len(m.state.All) == 0 {
		return EmptyStateStyle.Width(width).Render(m.spinner.View() + " Loading plants...")
	}
	if len(m.state.Filtered) == 0 {
		msg := "No plants here yet."
		if !m.state.LoadedAll {
			msg += "\nPress  j  to load more."
		}
		if m.state.Err != nil && len(m.state.All) == 0 {
			msg = "Could not reach the plant catalog.\nPress  r  to retry."
		}
		return EmptyStateStyle.Width(width).Render(msg)
	}

	widths := []int{28, 34, 24}
	if extra := width - 86 - 2; extra > 0 {
		widths[1] += extra
	}
	header := renderTableRow([]string{"Plant", "Environments", "Water"}, widths, TableHeaderStyle)

	visibleHeight := max(height-1, 1)
	if m.cursor >= m.offset+visibleHeight {
		m.offset = m.cursor - visibleHeight + 1
	}

	rows := []string{header}
	for i := m.offset; i < len(m.state.Filtered) && i < m.offset+visibleHeight; i++ {
		p := m.state.Filtered[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := []string{
			util.TruncateString(p.Name, widths[0]-2),
			util.TruncateString(m.environmentTitles(p), widths[1]-2),
			util.TruncateString(reminder.Describe(p.Frequency), widths[2]-2),
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}
	return strings.Join(rows, "\n")
}

func (m *PlantSelectModel) environmentTitles(p model.Plant) string {
	titles := make([]string, 0, len(p.Environments))
	for _, key := range p.Environments {
		title := key
		for _, env := range m.environments {
			if env.Key == key {
				title = env.Title
				break
			}
		}
		titles = append(titles, title)
	}
	return strings.Join(titles, ", ")
}

func (m *PlantSelectModel) renderStatus() string {
	s := m.state
	parts := []string{fmt.Sprintf("%d plants", len(s.Filtered))}
	if s.Environment != model.AllEnvironmentsKey {
		parts[0] = fmt.Sprintf("%d/%d plants", len(s.Filtered), len(s.All))
	}
	if len(s.Filtered) > 0 {
		parts = append(parts, fmt.Sprintf("row %d/%d", m.cursor+1, len(s.Filtered)))
	}
	parts = append(parts, fmt.Sprintf("page %d", s.Page))
	switch {
	case s.LoadingMore:
		parts = append(parts, m.spinner.View()+" loading more")
	case s.LoadedAll:
		parts = append(parts, "end of catalog")
	}
	return StatusBarStyle.Render(strings.Join(parts, "  ·  "))
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
