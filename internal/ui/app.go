package ui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plantmanager/internal/db"
	"plantmanager/internal/model"
	"plantmanager/internal/plantlist"
)

// Catalog is the remote plant catalog. *api.Client satisfies it.
type Catalog interface {
	plantlist.PageFetcher
	FetchEnvironments(ctx context.Context) ([]model.Environment, error)
}

// Options configures the root model.
type Options struct {
	UserName string
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	db      *sql.DB
	catalog Catalog
	now     func() time.Time

	userName string
	screen   model.Screen
	mode     model.Mode
	gState   GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	plantSelect  *PlantSelectModel
	plantSave    *PlantSaveModel
	confirmation *ConfirmationModel
	myPlants     *MyPlantsModel

	keys      KeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model. ctx bounds every network and storage call
// the UI issues; cancel it to abandon in-flight work on exit.
func New(ctx context.Context, database *sql.DB, catalog Catalog, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		ctx:         ctx,
		db:          database,
		catalog:     catalog,
		now:         now,
		userName:    opts.UserName,
		screen:      model.ScreenPlantSelect,
		mode:        model.ModeNav,
		gState:      GStateIdle,
		plantSelect: NewPlantSelectModel(),
		keys:        DefaultKeyMap(),
		prefs:       loadUIPreferences(ctx, database),
	}
}

// Init starts loading the environments and the first page of plants.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadEnvironmentsCmd(m.ctx, m.catalog),
		m.fetchPlants(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.EnvironmentsLoadedMsg:
		m.plantSelect.SetEnvironments(msg.Environments, m.prefs.LastEnvironment)
		return m, nil

	case plantPageMsg:
		m.plantSelect.Apply(msg.event)
		if failed, ok := msg.event.(plantlist.PageFailed); ok {
			m.error = fmt.Sprintf("could not load plants: %v", failed.Err)
		} else {
			m.error = ""
		}
		return m, nil

	case spinner.TickMsg:
		return m, m.plantSelect.Tick(msg)

	case model.MyPlantsLoadedMsg:
		if m.myPlants == nil {
			m.myPlants = NewMyPlantsModel(msg.Plants)
		} else {
			m.myPlants.SetPlants(msg.Plants)
		}
		m.error = ""
		return m, nil

	case model.PlantSavedMsg:
		m.pushUndoAction(m.buildSaveAction(msg))
		m.mode = model.ModeNav
		m.plantSave = nil
		m.screen = model.ScreenConfirmation
		m.confirmation = savedConfirmation(msg.Plant, m.now())
		m.error = ""
		return m, nil

	case model.PlantRemovedMsg:
		m.pushUndoAction(m.buildRemoveAction(msg))
		m.info = fmt.Sprintf("%s removed (u to undo)", msg.Removed.Name)
		m.error = ""
		return m, loadMyPlantsCmd(m.ctx, m.db)

	case editPlantLoadedMsg:
		if m.screen != model.ScreenMyPlants {
			return m, nil
		}
		return m.openEditForm(msg.plant), nil

	case editPlantMissingMsg:
		m.info = "That plant is no longer saved"
		return m, loadMyPlantsCmd(m.ctx, m.db)

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.plantSave = nil
		m.screen = model.ScreenPlantSelect
		return m, nil

	case confirmedMsg:
		m.confirmation = nil
		m.screen = model.ScreenMyPlants
		return m, loadMyPlantsCmd(m.ctx, m.db)

	case undoAppliedMsg:
		return m, m.applyUndoResult(msg)

	default:
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.keys, m.width, m.height)
	}

	var content string
	var breadcrumbParts []string

	showTabs := m.screen == model.ScreenPlantSelect || m.screen == model.ScreenMyPlants

	// header + footer + padding, tabs take 2 more lines
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	if m.error != "" {
		contentHeight--
	}
	if m.info != "" {
		contentHeight--
	}

	switch m.screen {
	case model.ScreenPlantSelect:
		breadcrumbParts = []string{"Pick a plant"}
		content = m.plantSelect.View(m.width, contentHeight)
	case model.ScreenMyPlants:
		breadcrumbParts = []string{"My plants"}
		if m.myPlants != nil {
			content = m.myPlants.View(m.width, contentHeight, m.now())
		}
	case model.ScreenPlantSave:
		breadcrumbParts = []string{"Pick a plant", "Reminder"}
		if m.plantSave != nil {
			breadcrumbParts = []string{"Pick a plant", m.plantSave.plant.Name}
			content = m.plantSave.View(m.width, contentHeight)
		}
	case model.ScreenConfirmation:
		breadcrumbParts = []string{"Done"}
		if m.confirmation != nil {
			content = m.confirmation.View(m.width, contentHeight)
		}
	}

	parts := []string{renderHeader(breadcrumbParts, m.userName, m.now(), m.width)}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}

	// Fill the available height so the footer stays at the bottom.
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(max(contentHeight, 0)).
		Render(content)
	parts = append(parts, content, RenderHelp(m.keys, m.screen, m.mode, m.width))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTabs(screen model.Screen, width int) string {
	tabs := []struct {
		name   string
		screen model.Screen
	}{
		{"Pick a plant", model.ScreenPlantSelect},
		{"My plants", model.ScreenMyPlants},
	}

	var tabStrings []string
	for _, tab := range tabs {
		style := TabStyle
		if screen == tab.screen {
			style = ActiveTabStyle
		}
		tabStrings = append(tabStrings, style.Render(tab.name))
	}

	return TabBarStyle.
		Width(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...))
}

func renderHeader(breadcrumbParts []string, userName string, now time.Time, width int) string {
	title := HeaderStyle.Render("plantmanager")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(now.Format("Mon 02 Jan")) + "  "
	if userName != "" {
		right = GreetingStyle.Render("Hello, "+userName) + BreadcrumbStyle.Render("  ·  ") + right
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			m.info = "Nothing to undo"
			return m, nil
		}
		return m, m.undoCmd()
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			m.info = "Nothing to redo"
			return m, nil
		}
		return m, m.redoCmd()
	}

	// "gg" jumps to the top.
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		switch m.screen {
		case model.ScreenPlantSelect:
			m.plantSelect.JumpToTop()
		case model.ScreenMyPlants:
			if m.myPlants != nil {
				m.myPlants.JumpToTop()
			}
		}
		return m, nil
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenPlantSelect:
		return m.handlePlantSelectNav(msg)
	case model.ScreenMyPlants:
		return m.handleMyPlantsNav(msg)
	case model.ScreenConfirmation:
		if m.confirmation != nil {
			return m, m.confirmation.Update(msg)
		}
	}
	return m, nil
}

func (m Model) handlePlantSelectNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ps := m.plantSelect

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.MyPlants):
		m.screen = model.ScreenMyPlants
		m.info = ""
		return m, loadMyPlantsCmd(m.ctx, m.db)
	case key.Matches(msg, m.keys.PrevEnv):
		if ps.PrevEnvironment() {
			return m, m.rememberEnvironment()
		}
	case key.Matches(msg, m.keys.NextEnv):
		if ps.NextEnvironment() {
			return m, m.rememberEnvironment()
		}
	case key.Matches(msg, m.keys.Down):
		ps.CursorDown()
		return m, m.scrollNearEnd()
	case key.Matches(msg, m.keys.Up):
		ps.CursorUp()
	case key.Matches(msg, m.keys.Bottom):
		ps.JumpToBottom()
		return m, m.scrollNearEnd()
	case key.Matches(msg, m.keys.HalfPageDown):
		ps.HalfPageDown(m.height / 2)
		return m, m.scrollNearEnd()
	case key.Matches(msg, m.keys.HalfPageUp):
		ps.HalfPageUp(m.height / 2)
	case key.Matches(msg, m.keys.Retry):
		return m, m.fetchPlants()
	case key.Matches(msg, m.keys.Select):
		if p := ps.SelectedPlant(); p != nil {
			m.screen = model.ScreenPlantSave
			m.mode = model.ModeInsert
			m.plantSave = NewPlantSaveModel(m.ctx, m.db, *p, m.now)
			m.error = ""
			m.info = ""
		}
	}
	return m, nil
}

func (m Model) handleMyPlantsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mp := m.myPlants
	if mp == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if mp.ConfirmingRemoval() {
		mp.CancelRemoval()
		m.info = ""
		if !key.Matches(msg, m.keys.Confirm) {
			return m, nil
		}
		if p := mp.SelectedPlant(); p != nil {
			return m, removePlantCmd(m.ctx, m.db, *p)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PickPlant):
		m.screen = model.ScreenPlantSelect
		m.info = ""
	case key.Matches(msg, m.keys.Down):
		mp.CursorDown()
	case key.Matches(msg, m.keys.Up):
		mp.CursorUp()
	case key.Matches(msg, m.keys.Bottom):
		mp.JumpToBottom()
	case key.Matches(msg, m.keys.Remove):
		if p := mp.SelectedPlant(); p != nil {
			mp.RequestRemoval()
			m.info = fmt.Sprintf("Remove %s? y to confirm, any other key to keep it", p.Name)
		}
	case key.Matches(msg, m.keys.Edit):
		if p := mp.SelectedPlant(); p != nil {
			m.info = ""
			return m, editPlantCmd(m.ctx, m.db, p.ID)
		}
	}
	return m, nil
}

// openEditForm opens the reminder form for a stored plant.
func (m Model) openEditForm(p model.SavedPlant) Model {
	m.screen = model.ScreenPlantSave
	m.mode = model.ModeInsert
	m.plantSave = NewPlantSaveModel(m.ctx, m.db, p.Plant, m.now)
	m.plantSave.SetReminderTime(p.NotifyAt)
	m.error = ""
	return m
}

// handleInsertMode routes input to the reminder form.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenPlantSave && m.plantSave != nil {
		form, cmd := m.plantSave.Update(msg)
		m.plantSave = &form
		return m, cmd
	}
	return m, nil
}

// fetchPlants starts fetching the current page when allowed.
func (m Model) fetchPlants() tea.Cmd {
	req, ok := m.plantSelect.BeginFetch()
	if !ok {
		return nil
	}
	return tea.Batch(fetchPageCmd(m.ctx, m.catalog, req), m.plantSelect.spinner.Tick)
}

// scrollNearEnd reports the cursor position to the loader and starts the next
// page fetch when it is close enough to the end.
func (m Model) scrollNearEnd() tea.Cmd {
	req, ok := m.plantSelect.OnScrollNearEnd()
	if !ok {
		return nil
	}
	return tea.Batch(fetchPageCmd(m.ctx, m.catalog, req), m.plantSelect.spinner.Tick)
}

func (m *Model) rememberEnvironment() tea.Cmd {
	m.prefs.LastEnvironment = m.plantSelect.state.Environment
	return saveUIPreferencesCmd(m.ctx, m.db, m.prefs)
}

// Messages

type plantPageMsg struct {
	event plantlist.Event
}

type editPlantLoadedMsg struct {
	plant model.SavedPlant
}

type editPlantMissingMsg struct {
	id int64
}

// Commands

func fetchPageCmd(ctx context.Context, catalog Catalog, req plantlist.Request) tea.Cmd {
	return func() tea.Msg {
		return plantPageMsg{event: plantlist.Fetch(ctx, catalog, req)}
	}
}

func loadEnvironmentsCmd(ctx context.Context, catalog Catalog) tea.Cmd {
	return func() tea.Msg {
		envs, err := catalog.FetchEnvironments(ctx)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("could not load environments: %w", err)}
		}
		return model.EnvironmentsLoadedMsg{Environments: plantlist.WithEnvironments(envs)}
	}
}

func loadMyPlantsCmd(ctx context.Context, database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		plants, err := db.LoadPlants(ctx, database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.MyPlantsLoadedMsg{Plants: plants}
	}
}

// editPlantCmd reads the stored reminder so the form never edits a stale copy.
func editPlantCmd(ctx context.Context, database *sql.DB, id int64) tea.Cmd {
	return func() tea.Msg {
		p, err := db.GetPlant(ctx, database, id)
		if errors.Is(err, db.ErrNotFound) {
			return editPlantMissingMsg{id: id}
		}
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return editPlantLoadedMsg{plant: p}
	}
}

func removePlantCmd(ctx context.Context, database *sql.DB, p model.SavedPlant) tea.Cmd {
	return func() tea.Msg {
		removed, err := db.RemovePlant(ctx, database, p.ID)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("could not remove %s: %w", p.Name, err)}
		}
		return model.PlantRemovedMsg{ID: p.ID, Removed: removed}
	}
}
