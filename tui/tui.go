// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Provides an interactive board for browsing and advancing activations
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/viz"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDashboard
	ViewGraph
)

// phaseTabs filter the list view. The empty phase shows everything.
var phaseTabs = []models.Phase{
	"",
	models.PhasePlanning,
	models.PhasePreEvent,
	models.PhaseLive,
	models.PhasePostEvent,
	models.PhaseWrapped,
}

// Model is the main bubbletea model
type Model struct {
	ctx      context.Context
	svc      *activation.Service
	graphs   *viz.GraphGenerator
	viewMode ViewMode

	// List view state
	tab         int
	activations []models.Activation
	table       table.Model

	// Dashboard and graph state
	selectedID uuid.UUID
	dashboard  *activation.Dashboard
	graphDOT   string
	message    string

	// UI state
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model and loads the activation list.
func NewModel(ctx context.Context, svc *activation.Service) Model {
	m := Model{
		ctx:      ctx,
		svc:      svc,
		graphs:   viz.NewGraphGenerator(svc),
		viewMode: ViewList,
		width:    80,
		height:   24,
	}
	m.table = newActivationTable(m.height)
	m.reload()
	return m
}

// Run starts the interactive program on the alternate screen.
func Run(ctx context.Context, svc *activation.Service) error {
	p := tea.NewProgram(NewModel(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(tableHeight(m.height))
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDashboard:
		return m.renderDashboardView()
	case ViewGraph:
		return m.renderGraphView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDashboard:
		return m.handleDashboardKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
