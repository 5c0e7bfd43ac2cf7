// ABOUTME: Activation list view with phase tabs
// ABOUTME: Renders a bubbles table and handles list navigation keys
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/viz"
)

func newActivationTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Brand", Width: 18},
		{Title: "Phase", Width: 11},
		{Title: "Event", Width: 11},
		{Title: "Budget", Width: 14},
	}
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
}

func tableHeight(height int) int {
	if height < 14 {
		return 4
	}
	return height - 10
}

// reload fetches activations for the current tab and refreshes the table rows.
func (m *Model) reload() {
	all, err := m.svc.ListActivations(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	phase := phaseTabs[m.tab]
	m.activations = nil
	for _, a := range all {
		if phase == "" || a.Phase == phase {
			m.activations = append(m.activations, a)
		}
	}

	rows := make([]table.Row, 0, len(m.activations))
	for _, a := range m.activations {
		event := "-"
		if a.EventDate != nil {
			event = a.EventDate.Format("2006-01-02")
		}
		rows = append(rows, table.Row{
			a.Name,
			a.Brand,
			string(a.Phase),
			event,
			viz.FormatCents(a.BudgetTotal),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ACTIVATIONS"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case len(m.activations) == 0:
		s.WriteString("No activations in this phase.")
	default:
		s.WriteString(m.table.View())
	}
	s.WriteString("\n\n")

	if m.message != "" {
		s.WriteString(messageStyle.Render(m.message))
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, phase := range phaseTabs {
		label := "All"
		if phase != "" {
			label = strings.ReplaceAll(string(phase), "_", " ")
		}
		if i == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch phase",
		"Enter: Dashboard",
		"g: Graph",
		"r: Refresh",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) selected() (models.Activation, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.activations) {
		return models.Activation{}, false
	}
	return m.activations[i], true
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.tab = (m.tab + 1) % len(phaseTabs)
		m.reload()
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + len(phaseTabs) - 1) % len(phaseTabs)
		m.reload()
		return m, nil
	case "r":
		m.message = ""
		m.reload()
		return m, nil
	case "enter":
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.selectedID = a.ID
		m.message = ""
		m.loadDashboard()
		m.viewMode = ViewDashboard
		return m, nil
	case "g":
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.selectedID = a.ID
		m.loadGraph()
		m.viewMode = ViewGraph
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
