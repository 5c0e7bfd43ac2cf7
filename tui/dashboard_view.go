// ABOUTME: Dashboard and graph views for a single activation
// ABOUTME: Lets the operator advance the phase and tally walk-up interactions
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/activator/viz"
)

func (m *Model) loadDashboard() {
	d, err := m.svc.Dashboard(m.ctx, m.selectedID)
	if err != nil {
		m.err = err
		m.dashboard = nil
		return
	}
	m.err = nil
	m.dashboard = d
}

func (m *Model) loadGraph() {
	dot, err := m.graphs.Generate(m.ctx, viz.GraphPipeline, m.selectedID)
	if err != nil {
		m.err = err
		m.graphDOT = ""
		return
	}
	m.err = nil
	m.graphDOT = dot
}

func (m Model) renderDashboardView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("DASHBOARD"))
	s.WriteString("\n\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.dashboard != nil:
		s.WriteString(viz.RenderDashboard(m.dashboard, true))
	}
	s.WriteString("\n")

	if m.message != "" {
		s.WriteString(messageStyle.Render(m.message))
		s.WriteString("\n")
	}

	help := []string{
		"p: Advance phase",
		"+: Record interaction",
		"g: Graph",
		"Esc: Back",
		"q: Quit",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
		m.message = ""
		m.reload()
		return m, nil
	case "p":
		if m.dashboard != nil {
			if _, ok := m.dashboard.Activation.Phase.Next(); !ok {
				m.message = "Already wrapped"
				return m, nil
			}
		}
		a, err := m.svc.AdvancePhase(m.ctx, m.selectedID)
		if err != nil {
			m.message = fmt.Sprintf("Cannot advance: %v", err)
			return m, nil
		}
		m.message = fmt.Sprintf("Moved to %s", a.Phase)
		m.loadDashboard()
		return m, nil
	case "+", "i":
		if _, err := m.svc.RecordInteractions(m.ctx, m.selectedID, 1); err != nil {
			m.message = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.message = ""
		m.loadDashboard()
		return m, nil
	case "g":
		m.loadGraph()
		m.viewMode = ViewGraph
		return m, nil
	}
	return m, nil
}

func (m Model) renderGraphView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("PIPELINE GRAPH"))
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		s.WriteString(m.graphDOT)
	}
	s.WriteString("\n")

	s.WriteString(helpStyle.Render("d: Dashboard • Esc: Back • q: Quit"))
	return s.String()
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
		m.reload()
		return m, nil
	case "d":
		m.loadDashboard()
		m.viewMode = ViewDashboard
		return m, nil
	}
	return m, nil
}
