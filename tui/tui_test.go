// ABOUTME: Tests for the activation board TUI
// ABOUTME: Drives the model with key messages against the demo activation
package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/seed"
	"github.com/harperreed/activator/store"
)

func setupModel(t *testing.T) (Model, *activation.Service, *models.Activation) {
	t.Helper()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := activation.New(store.NewMemory(), activation.WithClock(func() time.Time { return now }))
	t.Cleanup(func() { _ = svc.Store().Close() })

	ctx := context.Background()
	a, err := seed.Demo(ctx, svc, now)
	require.NoError(t, err)
	return NewModel(ctx, svc), svc, a
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestListView(t *testing.T) {
	m, _, _ := setupModel(t)

	assert.Equal(t, ViewList, m.viewMode)
	require.Len(t, m.activations, 1)

	out := m.View()
	assert.Contains(t, out, "ACTIVATIONS")
	assert.Contains(t, out, "Summer Sampling Tour")
	assert.Contains(t, out, "$25,000.00")
}

func TestPhaseTabsFilter(t *testing.T) {
	m, _, _ := setupModel(t)

	// All -> planning; the demo activation is already in pre_event.
	m, _ = press(t, m, "tab")
	assert.Equal(t, 1, m.tab)
	assert.Empty(t, m.activations)
	assert.Contains(t, m.View(), "No activations in this phase.")

	m, _ = press(t, m, "tab")
	assert.Equal(t, models.PhasePreEvent, phaseTabs[m.tab])
	assert.Len(t, m.activations, 1)
}

func TestDashboardNavigation(t *testing.T) {
	m, svc, a := setupModel(t)

	m, _ = press(t, m, "enter")
	require.Equal(t, ViewDashboard, m.viewMode)
	require.NotNil(t, m.dashboard)
	assert.Equal(t, a.ID, m.selectedID)
	assert.Contains(t, m.View(), "SUMMER SAMPLING TOUR")

	m, _ = press(t, m, "+")
	assert.Equal(t, 321, m.dashboard.Activation.InteractionCount)

	m, _ = press(t, m, "p")
	assert.Equal(t, models.PhaseLive, m.dashboard.Activation.Phase)
	assert.Contains(t, m.message, "live")

	stored, err := svc.GetActivation(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseLive, stored.Phase)

	m, _ = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}

func TestAdvanceStopsAtWrapped(t *testing.T) {
	m, _, _ := setupModel(t)
	m, _ = press(t, m, "enter")

	for i := 0; i < 3; i++ {
		m, _ = press(t, m, "p")
	}
	assert.Equal(t, models.PhaseWrapped, m.dashboard.Activation.Phase)

	m, _ = press(t, m, "p")
	assert.Equal(t, "Already wrapped", m.message)
	assert.Equal(t, models.PhaseWrapped, m.dashboard.Activation.Phase)
}

func TestGraphView(t *testing.T) {
	m, _, _ := setupModel(t)

	m, _ = press(t, m, "g")
	require.Equal(t, ViewGraph, m.viewMode)
	assert.Contains(t, m.graphDOT, "digraph")
	assert.Contains(t, m.View(), "PIPELINE GRAPH")

	m, _ = press(t, m, "d")
	assert.Equal(t, ViewDashboard, m.viewMode)
}

func TestQuit(t *testing.T) {
	m, _, _ := setupModel(t)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestWindowResize(t *testing.T) {
	m, _, _ := setupModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := next.(Model)
	assert.Equal(t, 120, model.width)
	assert.Equal(t, 40, model.height)
	assert.Equal(t, 30, model.table.Height())
}
