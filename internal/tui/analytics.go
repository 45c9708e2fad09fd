package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nixlim/fuel-top/internal/analytics"
	"github.com/nixlim/fuel-top/internal/charts"
	"github.com/nixlim/fuel-top/internal/loadstate"
	"github.com/nixlim/fuel-top/internal/vehicles"
)

func (m Model) handleAnalyticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Vehicle):
		n := len(m.vehicleList())
		// -1 is "All Vehicles", then each cached vehicle in order.
		m.filterVehicle++
		if m.filterVehicle >= n {
			m.filterVehicle = -1
		}
		return m, nil

	case key.Matches(msg, m.keys.Period):
		m.period = m.period.Next()
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		cmd := m.fetchAnalytics(m.stats.Begin())
		return m, cmd
	}
	return m, nil
}

// selectedVehicleID is the vehicle_id filter, 0 for all vehicles.
func (m Model) selectedVehicleID() int {
	list := m.vehicleList()
	if m.filterVehicle < 0 || m.filterVehicle >= len(list) {
		return 0
	}
	return list[m.filterVehicle].ID
}

func (m Model) filterVehicleLabel() string {
	list := m.vehicleList()
	if m.filterVehicle < 0 || m.filterVehicle >= len(list) {
		return "All Vehicles"
	}
	return vehicles.DisplayName(list[m.filterVehicle])
}

func (m Model) renderAnalytics() string {
	dims := computeDimensions(m.width, m.height)

	filter := fmt.Sprintf("Vehicle: %s  Period: %s  %s",
		panelTitleStyle.Render(m.filterVehicleLabel()),
		panelTitleStyle.Render("Last "+m.period.String()),
		dimStyle.Render("(v/p to change, Enter to apply)"))

	var body string
	if m.stats.Phase() == loadstate.Idle {
		body = dimStyle.Render("Press Enter to load analytics")
	} else {
		body = renderRegion(m, &m.stats, "No data available for selected filters", m.renderAnalyticsData)
	}

	sections := []string{filter, "", body}
	if static := m.renderChartRow(dims, charts.CostID, charts.TripPurposeID); static != "" {
		sections = append(sections, "", static)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderAnalyticsData(ds *analytics.Dataset) string {
	stats := renderQuickStats(ds.Stats)
	dims := computeDimensions(m.width, m.height)
	return stats + "\n\n" + m.renderChartRow(dims, charts.FuelConsumptionID, charts.EfficiencyID)
}

func renderQuickStats(s analytics.Summary) string {
	return fmt.Sprintf("Est. distance %s   Avg efficiency %s   Total fuel %s",
		statValueStyle.Render(fmt.Sprintf("%.0f km", s.EstimatedDistance)),
		statValueStyle.Render(fmt.Sprintf("%.1f L/100km", s.AvgEfficiency)),
		statValueStyle.Render(fmt.Sprintf("%.1f L", s.TotalFuel)))
}

// renderChartRow draws the registered charts among ids side by side, or
// stacked on narrow terminals.
func (m Model) renderChartRow(dims panelDimensions, ids ...string) string {
	var panels []string
	for _, id := range ids {
		h, ok := m.registry.Get(id)
		if !ok {
			continue
		}
		panels = append(panels, renderBorderedPanel(charts.Draw(h, dims.chartW-4, dims.chartH), dims.chartW, dims.chartH+3))
	}
	if len(panels) == 0 {
		return ""
	}
	if dims.stacked {
		return lipgloss.JoinVertical(lipgloss.Left, panels...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}
