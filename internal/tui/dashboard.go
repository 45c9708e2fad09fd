package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nixlim/fuel-top/internal/api"
)

func (m Model) renderDashboard() string {
	dims := computeDimensions(m.width, m.height)

	logs := renderRegion(m, &m.logs, "No recent logs found", m.renderLogList)
	trips := renderRegion(m, &m.trips, "No recent trips found", m.renderTripList)

	logsPanel := renderBorderedPanel(panelTitleStyle.Render("Recent Fuel Logs")+"\n\n"+logs, dims.logsW, dims.listH)
	tripsPanel := renderBorderedPanel(panelTitleStyle.Render("Recent Trips")+"\n\n"+trips, dims.tripsW, dims.listH)

	if dims.stacked {
		return lipgloss.JoinVertical(lipgloss.Left, logsPanel, tripsPanel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logsPanel, tripsPanel)
}

// vehicleLabel names a vehicle by make and model, or "Unknown" when the
// directory has no entry for id.
func (m Model) vehicleLabel(id int) string {
	if m.directory == nil {
		return "Unknown"
	}
	v, ok := m.directory.Lookup(id)
	if !ok {
		return "Unknown"
	}
	return strings.TrimSpace(v.Make + " " + v.Model)
}

func (m Model) renderLogList(logs []api.FuelLog) string {
	items := make([]string, len(logs))
	for i, l := range logs {
		var sb strings.Builder
		sb.WriteString(panelTitleStyle.Render(m.vehicleLabel(l.VehicleID)))
		sb.WriteString("  " + dimStyle.Render(formatDate(l.LogDate)) + "\n")
		sb.WriteString(fmt.Sprintf("%sL • %skm", humanize.Ftoa(l.FuelAmount), humanize.Commaf(l.Odometer)))
		if l.Efficiency != nil && *l.Efficiency > 0 {
			sb.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%.1f L/100km", *l.Efficiency)))
		}
		items[i] = sb.String()
	}
	return strings.Join(items, "\n")
}

func (m Model) renderTripList(trips []api.Trip) string {
	items := make([]string, len(trips))
	for i, t := range trips {
		var sb strings.Builder
		sb.WriteString(panelTitleStyle.Render(t.StartLocation + " → " + t.EndLocation))
		sb.WriteString("  " + dimStyle.Render(formatDate(t.TripDate)) + "\n")
		sb.WriteString(fmt.Sprintf("%skm • %s", humanize.Commaf(t.Distance), m.vehicleLabel(t.VehicleID)))
		if t.Purpose != "" {
			sb.WriteString(" • " + t.Purpose)
		}
		items[i] = sb.String()
	}
	return strings.Join(items, "\n")
}

// formatDate renders an API date for display, passing through anything
// that is not YYYY-MM-DD.
func formatDate(s string) string {
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
