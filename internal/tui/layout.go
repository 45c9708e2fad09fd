package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nixlim/fuel-top/internal/loadstate"
	"github.com/nixlim/fuel-top/internal/toast"
)

const (
	minWidth  = 40
	minHeight = 10

	headerHeight = 1

	listPanelHeight = 14
)

type panelDimensions struct {
	logsW, tripsW int
	listH         int
	stacked       bool
	chartW        int
	chartH        int
}

// computeDimensions splits the width between the two recent lists, or
// stacks them when the terminal is narrow.
func computeDimensions(totalW, totalH int) panelDimensions {
	if totalW < minWidth {
		totalW = minWidth
	}
	if totalH < minHeight {
		totalH = minHeight
	}

	d := panelDimensions{listH: listPanelHeight}

	if totalW >= 2*minWidth {
		d.logsW = totalW / 2
		d.tripsW = totalW - d.logsW
	} else {
		d.logsW = totalW
		d.tripsW = totalW
		d.stacked = true
	}

	d.chartW = totalW / 2
	if d.chartW < minWidth {
		d.chartW = totalW
	}
	d.chartH = (totalH - headerHeight - 6) / 2
	if d.chartH < 6 {
		d.chartH = 6
	}
	if d.chartH > 16 {
		d.chartH = 16
	}
	return d
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("69"))

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("28")).
				Padding(0, 1)

	toastDangerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("160")).
				Padding(0, 1)

	toastInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)
)

func renderBorderedPanel(content string, w, h int) string {
	contentH := h - 2
	if contentH < 1 {
		contentH = 1
	}

	lines := strings.Split(content, "\n")
	if len(lines) > contentH {
		lines = lines[:contentH]
		content = strings.Join(lines, "\n")
	}

	return panelBorderStyle.
		Width(w - 2).
		Height(contentH).
		Render(content)
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// renderRegion draws the branch of r's current phase. Success content
// comes from body.
func renderRegion[T any](m Model, r *loadstate.Region[T], empty string, body func(T) string) string {
	switch r.Phase() {
	case loadstate.Success:
		return body(r.Data())
	case loadstate.Empty:
		return dimStyle.Render(empty)
	case loadstate.Error:
		return errorStyle.Render(r.Err().Error()) + "\n" + dimStyle.Render("press r to retry")
	default:
		return m.spinner.View() + " Loading..."
	}
}

func (m Model) renderHeader() string {
	title := " fuel-top"
	viewLabel := " [" + m.view.String() + "]"
	indicators := " " + dimStyle.Render(m.cfg.API.BaseURL)
	help := m.headerHelp()

	padding := m.width - lipgloss.Width(title) - lipgloss.Width(viewLabel) - lipgloss.Width(indicators) - lipgloss.Width(help)
	if padding < 0 {
		padding = 0
	}

	return headerStyle.Width(m.width).Render(title + viewLabel + indicators + strings.Repeat(" ", padding) + help)
}

func (m Model) headerHelp() string {
	switch m.view {
	case ViewAnalytics:
		return "v:Vehicle  p:Period  Enter:Apply  r:Reload  Tab:View  q:Quit "
	case ViewFuelLog, ViewTrip:
		return "Ctrl+S:Submit  Esc:Back  Ctrl+C:Quit "
	default:
		return "f:Log Fuel  t:Trip  a:Analytics  r:Reload  Tab:View  q:Quit "
	}
}

// renderToasts lists toasts that have not yet expired, oldest first.
func (m Model) renderToasts() string {
	active := m.toasts.Active(m.now())
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, len(active))
	for i, t := range active {
		switch t.Level {
		case toast.Danger:
			lines[i] = toastDangerStyle.Render(t.Message)
		case toast.Info:
			lines[i] = toastInfoStyle.Render(t.Message)
		default:
			lines[i] = toastSuccessStyle.Render(t.Message)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}
