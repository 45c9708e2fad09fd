package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	drawTitleStyle = lipgloss.NewStyle().Bold(true)
	drawAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Draw renders h as text for a width x height terminal area. Destroyed
// handles draw as an empty string.
func Draw(h Handle, width, height int) string {
	if h == nil || h.Destroyed() {
		return ""
	}
	cfg := h.Config()
	if width < 10 {
		width = 10
	}
	if height < 4 {
		height = 4
	}

	var sb strings.Builder
	sb.WriteString(drawTitleStyle.Render(cfg.Label))
	sb.WriteString("\n")

	if len(cfg.Values) == 0 {
		sb.WriteString(drawAxisStyle.Render("no data"))
		return sb.String()
	}

	if cfg.Kind == Doughnut {
		sb.WriteString(drawShares(cfg, width))
		return sb.String()
	}
	sb.WriteString(drawColumns(cfg, width, height-1))
	return sb.String()
}

// drawShares lists each slice with its share of the total.
func drawShares(cfg Config, width int) string {
	var total float64
	labelW := 0
	for i, v := range cfg.Values {
		total += math.Max(v, 0)
		if i < len(cfg.Labels) && len(cfg.Labels[i]) > labelW {
			labelW = len(cfg.Labels[i])
		}
	}

	barMax := width - labelW - 10
	if barMax < 1 {
		barMax = 1
	}

	lines := make([]string, 0, len(cfg.Values))
	for i, v := range cfg.Values {
		label := ""
		if i < len(cfg.Labels) {
			label = cfg.Labels[i]
		}
		share := 0.0
		if total > 0 {
			share = math.Max(v, 0) / total
		}
		n := int(math.Round(share * float64(barMax)))
		style := lipgloss.NewStyle().Foreground(termColor(ColorAt(cfg.BackgroundColors, i)))
		lines = append(lines, fmt.Sprintf("%-*s %s %5.1f%%",
			labelW, label, style.Render(strings.Repeat("█", n)), share*100))
	}
	return strings.Join(lines, "\n")
}

func drawColumns(cfg Config, width, height int) string {
	plotH := height - 1
	if plotH < 2 {
		plotH = 2
	}

	lo, hi := valueRange(cfg)
	yLabels := []string{fmt.Sprintf("%.1f", hi), fmt.Sprintf("%.1f", lo)}
	yW := max(len(yLabels[0]), len(yLabels[1]))

	n := len(cfg.Values)
	colW := (width - yW - 2) / n
	if colW < 1 {
		colW = 1
	}

	levels := make([]int, n)
	for i, v := range cfg.Values {
		levels[i] = scaleLevel(v, lo, hi, plotH)
	}

	var sb strings.Builder
	for row := plotH; row >= 1; row-- {
		switch row {
		case plotH:
			sb.WriteString(drawAxisStyle.Render(fmt.Sprintf("%*s │", yW, yLabels[0])))
		case 1:
			sb.WriteString(drawAxisStyle.Render(fmt.Sprintf("%*s │", yW, yLabels[1])))
		default:
			sb.WriteString(drawAxisStyle.Render(fmt.Sprintf("%*s │", yW, "")))
		}
		for i := range cfg.Values {
			sb.WriteString(cell(cfg, i, levels[i], row, colW))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", yW+2))
	for i := range cfg.Values {
		label := ""
		if i < len(cfg.Labels) {
			label = cfg.Labels[i]
		}
		sb.WriteString(fitLabel(label, colW))
	}
	return sb.String()
}

func cell(cfg Config, i, level, row, colW int) string {
	var glyph string
	var style lipgloss.Style
	switch cfg.Kind {
	case Bar:
		if level < row {
			return strings.Repeat(" ", colW)
		}
		style = lipgloss.NewStyle().Foreground(termColor(ColorAt(cfg.BackgroundColors, i)))
		glyph = "█"
	default:
		style = lipgloss.NewStyle().Foreground(termColor(ColorAt(cfg.BorderColors, 0)))
		switch {
		case level == row:
			glyph = "●"
		case level > row && cfg.Fill:
			glyph = "░"
		default:
			return strings.Repeat(" ", colW)
		}
	}

	bar := max(colW-1, 1)
	return style.Render(strings.Repeat(glyph, bar)) + strings.Repeat(" ", colW-bar)
}

// valueRange returns the axis bounds, honouring Min, Max and BeginAtZero.
func valueRange(cfg Config) (lo, hi float64) {
	lo, hi = cfg.Values[0], cfg.Values[0]
	for _, v := range cfg.Values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if cfg.StartsAtZero() && lo > 0 {
		lo = 0
	}
	if cfg.Min != nil {
		lo = *cfg.Min
	}
	if cfg.Max != nil {
		hi = *cfg.Max
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// scaleLevel maps v onto rows 1..rows; values at or below lo map to 1.
func scaleLevel(v, lo, hi float64, rows int) int {
	frac := (v - lo) / (hi - lo)
	lvl := int(math.Round(frac*float64(rows-1))) + 1
	return min(max(lvl, 1), rows)
}

func fitLabel(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + " "
	}
	return s + strings.Repeat(" ", w-len(r))
}
