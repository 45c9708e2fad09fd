package charts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// parseColor understands the CSS forms used in chart configs:
// rgba(r, g, b, a), rgb(r, g, b) and #rrggbb.
func parseColor(s string) (r, g, b int, a float64, ok bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	a = 1

	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), 1, true
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return 0, 0, 0, 0, false
	}
	fn := s[:open]
	if fn != "rgb" && fn != "rgba" {
		return 0, 0, 0, 0, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return 0, 0, 0, 0, false
	}

	var rgb [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return 0, 0, 0, 0, false
		}
		rgb[i] = n
	}
	if len(parts) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || f < 0 || f > 1 {
			return 0, 0, 0, 0, false
		}
		a = f
	}
	return rgb[0], rgb[1], rgb[2], a, true
}

// colorAlpha returns the opacity of a CSS color, 1 if it has none.
func colorAlpha(s string) float64 {
	_, _, _, a, ok := parseColor(s)
	if !ok {
		return 1
	}
	return a
}

// termColor converts a CSS color to a terminal color, dropping alpha.
// Unparseable colors fall back to the default series blue.
func termColor(s string) lipgloss.Color {
	r, g, b, _, ok := parseColor(s)
	if !ok {
		r, g, b = 54, 162, 235
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}
