// Package charts owns live chart handles keyed by identifier and derives
// chart-library configuration from series data.
package charts

type Kind string

const (
	Line     Kind = "line"
	Bar      Kind = "bar"
	Doughnut Kind = "doughnut"
)

type LegendPosition string

const (
	LegendTop    LegendPosition = "top"
	LegendBottom LegendPosition = "bottom"
	LegendLeft   LegendPosition = "left"
	LegendRight  LegendPosition = "right"
	LegendNone   LegendPosition = "none"
)

// TooltipMode selects what a hover tooltip reports: every series at the
// hovered index, or only the hovered point.
type TooltipMode string

const (
	TooltipIndex   TooltipMode = "index"
	TooltipPoint   TooltipMode = "point"
	TooltipNearest TooltipMode = "nearest"
)

const (
	DefaultBackground  = "rgba(54, 162, 235, 0.2)"
	DefaultBorder      = "rgba(54, 162, 235, 1)"
	DefaultBorderWidth = 2
	DefaultTension     = 0.4
)

// Config describes one chart. Every field is optional; see WithDefaults.
type Config struct {
	Kind   Kind
	Label  string
	Labels []string
	Values []float64

	// BackgroundColors and BorderColors hold CSS colors. A single entry
	// applies to the whole series; several are cycled per data point.
	BackgroundColors []string
	BorderColors     []string
	BorderWidth      float64
	Tension          float64
	Fill             bool

	YAxisTitle string
	// BeginAtZero defaults to true when nil.
	BeginAtZero *bool
	Min, Max    *float64

	LegendPosition LegendPosition
	TooltipMode    TooltipMode
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Kind == "" {
		c.Kind = Line
	}
	if c.Labels == nil {
		c.Labels = []string{}
	}
	if c.Values == nil {
		c.Values = []float64{}
	}
	if len(c.BackgroundColors) == 0 {
		c.BackgroundColors = []string{DefaultBackground}
	}
	if len(c.BorderColors) == 0 {
		c.BorderColors = []string{DefaultBorder}
	}
	if c.BorderWidth == 0 {
		c.BorderWidth = DefaultBorderWidth
	}
	if c.Tension == 0 {
		c.Tension = DefaultTension
	}
	if c.LegendPosition == "" {
		c.LegendPosition = LegendTop
	}
	if c.TooltipMode == "" {
		c.TooltipMode = TooltipIndex
	}
	return c
}

// StartsAtZero reports whether the value axis is pinned to zero.
func (c Config) StartsAtZero() bool {
	return c.BeginAtZero == nil || *c.BeginAtZero
}

// ColorAt picks the color for data point i, cycling through colors.
func ColorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[i%len(colors)]
}

func Bool(b bool) *bool { return &b }

func Float(f float64) *float64 { return &f }
