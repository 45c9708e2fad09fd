package charts

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Handle is a live chart registered under an identifier.
type Handle interface {
	ID() string
	Config() Config
	// SetSeries replaces labels and values without recreating the handle.
	SetSeries(labels []string, values []float64)
	// Destroy releases the underlying chart. A destroyed handle must not
	// be used again.
	Destroy()
	Destroyed() bool
	// Charter returns the chart-library object, or nil once destroyed.
	Charter() components.Charter
}

// Factory constructs a handle for id from a defaulted config.
type Factory func(id string, cfg Config) Handle

type echartsHandle struct {
	id        string
	cfg       Config
	chart     components.Charter
	destroyed bool
}

// NewEChartsHandle builds a go-echarts chart for cfg.
func NewEChartsHandle(id string, cfg Config) Handle {
	h := &echartsHandle{id: id, cfg: cfg.WithDefaults()}
	h.chart = buildChart(id, h.cfg)
	return h
}

func (h *echartsHandle) ID() string { return h.id }

func (h *echartsHandle) Config() Config { return h.cfg }

func (h *echartsHandle) SetSeries(labels []string, values []float64) {
	if h.destroyed {
		return
	}
	h.cfg.Labels = labels
	h.cfg.Values = values
	h.cfg = h.cfg.WithDefaults()
	h.chart = buildChart(h.id, h.cfg)
}

func (h *echartsHandle) Destroy() {
	h.destroyed = true
	h.chart = nil
}

func (h *echartsHandle) Destroyed() bool { return h.destroyed }

func (h *echartsHandle) Charter() components.Charter {
	if h.destroyed {
		return nil
	}
	return h.chart
}

func buildChart(id string, cfg Config) components.Charter {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Width:   "100%",
			Height:  "360px",
		}),
		charts.WithTitleOpts(opts.Title{Title: cfg.Label}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: tooltipTrigger(cfg),
		}),
		charts.WithLegendOpts(legendOpts(cfg.LegendPosition)),
	}

	switch cfg.Kind {
	case Bar:
		return buildBar(cfg, global)
	case Doughnut:
		return buildDoughnut(cfg, global)
	default:
		return buildLine(cfg, global)
	}
}

func buildLine(cfg Config, global []charts.GlobalOpts) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(yAxisOpts(cfg)),
	)...)

	data := make([]opts.LineData, len(cfg.Values))
	for i, v := range cfg.Values {
		data[i] = opts.LineData{Value: v}
	}

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(cfg.Tension > 0),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color: ColorAt(cfg.BorderColors, 0),
		}),
	}
	if cfg.Fill {
		seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{
			Opacity: float32(colorAlpha(ColorAt(cfg.BackgroundColors, 0))),
		}))
	}

	line.SetXAxis(cfg.Labels).AddSeries(cfg.Label, data, seriesOpts...)
	return line
}

func buildBar(cfg Config, global []charts.GlobalOpts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(yAxisOpts(cfg)),
	)...)

	data := make([]opts.BarData, len(cfg.Values))
	for i, v := range cfg.Values {
		data[i] = opts.BarData{
			Value: v,
			ItemStyle: &opts.ItemStyle{
				Color:       ColorAt(cfg.BackgroundColors, i),
				BorderColor: ColorAt(cfg.BorderColors, i),
			},
		}
	}

	bar.SetXAxis(cfg.Labels).AddSeries(cfg.Label, data)
	return bar
}

func buildDoughnut(cfg Config, global []charts.GlobalOpts) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(global...)

	data := make([]opts.PieData, len(cfg.Values))
	for i, v := range cfg.Values {
		name := ""
		if i < len(cfg.Labels) {
			name = cfg.Labels[i]
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: v,
			ItemStyle: &opts.ItemStyle{
				Color:       ColorAt(cfg.BackgroundColors, i),
				BorderColor: ColorAt(cfg.BorderColors, i),
			},
		}
	}

	pie.AddSeries(cfg.Label, data,
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"40%", "70%"},
		}),
	)
	return pie
}

func yAxisOpts(cfg Config) opts.YAxis {
	y := opts.YAxis{
		Name:  cfg.YAxisTitle,
		Type:  "value",
		Scale: opts.Bool(!cfg.StartsAtZero()),
	}
	if cfg.Min != nil {
		y.Min = *cfg.Min
	}
	if cfg.Max != nil {
		y.Max = *cfg.Max
	}
	return y
}

func tooltipTrigger(cfg Config) string {
	if cfg.Kind == Doughnut || cfg.TooltipMode != TooltipIndex {
		return "item"
	}
	return "axis"
}

func legendOpts(pos LegendPosition) opts.Legend {
	switch pos {
	case LegendNone:
		return opts.Legend{Show: opts.Bool(false)}
	case LegendBottom:
		return opts.Legend{Show: opts.Bool(true), Top: "bottom"}
	case LegendLeft:
		return opts.Legend{Show: opts.Bool(true), Left: "left", Orient: "vertical"}
	case LegendRight:
		return opts.Legend{Show: opts.Bool(true), Left: "right", Orient: "vertical"}
	default:
		return opts.Legend{Show: opts.Bool(true), Top: "top"}
	}
}
