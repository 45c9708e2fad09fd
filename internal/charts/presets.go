package charts

import "github.com/nixlim/fuel-top/internal/analytics"

// Chart identifiers used by the analytics view and the HTML export.
const (
	FuelConsumptionID = "fuelConsumptionChart"
	EfficiencyID      = "efficiencyChart"
	CostID            = "costChart"
	TripPurposeID     = "tripPurposeChart"
)

func FuelConsumptionConfig(s analytics.Series) Config {
	return Config{
		Kind:             Line,
		Label:            "Fuel Consumption (L)",
		Labels:           s.Labels,
		Values:           s.Values,
		BackgroundColors: []string{"rgba(13, 110, 253, 0.2)"},
		BorderColors:     []string{"rgba(13, 110, 253, 1)"},
		YAxisTitle:       "Liters",
		Fill:             true,
	}
}

func EfficiencyConfig(s analytics.Series) Config {
	return Config{
		Kind:             Line,
		Label:            "Fuel Efficiency (L/100km)",
		Labels:           s.Labels,
		Values:           s.Values,
		BackgroundColors: []string{"rgba(25, 135, 84, 0.2)"},
		BorderColors:     []string{"rgba(25, 135, 84, 1)"},
		YAxisTitle:       "L/100km",
		BeginAtZero:      Bool(false),
	}
}

// CostBreakdownConfig is a fixed monthly cost illustration.
func CostBreakdownConfig() Config {
	return Config{
		Kind:   Bar,
		Label:  "Monthly Cost ($)",
		Labels: []string{"Fuel", "Maintenance", "Insurance", "Taxes"},
		Values: []float64{150, 80, 120, 30},
		BackgroundColors: []string{
			"rgba(255, 99, 132, 0.7)",
			"rgba(54, 162, 235, 0.7)",
			"rgba(255, 206, 86, 0.7)",
			"rgba(75, 192, 192, 0.7)",
		},
		BorderColors: []string{
			"rgba(255, 99, 132, 1)",
			"rgba(54, 162, 235, 1)",
			"rgba(255, 206, 86, 1)",
			"rgba(75, 192, 192, 1)",
		},
		LegendPosition: LegendNone,
		YAxisTitle:     "USD",
	}
}

// TripPurposeConfig is a fixed trip distribution illustration.
func TripPurposeConfig() Config {
	return Config{
		Kind:   Doughnut,
		Label:  "Trip Distribution",
		Labels: []string{"Commute", "Business", "Personal", "Vacation"},
		Values: []float64{45, 25, 20, 10},
		BackgroundColors: []string{
			"rgba(13, 110, 253, 0.7)",
			"rgba(108, 117, 125, 0.7)",
			"rgba(25, 135, 84, 0.7)",
			"rgba(220, 53, 69, 0.7)",
		},
		BorderColors: []string{
			"rgba(13, 110, 253, 1)",
			"rgba(108, 117, 125, 1)",
			"rgba(25, 135, 84, 1)",
			"rgba(220, 53, 69, 1)",
		},
		TooltipMode: TooltipPoint,
	}
}

// RenderDataset draws the fuel and efficiency charts for ds, replacing
// any previous ones.
func RenderDataset(reg *Registry, ds *analytics.Dataset) {
	if ds == nil {
		return
	}
	reg.Render(FuelConsumptionID, FuelConsumptionConfig(ds.Fuel))
	reg.Render(EfficiencyID, EfficiencyConfig(ds.Efficiency))
}

// RenderStatic draws the fixed cost and trip distribution charts.
func RenderStatic(reg *Registry) {
	reg.Render(CostID, CostBreakdownConfig())
	reg.Render(TripPurposeID, TripPurposeConfig())
}

// UpdateDataset swaps new series into existing fuel and efficiency charts.
// It reports false, updating nothing, unless both charts are registered.
func UpdateDataset(reg *Registry, ds *analytics.Dataset) bool {
	if ds == nil {
		return false
	}
	if _, ok := reg.Get(FuelConsumptionID); !ok {
		return false
	}
	if _, ok := reg.Get(EfficiencyID); !ok {
		return false
	}
	reg.Update(FuelConsumptionID, ds.Fuel.Labels, ds.Fuel.Values)
	reg.Update(EfficiencyID, ds.Efficiency.Labels, ds.Efficiency.Values)
	return true
}
