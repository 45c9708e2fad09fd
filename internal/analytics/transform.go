package analytics

// Series is an ordered set of labels and values driving one chart.
type Series struct {
	Labels []string
	Values []float64
}

// Summary holds the quick stats shown next to the charts.
type Summary struct {
	TotalFuel float64
	// AvgEfficiency is the mean of the monthly averages, not a weighted
	// recomputation from raw totals.
	AvgEfficiency     float64
	EstimatedDistance float64
}

// Dataset is the chart-ready form of an analytics response.
type Dataset struct {
	Labels     []string
	Fuel       Series
	Efficiency Series
	Stats      Summary
}

// Transform reshapes records into chart series and summary stats.
// It returns nil for empty input: no data is not an error.
func Transform(records []Record) *Dataset {
	if len(records) == 0 {
		return nil
	}

	labels := make([]string, len(records))
	fuel := make([]float64, len(records))
	eff := make([]float64, len(records))

	var totalFuel, effSum float64
	for i, r := range records {
		labels[i] = r.Month
		fuel[i] = float64(r.TotalFuel)
		eff[i] = float64(r.AvgEfficiency)
		totalFuel += fuel[i]
		effSum += eff[i]
	}
	avgEff := effSum / float64(len(records))

	return &Dataset{
		Labels:     labels,
		Fuel:       Series{Labels: labels, Values: fuel},
		Efficiency: Series{Labels: labels, Values: eff},
		Stats: Summary{
			TotalFuel:         totalFuel,
			AvgEfficiency:     avgEff,
			EstimatedDistance: EstimatedDistance(totalFuel, avgEff),
		},
	}
}

// EstimatedDistance converts litres and L/100km into kilometres. It is 0
// unless both inputs are positive.
func EstimatedDistance(totalFuel, avgEfficiency float64) float64 {
	if totalFuel <= 0 || avgEfficiency <= 0 {
		return 0
	}
	return totalFuel / avgEfficiency * 100
}
