// Package report renders the analytics charts to a standalone HTML page.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nixlim/fuel-top/internal/analytics"
	"github.com/nixlim/fuel-top/internal/charts"
)

// ErrNoData is returned when the analytics endpoint has no records for the
// requested filters.
var ErrNoData = errors.New("no data available for selected filters")

// Source fetches monthly fuel consumption.
type Source interface {
	FuelConsumption(ctx context.Context, period analytics.Period, vehicleID int) ([]analytics.Record, error)
}

type Options struct {
	Period    analytics.Period
	VehicleID int
	Title     string
	// Static adds the fixed cost and trip distribution charts.
	Static bool
}

// Generate fetches analytics for opts and writes the chart page to w.
// The dataset is returned so callers can print the quick stats.
func Generate(ctx context.Context, src Source, opts Options, w io.Writer) (*analytics.Dataset, error) {
	records, err := src.FuelConsumption(ctx, opts.Period, opts.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("fetching analytics: %w", err)
	}
	ds := analytics.Transform(records)
	if ds == nil {
		return nil, ErrNoData
	}

	reg := charts.NewRegistry()
	defer reg.Close()

	charts.RenderDataset(reg, ds)
	if opts.Static {
		charts.RenderStatic(reg)
	}

	if err := reg.WriteHTML(w, opts.Title); err != nil {
		return nil, err
	}
	return ds, nil
}

// WriteFile is Generate into a newly created file at path. A partially
// written file is removed on failure.
func WriteFile(ctx context.Context, src Source, opts Options, path string) (*analytics.Dataset, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating report file: %w", err)
	}

	ds, err := Generate(ctx, src, opts, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing report file: %w", cerr)
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return ds, nil
}

// FormatStats renders the quick stats line shown after an export.
func FormatStats(s analytics.Summary) string {
	return fmt.Sprintf("%.0f km · %.1f L/100km · %.1f L",
		s.EstimatedDistance, s.AvgEfficiency, s.TotalFuel)
}
