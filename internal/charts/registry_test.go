package charts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/nixlim/fuel-top/internal/analytics"
)

type fakeHandle struct {
	id        string
	cfg       Config
	destroyed bool
	updates   int
}

func (f *fakeHandle) ID() string     { return f.id }
func (f *fakeHandle) Config() Config { return f.cfg }
func (f *fakeHandle) SetSeries(labels []string, values []float64) {
	f.cfg.Labels, f.cfg.Values = labels, values
	f.updates++
}
func (f *fakeHandle) Destroy()                    { f.destroyed = true }
func (f *fakeHandle) Destroyed() bool             { return f.destroyed }
func (f *fakeHandle) Charter() components.Charter { return nil }

func TestRegistry_RenderTwiceDestroysPrevious(t *testing.T) {
	var built []*fakeHandle
	reg := NewRegistry(WithFactory(func(id string, cfg Config) Handle {
		h := &fakeHandle{id: id, cfg: cfg}
		built = append(built, h)
		return h
	}))

	reg.Render("a", Config{Label: "first"})
	reg.Render("a", Config{Label: "second"})

	if len(built) != 2 {
		t.Fatalf("want 2 handles constructed, got %d", len(built))
	}
	if !built[0].destroyed {
		t.Error("first handle should be destroyed before replacement")
	}
	if built[1].destroyed {
		t.Error("second handle should be live")
	}
	if reg.Len() != 1 {
		t.Errorf("want 1 live handle, got %d", reg.Len())
	}
	h, ok := reg.Get("a")
	if !ok || h.Config().Label != "second" {
		t.Errorf("registry should hold the second handle, got %+v", h)
	}
}

func TestRegistry_RenderAppliesDefaults(t *testing.T) {
	reg := NewRegistry()
	h := reg.Render("x", Config{})
	cfg := h.Config()

	if cfg.Kind != Line {
		t.Errorf("kind: want line, got %s", cfg.Kind)
	}
	if ColorAt(cfg.BackgroundColors, 0) != DefaultBackground {
		t.Errorf("background: want %s, got %v", DefaultBackground, cfg.BackgroundColors)
	}
	if ColorAt(cfg.BorderColors, 0) != DefaultBorder {
		t.Errorf("border: want %s, got %v", DefaultBorder, cfg.BorderColors)
	}
	if cfg.BorderWidth != 2 || cfg.Tension != 0.4 {
		t.Errorf("width/tension: want 2/0.4, got %v/%v", cfg.BorderWidth, cfg.Tension)
	}
	if !cfg.StartsAtZero() {
		t.Error("value axis should start at zero by default")
	}
	if cfg.LegendPosition != LegendTop || cfg.TooltipMode != TooltipIndex {
		t.Errorf("legend/tooltip: want top/index, got %s/%s", cfg.LegendPosition, cfg.TooltipMode)
	}
	if cfg.Labels == nil || cfg.Values == nil {
		t.Error("labels and values should default to empty slices")
	}
}

func TestRegistry_UpdateUnknownIsNoop(t *testing.T) {
	reg := NewRegistry()
	if reg.Update("missing", []string{"Jan"}, []float64{1}) {
		t.Error("update of unknown id should report false")
	}
	if reg.Len() != 0 {
		t.Errorf("update must not register a chart, got %d", reg.Len())
	}
}

func TestRegistry_UpdateKeepsHandle(t *testing.T) {
	reg := NewRegistry()
	h := reg.Render("fuel", FuelConsumptionConfig(analytics.Series{
		Labels: []string{"Jan"}, Values: []float64{10},
	}))

	if !reg.Update("fuel", []string{"Jan", "Feb"}, []float64{10, 20}) {
		t.Fatal("update of registered id should report true")
	}
	got, _ := reg.Get("fuel")
	if got != h {
		t.Error("update should mutate the existing handle in place")
	}
	if len(got.Config().Values) != 2 {
		t.Errorf("want 2 values after update, got %v", got.Config().Values)
	}
	if got.Config().Label != "Fuel Consumption (L)" {
		t.Errorf("update should keep the label, got %q", got.Config().Label)
	}
}

func TestRegistry_DestroyAndClose(t *testing.T) {
	reg := NewRegistry()
	a := reg.Render("a", Config{})
	b := reg.Render("b", Config{})

	if !reg.Destroy("a") {
		t.Error("destroy of registered id should report true")
	}
	if reg.Destroy("a") {
		t.Error("second destroy should report false")
	}
	if !a.Destroyed() || a.Charter() != nil {
		t.Error("destroyed handle should release its chart")
	}

	reg.Close()
	if !b.Destroyed() {
		t.Error("close should destroy remaining handles")
	}
	if reg.Len() != 0 || len(reg.IDs()) != 0 {
		t.Errorf("registry should be empty after close, got %v", reg.IDs())
	}
}

func TestRegistry_IDsKeepFirstRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Render("b", Config{})
	reg.Render("a", Config{})
	reg.Render("b", Config{})

	ids := reg.IDs()
	if strings.Join(ids, ",") != "b,a" {
		t.Errorf("want [b a], got %v", ids)
	}
}

func TestRegistry_WriteHTML(t *testing.T) {
	reg := NewRegistry()
	RenderDataset(reg, analytics.Transform([]analytics.Record{
		{Month: "2024-01", TotalFuel: 50, AvgEfficiency: 8},
		{Month: "2024-02", TotalFuel: 40, AvgEfficiency: 7.5},
	}))
	RenderStatic(reg)

	var buf bytes.Buffer
	if err := reg.WriteHTML(&buf, "Fuel Tracker Analytics"); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	for _, id := range []string{FuelConsumptionID, EfficiencyID, CostID, TripPurposeID} {
		if !strings.Contains(out, id) {
			t.Errorf("page should contain chart %s", id)
		}
	}
	if !strings.Contains(out, "Fuel Tracker Analytics") {
		t.Error("page should carry its title")
	}
}

func TestRegistry_WriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRegistry().WriteHTML(&buf, "x"); err == nil {
		t.Error("expected error for empty registry")
	}
}

func TestRenderDataset_NilIsNoop(t *testing.T) {
	reg := NewRegistry()
	RenderDataset(reg, nil)
	if reg.Len() != 0 {
		t.Errorf("nil dataset should render nothing, got %v", reg.IDs())
	}
}
