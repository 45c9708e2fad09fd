package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/fuel-top/internal/analytics"
	"github.com/nixlim/fuel-top/internal/api"
	"github.com/nixlim/fuel-top/internal/config"
	"github.com/nixlim/fuel-top/internal/loadstate"
	"github.com/nixlim/fuel-top/internal/vehicles"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type consumptionCall struct {
	period    analytics.Period
	vehicleID int
}

type mockBackend struct {
	mu sync.Mutex

	vehicles    []api.Vehicle
	vehiclesErr error
	logs        []api.FuelLog
	logsErr     error
	trips       []api.Trip
	tripsErr    error
	records     []analytics.Record
	recordsErr  error
	submitErr   error

	vehicleCalls int
	logCalls     int
	consumption  []consumptionCall
	submitted    []map[string]any
	endpoints    []string
}

func (b *mockBackend) Vehicles(_ context.Context) ([]api.Vehicle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vehicleCalls++
	return b.vehicles, b.vehiclesErr
}

func (b *mockBackend) FuelLogs(_ context.Context, _ int) ([]api.FuelLog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logCalls++
	return b.logs, b.logsErr
}

func (b *mockBackend) Trips(_ context.Context, _ int) ([]api.Trip, error) {
	return b.trips, b.tripsErr
}

func (b *mockBackend) FuelConsumption(_ context.Context, period analytics.Period, vehicleID int) ([]analytics.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consumption = append(b.consumption, consumptionCall{period, vehicleID})
	return b.records, b.recordsErr
}

func (b *mockBackend) Submit(_ context.Context, endpoint string, payload map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endpoints = append(b.endpoints, endpoint)
	b.submitted = append(b.submitted, payload)
	return b.submitErr
}

var testVehicles = []api.Vehicle{
	{ID: 1, Make: "Toyota", Model: "Corolla", Year: 2019},
	{ID: 2, Make: "Honda", Model: "Civic", Year: 2021},
}

func newTestModel(t *testing.T, b *mockBackend, opts ...ModelOption) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	return newTestModelWithConfig(t, cfg, b, opts...)
}

func newTestModelWithConfig(t *testing.T, cfg config.Config, b *mockBackend, opts ...ModelOption) Model {
	t.Helper()
	base := []ModelOption{
		WithBackend(b),
		WithDirectory(vehicles.NewDirectory(b)),
		WithClock(func() time.Time { return testNow }),
	}
	m := NewModel(cfg, append(base, opts...)...)
	m.width = 120
	m.height = 60
	return m
}

// step runs cmd synchronously and feeds its message back into the model.
func step(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	result, next := m.Update(cmd())
	return result.(Model), next
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	return result.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadAll resolves the initial cycle of every region.
func loadAll(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = step(t, m, m.fetchVehicles(m.vehicles.Token()))
	m, _ = step(t, m, m.fetchLogs(m.logs.Token()))
	m, _ = step(t, m, m.fetchTrips(m.trips.Token()))
	if m.stats.Phase() == loadstate.Loading {
		m, _ = step(t, m, m.fetchAnalytics(m.stats.Token()))
	}
	return m
}

func TestNewModel_RegionsStartLoading(t *testing.T) {
	m := newTestModel(t, &mockBackend{})

	for name, phase := range map[string]loadstate.Phase{
		"vehicles":  m.vehicles.Phase(),
		"logs":      m.logs.Phase(),
		"trips":     m.trips.Phase(),
		"analytics": m.stats.Phase(),
	} {
		if phase != loadstate.Loading {
			t.Errorf("%s: want loading, got %s", name, phase)
		}
	}
	if m.Init() == nil {
		t.Error("Init should issue commands")
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("view should show loading placeholders")
	}
}

func TestNewModel_AnalyticsDisabledStaysIdle(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analytics.Enabled = false
	m := newTestModelWithConfig(t, cfg, &mockBackend{})

	if m.stats.Phase() != loadstate.Idle {
		t.Errorf("analytics: want idle, got %s", m.stats.Phase())
	}
}

func TestNewModel_StartViewAndPeriodFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.StartView = "analytics"
	cfg.Analytics.DefaultPeriod = "6months"
	m := newTestModelWithConfig(t, cfg, &mockBackend{})

	if m.view != ViewAnalytics {
		t.Errorf("view: want analytics, got %s", m.view)
	}
	if m.period != analytics.Period6Months {
		t.Errorf("period: want 6months, got %s", m.period)
	}
}

func TestNewModel_StaticChartsRendered(t *testing.T) {
	m := newTestModel(t, &mockBackend{})
	if m.registry.Len() != 2 {
		t.Errorf("want 2 static charts, got %v", m.registry.IDs())
	}

	cfg := config.DefaultConfig()
	cfg.Analytics.StaticCharts = false
	m = newTestModelWithConfig(t, cfg, &mockBackend{})
	if m.registry.Len() != 0 {
		t.Errorf("static charts disabled: want none, got %v", m.registry.IDs())
	}
}

func TestFetchAnalytics_CapturesFilterAtIssue(t *testing.T) {
	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b))

	m.filterVehicle = 1
	m.period = analytics.Period7Days
	cmd := m.fetchAnalytics(m.stats.Begin())

	m.filterVehicle = -1
	m.period = analytics.Period12Months
	cmd()

	got := b.consumption[len(b.consumption)-1]
	if got.period != analytics.Period7Days || got.vehicleID != 2 {
		t.Errorf("want 7days/vehicle 2, got %+v", got)
	}
}

func TestVehicleLoadFailure_ToastAndRetry(t *testing.T) {
	b := &mockBackend{vehiclesErr: errors.New("connection refused")}
	m := newTestModel(t, b)
	m, _ = step(t, m, m.fetchVehicles(m.vehicles.Token()))

	if m.vehicles.Phase() != loadstate.Error {
		t.Fatalf("vehicles: want error, got %s", m.vehicles.Phase())
	}
	if !hasToast(m, "Failed to load vehicles") {
		t.Error("vehicle failure should raise a toast")
	}

	b.vehiclesErr = nil
	b.vehicles = testVehicles
	m, cmd := press(t, m, runes("r"))
	if m.vehicles.Phase() != loadstate.Loading {
		t.Errorf("reload should restart the vehicle region, got %s", m.vehicles.Phase())
	}
	if cmd == nil {
		t.Fatal("reload should issue requests")
	}
	m, _ = step(t, m, m.fetchVehicles(m.vehicles.Token()))
	if m.vehicles.Phase() != loadstate.Success {
		t.Errorf("retried vehicles: want success, got %s", m.vehicles.Phase())
	}
	if b.vehicleCalls != 2 {
		t.Errorf("want 2 vehicle fetches, got %d", b.vehicleCalls)
	}
}

func TestReload_KeepsVehicleCache(t *testing.T) {
	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b))

	m, _ = press(t, m, runes("r"))
	m, _ = step(t, m, m.fetchVehicles(m.vehicles.Token()))

	if b.vehicleCalls != 1 {
		t.Errorf("reload should be served from the cache, got %d fetches", b.vehicleCalls)
	}
	if m.vehicles.Phase() != loadstate.Success {
		t.Errorf("vehicles: want success, got %s", m.vehicles.Phase())
	}
}

func TestUpdate_StaleLogsResponseDiscarded(t *testing.T) {
	b := &mockBackend{logs: []api.FuelLog{{VehicleID: 1, FuelAmount: 10}}}
	m := newTestModel(t, b)

	stale := m.logs.Token()
	m.logs.Begin()

	result, _ := m.Update(logsLoadedMsg{tok: stale, err: errors.New("old failure")})
	m = result.(Model)
	if m.logs.Phase() != loadstate.Loading {
		t.Errorf("stale response should be ignored, got %s", m.logs.Phase())
	}

	result, _ = m.Update(logsLoadedMsg{tok: m.logs.Token(), list: b.logs})
	m = result.(Model)
	if m.logs.Phase() != loadstate.Success {
		t.Errorf("current response should apply, got %s", m.logs.Phase())
	}
}

func TestKeys_ViewCycling(t *testing.T) {
	m := newTestModel(t, &mockBackend{})

	want := []ViewState{ViewAnalytics, ViewFuelLog}
	for _, v := range want {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.view != v {
			t.Fatalf("tab: want %s, got %s", v, m.view)
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != ViewDashboard {
		t.Errorf("esc from form: want dashboard, got %s", m.view)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.view != ViewTrip {
		t.Errorf("shift+tab from dashboard: want trip, got %s", m.view)
	}
}

func TestKeys_DirectViewJumps(t *testing.T) {
	m := newTestModel(t, &mockBackend{})

	m, _ = press(t, m, runes("a"))
	if m.view != ViewAnalytics {
		t.Errorf("a: want analytics, got %s", m.view)
	}
	m, _ = press(t, m, runes("t"))
	if m.view != ViewTrip {
		t.Errorf("t: want trip, got %s", m.view)
	}
}

func TestKeys_QuitRunsShutdown(t *testing.T) {
	called := false
	m := newTestModel(t, &mockBackend{}, WithOnShutdown(func() { called = true }))

	m, cmd := press(t, m, runes("q"))
	if !called {
		t.Error("quit should run the shutdown hook")
	}
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce QuitMsg")
	}
	if m.View() != "Shutting down...\n" {
		t.Errorf("unexpected view after quit: %q", m.View())
	}
}

func TestView_HeightTruncation(t *testing.T) {
	m := loadAll(t, newTestModel(t, &mockBackend{}))
	m.height = 5

	if n := len(strings.Split(m.View(), "\n")); n > 5 {
		t.Errorf("view should fit the terminal height, got %d lines", n)
	}
}

func TestParseView(t *testing.T) {
	for _, name := range config.StartViews {
		if _, ok := ParseView(name); !ok {
			t.Errorf("start view %q should parse", name)
		}
	}
	if _, ok := ParseView("settings"); ok {
		t.Error("unknown view should not parse")
	}
}

func hasToast(m Model, substr string) bool {
	for _, tt := range m.toasts.All() {
		if strings.Contains(tt.Message, substr) {
			return true
		}
	}
	return false
}
