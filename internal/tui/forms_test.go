package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/fuel-top/internal/api"
	"github.com/nixlim/fuel-top/internal/loadstate"
)

func setField(t *testing.T, f *formState, name, value string) {
	t.Helper()
	for i, field := range f.schema.Fields {
		if field.Name == name {
			f.inputs[i].SetValue(value)
			return
		}
	}
	t.Fatalf("no field %q", name)
}

func fieldValue(f *formState, name string) string {
	for i, field := range f.schema.Fields {
		if field.Name == name {
			return f.inputs[i].Value()
		}
	}
	return ""
}

func fillFuelLog(t *testing.T, m *Model) {
	t.Helper()
	m.fuelForm.vehicle = 0
	setField(t, &m.fuelForm, "fuel_amount", "45.5")
	setField(t, &m.fuelForm, "odometer", "-10")
}

func TestForm_DefaultsToToday(t *testing.T) {
	m := newTestModel(t, &mockBackend{})

	if got := fieldValue(&m.fuelForm, "log_date"); got != "2024-03-15" {
		t.Errorf("log_date: want 2024-03-15, got %q", got)
	}
	if got := fieldValue(&m.tripForm, "trip_date"); got != "2024-03-15" {
		t.Errorf("trip_date: want 2024-03-15, got %q", got)
	}
	if got := fieldValue(&m.fuelForm, "fuel_type"); got != "petrol" {
		t.Errorf("fuel_type: want petrol, got %q", got)
	}
}

func TestForm_ServerErrorToastKeepsInput(t *testing.T) {
	var posted map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[]`))
			return
		}
		json.NewDecoder(r.Body).Decode(&posted)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"odometer must be positive"}`))
	}))
	t.Cleanup(srv.Close)

	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b, WithBackend(api.New(srv.URL)), WithStartView(ViewFuelLog)))
	fillFuelLog(t, &m)
	logsTok := m.logs.Token()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.fuelForm.submitting {
		t.Error("form should be marked as submitting")
	}
	m, next := step(t, m, cmd)

	if next != nil {
		t.Error("a failed submission should not refresh anything")
	}
	if !hasToast(m, "odometer must be positive") {
		t.Errorf("want toast with server message, got %+v", m.toasts.All())
	}
	if got := fieldValue(&m.fuelForm, "fuel_amount"); got != "45.5" {
		t.Errorf("form should not be reset on error, fuel_amount=%q", got)
	}
	if m.fuelForm.vehicle != 0 {
		t.Error("vehicle selection should survive a failed submission")
	}
	if m.logs.Token() != logsTok {
		t.Error("recent logs should not reload after a failed submission")
	}
	if posted["vehicle_id"] != float64(1) || posted["fuel_amount"] != 45.5 || posted["odometer"] != float64(-10) {
		t.Errorf("unexpected payload %v", posted)
	}
	if !strings.Contains(stripAnsi(m.View()), "odometer must be positive") {
		t.Error("toast should be visible in the view")
	}
}

func TestForm_SuccessResetsAndRefreshesList(t *testing.T) {
	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b, WithStartView(ViewFuelLog)))
	fillFuelLog(t, &m)
	setField(t, &m.fuelForm, "odometer", "12000")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, refresh := step(t, m, cmd)

	if len(b.endpoints) != 1 || b.endpoints[0] != "/fuel_logs" {
		t.Fatalf("want one POST to /fuel_logs, got %v", b.endpoints)
	}
	if !hasToast(m, "Fuel log added successfully!") {
		t.Error("success should raise a toast")
	}
	if got := fieldValue(&m.fuelForm, "fuel_amount"); got != "" {
		t.Errorf("form should be reset, fuel_amount=%q", got)
	}
	if got := fieldValue(&m.fuelForm, "log_date"); got != "2024-03-15" {
		t.Errorf("reset should restore today's date, got %q", got)
	}
	if m.fuelForm.vehicle != -1 {
		t.Error("reset should clear the vehicle selection")
	}
	if m.logs.Phase() != loadstate.Loading {
		t.Errorf("recent logs should reload, got %s", m.logs.Phase())
	}

	b.logs = []api.FuelLog{{VehicleID: 1, LogDate: "2024-03-15", FuelAmount: 45.5, Odometer: 12000}}
	m, _ = step(t, m, refresh)
	if m.logs.Phase() != loadstate.Success || len(m.logs.Data()) != 1 {
		t.Errorf("refreshed logs should be shown, got %s", m.logs.Phase())
	}
}

func TestForm_TripSuccessRefreshesTrips(t *testing.T) {
	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b, WithStartView(ViewTrip)))
	m.tripForm.vehicle = 1
	setField(t, &m.tripForm, "start_location", "Home")
	setField(t, &m.tripForm, "end_location", "Office")
	setField(t, &m.tripForm, "distance", "12.5")
	setField(t, &m.tripForm, "duration", "30")
	tripsTok := m.trips.Token()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = step(t, m, cmd)

	if !hasToast(m, "Trip recorded successfully!") {
		t.Error("success should raise a toast")
	}
	if m.trips.Token() == tripsTok {
		t.Error("recent trips should reload after a trip is recorded")
	}
	got := b.submitted[0]
	if got["vehicle_id"] != 2 || got["distance"] != 12.5 || got["duration"] != 30 || got["purpose"] != "commute" {
		t.Errorf("unexpected payload %v", got)
	}
	if _, ok := got["notes"]; ok {
		t.Error("blank optional notes should be omitted")
	}
}

func TestForm_ValidationErrorSkipsRequest(t *testing.T) {
	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b, WithStartView(ViewFuelLog)))
	setField(t, &m.fuelForm, "fuel_amount", "lots")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("invalid form should not issue a request")
	}
	if len(b.submitted) != 0 {
		t.Error("invalid form should not be posted")
	}
	for _, want := range []string{"vehicle_id: required", "fuel_amount: must be a number", "odometer: required"} {
		if !hasToast(m, want) {
			t.Errorf("want toast containing %q, got %+v", want, m.toasts.All())
		}
	}
}

func TestForm_TypingDoesNotTriggerShortcuts(t *testing.T) {
	m := loadAll(t, newTestModel(t, &mockBackend{vehicles: testVehicles}, WithStartView(ViewTrip)))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := press(t, m, runes("q"))
	m, _ = press(t, m, runes("r"))

	if m.quitting {
		t.Fatal("typing q in a form should not quit")
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("typing q in a form should not quit")
		}
	}
	if got := fieldValue(&m.tripForm, "start_location"); got != "qr" {
		t.Errorf("start_location: want qr, got %q", got)
	}
}

func TestForm_VehiclePicker(t *testing.T) {
	m := loadAll(t, newTestModel(t, &mockBackend{vehicles: testVehicles}, WithStartView(ViewFuelLog)))

	if !strings.Contains(stripAnsi(m.View()), "Select Vehicle") {
		t.Error("picker should prompt for a vehicle")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.fuelForm.vehicle != 0 {
		t.Errorf("right: want vehicle 0, got %d", m.fuelForm.vehicle)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.fuelForm.vehicle != 0 {
		t.Errorf("picker should wrap, got %d", m.fuelForm.vehicle)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.fuelForm.vehicle != 1 {
		t.Errorf("left: want vehicle 1, got %d", m.fuelForm.vehicle)
	}
	if !strings.Contains(stripAnsi(m.View()), "Honda Civic (2021)") {
		t.Error("picker should show the selected vehicle")
	}
}

func TestForm_EnterOnLastFieldSubmits(t *testing.T) {
	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b, WithStartView(ViewFuelLog)))
	fillFuelLog(t, &m)
	m.fuelForm.focusField(len(m.fuelForm.inputs) - 1)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on the last field should submit")
	}
	cmd()
	if len(b.submitted) != 1 {
		t.Errorf("want one submission, got %d", len(b.submitted))
	}
}

func TestForm_DoubleSubmitIgnored(t *testing.T) {
	b := &mockBackend{vehicles: testVehicles}
	m := loadAll(t, newTestModel(t, b, WithStartView(ViewFuelLog)))
	fillFuelLog(t, &m)

	m, first := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	_, second := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if first == nil || second != nil {
		t.Error("a second submit while one is in flight should be ignored")
	}
}
