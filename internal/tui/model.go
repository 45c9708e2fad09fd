package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/fuel-top/internal/analytics"
	"github.com/nixlim/fuel-top/internal/api"
	"github.com/nixlim/fuel-top/internal/charts"
	"github.com/nixlim/fuel-top/internal/config"
	"github.com/nixlim/fuel-top/internal/forms"
	"github.com/nixlim/fuel-top/internal/loadstate"
	"github.com/nixlim/fuel-top/internal/toast"
)

type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewAnalytics
	ViewFuelLog
	ViewTrip
)

var viewOrder = []ViewState{ViewDashboard, ViewAnalytics, ViewFuelLog, ViewTrip}

func (v ViewState) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewAnalytics:
		return "Analytics"
	case ViewFuelLog:
		return "Log Fuel"
	case ViewTrip:
		return "Record Trip"
	default:
		return "Unknown"
	}
}

// ParseView maps a display.start_view value to a view.
func ParseView(s string) (ViewState, bool) {
	switch s {
	case "dashboard":
		return ViewDashboard, true
	case "analytics":
		return ViewAnalytics, true
	case "fuel_log":
		return ViewFuelLog, true
	case "trip":
		return ViewTrip, true
	}
	return ViewDashboard, false
}

// Backend is the subset of the API client the dashboard talks to.
type Backend interface {
	FuelLogs(ctx context.Context, limit int) ([]api.FuelLog, error)
	Trips(ctx context.Context, limit int) ([]api.Trip, error)
	FuelConsumption(ctx context.Context, period analytics.Period, vehicleID int) ([]analytics.Record, error)
	Submit(ctx context.Context, endpoint string, payload map[string]any) error
}

// VehicleProvider serves the cached vehicle list.
type VehicleProvider interface {
	Get(ctx context.Context) ([]api.Vehicle, error)
	Lookup(id int) (api.Vehicle, bool)
}

type (
	vehiclesLoadedMsg struct {
		tok  loadstate.Token
		list []api.Vehicle
		err  error
	}
	logsLoadedMsg struct {
		tok  loadstate.Token
		list []api.FuelLog
		err  error
	}
	tripsLoadedMsg struct {
		tok  loadstate.Token
		list []api.Trip
		err  error
	}
	analyticsLoadedMsg struct {
		tok loadstate.Token
		ds  *analytics.Dataset
		err error
	}
	submittedMsg struct {
		view ViewState
		err  error
	}
	toastTickMsg time.Time
)

type Model struct {
	view     ViewState
	width    int
	height   int
	keys     KeyMap
	quitting bool

	cfg config.Config
	ctx context.Context
	now func() time.Time

	backend   Backend
	directory VehicleProvider
	registry  *charts.Registry
	toasts    *toast.Buffer
	spinner   spinner.Model

	vehicles loadstate.Region[[]api.Vehicle]
	logs     loadstate.Region[[]api.FuelLog]
	trips    loadstate.Region[[]api.Trip]
	stats    loadstate.Region[*analytics.Dataset]

	// filterVehicle indexes the vehicle list; -1 selects all vehicles.
	filterVehicle int
	period        analytics.Period

	fuelForm formState
	tripForm formState

	onShutdown func()
}

// NewModel builds the dashboard and starts the initial load cycle of
// every region. Init issues the matching requests.
func NewModel(cfg config.Config, opts ...ModelOption) Model {
	period, err := analytics.ParsePeriod(cfg.Analytics.DefaultPeriod)
	if err != nil {
		period = analytics.Period30Days
	}
	view, _ := ParseView(cfg.Display.StartView)

	m := Model{
		view:          view,
		keys:          DefaultKeyMap(),
		cfg:           cfg,
		ctx:           context.Background(),
		now:           time.Now,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		filterVehicle: -1,
		period:        period,
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.registry == nil {
		m.registry = charts.NewRegistry()
	}
	if m.toasts == nil {
		m.toasts = toast.NewBuffer(cfg.Display.ToastBufferSize, time.Duration(cfg.Display.ToastSeconds)*time.Second)
	}
	if cfg.Analytics.StaticCharts {
		charts.RenderStatic(m.registry)
	}

	m.fuelForm = newFormState(forms.FuelLog, m.now())
	m.tripForm = newFormState(forms.Trip, m.now())
	if f := m.form(m.view); f != nil {
		f.focusField(0)
	}

	m.vehicles.Begin()
	m.logs.Begin()
	m.trips.Begin()
	if cfg.Analytics.Enabled {
		m.stats.Begin()
	}
	return m
}

type ModelOption func(*Model)

// WithContext sets the context every request runs under. Cancelling it
// aborts in-flight requests.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) { m.ctx = ctx }
}

func WithBackend(b Backend) ModelOption {
	return func(m *Model) { m.backend = b }
}

func WithDirectory(d VehicleProvider) ModelOption {
	return func(m *Model) { m.directory = d }
}

func WithRegistry(r *charts.Registry) ModelOption {
	return func(m *Model) { m.registry = r }
}

func WithToasts(b *toast.Buffer) ModelOption {
	return func(m *Model) { m.toasts = b }
}

func WithStartView(v ViewState) ModelOption {
	return func(m *Model) { m.view = v }
}

func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

func WithOnShutdown(fn func()) ModelOption {
	return func(m *Model) { m.onShutdown = fn }
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		toastTickCmd(),
		m.fetchVehicles(m.vehicles.Token()),
		m.fetchLogs(m.logs.Token()),
		m.fetchTrips(m.trips.Token()),
	}
	if m.cfg.Analytics.Enabled {
		cmds = append(cmds, m.fetchAnalytics(m.stats.Token()))
	}
	return tea.Batch(cmds...)
}

func toastTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func (m Model) fetchVehicles(tok loadstate.Token) tea.Cmd {
	if m.directory == nil {
		return nil
	}
	dir, ctx := m.directory, m.ctx
	return func() tea.Msg {
		list, err := dir.Get(ctx)
		return vehiclesLoadedMsg{tok: tok, list: list, err: err}
	}
}

func (m Model) fetchLogs(tok loadstate.Token) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	b, ctx, limit := m.backend, m.ctx, m.cfg.Display.RecentLimit
	return func() tea.Msg {
		list, err := b.FuelLogs(ctx, limit)
		return logsLoadedMsg{tok: tok, list: list, err: err}
	}
}

func (m Model) fetchTrips(tok loadstate.Token) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	b, ctx, limit := m.backend, m.ctx, m.cfg.Display.RecentLimit
	return func() tea.Msg {
		list, err := b.Trips(ctx, limit)
		return tripsLoadedMsg{tok: tok, list: list, err: err}
	}
}

// fetchAnalytics captures the filter at issue time so a later filter
// change cannot relabel this response.
func (m Model) fetchAnalytics(tok loadstate.Token) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	b, ctx, period, vehicleID := m.backend, m.ctx, m.period, m.selectedVehicleID()
	return func() tea.Msg {
		records, err := b.FuelConsumption(ctx, period, vehicleID)
		if err != nil {
			return analyticsLoadedMsg{tok: tok, err: err}
		}
		return analyticsLoadedMsg{tok: tok, ds: analytics.Transform(records)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastTickMsg:
		return m, toastTickCmd()

	case vehiclesLoadedMsg:
		if m.vehicles.Resolve(msg.tok, msg.list, len(msg.list) == 0, msg.err) && msg.err != nil {
			m.pushToast("Failed to load vehicles", toast.Danger)
		}
		m.clampVehicleSelections()
		return m, nil

	case logsLoadedMsg:
		m.logs.Resolve(msg.tok, msg.list, len(msg.list) == 0, msg.err)
		return m, nil

	case tripsLoadedMsg:
		m.trips.Resolve(msg.tok, msg.list, len(msg.list) == 0, msg.err)
		return m, nil

	case analyticsLoadedMsg:
		m.applyAnalytics(msg)
		return m, nil

	case submittedMsg:
		return m.handleSubmitted(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if f := m.form(m.view); f != nil {
		return m, f.update(msg)
	}
	return m, nil
}

func (m *Model) applyAnalytics(msg analyticsLoadedMsg) {
	if !m.stats.Resolve(msg.tok, msg.ds, msg.ds == nil, msg.err) {
		return
	}

	switch m.stats.Phase() {
	case loadstate.Success:
		ds := m.stats.Data()
		if !charts.UpdateDataset(m.registry, ds) {
			charts.RenderDataset(m.registry, ds)
		}
	case loadstate.Error:
		m.registry.Destroy(charts.FuelConsumptionID)
		m.registry.Destroy(charts.EfficiencyID)
		m.pushToast("Failed to load analytics", toast.Danger)
	default:
		m.registry.Destroy(charts.FuelConsumptionID)
		m.registry.Destroy(charts.EfficiencyID)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.view == ViewFuelLog || m.view == ViewTrip {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.NextView):
		m.switchView(m.stepView(1))
		return m, nil

	case key.Matches(msg, m.keys.PrevView):
		m.switchView(m.stepView(-1))
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		cmd := m.reloadAll()
		return m, cmd

	case key.Matches(msg, m.keys.FuelForm):
		m.switchView(ViewFuelLog)
		return m, nil

	case key.Matches(msg, m.keys.TripForm):
		m.switchView(ViewTrip)
		return m, nil

	case key.Matches(msg, m.keys.Analytics):
		m.switchView(ViewAnalytics)
		return m, nil
	}

	if m.view == ViewAnalytics {
		return m.handleAnalyticsKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.onShutdown != nil {
		m.onShutdown()
	}
	return m, tea.Quit
}

func (m Model) stepView(delta int) ViewState {
	for i, v := range viewOrder {
		if v == m.view {
			return viewOrder[(i+delta+len(viewOrder))%len(viewOrder)]
		}
	}
	return ViewDashboard
}

func (m *Model) switchView(v ViewState) {
	if f := m.form(m.view); f != nil {
		f.blur()
	}
	m.view = v
	if f := m.form(v); f != nil {
		f.focusField(f.focus)
	}
}

// reloadAll starts a new cycle in every region. The vehicle directory
// keeps its cache, so only a failed first load is retried over the wire.
func (m *Model) reloadAll() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchVehicles(m.vehicles.Begin()),
		m.fetchLogs(m.logs.Begin()),
		m.fetchTrips(m.trips.Begin()),
	}
	if m.cfg.Analytics.Enabled || m.stats.Phase() != loadstate.Idle {
		cmds = append(cmds, m.fetchAnalytics(m.stats.Begin()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) pushToast(msg string, level toast.Level) {
	m.toasts.Push(toast.Toast{Message: msg, Level: level, At: m.now()})
}

func (m Model) vehicleList() []api.Vehicle {
	if m.vehicles.Phase() != loadstate.Success {
		return nil
	}
	return m.vehicles.Data()
}

// clampVehicleSelections drops selections that point past a shorter list.
func (m *Model) clampVehicleSelections() {
	n := len(m.vehicleList())
	if m.filterVehicle >= n {
		m.filterVehicle = -1
	}
	for _, f := range []*formState{&m.fuelForm, &m.tripForm} {
		if f.vehicle >= n {
			f.vehicle = -1
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var body string
	switch m.view {
	case ViewDashboard:
		body = m.renderDashboard()
	case ViewAnalytics:
		body = m.renderAnalytics()
	case ViewFuelLog:
		body = m.renderForm(&m.fuelForm)
	case ViewTrip:
		body = m.renderForm(&m.tripForm)
	}

	output := m.renderHeader() + "\n" + body
	if toasts := m.renderToasts(); toasts != "" {
		output += "\n" + toasts
	}

	if m.height > 0 {
		lines := strings.Split(output, "\n")
		if len(lines) > m.height {
			lines = lines[:m.height]
			output = strings.Join(lines, "\n")
		}
	}

	return output
}
