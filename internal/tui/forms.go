package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nixlim/fuel-top/internal/api"
	"github.com/nixlim/fuel-top/internal/forms"
	"github.com/nixlim/fuel-top/internal/loadstate"
	"github.com/nixlim/fuel-top/internal/toast"
	"github.com/nixlim/fuel-top/internal/vehicles"
)

// formState is the editable state of one submission form. inputs is
// parallel to schema.Fields; the vehicle field is picked from the
// directory instead of typed.
type formState struct {
	schema     forms.Schema
	inputs     []textinput.Model
	focus      int
	vehicle    int
	submitting bool
}

func newFormState(s forms.Schema, now time.Time) formState {
	f := formState{
		schema:  s,
		inputs:  make([]textinput.Model, len(s.Fields)),
		vehicle: -1,
	}
	for i, field := range s.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Placeholder = placeholderFor(field)
		f.inputs[i] = ti
	}
	f.reset(now)
	return f
}

func placeholderFor(f forms.Field) string {
	switch f.Kind {
	case forms.Date:
		return "YYYY-MM-DD"
	case forms.Number, forms.Integer:
		return "0"
	}
	if f.Default != "" {
		return f.Default
	}
	if !f.Required {
		return "optional"
	}
	return ""
}

// reset restores every field to its initial value. The focused field is
// kept so the user can start the next entry in place.
func (f *formState) reset(now time.Time) {
	defaults := f.schema.Defaults(now)
	for i, field := range f.schema.Fields {
		f.inputs[i].SetValue(defaults[field.Name])
	}
	f.vehicle = -1
	f.submitting = false
}

func (f *formState) focusField(i int) {
	if len(f.inputs) == 0 {
		return
	}
	i = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	if f.schema.Fields[i].Kind != forms.VehicleRef {
		f.inputs[i].Focus()
	}
}

func (f *formState) blur() {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
}

func (f *formState) cycleVehicle(delta, n int) {
	if n == 0 {
		f.vehicle = -1
		return
	}
	if f.vehicle < 0 {
		if delta > 0 {
			f.vehicle = 0
		} else {
			f.vehicle = n - 1
		}
		return
	}
	f.vehicle = (f.vehicle + delta + n) % n
}

// update forwards msg to the focused text input.
func (f *formState) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 || f.schema.Fields[f.focus].Kind == forms.VehicleRef {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// values collects the raw text of every field.
func (f *formState) values(list []api.Vehicle) map[string]string {
	out := make(map[string]string, len(f.schema.Fields))
	for i, field := range f.schema.Fields {
		if field.Kind == forms.VehicleRef {
			if f.vehicle >= 0 && f.vehicle < len(list) {
				out[field.Name] = strconv.Itoa(list[f.vehicle].ID)
			}
			continue
		}
		out[field.Name] = f.inputs[i].Value()
	}
	return out
}

func (m *Model) form(v ViewState) *formState {
	switch v {
	case ViewFuelLog:
		return &m.fuelForm
	case ViewTrip:
		return &m.tripForm
	}
	return nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form(m.view)
	last := len(f.inputs) - 1
	onVehicle := f.schema.Fields[f.focus].Kind == forms.VehicleRef

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.switchView(ViewDashboard)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm(m.view)

	case msg.Type == tea.KeyEnter && f.focus == last:
		return m.submitForm(m.view)

	case key.Matches(msg, m.keys.NextField):
		f.focusField(f.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		f.focusField(f.focus - 1)
		return m, nil

	case onVehicle && key.Matches(msg, m.keys.Left):
		f.cycleVehicle(-1, len(m.vehicleList()))
		return m, nil

	case onVehicle && key.Matches(msg, m.keys.Right):
		f.cycleVehicle(1, len(m.vehicleList()))
		return m, nil
	}

	return m, f.update(msg)
}

// submitForm validates the form and posts it. Invalid input is reported
// as a toast without a request.
func (m Model) submitForm(v ViewState) (tea.Model, tea.Cmd) {
	f := m.form(v)
	if f.submitting {
		return m, nil
	}

	payload, err := f.schema.Coerce(f.values(m.vehicleList()))
	if err != nil {
		m.pushToast(err.Error(), toast.Danger)
		return m, nil
	}
	if m.backend == nil {
		return m, nil
	}

	f.submitting = true
	b, ctx, endpoint := m.backend, m.ctx, f.schema.Endpoint
	return m, func() tea.Msg {
		return submittedMsg{view: v, err: b.Submit(ctx, endpoint, payload)}
	}
}

func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	f := m.form(msg.view)
	if f == nil {
		return m, nil
	}
	f.submitting = false

	if msg.err != nil {
		m.pushToast(msg.err.Error(), toast.Danger)
		return m, nil
	}

	m.pushToast(f.schema.SuccessNotice, toast.Success)
	f.reset(m.now())

	var cmd tea.Cmd
	switch msg.view {
	case ViewFuelLog:
		cmd = m.fetchLogs(m.logs.Begin())
	case ViewTrip:
		cmd = m.fetchTrips(m.trips.Begin())
	}
	return m, cmd
}

func (m Model) renderForm(f *formState) string {
	labelW := 0
	for _, field := range f.schema.Fields {
		labelW = max(labelW, lipgloss.Width(field.Label)+1)
	}

	list := m.vehicleList()
	var lines []string
	for i, field := range f.schema.Fields {
		label := field.Label
		if field.Required {
			label += "*"
		}
		label = padRight(label, labelW)

		var value string
		if field.Kind == forms.VehicleRef {
			value = m.vehiclePickerLabel(f.vehicle, list)
		} else {
			value = f.inputs[i].View()
		}

		marker := "  "
		if i == f.focus {
			marker = cursorStyle.Render(">") + " "
			label = panelTitleStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		lines = append(lines, marker+label+" "+value)
	}

	footer := dimStyle.Render("Tab/↓ next  Shift+Tab/↑ previous  ←/→ vehicle  Ctrl+S submit  Esc back")
	if f.submitting {
		footer = m.spinner.View() + " Submitting..."
	}

	content := panelTitleStyle.Render(m.view.String()) + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" + footer

	w := m.width
	if w < minWidth {
		w = minWidth
	}
	return renderBorderedPanel(content, w, len(lines)+6)
}

func (m Model) vehiclePickerLabel(idx int, list []api.Vehicle) string {
	switch {
	case m.vehicles.Phase() == loadstate.Loading:
		return m.spinner.View() + " loading vehicles"
	case len(list) == 0:
		return dimStyle.Render("no vehicles available")
	case idx < 0 || idx >= len(list):
		return dimStyle.Render("‹ Select Vehicle ›")
	}
	return "‹ " + vehicles.DisplayName(list[idx]) + " ›"
}

func padRight(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
