package charts

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/go-echarts/v2/components"
)

// Registry holds at most one live handle per identifier. Rendering an
// identifier that is already registered destroys the old handle before the
// new one is built.
type Registry struct {
	mu      sync.Mutex
	factory Factory
	handles map[string]Handle
	order   []string
}

type RegistryOption func(*Registry)

// WithFactory overrides how handles are constructed.
func WithFactory(f Factory) RegistryOption {
	return func(r *Registry) { r.factory = f }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factory: NewEChartsHandle,
		handles: make(map[string]Handle),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render (re)creates the chart registered under id.
func (r *Registry) Render(id string, cfg Config) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.handles[id]; ok {
		old.Destroy()
	} else {
		r.order = append(r.order, id)
	}

	h := r.factory(id, cfg.WithDefaults())
	r.handles[id] = h
	return h
}

// Update swaps the series of an existing chart in place. It is a no-op,
// returning false, when nothing is registered under id.
func (r *Registry) Update(id string, labels []string, values []float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[id]
	if !ok {
		return false
	}
	h.SetSeries(labels, values)
	return true
}

func (r *Registry) Get(id string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[id]
	return h, ok
}

// Destroy tears down and unregisters the chart under id.
func (r *Registry) Destroy(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyLocked(id)
}

func (r *Registry) destroyLocked(id string) bool {
	h, ok := r.handles[id]
	if !ok {
		return false
	}
	h.Destroy()
	delete(r.handles, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs lists registered identifiers in first-registration order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Close destroys every registered chart.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.order) > 0 {
		r.destroyLocked(r.order[0])
	}
}

// WriteHTML renders every live chart onto a single page.
func (r *Registry) WriteHTML(w io.Writer, title string) error {
	var charters []components.Charter
	for _, id := range r.IDs() {
		h, ok := r.Get(id)
		if !ok {
			continue
		}
		if c := h.Charter(); c != nil {
			charters = append(charters, c)
		}
	}

	if len(charters) == 0 {
		return fmt.Errorf("no charts to render")
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(charters...)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering chart page: %w", err)
	}
	return nil
}
