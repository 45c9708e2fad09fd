// Package vehicles caches the vehicle reference list for the life of the
// process.
package vehicles

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nixlim/fuel-top/internal/api"
)

// Fetcher loads the vehicle list from the API.
type Fetcher interface {
	Vehicles(ctx context.Context) ([]api.Vehicle, error)
}

// Directory fetches the vehicle list once and serves every later read from
// memory. Failed fetches are not cached. Nothing invalidates a populated
// directory; a restart is the only way to see new vehicles.
type Directory struct {
	fetcher Fetcher
	group   singleflight.Group

	mu     sync.RWMutex
	list   []api.Vehicle
	byID   map[int]api.Vehicle
	loaded bool
}

func NewDirectory(f Fetcher) *Directory {
	return &Directory{fetcher: f}
}

// Get returns a copy of the cached list, fetching it on first use.
// Concurrent first calls share a single request.
func (d *Directory) Get(ctx context.Context) ([]api.Vehicle, error) {
	d.mu.RLock()
	if d.loaded {
		list := slices.Clone(d.list)
		d.mu.RUnlock()
		return list, nil
	}
	d.mu.RUnlock()

	v, err, _ := d.group.Do("vehicles", func() (any, error) {
		d.mu.RLock()
		if d.loaded {
			list := d.list
			d.mu.RUnlock()
			return list, nil
		}
		d.mu.RUnlock()

		fetched, err := d.fetcher.Vehicles(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading vehicles: %w", err)
		}
		list := slices.Clone(fetched)
		if list == nil {
			list = []api.Vehicle{}
		}

		byID := make(map[int]api.Vehicle, len(list))
		for _, veh := range list {
			byID[veh.ID] = veh
		}

		d.mu.Lock()
		d.list = list
		d.byID = byID
		d.loaded = true
		d.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers sharing one flight must not share a backing array.
	return slices.Clone(v.([]api.Vehicle)), nil
}

// Lookup finds a vehicle in the populated cache.
func (d *Directory) Lookup(id int) (api.Vehicle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.byID[id]
	return v, ok
}

// DisplayName formats a vehicle as "Make Model (Year)".
func DisplayName(v api.Vehicle) string {
	return fmt.Sprintf("%s %s (%d)", v.Make, v.Model, v.Year)
}
