package tui

import (
	"errors"
	"sync"
)

// ShutdownManager coordinates teardown once the UI exits: in-flight
// requests are cancelled, chart handles destroyed, then the log flushed.
type ShutdownManager struct {
	// CancelRequests cancels the root context shared by all API calls.
	CancelRequests func()

	// CloseCharts destroys every live chart handle.
	CloseCharts func()

	// SyncLog flushes buffered log entries.
	SyncLog func() error

	// Cleanup performs any additional cleanup (e.g., closing files).
	Cleanup func()

	once sync.Once
	err  error
}

func NewShutdownManager() *ShutdownManager {
	return &ShutdownManager{}
}

// Shutdown runs each step once, in order. Later calls return the first
// result, so both the quit key and a signal handler may call it.
func (sm *ShutdownManager) Shutdown() error {
	sm.once.Do(func() { sm.err = sm.run() })
	return sm.err
}

func (sm *ShutdownManager) run() error {
	if sm.CancelRequests != nil {
		sm.CancelRequests()
	}
	if sm.CloseCharts != nil {
		sm.CloseCharts()
	}

	var errs []error
	if sm.SyncLog != nil {
		if err := sm.SyncLog(); err != nil {
			errs = append(errs, err)
		}
	}
	if sm.Cleanup != nil {
		sm.Cleanup()
	}
	return errors.Join(errs...)
}
