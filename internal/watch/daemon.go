package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jigolo/internal/log"
)

// DefaultDelay is how long the daemon waits for a burst of changes to settle
const DefaultDelay = 200 * time.Millisecond

// DaemonStatus represents the current status of the daemon
type DaemonStatus struct {
	Running          bool      // Whether the daemon is currently active
	WatchDirectories []string  // Directories being watched
	LastActivity     time.Time // Time of the last matching change
	Refreshes        int       // Number of refresh calls made
}

// Daemon collects changes from a Watcher and calls refresh once they settle
type Daemon struct {
	watcher *Watcher
	delay   time.Duration
	refresh func([]Change)

	mutex        sync.RWMutex
	running      bool
	lastActivity time.Time
	refreshes    int
}

// NewDaemon creates a daemon calling refresh with each settled batch
func NewDaemon(w *Watcher, delay time.Duration, refresh func([]Change)) *Daemon {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Daemon{
		watcher: w,
		delay:   delay,
		refresh: refresh,
	}
}

// Run starts the watcher and blocks until ctx is done
func (d *Daemon) Run(ctx context.Context) error {
	if len(d.watcher.Directories()) == 0 {
		return fmt.Errorf("no directories to watch")
	}
	if err := d.watcher.Start(); err != nil {
		return fmt.Errorf("error starting watcher: %w", err)
	}
	defer d.watcher.Stop()

	d.setRunning(true)
	defer d.setRunning(false)

	var (
		pending []Change
		settle  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-d.watcher.Changes():
			if !ok {
				return nil
			}
			log.LogWithFields(log.F("file", change.Path), log.F("op", change.Op.String())).Debug("change detected")
			d.mutex.Lock()
			d.lastActivity = change.Timestamp
			d.mutex.Unlock()

			pending = append(pending, change)
			settle = time.After(d.delay)

		case <-settle:
			settle = nil
			batch := pending
			pending = nil

			d.mutex.Lock()
			d.refreshes++
			d.mutex.Unlock()

			if d.refresh != nil {
				d.refresh(batch)
			}
		}
	}
}

func (d *Daemon) setRunning(running bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.running = running
}

// Status returns the current status of the daemon
func (d *Daemon) Status() DaemonStatus {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return DaemonStatus{
		Running:          d.running,
		WatchDirectories: d.watcher.Directories(),
		LastActivity:     d.lastActivity,
		Refreshes:        d.refreshes,
	}
}
