package sync

import (
	"context"
	"time"

	"coinwallet/walleterr"
)

// pollLoop implements §4.8's polling mode: once caught up, ask the node
// for its current info at pollInterval, measuring round-trip latency for
// the edge-triggered connection-status event, and re-enter batch mode
// whenever the network advances past current_height.
func (d *Driver) pollLoop(ctx context.Context) error {
	for {
		if d.stopped() {
			return walleterr.New(walleterr.Stopped, "sync stopped")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.pollInterval):
		}
		if d.stopped() {
			return walleterr.New(walleterr.Stopped, "sync stopped")
		}

		start := d.now()
		info, err := d.transport.Info(ctx)
		latency := d.now().Sub(start)
		d.updateConnectionStatus(err == nil, latency)
		if err != nil {
			d.recordError(err)
			continue
		}

		top := info.TopHeight()
		d.mu.Lock()
		d.state.NetworkHeight = top
		d.mu.Unlock()

		if top <= d.tracker.CurrentHeight() {
			continue
		}

		d.mu.Lock()
		d.state.Idle = false
		d.mu.Unlock()

		for {
			if d.stopped() {
				return walleterr.New(walleterr.Stopped, "sync stopped")
			}
			done, err := d.batchIteration(ctx)
			if err != nil {
				d.recordError(err)
				break
			}
			if done {
				break
			}
		}
		d.mu.Lock()
		d.state.Idle = true
		d.mu.Unlock()
	}
}
